package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// message source errors
	ErrSourceUnavailable = errors.New("message source unavailable")
	ErrNotEnoughMessages = errors.New("not enough messages in inbox")

	// attachment errors
	ErrAttachmentDecode          = errors.New("attachment payload decode failed")
	ErrUnsupportedAttachmentType = errors.New("unsupported attachment type")

	// converter errors
	ErrSchemaMismatch = errors.New("converter output does not match candidate document schema")

	// outbound mail errors
	ErrMailTransport = errors.New("mail transport failure")
)

// ConverterError reports a non-zero exit from the converter subprocess.
// Distinct from ErrSchemaMismatch, which means the subprocess claimed
// success but produced output the service cannot use.
type ConverterError struct {
	ExitCode int
}

func (e *ConverterError) Error() string {
	return fmt.Sprintf("converter subprocess failed with exit code %d", e.ExitCode)
}

// AsConverterError unwraps err looking for a ConverterError.
func AsConverterError(err error) (*ConverterError, bool) {
	var convErr *ConverterError
	if errors.As(err, &convErr) {
		return convErr, true
	}
	return nil, false
}
