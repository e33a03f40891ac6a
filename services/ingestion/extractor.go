package ingestion

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/talentstack/cvintake/interfaces"
	er "github.com/talentstack/cvintake/internal/errors"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
	"github.com/talentstack/cvintake/internal/utils"
)

// attachmentExtractor walks a message's part tree depth-first and
// resolves every qualifying attachment to decoded bytes. A part
// qualifies when it carries a filename with an accepted extension;
// container parts never short-circuit recursion.
type attachmentExtractor struct {
	source     interfaces.MessageSource
	extensions map[string]struct{}
	log        logger.Logger
}

func NewAttachmentExtractor(source interfaces.MessageSource, acceptedExtensions []string, log logger.Logger) interfaces.AttachmentExtractor {
	extensions := make(map[string]struct{}, len(acceptedExtensions))
	for _, ext := range acceptedExtensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}
	return &attachmentExtractor{
		source:     source,
		extensions: extensions,
		log:        log,
	}
}

func (e *attachmentExtractor) Extract(ctx context.Context, messageID string, root *models.MessagePart) ([]models.ExtractedAttachment, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "attachmentExtractor.Extract")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagMessageID(span, messageID)

	var attachments []models.ExtractedAttachment
	if err := e.walk(ctx, messageID, root, &attachments); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.SetTag("attachment-count", len(attachments))
	return attachments, nil
}

func (e *attachmentExtractor) walk(ctx context.Context, messageID string, part *models.MessagePart, attachments *[]models.ExtractedAttachment) error {
	if part == nil {
		return nil
	}

	if part.Filename != "" && e.accepts(part.Filename) && part.AttachmentID != "" {
		attachment, err := e.resolve(ctx, messageID, part)
		if err != nil {
			return err
		}
		*attachments = append(*attachments, *attachment)
	}

	for _, child := range part.Parts {
		if err := e.walk(ctx, messageID, child, attachments); err != nil {
			return err
		}
	}
	return nil
}

func (e *attachmentExtractor) accepts(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := e.extensions[ext]
	return ok
}

func (e *attachmentExtractor) resolve(ctx context.Context, messageID string, part *models.MessagePart) (*models.ExtractedAttachment, error) {
	encoded, err := e.source.GetAttachment(ctx, messageID, part.AttachmentID)
	if err != nil {
		return nil, err
	}

	data, err := decodeBase64URL(encoded)
	if err != nil {
		return nil, errors.Wrapf(er.ErrAttachmentDecode, "attachment %s: %v", part.Filename, err)
	}

	mimeType, err := utils.MimeTypeForFilename(part.Filename)
	if err != nil {
		// accepts() already filtered the extension; the table and the
		// accepted set agreeing is an invariant.
		return nil, err
	}

	return &models.ExtractedAttachment{
		Filename: part.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// decodeBase64URL handles both unpadded and padded base64url payloads;
// the API emits unpadded data.
func decodeBase64URL(encoded string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err == nil {
		return data, nil
	}
	return base64.URLEncoding.DecodeString(encoded)
}
