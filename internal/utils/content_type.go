package utils

import (
	"path/filepath"
	"strings"

	er "github.com/talentstack/cvintake/internal/errors"
)

// Fixed extension to MIME table for the document types the intake
// accepts. Anything else is rejected before upload or conversion.
var mimeTypeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MimeTypeForFilename derives the content type from the lowercased file
// extension. Returns ErrUnsupportedAttachmentType for anything outside
// the table.
func MimeTypeForFilename(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := mimeTypeByExtension[ext]
	if !ok {
		return "", er.ErrUnsupportedAttachmentType
	}
	return mimeType, nil
}
