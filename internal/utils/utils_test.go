package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	er "github.com/talentstack/cvintake/internal/errors"
)

func TestExtractAddress(t *testing.T) {
	assert.Equal(t, "jan@example.com", ExtractAddress("Jan Kowalski <jan@example.com>"))
	assert.Equal(t, "jan@example.com", ExtractAddress("jan@example.com"))
	assert.Equal(t, "jan@example.com", ExtractAddress("  <jan@example.com>  "))
	assert.Equal(t, "(unknown)", ExtractAddress("(unknown)"))
}

func TestMimeTypeForFilename(t *testing.T) {
	mimeType, err := MimeTypeForFilename("cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mimeType)

	mimeType, err = MimeTypeForFilename("Resume.DOCX")
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", mimeType)

	_, err = MimeTypeForFilename("notes.txt")
	assert.ErrorIs(t, err, er.ErrUnsupportedAttachmentType)

	_, err = MimeTypeForFilename("noextension")
	assert.ErrorIs(t, err, er.ErrUnsupportedAttachmentType)
}
