package ingestion

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentstack/cvintake/interfaces"
	er "github.com/talentstack/cvintake/internal/errors"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
)

type fakeMessageSource struct {
	interfaces.MessageSource
	attachments map[string]string
	getErr      error
}

func (f *fakeMessageSource) GetAttachment(ctx context.Context, messageID, attachmentID string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.attachments[attachmentID], nil
}

func testLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{DevMode: true})
	appLogger.InitLogger()
	return appLogger
}

func encode(data string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(data))
}

func newExtractor(source interfaces.MessageSource) interfaces.AttachmentExtractor {
	return NewAttachmentExtractor(source, []string{".pdf", ".docx"}, testLogger())
}

func TestExtract_FlatMessage(t *testing.T) {
	// Arrange
	source := &fakeMessageSource{attachments: map[string]string{
		"att-1": encode("pdf bytes"),
	}}
	root := &models.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*models.MessagePart{
			{MimeType: "text/plain"},
			{Filename: "cv.pdf", MimeType: "application/pdf", AttachmentID: "att-1"},
		},
	}

	// Act
	attachments, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	// Assert
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "cv.pdf", attachments[0].Filename)
	assert.Equal(t, "application/pdf", attachments[0].MimeType)
	assert.Equal(t, []byte("pdf bytes"), attachments[0].Data)
}

func TestExtract_DeeplyNestedParts(t *testing.T) {
	// Forwarded messages nest attachments several containers deep.
	source := &fakeMessageSource{attachments: map[string]string{
		"att-deep": encode("docx bytes"),
	}}
	root := &models.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*models.MessagePart{
			{
				MimeType: "message/rfc822",
				Parts: []*models.MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*models.MessagePart{
							{MimeType: "text/html"},
							{Filename: "cv.docx", MimeType: "application/octet-stream", AttachmentID: "att-deep"},
						},
					},
				},
			},
		},
	}

	attachments, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "cv.docx", attachments[0].Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", attachments[0].MimeType)
}

func TestExtract_MixedDepthsFoundInVisitationOrder(t *testing.T) {
	// Attachments at the root, two levels down and four levels down must
	// all be collected once, in depth-first order. A single-part message
	// can be nothing but the attachment itself.
	source := &fakeMessageSource{attachments: map[string]string{
		"att-root": encode("root bytes"),
		"att-mid":  encode("mid bytes"),
		"att-deep": encode("deep bytes"),
	}}
	root := &models.MessagePart{
		Filename:     "root.pdf",
		MimeType:     "application/pdf",
		AttachmentID: "att-root",
		Parts: []*models.MessagePart{
			{
				MimeType: "multipart/mixed",
				Parts: []*models.MessagePart{
					{Filename: "mid.pdf", MimeType: "application/pdf", AttachmentID: "att-mid"},
					{
						MimeType: "message/rfc822",
						Parts: []*models.MessagePart{
							{
								MimeType: "multipart/alternative",
								Parts: []*models.MessagePart{
									{MimeType: "text/plain"},
									{Filename: "deep.docx", AttachmentID: "att-deep"},
								},
							},
						},
					},
				},
			},
		},
	}

	attachments, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.NoError(t, err)
	require.Len(t, attachments, 3)
	assert.Equal(t, "root.pdf", attachments[0].Filename)
	assert.Equal(t, []byte("root bytes"), attachments[0].Data)
	assert.Equal(t, "mid.pdf", attachments[1].Filename)
	assert.Equal(t, "deep.docx", attachments[2].Filename)
	assert.Equal(t, []byte("deep bytes"), attachments[2].Data)
}

func TestExtract_ExtensionFilterIsCaseInsensitive(t *testing.T) {
	source := &fakeMessageSource{attachments: map[string]string{
		"att-1": encode("pdf bytes"),
	}}
	root := &models.MessagePart{
		Parts: []*models.MessagePart{
			{Filename: "Resume.PDF", AttachmentID: "att-1"},
			{Filename: "notes.txt", AttachmentID: "att-2"},
			{Filename: "photo.jpg", AttachmentID: "att-3"},
		},
	}

	attachments, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "Resume.PDF", attachments[0].Filename)
}

func TestExtract_DuplicateFilenamesBothSurvive(t *testing.T) {
	source := &fakeMessageSource{attachments: map[string]string{
		"att-1": encode("first"),
		"att-2": encode("second"),
	}}
	root := &models.MessagePart{
		Parts: []*models.MessagePart{
			{Filename: "cv.pdf", AttachmentID: "att-1"},
			{Filename: "cv.pdf", AttachmentID: "att-2"},
		},
	}

	attachments, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, []byte("first"), attachments[0].Data)
	assert.Equal(t, []byte("second"), attachments[1].Data)
}

func TestExtract_NoPayload(t *testing.T) {
	attachments, err := newExtractor(&fakeMessageSource{}).Extract(context.Background(), "msg-1", nil)

	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestExtract_PartWithoutAttachmentIDIsSkipped(t *testing.T) {
	// Inline parts can carry a filename but no attachment reference.
	source := &fakeMessageSource{attachments: map[string]string{}}
	root := &models.MessagePart{
		Parts: []*models.MessagePart{
			{Filename: "cv.pdf"},
		},
	}

	attachments, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.NoError(t, err)
	assert.Empty(t, attachments)
}

func TestExtract_PaddedBase64Accepted(t *testing.T) {
	source := &fakeMessageSource{attachments: map[string]string{
		"att-1": base64.URLEncoding.EncodeToString([]byte("padded payload")),
	}}
	root := &models.MessagePart{
		Parts: []*models.MessagePart{
			{Filename: "cv.pdf", AttachmentID: "att-1"},
		},
	}

	attachments, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, []byte("padded payload"), attachments[0].Data)
}

func TestExtract_DecodeFailure(t *testing.T) {
	source := &fakeMessageSource{attachments: map[string]string{
		"att-1": "!!! not base64 !!!",
	}}
	root := &models.MessagePart{
		Parts: []*models.MessagePart{
			{Filename: "cv.pdf", AttachmentID: "att-1"},
		},
	}

	_, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.Error(t, err)
	assert.True(t, errors.Is(err, er.ErrAttachmentDecode))
}

func TestExtract_SourceFailurePropagates(t *testing.T) {
	source := &fakeMessageSource{getErr: errors.Wrap(er.ErrSourceUnavailable, "boom")}
	root := &models.MessagePart{
		Parts: []*models.MessagePart{
			{Filename: "cv.pdf", AttachmentID: "att-1"},
		},
	}

	_, err := newExtractor(source).Extract(context.Background(), "msg-1", root)

	require.Error(t, err)
	assert.True(t, errors.Is(err, er.ErrSourceUnavailable))
}
