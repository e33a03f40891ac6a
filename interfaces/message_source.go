package interfaces

import (
	"context"

	"github.com/talentstack/cvintake/internal/models"
)

// MessageSource lists and fetches mailbox messages. Listings are newest
// first; attachment bodies are fetched separately and returned
// base64url-encoded, exactly as the remote API ships them.
type MessageSource interface {
	InboxMessageCount(ctx context.Context) (int, error)
	ListInboxMessages(ctx context.Context, maxResults int64) ([]models.MessageSummary, error)
	NthNewestMessage(ctx context.Context, index int) (*models.EmailMessage, error)
	GetMessage(ctx context.Context, messageID string) (*models.EmailMessage, error)
	GetAttachment(ctx context.Context, messageID, attachmentID string) (string, error)
}

// RawMailSender submits a base64url-encoded RFC822 message for
// delivery and returns the remote message id.
type RawMailSender interface {
	SendRaw(ctx context.Context, raw []byte) (string, error)
}
