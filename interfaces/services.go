package interfaces

import (
	"context"

	"github.com/talentstack/cvintake/dto"
	"github.com/talentstack/cvintake/internal/models"
)

// IngestionService runs the inbox ingestion pipeline.
type IngestionService interface {
	// RunOnce processes every unhandled inbox message and returns the
	// number of messages marked handled during this run.
	RunOnce(ctx context.Context) (int, error)
	// InspectMessage fetches the nth newest message, processing its
	// attachments, and returns the snapshot for inspection.
	InspectMessage(ctx context.Context, index int) (*models.EmailMessage, []models.StoredObject, error)
}

// AttachmentExtractor walks a message's part tree and resolves every
// qualifying attachment to decoded bytes.
type AttachmentExtractor interface {
	Extract(ctx context.Context, messageID string, root *models.MessagePart) ([]models.ExtractedAttachment, error)
}

type CandidateService interface {
	ProcessDocument(ctx context.Context, doc *dto.CandidateDocument, sourceMessageID, sourceFilename string) (*models.Candidate, error)
}

// DecisionNotification is the outcome email sent to a candidate.
type DecisionNotification struct {
	EmailAddress   string `json:"emailAddress"`
	Accepted       bool   `json:"accepted"`
	Position       string `json:"position"`
	Reason         string `json:"reason"`
	MeetingDetails string `json:"meetingDetails"`
}

// NotificationService sends the decision email. The boolean result is
// false only for a permission-denied response from the mail transport;
// other transport failures return an error.
type NotificationService interface {
	SendDecision(ctx context.Context, notification DecisionNotification) (bool, error)
}

// EventPublisher emits ingestion events to the message broker.
type EventPublisher interface {
	PublishCandidateIngested(ctx context.Context, event dto.CandidateIngested) error
	Close() error
}
