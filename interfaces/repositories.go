package interfaces

import (
	"context"

	"github.com/talentstack/cvintake/internal/models"
)

// MessageRecordRepository is the durable dedup ledger keyed by message
// id. MarkHandled is an upsert with no compensating rollback.
type MessageRecordRepository interface {
	IsHandled(ctx context.Context, messageID string) (bool, error)
	MarkHandled(ctx context.Context, messageID, emailAddress string) error
	GetByMessageID(ctx context.Context, messageID string) (*models.MessageRecord, error)
}

type CandidateRepository interface {
	Save(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
	ListByScore(ctx context.Context) ([]*models.Candidate, error)
}
