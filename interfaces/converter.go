package interfaces

import (
	"context"

	"github.com/talentstack/cvintake/dto"
	"github.com/talentstack/cvintake/internal/models"
)

// DocumentConverter turns one extracted attachment into a structured
// candidate document via the external parser subprocess.
type DocumentConverter interface {
	Convert(ctx context.Context, attachment models.ExtractedAttachment) (*dto.CandidateDocument, error)
}
