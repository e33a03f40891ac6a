package interfaces

import (
	"context"

	"github.com/talentstack/cvintake/internal/models"
)

// BlobStorage archives decoded attachments and returns the stored
// object's descriptor.
type BlobStorage interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (*models.StoredObject, error)
}
