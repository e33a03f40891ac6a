package storage

import (
	"bytes"
	"context"

	"github.com/opentracing/opentracing-go"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
)

// driveBlobStorage archives attachments in Google Drive and returns the
// created file's descriptor including its web view link.
type driveBlobStorage struct {
	svc *drivev3.Service
	log logger.Logger
}

func NewDriveBlobStorage(svc *drivev3.Service, log logger.Logger) interfaces.BlobStorage {
	return &driveBlobStorage{
		svc: svc,
		log: log,
	}
}

func (s *driveBlobStorage) Upload(ctx context.Context, name, mimeType string, data []byte) (*models.StoredObject, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "driveBlobStorage.Upload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	metadata := &drivev3.File{Name: name}

	uploaded, err := s.svc.Files.Create(metadata).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id, name, mimeType, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	s.log.Infof("uploaded %s to drive as %s (%s)", uploaded.Name, uploaded.Id, uploaded.WebViewLink)

	return &models.StoredObject{
		ID:          uploaded.Id,
		Name:        uploaded.Name,
		MimeType:    uploaded.MimeType,
		WebViewLink: uploaded.WebViewLink,
	}, nil
}
