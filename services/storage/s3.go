package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"

	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
	"github.com/talentstack/cvintake/internal/utils"
)

// s3BlobStorage archives attachments in an S3 bucket. Object keys are
// nanoid-prefixed to keep identically named CVs apart.
type s3BlobStorage struct {
	uploader   *s3manager.Uploader
	bucketName string
}

func NewS3BlobStorage(awsRegion, accessKeyID, accessKeySecret, bucketName string) interfaces.BlobStorage {
	s := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(awsRegion),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
	}))

	return &s3BlobStorage{
		uploader:   s3manager.NewUploader(s),
		bucketName: bucketName,
	}
}

func (s *s3BlobStorage) Upload(ctx context.Context, name, mimeType string, data []byte) (*models.StoredObject, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "s3BlobStorage.Upload")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	key := utils.GenerateNanoIDWithPrefix("file", 12) + "/" + name

	result, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &models.StoredObject{
		ID:          key,
		Name:        name,
		MimeType:    mimeType,
		WebViewLink: result.Location,
	}, nil
}
