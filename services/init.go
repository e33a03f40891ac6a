package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/talentstack/cvintake/config"
	"github.com/talentstack/cvintake/interfaces"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/repository"
	"github.com/talentstack/cvintake/services/candidate"
	"github.com/talentstack/cvintake/services/converter"
	"github.com/talentstack/cvintake/services/events"
	"github.com/talentstack/cvintake/services/gmail"
	"github.com/talentstack/cvintake/services/ingestion"
	"github.com/talentstack/cvintake/services/notifications"
	"github.com/talentstack/cvintake/services/storage"
)

type Services struct {
	MessageSource       interfaces.MessageSource
	BlobStorage         interfaces.BlobStorage
	Converter           interfaces.DocumentConverter
	Extractor           interfaces.AttachmentExtractor
	CandidateService    interfaces.CandidateService
	IngestionService    interfaces.IngestionService
	NotificationService interfaces.NotificationService
	EventPublisher      interfaces.EventPublisher
}

func InitServices(ctx context.Context, cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	gmailClient, driveClient, err := gmail.NewClients(ctx, cfg.GmailConfig)
	if err != nil {
		return nil, errors.Wrap(err, "init google clients")
	}
	source := gmail.NewGmailService(gmailClient, cfg.GmailConfig, log)

	var blobStorage interfaces.BlobStorage
	switch cfg.StorageConfig.Backend {
	case "s3":
		blobStorage = storage.NewS3BlobStorage(
			cfg.StorageConfig.AWSRegion,
			cfg.StorageConfig.AWSAccessKeyID,
			cfg.StorageConfig.AWSAccessKeySecret,
			cfg.StorageConfig.AttachmentBucket,
		)
	case "drive":
		blobStorage = storage.NewDriveBlobStorage(driveClient, log)
	default:
		return nil, errors.Errorf("unknown storage backend %q", cfg.StorageConfig.Backend)
	}

	var publisher interfaces.EventPublisher
	if cfg.AppConfig.RabbitMQURL != "" {
		rabbitPublisher, err := events.NewRabbitMQPublisher(cfg.AppConfig.RabbitMQURL, log, nil)
		if err != nil {
			return nil, errors.Wrap(err, "init rabbitmq publisher")
		}
		publisher = rabbitPublisher
	} else {
		log.Warn("RABBITMQ_URL not set, candidate events will not be published")
	}

	extractor := ingestion.NewAttachmentExtractor(source, cfg.IngestionConfig.AcceptedExtensions, log)
	candidateService := candidate.NewCandidateService(repos.CandidateRepository, log)
	converterService := converter.NewConverterService(cfg.ConverterConfig, log)

	return &Services{
		MessageSource:       source,
		BlobStorage:         blobStorage,
		Converter:           converterService,
		Extractor:           extractor,
		CandidateService:    candidateService,
		IngestionService: ingestion.NewIngestionService(
			source,
			repos.MessageRecordRepository,
			extractor,
			blobStorage,
			converterService,
			candidateService,
			publisher,
			log,
		),
		NotificationService: notifications.NewNotificationService(source, cfg.GmailConfig, log),
		EventPublisher:      publisher,
	}, nil
}
