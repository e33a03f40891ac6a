package ingestion

import (
	"context"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/talentstack/cvintake/dto"
	"github.com/talentstack/cvintake/interfaces"
	er "github.com/talentstack/cvintake/internal/errors"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
	"github.com/talentstack/cvintake/internal/utils"
)

// ingestionService orchestrates one pass over the inbox: list unhandled
// messages newest first, and for each one fetch, extract, upload,
// convert and persist before moving on.
type ingestionService struct {
	source     interfaces.MessageSource
	ledger     interfaces.MessageRecordRepository
	extractor  interfaces.AttachmentExtractor
	storage    interfaces.BlobStorage
	converter  interfaces.DocumentConverter
	candidates interfaces.CandidateService
	publisher  interfaces.EventPublisher
	log        logger.Logger
}

func NewIngestionService(
	source interfaces.MessageSource,
	ledger interfaces.MessageRecordRepository,
	extractor interfaces.AttachmentExtractor,
	storage interfaces.BlobStorage,
	converter interfaces.DocumentConverter,
	candidates interfaces.CandidateService,
	publisher interfaces.EventPublisher,
	log logger.Logger,
) interfaces.IngestionService {
	return &ingestionService{
		source:     source,
		ledger:     ledger,
		extractor:  extractor,
		storage:    storage,
		converter:  converter,
		candidates: candidates,
		publisher:  publisher,
		log:        log,
	}
}

// RunOnce processes every unhandled inbox message. Failures scoped to
// one message are logged and the run moves on; a source transport
// failure aborts the run since no further identifiers can be listed.
// Returns the number of messages marked handled during this run.
func (s *ingestionService) RunOnce(ctx context.Context) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ingestionService.RunOnce")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	runID := uuid.New().String()
	span.SetTag(tracing.SpanTagRunID, runID)

	total, err := s.source.InboxMessageCount(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}

	summaries, err := s.source.ListInboxMessages(ctx, int64(total+1))
	if err != nil {
		tracing.TraceErr(span, err)
		return 0, err
	}

	s.log.Infof("ingestion run %s: %d inbox messages", runID, len(summaries))

	processed := 0
	for _, summary := range summaries {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		handled, err := s.ledger.IsHandled(ctx, summary.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			return processed, err
		}
		if handled {
			continue
		}

		marked, err := s.processMessage(ctx, summary.ID)
		if marked {
			processed++
		}
		if err != nil {
			if errors.Is(err, er.ErrSourceUnavailable) || errors.Is(err, context.Canceled) {
				tracing.TraceErr(span, err)
				return processed, err
			}
			// Message-scoped failure; the dedup record already exists,
			// so the message is permanently skipped (see MarkHandled
			// ordering below). Log and advance.
			s.log.Errorf("ingestion run %s: message %s failed: %v", runID, summary.ID, err)
		}
	}

	s.log.Infof("ingestion run %s: %d messages processed", runID, processed)
	return processed, nil
}

// processMessage takes one message through fetch, mark-handled,
// extract, upload, convert and persist. The returned bool reports
// whether the dedup record was written, independent of later failures.
func (s *ingestionService) processMessage(ctx context.Context, messageID string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ingestionService.processMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagMessageID(span, messageID)

	msg, err := s.source.GetMessage(ctx, messageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	from := msg.Header("From")

	// The message is marked handled before any attachment work starts.
	// A failure from here on permanently skips the message; this
	// ordering is load-bearing for the at-most-once guarantee and must
	// not be flipped to mark-after-success.
	if err := s.ledger.MarkHandled(ctx, messageID, from); err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	if err := s.processAttachments(ctx, msg, from); err != nil {
		tracing.TraceErr(span, err)
		return true, err
	}

	return true, nil
}

func (s *ingestionService) processAttachments(ctx context.Context, msg *models.EmailMessage, from string) error {
	attachments, err := s.extractor.Extract(ctx, msg.ID, msg.Payload)
	if err != nil {
		return err
	}

	for _, attachment := range attachments {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Archival upload is best-effort; a failed upload skips this
		// attachment's conversion but not the rest of the message.
		if _, err := s.storage.Upload(ctx, attachment.Filename, attachment.MimeType, attachment.Data); err != nil {
			s.log.Warnf("upload of %s from message %s failed, skipping conversion: %v", attachment.Filename, msg.ID, err)
			continue
		}

		doc, err := s.converter.Convert(ctx, attachment)
		if err != nil {
			return err
		}

		candidate, err := s.candidates.ProcessDocument(ctx, doc, msg.ID, attachment.Filename)
		if err != nil {
			return err
		}

		s.log.Infof("ingested candidate %s (%s) from message %s", candidate.ID, candidate.FullName, msg.ID)
		s.publishIngested(ctx, candidate, msg.ID, attachment.Filename, from)
	}

	return nil
}

func (s *ingestionService) publishIngested(ctx context.Context, candidate *models.Candidate, messageID, filename, from string) {
	if s.publisher == nil {
		return
	}
	event := dto.CandidateIngested{
		CandidateID: candidate.ID,
		MessageID:   messageID,
		Filename:    filename,
		FromAddress: utils.ExtractAddress(from),
	}
	if err := s.publisher.PublishCandidateIngested(ctx, event); err != nil {
		s.log.Warnf("publish candidate.ingested for %s failed: %v", candidate.ID, err)
	}
}

// InspectMessage fetches the nth newest message (0 is newest), archives
// its qualifying attachments and marks it handled. Used by the manual
// inbox inspection endpoint.
func (s *ingestionService) InspectMessage(ctx context.Context, index int) (*models.EmailMessage, []models.StoredObject, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ingestionService.InspectMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	msg, err := s.source.NthNewestMessage(ctx, index)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, nil, err
	}

	attachments, err := s.extractor.Extract(ctx, msg.ID, msg.Payload)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, nil, err
	}

	var stored []models.StoredObject
	for _, attachment := range attachments {
		obj, err := s.storage.Upload(ctx, attachment.Filename, attachment.MimeType, attachment.Data)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, nil, err
		}
		stored = append(stored, *obj)
	}

	if err := s.ledger.MarkHandled(ctx, msg.ID, msg.Header("From")); err != nil {
		tracing.TraceErr(span, err)
		return nil, nil, err
	}

	return msg, stored, nil
}
