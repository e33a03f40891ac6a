package gmail

import (
	"context"
	"encoding/base64"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	gmailv1 "google.golang.org/api/gmail/v1"

	"github.com/talentstack/cvintake/config"
	er "github.com/talentstack/cvintake/internal/errors"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/models"
	"github.com/talentstack/cvintake/internal/tracing"
)

const gmailUser = "me"

// gmailService wraps the Gmail REST API as the pipeline's message
// source. Transport failures surface as ErrSourceUnavailable.
type gmailService struct {
	svc   *gmailv1.Service
	label string
	log   logger.Logger
}

func NewGmailService(svc *gmailv1.Service, cfg *config.GmailConfig, log logger.Logger) *gmailService {
	return &gmailService{
		svc:   svc,
		label: cfg.MailboxLabel,
		log:   log,
	}
}

// InboxMessageCount pages through the whole listing, accumulating page
// sizes until no continuation token is returned.
func (s *gmailService) InboxMessageCount(ctx context.Context) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.InboxMessageCount")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	total := 0
	pageToken := ""
	for {
		call := s.svc.Users.Messages.List(gmailUser).LabelIds(s.label).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			tracing.TraceErr(span, err)
			return 0, errors.Wrapf(er.ErrSourceUnavailable, "list inbox: %v", err)
		}

		total += len(resp.Messages)
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	span.SetTag("inbox-count", total)
	return total, nil
}

// ListInboxMessages issues one bounded listing request, newest first.
func (s *gmailService) ListInboxMessages(ctx context.Context, maxResults int64) ([]models.MessageSummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.ListInboxMessages")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	resp, err := s.svc.Users.Messages.List(gmailUser).
		LabelIds(s.label).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrapf(er.ErrSourceUnavailable, "list inbox: %v", err)
	}

	summaries := make([]models.MessageSummary, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		summaries = append(summaries, models.MessageSummary{ID: m.Id})
	}
	return summaries, nil
}

// NthNewestMessage fetches the message at the given position in the
// newest-first listing. Index 0 is the newest message.
func (s *gmailService) NthNewestMessage(ctx context.Context, index int) (*models.EmailMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.NthNewestMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	summaries, err := s.ListInboxMessages(ctx, int64(index+1))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if len(summaries) <= index {
		err = errors.Wrapf(er.ErrNotEnoughMessages, "requested index %d, inbox has %d", index, len(summaries))
		tracing.TraceErr(span, err)
		return nil, err
	}

	return s.GetMessage(ctx, summaries[index].ID)
}

// GetMessage fetches the full message and converts it into an immutable
// snapshot detached from the remote client.
func (s *gmailService) GetMessage(ctx context.Context, messageID string) (*models.EmailMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.GetMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagMessageID(span, messageID)

	msg, err := s.svc.Users.Messages.Get(gmailUser, messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrapf(er.ErrSourceUnavailable, "get message %s: %v", messageID, err)
	}

	return snapshotMessage(msg), nil
}

// GetAttachment returns the attachment body as shipped by the API,
// base64url-encoded. Decoding is the extractor's concern.
func (s *gmailService) GetAttachment(ctx context.Context, messageID, attachmentID string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.GetAttachment")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagMessageID(span, messageID)

	body, err := s.svc.Users.Messages.Attachments.Get(gmailUser, messageID, attachmentID).
		Context(ctx).
		Do()
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrapf(er.ErrSourceUnavailable, "get attachment %s: %v", attachmentID, err)
	}

	return body.Data, nil
}

// SendRaw submits an RFC822 message, base64url-encoded per the API
// contract. Errors are returned unwrapped so the caller can inspect
// the transport response code.
func (s *gmailService) SendRaw(ctx context.Context, raw []byte) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "gmailService.SendRaw")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	msg := &gmailv1.Message{
		Raw: base64.RawURLEncoding.EncodeToString(raw),
	}

	sent, err := s.svc.Users.Messages.Send(gmailUser, msg).Context(ctx).Do()
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	s.log.Infof("sent message %s", sent.Id)
	return sent.Id, nil
}

func snapshotMessage(msg *gmailv1.Message) *models.EmailMessage {
	snapshot := &models.EmailMessage{
		ID:      msg.Id,
		Snippet: msg.Snippet,
	}
	if msg.Payload == nil {
		return snapshot
	}
	for _, h := range msg.Payload.Headers {
		snapshot.Headers = append(snapshot.Headers, models.MessageHeader{Name: h.Name, Value: h.Value})
	}
	snapshot.Payload = snapshotPart(msg.Payload)
	return snapshot
}

func snapshotPart(part *gmailv1.MessagePart) *models.MessagePart {
	if part == nil {
		return nil
	}
	p := &models.MessagePart{
		Filename: part.Filename,
		MimeType: part.MimeType,
	}
	if part.Body != nil {
		p.AttachmentID = part.Body.AttachmentId
	}
	for _, child := range part.Parts {
		p.Parts = append(p.Parts, snapshotPart(child))
	}
	return p
}
