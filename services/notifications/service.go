package notifications

import (
	"bytes"
	"context"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"

	"github.com/talentstack/cvintake/config"
	"github.com/talentstack/cvintake/interfaces"
	er "github.com/talentstack/cvintake/internal/errors"
	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/tracing"
)

var ErrInvalidRecipient = errors.New("recipient address is not valid")

// notificationService composes the decision email and hands it to the
// mail transport as a raw RFC822 message.
type notificationService struct {
	transport   interfaces.RawMailSender
	fromAddress string
	log         logger.Logger
}

func NewNotificationService(transport interfaces.RawMailSender, cfg *config.GmailConfig, log logger.Logger) interfaces.NotificationService {
	return &notificationService{
		transport:   transport,
		fromAddress: cfg.SenderAddress,
		log:         log,
	}
}

// SendDecision sends the accept/reject email. A permission-denied
// response from the transport is reported as (false, nil); every other
// transport failure is fatal for the send.
func (s *notificationService) SendDecision(ctx context.Context, notification interfaces.DecisionNotification) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "notificationService.SendDecision")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("accepted", notification.Accepted)

	syntax := mailvalidate.ValidateEmailSyntax(notification.EmailAddress)
	if !syntax.IsValid {
		err := errors.Wrap(ErrInvalidRecipient, notification.EmailAddress)
		tracing.TraceErr(span, err)
		return false, err
	}

	raw, err := buildDecisionMessage(s.fromAddress, syntax.CleanEmail, notification)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	messageID, err := s.transport.SendRaw(ctx, raw)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 403 {
			s.log.Errorf("unable to send decision mail to %s: %v", syntax.CleanEmail, err)
			return false, nil
		}
		tracing.TraceErr(span, err)
		return false, errors.Wrapf(er.ErrMailTransport, "send decision mail: %v", err)
	}

	s.log.Infof("decision mail %s sent to %s", messageID, syntax.CleanEmail)
	return true, nil
}

func buildDecisionMessage(from, to string, notification interfaces.DecisionNotification) ([]byte, error) {
	part, err := enmime.Builder().
		From("", from).
		To("", to).
		Subject(decisionSubject(notification.Accepted)).
		Text([]byte(decisionBody(notification))).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "build decision mail")
	}

	var buf bytes.Buffer
	if err := part.Encode(&buf); err != nil {
		return nil, errors.Wrap(err, "encode decision mail")
	}
	return buf.Bytes(), nil
}
