package notifications

import (
	"bytes"
	"context"
	"testing"

	"github.com/jhillyerd/enmime"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/talentstack/cvintake/config"
	"github.com/talentstack/cvintake/interfaces"
	er "github.com/talentstack/cvintake/internal/errors"
	"github.com/talentstack/cvintake/internal/logger"
)

type fakeTransport struct {
	raw     []byte
	sendErr error
}

func (f *fakeTransport) SendRaw(ctx context.Context, raw []byte) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.raw = raw
	return "sent-1", nil
}

func testLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{DevMode: true})
	appLogger.InitLogger()
	return appLogger
}

func newService(transport *fakeTransport) interfaces.NotificationService {
	return NewNotificationService(transport, &config.GmailConfig{SenderAddress: "hr@example.com"}, testLogger())
}

func acceptance() interfaces.DecisionNotification {
	return interfaces.DecisionNotification{
		EmailAddress:   "jan@example.com",
		Accepted:       true,
		Position:       "Backend Developer",
		MeetingDetails: "2026-09-15 10:00, biuro Warszawa",
	}
}

func TestSendDecision_Accepted(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	service := newService(transport)

	// Act
	sent, err := service.SendDecision(context.Background(), acceptance())

	// Assert
	require.NoError(t, err)
	assert.True(t, sent)

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(transport.raw))
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", envelope.GetHeader("From"))
	assert.Equal(t, "jan@example.com", envelope.GetHeader("To"))
	assert.Contains(t, envelope.GetHeader("Subject"), "zaproszenie")
	assert.Contains(t, envelope.Text, "rozpatrzone pozytywnie")
	assert.Contains(t, envelope.Text, "has been accepted")
	assert.Contains(t, envelope.Text, "2026-09-15 10:00")
}

func TestSendDecision_Rejected(t *testing.T) {
	transport := &fakeTransport{}
	service := newService(transport)

	sent, err := service.SendDecision(context.Background(), interfaces.DecisionNotification{
		EmailAddress: "jan@example.com",
		Accepted:     false,
		Position:     "Backend Developer",
		Reason:       "Brak wymaganego doświadczenia",
	})

	require.NoError(t, err)
	assert.True(t, sent)

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(transport.raw))
	require.NoError(t, err)
	assert.Contains(t, envelope.Text, "nie kontynuować")
	assert.Contains(t, envelope.Text, "not to move forward")
	assert.Contains(t, envelope.Text, "Brak wymaganego doświadczenia")
}

func TestSendDecision_PermissionDeniedIsNotAnError(t *testing.T) {
	transport := &fakeTransport{
		sendErr: &googleapi.Error{Code: 403, Message: "insufficient scope"},
	}
	service := newService(transport)

	sent, err := service.SendDecision(context.Background(), acceptance())

	require.NoError(t, err)
	assert.False(t, sent)
}

func TestSendDecision_OtherTransportFailure(t *testing.T) {
	transport := &fakeTransport{
		sendErr: &googleapi.Error{Code: 500, Message: "backend error"},
	}
	service := newService(transport)

	sent, err := service.SendDecision(context.Background(), acceptance())

	require.Error(t, err)
	assert.False(t, sent)
	assert.True(t, errors.Is(err, er.ErrMailTransport))
}

func TestSendDecision_InvalidRecipient(t *testing.T) {
	transport := &fakeTransport{}
	service := newService(transport)

	sent, err := service.SendDecision(context.Background(), interfaces.DecisionNotification{
		EmailAddress: "not an address",
		Accepted:     true,
	})

	require.Error(t, err)
	assert.False(t, sent)
	assert.True(t, errors.Is(err, ErrInvalidRecipient))
	assert.Nil(t, transport.raw)
}
