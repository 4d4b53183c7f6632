package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent domain.EmailMessage
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	m.sent = msg
	return m.err
}

type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (r *fakeRenderer) Render(name string, data any) (domain.RenderedEmail, error) {
	r.lastTemplate = name
	if r.err != nil {
		return domain.RenderedEmail{}, r.err
	}
	return domain.RenderedEmail{Subject: "subject", HTML: "<p>html</p>", Text: "text"}, nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	ctx := context.Background()
	data := &domain.BookingConfirmationEmailData{
		Email:     "alice@example.com",
		EventName: "Sample Event",
		EventDate: time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC),
		BookingID: 3,
	}

	t.Run("renders and sends", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		svc := NewEmailService(mailer, renderer, testLogger)

		require.NoError(t, svc.SendBookingConfirmation(ctx, data))
		assert.Equal(t, "booking_confirmation", renderer.lastTemplate)
		assert.Equal(t, "alice@example.com", mailer.sent.To)
		assert.Equal(t, "subject", mailer.sent.Subject)
		assert.Equal(t, "<p>html</p>", mailer.sent.HTML)
		assert.Equal(t, "text", mailer.sent.Text)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, testLogger)
		require.Error(t, svc.SendBookingConfirmation(ctx, nil))
	})

	t.Run("render error", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{err: errors.New("bad template")}, testLogger)
		require.Error(t, svc.SendBookingConfirmation(ctx, data))
		assert.Empty(t, mailer.sent.To)
	})

	t.Run("send error", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("throttled")}, &fakeRenderer{}, testLogger)
		require.Error(t, svc.SendBookingConfirmation(ctx, data))
	})
}
