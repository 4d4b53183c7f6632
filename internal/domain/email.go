package domain

import (
	"context"
	"time"
)

// RenderedEmail is the content produced from one named template. Either body may be empty.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// EmailMessage is a single outgoing email.
type EmailMessage struct {
	To string
	RenderedEmail
}

// Mailer sends emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (RenderedEmail, error)
}

// BookingConfirmationEmailData holds data for the booking confirmation email.
type BookingConfirmationEmailData struct {
	Email     string
	Name      string
	EventName string
	EventDate time.Time
	Location  string
	BookingID int64
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, data *BookingConfirmationEmailData) error
}
