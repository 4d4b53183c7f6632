package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventbooking/internal/domain"
)

// Providers accepted by NewMailer.
const (
	ProviderSES  = "ses"
	ProviderLog  = "log"
	ProviderNoop = "noop"
)

const charset = "UTF-8"

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// sesAPI is the subset of the SES client used by the mailer.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer creates the mailer selected by config.Provider. An empty provider means noop.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case ProviderSES:
		if config.FromAddress == "" {
			return nil, errors.New("ses mailer: from address is required")
		}
		if config.SES.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES, use only in development")
		}
		from := (&mail.Address{Name: config.FromName, Address: config.FromAddress}).String()
		return &sesMailer{client: newSESClient(config.SES), from: from, logger: logger}, nil
	case ProviderLog:
		return &logMailer{logger: logger}, nil
	case ProviderNoop, "":
		return noopMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", config.Provider)
	}
}

func newSESClient(cfg SESConfig) *ses.Client {
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
				MinVersion:         tls.VersionTLS12,
			},
		},
	}
	return ses.NewFromConfig(aws.Config{
		Region:     cfg.Region,
		HTTPClient: httpClient,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	})
}

type sesMailer struct {
	client sesAPI
	from   string
	logger *slog.Logger
}

func (s *sesMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	result, err := s.client.SendEmail(ctx, sendEmailInput(s.from, msg))
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

func sendEmailInput(from string, msg domain.EmailMessage) *ses.SendEmailInput {
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = content(msg.HTML)
	}
	if msg.Text != "" {
		body.Text = content(msg.Text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: content(msg.Subject),
			Body:    body,
		},
	}
}

func content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String(charset)}
}

// logMailer writes every message to the logger instead of delivering it.
type logMailer struct {
	logger *slog.Logger
}

func (l *logMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	l.logger.InfoContext(ctx, "email (log provider)", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, domain.EmailMessage) error { return nil }
