package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer sends email through the SendGrid v3 API.
type SendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

func NewSendGridMailer(apiKey, fromEmail, fromName string, logger *zap.Logger) (*SendGridMailer, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, fmt.Errorf("sendgrid: SENDGRID_API_KEY and SENDGRID_FROM_EMAIL are required")
	}
	return &SendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, email Email) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(email.ToName, email.ToAddress)
	message := mail.NewSingleEmail(from, email.Subject, to, email.PlainText, email.HTML)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", email.ToAddress, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	m.logger.Debug("Email sent",
		zap.String("to", email.ToAddress),
		zap.String("subject", email.Subject),
		zap.Int("status", response.StatusCode),
	)
	return nil
}
