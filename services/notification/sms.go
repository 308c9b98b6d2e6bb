package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// TwilioSMS sends text messages through the Twilio REST API.
type TwilioSMS struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

func NewTwilioSMS(accountSID, authToken, from string, logger *zap.Logger) (*TwilioSMS, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("twilio: account sid, auth token and from number are required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSID,
		Password:   authToken,
		AccountSid: accountSID,
	})
	return &TwilioSMS{client: client, from: from, logger: logger}, nil
}

// SendSMS ignores ctx cancellation once the request is issued; the Twilio client has no context API.
func (t *TwilioSMS) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(to, "+") {
		t.logger.Warn("Destination number is not E.164, SMS may fail", zap.String("to", to))
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}
	if resp.Sid != nil {
		t.logger.Debug("SMS sent", zap.String("sid", *resp.Sid))
	}
	return nil
}
