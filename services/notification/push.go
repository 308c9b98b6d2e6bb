package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// FCMPush publishes operator alerts to a Firebase Cloud Messaging topic.
type FCMPush struct {
	client *messaging.Client
}

func NewFCMPush(client *messaging.Client) *FCMPush {
	return &FCMPush{client: client}
}

func (p *FCMPush) SendTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := p.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send to topic %s: %w", topic, err)
	}
	return nil
}
