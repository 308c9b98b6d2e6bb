package notification

import (
	"context"
	"errors"
	"fmt"

	"cafebooking/metrics"
	"cafebooking/models"

	"go.uber.org/zap"
)

// Notifier tells the customer and the cafe about a new booking.
type Notifier interface {
	NotifyCustomer(ctx context.Context, booking models.Booking) error
	NotifyOperator(ctx context.Context, booking models.Booking) error
}

// ReminderNotifier sends the upcoming-appointment reminder.
type ReminderNotifier interface {
	NotifyReminder(ctx context.Context, booking models.Booking) error
}

// Mailer delivers one rendered email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SMSSender delivers a text message to an E.164 number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// PushSender publishes a push notification to an FCM topic.
type PushSender interface {
	SendTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}

// Email is a rendered message ready for a Mailer.
type Email struct {
	ToName    string
	ToAddress string
	Subject   string
	PlainText string
	HTML      string
}

// DefaultNotificationService fans a booking out to every configured channel.
// Nil channels are skipped.
type DefaultNotificationService struct {
	Mailer        Mailer
	SMS           SMSSender
	Push          PushSender
	OperatorEmail string
	OperatorTopic string
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// NotifyCustomer emails the booking confirmation and texts it when a phone is on file.
func (s *DefaultNotificationService) NotifyCustomer(ctx context.Context, booking models.Booking) error {
	var errs []error

	if s.Mailer != nil {
		email, err := RenderCustomerConfirmation(booking)
		if err == nil {
			err = s.Mailer.Send(ctx, email)
		}
		s.Metrics.NotificationSent("customer_email", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("customer email: %w", err))
		}
	}

	if s.SMS != nil && booking.Phone != "" {
		err := s.SMS.SendSMS(ctx, booking.Phone, confirmationSMS(booking))
		s.Metrics.NotificationSent("customer_sms", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("customer sms: %w", err))
		}
	}

	return errors.Join(errs...)
}

// NotifyOperator emails the cafe and pushes to the operator topic.
func (s *DefaultNotificationService) NotifyOperator(ctx context.Context, booking models.Booking) error {
	var errs []error

	if s.Mailer != nil && s.OperatorEmail != "" {
		email, err := RenderOperatorAlert(booking, s.OperatorEmail)
		if err == nil {
			err = s.Mailer.Send(ctx, email)
		}
		s.Metrics.NotificationSent("operator_email", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("operator email: %w", err))
		}
	}

	if s.Push != nil && s.OperatorTopic != "" {
		title := "New booking"
		body := fmt.Sprintf("%s booked %s at %s", booking.UserName, booking.Date, booking.Time)
		data := map[string]string{
			"bookingId": booking.BookingID,
			"date":      booking.Date,
			"time":      booking.Time,
		}
		err := s.Push.SendTopic(ctx, s.OperatorTopic, title, body, data)
		s.Metrics.NotificationSent("operator_push", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("operator push: %w", err))
		}
	}

	return errors.Join(errs...)
}

// NotifyReminder reminds the customer of an upcoming appointment.
func (s *DefaultNotificationService) NotifyReminder(ctx context.Context, booking models.Booking) error {
	var errs []error

	if s.Mailer != nil {
		email, err := RenderReminder(booking)
		if err == nil {
			err = s.Mailer.Send(ctx, email)
		}
		s.Metrics.NotificationSent("reminder_email", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("reminder email: %w", err))
		}
	}

	if s.SMS != nil && booking.Phone != "" {
		err := s.SMS.SendSMS(ctx, booking.Phone, reminderSMS(booking))
		s.Metrics.NotificationSent("reminder_sms", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("reminder sms: %w", err))
		}
	}

	return errors.Join(errs...)
}

func confirmationSMS(b models.Booking) string {
	return fmt.Sprintf("Booking %s confirmed for %s at %s. See you soon!", b.BookingID, b.Date, b.Time)
}

func reminderSMS(b models.Booking) string {
	return fmt.Sprintf("Reminder: your appointment %s is on %s at %s.", b.BookingID, b.Date, b.Time)
}
