package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cafebooking/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "reminder:booking"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// Enqueuer is the subset of *asynq.Client used for scheduling.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler queues a reminder LeadTime before each appointment.
type AsynqReminderScheduler struct {
	Client   Enqueuer
	LeadTime time.Duration
	Now      func() time.Time
}

// ScheduleReminder is a no-op when the reminder moment has already passed.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking models.Booking, startsAt time.Time) error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	fireAt := startsAt.Add(-s.LeadTime)
	if !fireAt.After(now) {
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID: booking.BookingID,
		Date:      booking.Date,
		Time:      booking.Time,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", booking.BookingID, err)
	}
	return nil
}
