package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cafebooking/config"
	bookingRepo "cafebooking/database/repository/booking"
	"cafebooking/models"
	"cafebooking/services/notification"
	"cafebooking/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderRedisOpt is the asynq connection shared by the worker and the scheduler client.
func ReminderRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the reminder worker in the background. The returned
// server must be shut down by the caller.
func InitReminderWorker(repo bookingRepo.BookingRepository, notifier notification.ReminderNotifier, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		ReminderRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(repo, notifier, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Error("Reminder worker giving up; reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleReminderTask(repo bookingRepo.BookingRepository, notifier notification.ReminderNotifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("decode reminder payload: %w: %w", err, asynq.SkipRetry)
		}

		booking, err := repo.FindOne(ctx, bookingRepo.Filter{BookingID: p.BookingID})
		if errors.Is(err, bookingRepo.ErrNotFound) {
			logger.Warn("Reminder for unknown booking dropped", zap.String("bookingId", p.BookingID))
			return nil
		}
		if err != nil {
			return err
		}
		if !booking.IsActive() {
			logger.Info("Reminder skipped for cancelled booking", zap.String("bookingId", p.BookingID))
			return nil
		}

		if err := notifier.NotifyReminder(ctx, *booking); err != nil {
			logger.Warn("Failed to send reminder", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		logger.Info("Reminder sent", zap.String("bookingId", p.BookingID))
		return nil
	}
}
