package booking

import (
	"context"
	"time"

	"cafebooking/models"
)

// BookingService exposes the operations behind the assistant functions and the
// plain HTTP booking endpoints.
type BookingService interface {
	CheckAvailability(ctx context.Context, date string) (*models.Availability, error)
	CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.BookingConfirmation, error)
	GetBookingDetails(ctx context.Context, bookingID string) (*models.BookingDetails, error)
	ListBookings(ctx context.Context, query models.BookingListQuery) ([]models.Booking, error)
	CreateManualBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error)
}

// ReminderScheduler queues a reminder ahead of an appointment starting at startsAt.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking models.Booking, startsAt time.Time) error
}
