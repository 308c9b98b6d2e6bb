package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cafebooking/models"
)

// MemoryBookingRepo is an in-process BookingRepository used by tests and
// STORE_DRIVER=memory. It enforces the same uniqueness rules as the Mongo indexes.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings []models.Booking
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{}
}

func (r *MemoryBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.BookingID == booking.BookingID {
			return fmt.Errorf("insert booking %s: %w", booking.BookingID, ErrDuplicate)
		}
		if booking.IsActive() && existing.IsActive() &&
			existing.Date == booking.Date && existing.Time == booking.Time {
			return fmt.Errorf("insert booking %s: %w", booking.BookingID, ErrDuplicate)
		}
	}
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *MemoryBookingRepo) FindOne(ctx context.Context, filter Filter) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if filter.Matches(b) {
			found := b
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryBookingRepo) FindMany(ctx context.Context, filter Filter, order Sort) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if filter.Matches(b) {
			out = append(out, b)
		}
	}
	r.mu.RUnlock()

	switch order {
	case SortNewestFirst:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Date != out[j].Date {
				return out[i].Date > out[j].Date
			}
			return out[i].Time > out[j].Time
		})
	case SortByTime:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	}
	return out, nil
}
