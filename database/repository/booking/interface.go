package bookingRepo

import (
	"context"
	"errors"

	"cafebooking/models"
)

var (
	// ErrNotFound is returned by FindOne when nothing matches.
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicate is returned by Insert when the booking id or an active
	// (date, time) slot is already taken.
	ErrDuplicate = errors.New("duplicate booking")
)

// Filter selects bookings by exact match; empty fields are ignored.
type Filter struct {
	BookingID     string
	Date          string
	Time          string
	Status        string
	ExcludeStatus string
}

// Sort orders FindMany results.
type Sort int

const (
	SortNone Sort = iota
	// SortNewestFirst orders by date then time, both descending.
	SortNewestFirst
	// SortByTime orders by time ascending.
	SortByTime
)

// BookingRepository is the keyed-record gateway over the bookings collection.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	FindOne(ctx context.Context, filter Filter) (*models.Booking, error)
	FindMany(ctx context.Context, filter Filter, sort Sort) ([]models.Booking, error)
}

// Matches applies the filter to a single record.
func (f Filter) Matches(b models.Booking) bool {
	switch {
	case f.BookingID != "" && b.BookingID != f.BookingID:
		return false
	case f.Date != "" && b.Date != f.Date:
		return false
	case f.Time != "" && b.Time != f.Time:
		return false
	case f.Status != "" && b.Status != f.Status:
		return false
	case f.ExcludeStatus != "" && b.Status == f.ExcludeStatus:
		return false
	}
	return true
}
