package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	bookingRepo "cafebooking/database/repository/booking"
	"cafebooking/metrics"
	"cafebooking/models"
	"cafebooking/services/notification"
	"cafebooking/utils"

	"go.uber.org/zap"
)

const (
	defaultServiceLabel   = "General appointment"
	bookingCreatedMessage = "Booking created successfully! Confirmation emails sent."
	defaultNotifyTimeout  = 15 * time.Second
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Notifier  notification.Notifier
	Reminders ReminderScheduler // optional
	Metrics   *metrics.Metrics
	Logger    *zap.Logger

	// Location is the cafe's time zone used for the future-date rule.
	Location *time.Location
	// Now is the clock; time.Now when nil.
	Now           func() time.Time
	NotifyTimeout time.Duration
}

// CheckAvailability lists the free catalog slots for date alongside a redacted
// view of the bookings already holding slots that day.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, date string) (*models.Availability, error) {
	existing, err := s.Repo.FindMany(ctx, bookingRepo.Filter{
		Date:          date,
		ExcludeStatus: models.StatusCancelled,
	}, bookingRepo.SortByTime)
	if err != nil {
		return nil, newUpstreamError("Failed to check availability", err)
	}

	taken := make(map[string]struct{}, len(existing))
	redacted := make([]models.BookedSlot, 0, len(existing))
	for _, b := range existing {
		taken[b.Time] = struct{}{}
		service := b.Service
		if service == "" {
			service = defaultServiceLabel
		}
		redacted = append(redacted, models.BookedSlot{Time: b.Time, Service: service})
	}

	catalog := BusinessSlots()
	available := make([]string, 0, len(catalog))
	for _, slot := range catalog {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}

	return &models.Availability{
		Date:             date,
		TotalSlots:       len(catalog),
		BookedSlots:      len(existing),
		AvailableSlots:   len(available),
		AvailableTimes:   available,
		ExistingBookings: redacted,
	}, nil
}

// CreateBooking validates input, claims the slot and notifies both parties.
// Checks run in a fixed order and stop at the first failure without writing.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.BookingConfirmation, error) {
	if missing := MissingFields(input); len(missing) > 0 {
		return nil, newValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if !utils.IsValidEmail(input.UserEmail) {
		return nil, newValidationError("Invalid email address")
	}
	if !utils.IsValidDate(input.Date) {
		return nil, newValidationError("Invalid date format. Use YYYY-MM-DD")
	}
	slot := utils.NormalizeTime(input.Time)
	if !utils.IsCanonicalTime(slot) {
		return nil, newValidationError("Invalid time format. Use HH:MM (24-hour), e.g. 14:00")
	}
	if !utils.IsFutureDate(input.Date, input.Time, s.now(), s.location()) {
		return nil, newValidationError("Cannot book appointments in the past")
	}

	_, err := s.Repo.FindOne(ctx, bookingRepo.Filter{
		Date:          input.Date,
		Time:          slot,
		ExcludeStatus: models.StatusCancelled,
	})
	switch {
	case err == nil:
		return nil, slotTaken(slot, input.Date)
	case !errors.Is(err, bookingRepo.ErrNotFound):
		return nil, newUpstreamError("Failed to create booking", err)
	}

	now := s.now()
	record := models.Booking{
		BookingID: utils.GenerateBookingID(),
		UserName:  input.UserName,
		UserEmail: input.UserEmail,
		Phone:     input.Phone,
		Date:      input.Date,
		Time:      slot,
		Service:   input.Service,
		Notes:     input.Notes,
		Status:    models.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Insert(ctx, &record); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicate) {
			return nil, slotTaken(slot, input.Date)
		}
		return nil, newUpstreamError("Failed to create booking", err)
	}
	s.Metrics.BookingCreated("assistant")
	s.logger().Info("Booking created",
		zap.String("bookingId", record.BookingID),
		zap.String("date", record.Date),
		zap.String("time", record.Time),
	)

	s.notify(ctx, record)
	s.scheduleReminder(ctx, record)

	return &models.BookingConfirmation{
		BookingID: record.BookingID,
		Message:   bookingCreatedMessage,
		Booking: models.BookingSummary{
			BookingID: record.BookingID,
			UserName:  record.UserName,
			Date:      record.Date,
			Time:      record.Time,
			Service:   record.Service,
		},
	}, nil
}

// GetBookingDetails returns the full record, contact details included.
func (s *DefaultBookingService) GetBookingDetails(ctx context.Context, bookingID string) (*models.BookingDetails, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, newValidationError("Booking ID is required")
	}

	b, err := s.Repo.FindOne(ctx, bookingRepo.Filter{BookingID: bookingID})
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, newNotFoundError("Booking not found")
	}
	if err != nil {
		return nil, newUpstreamError("Failed to retrieve booking", err)
	}

	return &models.BookingDetails{
		BookingID: b.BookingID,
		UserName:  b.UserName,
		UserEmail: b.UserEmail,
		Phone:     b.Phone,
		Date:      b.Date,
		Time:      b.Time,
		Service:   b.Service,
		Notes:     b.Notes,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}, nil
}

// ListBookings returns bookings matching the optional filters, newest first.
func (s *DefaultBookingService) ListBookings(ctx context.Context, query models.BookingListQuery) ([]models.Booking, error) {
	bookings, err := s.Repo.FindMany(ctx, bookingRepo.Filter{
		Date:   query.Date,
		Status: query.Status,
	}, bookingRepo.SortNewestFirst)
	if err != nil {
		return nil, newUpstreamError("Failed to list bookings", err)
	}
	return bookings, nil
}

// CreateManualBooking stores a form submission as-is. Only presence of the
// required fields is checked; the caller owns the rest of the validation.
func (s *DefaultBookingService) CreateManualBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error) {
	if missing := MissingFields(input); len(missing) > 0 {
		return nil, newValidationError("Missing required fields")
	}

	now := s.now()
	record := models.Booking{
		BookingID: utils.GenerateBookingID(),
		UserName:  input.UserName,
		UserEmail: input.UserEmail,
		Phone:     input.Phone,
		Date:      input.Date,
		Time:      input.Time,
		Service:   input.Service,
		Notes:     input.Notes,
		Status:    models.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Insert(ctx, &record); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicate) {
			return nil, slotTaken(record.Time, record.Date)
		}
		return nil, newUpstreamError("Failed to create booking", err)
	}
	s.Metrics.BookingCreated("form")
	return &record, nil
}

// MissingFields names the required createBooking fields that are blank.
func MissingFields(input models.CreateBookingInput) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"userName", input.UserName},
		{"userEmail", input.UserEmail},
		{"date", input.Date},
		{"time", input.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func slotTaken(slot, date string) error {
	return newConflictError(fmt.Sprintf("Time slot %s on %s is already booked", slot, date))
}

// notify sends the customer and operator notifications concurrently and waits
// for both. Failures are only logged; the booking already exists.
func (s *DefaultBookingService) notify(ctx context.Context, record models.Booking) {
	if s.Notifier == nil {
		return
	}
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = s.Notifier.NotifyCustomer(nctx, record)
	}()
	go func() {
		defer wg.Done()
		errs[1] = s.Notifier.NotifyOperator(nctx, record)
	}()
	wg.Wait()

	for i, target := range []string{"customer", "operator"} {
		if errs[i] != nil {
			s.logger().Warn("Booking notification failed",
				zap.String("bookingId", record.BookingID),
				zap.String("target", target),
				zap.Error(errs[i]),
			)
		}
	}
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, record models.Booking) {
	if s.Reminders == nil {
		return
	}
	startsAt, err := time.ParseInLocation("2006-01-02 15:04", record.Date+" "+record.Time, s.location())
	if err != nil {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, record, startsAt); err != nil {
		s.logger().Warn("Failed to schedule booking reminder",
			zap.String("bookingId", record.BookingID),
			zap.Error(err),
		)
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
