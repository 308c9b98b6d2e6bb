package booking

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	bookingRepo "cafebooking/database/repository/booking"
	"cafebooking/models"
)

type fakeNotifier struct {
	mu         sync.Mutex
	customers  []string
	operators  []string
	customerFn func(models.Booking) error
}

func (f *fakeNotifier) NotifyCustomer(_ context.Context, b models.Booking) error {
	f.mu.Lock()
	f.customers = append(f.customers, b.BookingID)
	f.mu.Unlock()
	if f.customerFn == nil {
		return nil
	}
	return f.customerFn(b)
}

func (f *fakeNotifier) NotifyOperator(_ context.Context, b models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.operators = append(f.operators, b.BookingID)
	return nil
}

type fakeReminders struct {
	startsAt []time.Time
}

func (f *fakeReminders) ScheduleReminder(_ context.Context, _ models.Booking, startsAt time.Time) error {
	f.startsAt = append(f.startsAt, startsAt)
	return nil
}

// countingRepo wraps the memory repo and records writes.
type countingRepo struct {
	*bookingRepo.MemoryBookingRepo
	inserts  int
	findMany func() error
}

func (r *countingRepo) Insert(ctx context.Context, b *models.Booking) error {
	r.inserts++
	return r.MemoryBookingRepo.Insert(ctx, b)
}

func (r *countingRepo) FindMany(ctx context.Context, f bookingRepo.Filter, s bookingRepo.Sort) ([]models.Booking, error) {
	if r.findMany != nil {
		if err := r.findMany(); err != nil {
			return nil, err
		}
	}
	return r.MemoryBookingRepo.FindMany(ctx, f, s)
}

var fixedNow = time.Date(2029, 12, 31, 10, 0, 0, 0, time.UTC)

func newTestService() (*DefaultBookingService, *countingRepo, *fakeNotifier) {
	repo := &countingRepo{MemoryBookingRepo: bookingRepo.NewMemoryBookingRepo()}
	notifier := &fakeNotifier{}
	svc := &DefaultBookingService{
		Repo:     repo,
		Notifier: notifier,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}
	return svc, repo, notifier
}

func validInput() models.CreateBookingInput {
	return models.CreateBookingInput{
		UserName:  "Ada",
		UserEmail: "ada@example.com",
		Date:      "2030-01-01",
		Time:      "2 PM",
		Service:   "Tasting",
	}
}

func TestBusinessSlots(t *testing.T) {
	slots := BusinessSlots()
	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}
	if slots[0] != "09:00" || slots[1] != "09:30" || slots[16] != "17:00" {
		t.Fatalf("unexpected catalog bounds: %v", slots)
	}
}

func TestCreateBookingRoundTrip(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	conf, err := svc.CreateBooking(ctx, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(conf.BookingID, "BK-") {
		t.Fatalf("unexpected booking id %q", conf.BookingID)
	}
	if conf.Booking.Time != "14:00" {
		t.Fatalf("expected normalized time 14:00, got %s", conf.Booking.Time)
	}

	details, err := svc.GetBookingDetails(ctx, conf.BookingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Date != "2030-01-01" || details.Time != "14:00" || details.Status != models.StatusConfirmed {
		t.Fatalf("unexpected details %+v", details)
	}
	if details.UserEmail != "ada@example.com" {
		t.Fatalf("expected email in details, got %q", details.UserEmail)
	}

	if len(notifier.customers) != 1 || len(notifier.operators) != 1 {
		t.Fatalf("expected both notifications, got %d customer and %d operator", len(notifier.customers), len(notifier.operators))
	}
}

func TestCreateBookingConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first := validInput()
	first.Time = "14:00"
	if _, err := svc.CreateBooking(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := validInput()
	second.UserName = "Grace"
	second.UserEmail = "grace@example.com"
	second.Time = "14:00"
	_, err := svc.CreateBooking(ctx, second)
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	msg := MessageOf(err)
	if !strings.Contains(msg, "14:00") || !strings.Contains(msg, "2030-01-01") {
		t.Fatalf("conflict message should name slot and date, got %q", msg)
	}

	active, _ := repo.FindMany(ctx, bookingRepo.Filter{Date: "2030-01-01", Time: "14:00", ExcludeStatus: models.StatusCancelled}, bookingRepo.SortNone)
	if len(active) != 1 {
		t.Fatalf("expected exactly one active booking, got %d", len(active))
	}
}

func TestCreateBookingValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.CreateBookingInput)
		message string
	}{
		{"missing fields", func(in *models.CreateBookingInput) { *in = models.CreateBookingInput{UserName: "A"} }, "Missing required fields"},
		{"bad email", func(in *models.CreateBookingInput) { in.UserEmail = "nope" }, "Invalid email address"},
		{"bad date", func(in *models.CreateBookingInput) { in.Date = "2030-02-30" }, "Invalid date format"},
		{"bad time", func(in *models.CreateBookingInput) { in.Time = "noon" }, "Invalid time format"},
		{"past date", func(in *models.CreateBookingInput) { in.Date = "2029-12-30" }, "Cannot book appointments in the past"},
		{"earlier today", func(in *models.CreateBookingInput) { in.Date = "2029-12-31"; in.Time = "9:30" }, "Cannot book appointments in the past"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, notifier := newTestService()
			in := validInput()
			tc.mutate(&in)

			_, err := svc.CreateBooking(context.Background(), in)
			if KindOf(err) != KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(MessageOf(err), tc.message) {
				t.Fatalf("expected message containing %q, got %q", tc.message, MessageOf(err))
			}
			if repo.inserts != 0 {
				t.Fatalf("expected no store write, got %d", repo.inserts)
			}
			if len(notifier.customers) != 0 {
				t.Fatalf("expected no notifications")
			}
		})
	}
}

func TestCreateBookingSucceedsWhenNotificationFails(t *testing.T) {
	svc, _, notifier := newTestService()
	notifier.customerFn = func(models.Booking) error { return errors.New("mail down") }

	if _, err := svc.CreateBooking(context.Background(), validInput()); err != nil {
		t.Fatalf("notification failure must not fail booking, got %v", err)
	}
}

func TestCreateBookingSchedulesReminder(t *testing.T) {
	svc, _, _ := newTestService()
	reminders := &fakeReminders{}
	svc.Reminders = reminders

	if _, err := svc.CreateBooking(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2030, 1, 1, 14, 0, 0, 0, time.UTC)
	if len(reminders.startsAt) != 1 || !reminders.startsAt[0].Equal(want) {
		t.Fatalf("expected reminder for %v, got %v", want, reminders.startsAt)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	for _, b := range []models.Booking{
		{BookingID: "BK-1", Date: "2030-01-01", Time: "10:00", Status: models.StatusConfirmed, UserEmail: "x@y.z"},
		{BookingID: "BK-2", Date: "2030-01-01", Time: "11:30", Status: models.StatusCancelled},
		{BookingID: "BK-3", Date: "2030-01-01", Time: "09:00", Status: models.StatusPending, Service: "Brunch"},
		{BookingID: "BK-4", Date: "2030-01-02", Time: "09:00", Status: models.StatusConfirmed},
	} {
		b := b
		if err := repo.MemoryBookingRepo.Insert(ctx, &b); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	first, err := svc.CheckAvailability(ctx, "2030-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalSlots != 17 || first.BookedSlots != 2 || first.AvailableSlots != 15 {
		t.Fatalf("unexpected counts %+v", first)
	}
	for _, slot := range first.AvailableTimes {
		if slot == "09:00" || slot == "10:00" {
			t.Fatalf("booked slot %s listed as available", slot)
		}
	}
	wantExisting := []models.BookedSlot{{Time: "09:00", Service: "Brunch"}, {Time: "10:00", Service: "General appointment"}}
	if !reflect.DeepEqual(first.ExistingBookings, wantExisting) {
		t.Fatalf("expected %+v, got %+v", wantExisting, first.ExistingBookings)
	}

	second, _ := svc.CheckAvailability(ctx, "2030-01-01")
	if !reflect.DeepEqual(first.AvailableTimes, second.AvailableTimes) {
		t.Fatalf("availability is not idempotent: %v vs %v", first.AvailableTimes, second.AvailableTimes)
	}
}

func TestCheckAvailabilityStoreFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.findMany = func() error { return errors.New("connection refused") }

	_, err := svc.CheckAvailability(context.Background(), "2030-01-01")
	if KindOf(err) != KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGetBookingDetailsNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetBookingDetails(context.Background(), "BK-NOPE")
	if KindOf(err) != KindNotFound || MessageOf(err) != "Booking not found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateManualBookingSkipsValidation(t *testing.T) {
	svc, _, notifier := newTestService()
	in := models.CreateBookingInput{UserName: "Walk-in", UserEmail: "not-an-email", Date: "someday", Time: "noon"}

	got, err := svc.CreateManualBooking(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Time != "noon" || got.Status != models.StatusConfirmed {
		t.Fatalf("expected record stored as given, got %+v", got)
	}
	if len(notifier.customers) != 0 {
		t.Fatalf("manual bookings do not notify")
	}

	list, err := svc.ListBookings(context.Background(), models.BookingListQuery{Status: models.StatusConfirmed})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one listed booking, got %d (%v)", len(list), err)
	}
}

// Form bookings keep their raw time, so they only collide with the exact same string.
func TestManualBookingKeepsRawTimeOutsideSlotCatalog(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateManualBooking(ctx, models.CreateBookingInput{
		UserName: "Walk-in", UserEmail: "w@example.com", Date: "2030-01-15", Time: "2 PM",
	}); err != nil {
		t.Fatalf("manual booking: %v", err)
	}

	avail, err := svc.CheckAvailability(ctx, "2030-01-15")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if avail.BookedSlots != 1 || avail.AvailableSlots != avail.TotalSlots {
		t.Fatalf("raw form time must not occupy a catalog slot: %+v", avail)
	}

	if _, err := svc.CreateManualBooking(ctx, models.CreateBookingInput{
		UserName: "Other", UserEmail: "o@example.com", Date: "2030-01-15", Time: "2 PM",
	}); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict for the identical raw slot, got %v", err)
	}
}
