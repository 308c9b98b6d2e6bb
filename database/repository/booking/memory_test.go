package bookingRepo

import (
	"context"
	"errors"
	"testing"

	"cafebooking/models"
)

func seed(t *testing.T, repo *MemoryBookingRepo, bookings ...models.Booking) {
	t.Helper()
	for i := range bookings {
		if err := repo.Insert(context.Background(), &bookings[i]); err != nil {
			t.Fatalf("seed insert %s: %v", bookings[i].BookingID, err)
		}
	}
}

func TestMemoryInsertRejectsActiveSlotCollision(t *testing.T) {
	repo := NewMemoryBookingRepo()
	seed(t, repo, models.Booking{BookingID: "BK-1", Date: "2030-01-01", Time: "14:00", Status: models.StatusConfirmed})

	err := repo.Insert(context.Background(), &models.Booking{BookingID: "BK-2", Date: "2030-01-01", Time: "14:00", Status: models.StatusConfirmed})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	err = repo.Insert(context.Background(), &models.Booking{BookingID: "BK-1", Date: "2030-01-02", Time: "09:00", Status: models.StatusConfirmed})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for reused id, got %v", err)
	}
}

func TestMemoryInsertAllowsSlotReuseAfterCancellation(t *testing.T) {
	repo := NewMemoryBookingRepo()
	seed(t, repo, models.Booking{BookingID: "BK-1", Date: "2030-01-01", Time: "14:00", Status: models.StatusCancelled})

	if err := repo.Insert(context.Background(), &models.Booking{BookingID: "BK-2", Date: "2030-01-01", Time: "14:00", Status: models.StatusConfirmed}); err != nil {
		t.Fatalf("expected insert over cancelled slot to succeed, got %v", err)
	}
}

func TestMemoryFindOne(t *testing.T) {
	repo := NewMemoryBookingRepo()
	seed(t, repo,
		models.Booking{BookingID: "BK-1", Date: "2030-01-01", Time: "14:00", Status: models.StatusCancelled},
		models.Booking{BookingID: "BK-2", Date: "2030-01-01", Time: "15:00", Status: models.StatusConfirmed},
	)

	if _, err := repo.FindOne(context.Background(), Filter{Date: "2030-01-01", Time: "14:00", ExcludeStatus: models.StatusCancelled}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected cancelled booking to be excluded, got %v", err)
	}

	got, err := repo.FindOne(context.Background(), Filter{BookingID: "BK-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Time != "15:00" {
		t.Fatalf("expected 15:00, got %s", got.Time)
	}
}

func TestMemoryFindManySortsNewestFirst(t *testing.T) {
	repo := NewMemoryBookingRepo()
	seed(t, repo,
		models.Booking{BookingID: "BK-1", Date: "2030-01-01", Time: "09:00", Status: models.StatusConfirmed},
		models.Booking{BookingID: "BK-2", Date: "2030-01-02", Time: "10:00", Status: models.StatusConfirmed},
		models.Booking{BookingID: "BK-3", Date: "2030-01-01", Time: "16:30", Status: models.StatusPending},
	)

	got, err := repo.FindMany(context.Background(), Filter{}, SortNewestFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"BK-2", "BK-3", "BK-1"}
	for i, id := range want {
		if got[i].BookingID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].BookingID)
		}
	}

	pending, _ := repo.FindMany(context.Background(), Filter{Status: models.StatusPending}, SortNone)
	if len(pending) != 1 || pending[0].BookingID != "BK-3" {
		t.Fatalf("expected only BK-3 for status filter, got %+v", pending)
	}
}
