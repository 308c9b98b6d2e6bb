package utils

import (
	"strings"
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"jane.doe@cafe.example.com", true},
		{"no-at-sign.com", false},
		{"missing@dot", false},
		{"two words@cafe.com", false},
		{"@cafe.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidEmail(tc.in); got != tc.want {
			t.Fatalf("IsValidEmail(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"2025-12-15", true},
		{"2024-02-29", true},
		{"2025-13-01", false},
		{"2025-02-30", false},
		{"2025-2-3", false},
		{"15/12/2025", false},
		{"2025-12-15T10:00", false},
	}
	for _, tc := range cases {
		if got := IsValidDate(tc.in); got != tc.want {
			t.Fatalf("IsValidDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2 PM", "14:00"},
		{"2:30 PM", "14:30"},
		{"2:30pm", "14:30"},
		{"12 AM", "00:00"},
		{"12 PM", "12:00"},
		{"09:00", "09:00"},
		{"9:00", "09:00"},
		{" 17:30 ", "17:30"},
		{"noon", "noon"},
		{"25:00", "25:00"},
		{"13 PM", "13 PM"},
	}
	for _, tc := range cases {
		if got := NormalizeTime(tc.in); got != tc.want {
			t.Fatalf("NormalizeTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsFutureDate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, loc)

	cases := []struct {
		name  string
		date  string
		clock string
		want  bool
	}{
		{"later day midnight", "2030-01-02", "", true},
		{"same day midnight", "2030-01-01", "", false},
		{"same day later clock", "2030-01-01", "14:00", true},
		{"same day meridiem", "2030-01-01", "2 PM", true},
		{"same day earlier clock", "2030-01-01", "11:30", false},
		{"exactly now", "2030-01-01", "12:00", false},
		{"unparseable clock", "2030-06-01", "noon", false},
		{"bad date", "2030-13-01", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFutureDate(tc.date, tc.clock, now, loc); got != tc.want {
				t.Fatalf("IsFutureDate(%q, %q) = %v, want %v", tc.date, tc.clock, got, tc.want)
			}
		})
	}
}

func TestGenerateBookingID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	a := newBookingID(now)
	b := newBookingID(now)

	if !strings.HasPrefix(a, "BK-") {
		t.Fatalf("expected BK- prefix, got %q", a)
	}
	if a != strings.ToUpper(a) {
		t.Fatalf("expected uppercase id, got %q", a)
	}
	parts := strings.Split(a, "-")
	if len(parts) != 3 || len(parts[2]) != 5 {
		t.Fatalf("unexpected id shape %q", a)
	}
	if a == b {
		t.Fatalf("expected distinct ids within the same millisecond, got %q twice", a)
	}
}
