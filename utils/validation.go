package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	meridiemPattern  = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(AM|PM)$`)
	canonicalPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// IsValidEmail performs a shape-only check: local@domain.tld without whitespace.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidDate accepts strict YYYY-MM-DD strings that name a real calendar day.
// Overflowing dates such as 2025-02-30 are rejected because they do not survive
// a parse/format round trip.
func IsValidDate(date string) bool {
	if !datePattern.MatchString(date) {
		return false
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	return parsed.Format(dateLayout) == date
}

// IsFutureDate reports whether date (at midnight, or at clock when given) in loc
// is strictly after now. A clock that cannot be normalized is never in the future.
func IsFutureDate(date, clock string, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return false
	}

	if strings.TrimSpace(clock) != "" {
		hour, minute, ok := splitClock(NormalizeTime(clock))
		if !ok {
			return false
		}
		day = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	}
	return day.After(now)
}

// NormalizeTime converts "9:00", "09:00", "2 PM" or "2:30 pm" to 24-hour HH:MM.
// Any other input, including out-of-range clocks, is returned unchanged.
func NormalizeTime(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))

	if m := clockPattern.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return raw
		}
		return formatClock(hour, minute)
	}

	if m := meridiemPattern.FindStringSubmatch(t); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || minute > 59 {
			return raw
		}
		switch {
		case m[3] == "PM" && hour != 12:
			hour += 12
		case m[3] == "AM" && hour == 12:
			hour = 0
		}
		return formatClock(hour, minute)
	}

	return raw
}

// IsCanonicalTime reports whether s is already a 24-hour HH:MM clock.
func IsCanonicalTime(s string) bool {
	return canonicalPattern.MatchString(s)
}

func splitClock(s string) (int, int, bool) {
	if !IsCanonicalTime(s) {
		return 0, 0, false
	}
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	return hour, minute, true
}

func formatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
