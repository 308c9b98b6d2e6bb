package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateBookingID returns BK-<base36 unix millis>-<5 random base36 chars>, uppercased.
func GenerateBookingID() string {
	return newBookingID(time.Now())
}

func newBookingID(now time.Time) string {
	stamp := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper("BK-" + stamp + "-" + randomBase36(5))
}

func randomBase36(n int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic("bookingid: " + err.Error())
		}
		sb.WriteByte(base36Alphabet[idx.Int64()])
	}
	return sb.String()
}
