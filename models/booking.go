package models

import "time"

// Booking statuses.
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Booking is the persisted appointment record.
type Booking struct {
	BookingID string    `bson:"bookingId" json:"bookingId"`
	UserName  string    `bson:"userName" json:"userName"`
	UserEmail string    `bson:"userEmail" json:"userEmail"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Date      string    `bson:"date" json:"date"` // YYYY-MM-DD
	Time      string    `bson:"time" json:"time"` // HH:MM, 24-hour
	Service   string    `bson:"service,omitempty" json:"service,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the booking still occupies its slot.
func (b Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CreateBookingInput carries the createBooking arguments, from the assistant or the form.
type CreateBookingInput struct {
	UserName  string `json:"userName" binding:"required"`
	UserEmail string `json:"userEmail" binding:"required"`
	Phone     string `json:"phone,omitempty"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Service   string `json:"service,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// BookedSlot is the redacted view of an existing booking shown in availability results.
type BookedSlot struct {
	Time    string `json:"time"`
	Service string `json:"service"`
}

// Availability is the checkAvailability result.
type Availability struct {
	Date             string       `json:"date"`
	TotalSlots       int          `json:"totalSlots"`
	BookedSlots      int          `json:"bookedSlots"`
	AvailableSlots   int          `json:"availableSlots"`
	AvailableTimes   []string     `json:"availableTimes"`
	ExistingBookings []BookedSlot `json:"existingBookings"`
}

// BookingSummary is the minimal public echo returned after creation.
type BookingSummary struct {
	BookingID string `json:"bookingId"`
	UserName  string `json:"userName"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Service   string `json:"service,omitempty"`
}

// BookingConfirmation is the createBooking result.
type BookingConfirmation struct {
	BookingID string         `json:"bookingId"`
	Message   string         `json:"message"`
	Booking   BookingSummary `json:"booking"`
}

// BookingDetails is the getBookingDetails result; it includes contact details.
type BookingDetails struct {
	BookingID string    `json:"bookingId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	Phone     string    `json:"phone,omitempty"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Service   string    `json:"service,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookingListQuery holds the optional equality filters of GET /bookings.
type BookingListQuery struct {
	Date   string `form:"date"`
	Status string `form:"status"`
}
