package models

// ReminderPayload is the asynq task body for an upcoming-appointment reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
