package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Assistant endpoints
	BookingChatHandler      gin.HandlerFunc
	ResetBookingChatHandler gin.HandlerFunc
	CafeChatHandler         gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc

	// Ops
	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into route-ready funcs.
func NewHandlerBundle(assistant *AssistantHandler, bookings *BookingHandler, health *HealthHandler) *HandlerBundle {
	return &HandlerBundle{
		BookingChatHandler:      assistant.BookingChatHandler,
		ResetBookingChatHandler: assistant.ResetBookingChatHandler,
		CafeChatHandler:         assistant.CafeChatHandler,
		CreateBookingHandler:    bookings.CreateBookingHandler,
		ListBookingsHandler:     bookings.ListBookingsHandler,
		HealthHandler:           health.HealthHandler,
	}
}
