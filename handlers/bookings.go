package handlers

import (
	"errors"
	"net/http"

	"cafebooking/models"
	"cafebooking/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BookingHandler serves the plain booking form and the operator listing.
type BookingHandler struct {
	Bookings booking.BookingService
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}
	// Binding leaves the decoded body in place, so blank-only values are caught here too.
	if missing := booking.MissingFields(input); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": missing})
		return
	}

	created, err := h.Bookings.CreateManualBooking(c.Request.Context(), input)
	if err != nil {
		logger.Warn("Manual booking failed", zap.String("date", input.Date), zap.String("time", input.Time), zap.Error(err))
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListBookingsHandler handles GET /bookings?date=&status=.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	logger := getLogger(c)

	var query models.BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "details": err.Error()})
		return
	}

	bookings, err := h.Bookings.ListBookings(c.Request.Context(), query)
	if err != nil {
		logger.Error("Failed to list bookings", zap.Error(err))
		respondBookingError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "bookings": bookings})
}

// respondBookingError maps a booking failure onto its HTTP status.
func respondBookingError(c *gin.Context, err error) {
	switch booking.KindOf(err) {
	case booking.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": booking.MessageOf(err)})
	case booking.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": booking.MessageOf(err)})
	case booking.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": booking.MessageOf(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request", "details": err.Error()})
	}
}
