package ai

import "github.com/google/generative-ai-go/genai"

// Names of the functions the booking model may call.
const (
	FnCheckAvailability = "checkAvailability"
	FnCreateBooking     = "createBooking"
	FnGetBookingDetails = "getBookingDetails"
)

// BookingFunctions returns the declarations registered on the booking model.
func BookingFunctions() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        FnCheckAvailability,
			Description: "Check available time slots for a specific date. Returns list of available times and any existing bookings for that date.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "Date to check availability for in YYYY-MM-DD format (e.g., 2025-12-15)",
					},
				},
				Required: []string{"date"},
			},
		},
		{
			Name:        FnCreateBooking,
			Description: "Create a new booking with user details, date, and time. Only call this after confirming all details with the user.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"userName":  {Type: genai.TypeString, Description: "Full name of the person booking"},
					"userEmail": {Type: genai.TypeString, Description: "Email address of the user"},
					"phone":     {Type: genai.TypeString, Description: "Phone number (optional)"},
					"date":      {Type: genai.TypeString, Description: "Booking date in YYYY-MM-DD format"},
					"time":      {Type: genai.TypeString, Description: "Booking time in HH:MM format (24-hour)"},
					"service":   {Type: genai.TypeString, Description: "Type of service or appointment (optional)"},
					"notes":     {Type: genai.TypeString, Description: "Any additional notes or requirements (optional)"},
				},
				Required: []string{"userName", "userEmail", "date", "time"},
			},
		},
		{
			Name:        FnGetBookingDetails,
			Description: "Retrieve details of a specific booking by booking ID",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"bookingId": {Type: genai.TypeString, Description: "The booking ID to look up"},
				},
				Required: []string{"bookingId"},
			},
		},
	}
}
