package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"cafebooking/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RenderCustomerConfirmation builds the "Booking Confirmed!" email.
func RenderCustomerConfirmation(b models.Booking) (Email, error) {
	html, err := render("customer_confirmation.html", b)
	if err != nil {
		return Email{}, err
	}
	return Email{
		ToName:    b.UserName,
		ToAddress: b.UserEmail,
		Subject:   fmt.Sprintf("Booking Confirmation - %s at %s", b.Date, b.Time),
		PlainText: plainSummary("Your booking has been confirmed.", b, false),
		HTML:      html,
	}, nil
}

// RenderOperatorAlert builds the "New Booking Received" email for the cafe inbox.
func RenderOperatorAlert(b models.Booking, operatorEmail string) (Email, error) {
	html, err := render("operator_alert.html", b)
	if err != nil {
		return Email{}, err
	}
	return Email{
		ToName:    "Cafe",
		ToAddress: operatorEmail,
		Subject:   fmt.Sprintf("New Booking: %s - %s at %s", b.UserName, b.Date, b.Time),
		PlainText: plainSummary("A new booking has been created.", b, true),
		HTML:      html,
	}, nil
}

// RenderReminder builds the upcoming-appointment reminder.
func RenderReminder(b models.Booking) (Email, error) {
	html, err := render("reminder.html", b)
	if err != nil {
		return Email{}, err
	}
	return Email{
		ToName:    b.UserName,
		ToAddress: b.UserEmail,
		Subject:   fmt.Sprintf("Reminder - %s at %s", b.Date, b.Time),
		PlainText: plainSummary("This is a reminder of your upcoming appointment.", b, false),
		HTML:      html,
	}, nil
}

func render(name string, b models.Booking) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, b); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func plainSummary(intro string, b models.Booking, withContact bool) string {
	var sb strings.Builder
	sb.WriteString(intro + "\n\n")
	fmt.Fprintf(&sb, "Booking ID: %s\n", b.BookingID)
	if withContact {
		fmt.Fprintf(&sb, "Customer: %s <%s>\n", b.UserName, b.UserEmail)
	}
	fmt.Fprintf(&sb, "Date: %s\nTime: %s\n", b.Date, b.Time)
	if b.Service != "" {
		fmt.Fprintf(&sb, "Service: %s\n", b.Service)
	}
	if b.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	}
	if b.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s\n", b.Notes)
	}
	return sb.String()
}
