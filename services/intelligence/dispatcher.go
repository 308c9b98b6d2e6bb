package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cafebooking/metrics"
	"cafebooking/models"
	"cafebooking/services/booking"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

// FunctionDispatcher routes model function calls to the booking service and
// turns every outcome into a response payload the model can read.
type FunctionDispatcher struct {
	Bookings booking.BookingService
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Dispatch never returns an error: failures become {"success": false, ...}
// payloads, unknown names become {"error": "Unknown function"}.
func (d *FunctionDispatcher) Dispatch(ctx context.Context, call genai.FunctionCall) (payload map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			d.Logger.Error("Function handler panicked", zap.String("function", call.Name), zap.Any("panic", r))
			d.Metrics.ObserveFunctionCall(call.Name, "panic")
			payload = failurePayload(booking.KindUpstream, "Internal error while running "+call.Name)
		}
	}()

	var (
		result any
		err    error
	)
	switch call.Name {
	case FnCheckAvailability:
		result, err = d.Bookings.CheckAvailability(ctx, stringArg(call.Args, "date"))
	case FnCreateBooking:
		result, err = d.Bookings.CreateBooking(ctx, models.CreateBookingInput{
			UserName:  stringArg(call.Args, "userName"),
			UserEmail: stringArg(call.Args, "userEmail"),
			Phone:     stringArg(call.Args, "phone"),
			Date:      stringArg(call.Args, "date"),
			Time:      stringArg(call.Args, "time"),
			Service:   stringArg(call.Args, "service"),
			Notes:     stringArg(call.Args, "notes"),
		})
	case FnGetBookingDetails:
		var details *models.BookingDetails
		details, err = d.Bookings.GetBookingDetails(ctx, stringArg(call.Args, "bookingId"))
		if err == nil {
			result = struct {
				Booking *models.BookingDetails `json:"booking"`
			}{details}
		}
	default:
		d.Metrics.ObserveFunctionCall(call.Name, "unknown")
		d.Logger.Warn("Model requested unknown function", zap.String("function", call.Name))
		return map[string]any{"error": "Unknown function"}
	}

	if err != nil {
		kind := booking.KindOf(err)
		d.Metrics.ObserveFunctionCall(call.Name, string(kind))
		if kind == booking.KindUpstream {
			d.Logger.Error("Function call failed", zap.String("function", call.Name), zap.Error(err))
		} else {
			d.Logger.Debug("Function call rejected", zap.String("function", call.Name), zap.Error(err))
		}
		return failurePayload(kind, booking.MessageOf(err))
	}

	d.Metrics.ObserveFunctionCall(call.Name, "success")
	payload, err = successPayload(result)
	if err != nil {
		d.Logger.Error("Failed to encode function result", zap.String("function", call.Name), zap.Error(err))
		return failurePayload(booking.KindUpstream, "Failed to encode result")
	}
	return payload
}

// successPayload flattens result into a JSON-shaped map so it converts cleanly
// into a protobuf Struct, then marks it successful.
func successPayload(result any) (map[string]any, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	payload["success"] = true
	return payload, nil
}

func failurePayload(kind booking.ErrorKind, msg string) map[string]any {
	return map[string]any{
		"success": false,
		"error":   msg,
		"kind":    string(kind),
	}
}

// stringArg reads a string argument; models occasionally send numbers for
// fields like phone, so non-strings are formatted.
func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
