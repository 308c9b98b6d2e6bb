package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cafebooking/metrics"
	"cafebooking/models"
	"cafebooking/services/booking"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultMaxIterations = 5
	defaultModelTimeout  = 30 * time.Second
)

var (
	// ErrEmptyMessage is returned when the user message is blank.
	ErrEmptyMessage = errors.New("message is required")
	// ErrIterationLimit is returned when the model keeps requesting function
	// calls past the configured number of round trips.
	ErrIterationLimit = errors.New("assistant exceeded the maximum number of model round trips")
)

// BookingAssistantService is the entry point of POST /booking-chat.
type BookingAssistantService interface {
	Process(ctx context.Context, req models.BookingChatRequest) (*models.AssistantReply, error)
	ResetSession(ctx context.Context, sessionID string) error
}

// BookingAssistant drives the Gemini function-calling loop.
type BookingAssistant struct {
	model         ChatModel
	dispatcher    *FunctionDispatcher
	contexts      ContextStore
	maxIterations int
	modelTimeout  time.Duration
	metrics       *metrics.Metrics
	logger        *zap.Logger
	tracer        trace.Tracer
}

type Option func(*BookingAssistant)

func WithMaxIterations(n int) Option {
	return func(a *BookingAssistant) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

func WithModelTimeout(d time.Duration) Option {
	return func(a *BookingAssistant) {
		if d > 0 {
			a.modelTimeout = d
		}
	}
}

// WithContextStore enables server-side history keyed by sessionId.
func WithContextStore(store ContextStore) Option {
	return func(a *BookingAssistant) { a.contexts = store }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *BookingAssistant) { a.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *BookingAssistant) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewBookingAssistant(model ChatModel, bookings booking.BookingService, opts ...Option) *BookingAssistant {
	a := &BookingAssistant{
		model:         model,
		maxIterations: defaultMaxIterations,
		modelTimeout:  defaultModelTimeout,
		logger:        zap.NewNop(),
		tracer:        otel.Tracer("cafebooking/assistant"),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.dispatcher = &FunctionDispatcher{Bookings: bookings, Metrics: a.metrics, Logger: a.logger}
	return a
}

// Process runs one conversation turn: it sends the message, executes every
// function call the model asks for, feeds the results back, and returns the
// model's final text together with the names of all functions invoked.
func (a *BookingAssistant) Process(ctx context.Context, req models.BookingChatRequest) (*models.AssistantReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	ctx, span := a.tracer.Start(ctx, "assistant.Process")
	defer span.End()

	turns, sessionID := a.loadHistory(ctx, req)
	session := a.model.StartChat(BuildHistory(turns))

	called := []string{}
	parts := []genai.Part{genai.Text(message)}
	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		calls, text, err := a.send(ctx, session, parts)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "model request failed")
			return nil, err
		}

		if len(calls) == 0 {
			a.metrics.ObserveIterations(iteration)
			span.SetAttributes(
				attribute.Int("assistant.iterations", iteration),
				attribute.StringSlice("assistant.function_calls", called),
			)
			a.saveHistory(ctx, sessionID, turns, message, text)
			return &models.AssistantReply{
				Response:      text,
				FunctionCalls: called,
				SessionID:     sessionID,
			}, nil
		}

		// Results of the last allowed round could never reach the model, so
		// its calls are not run at all.
		if iteration == a.maxIterations {
			break
		}

		for _, call := range calls {
			called = append(called, call.Name)
		}
		parts = a.dispatchAll(ctx, calls)
	}

	a.metrics.ObserveIterations(a.maxIterations)
	span.SetStatus(codes.Error, ErrIterationLimit.Error())
	a.logger.Warn("Booking assistant hit iteration limit",
		zap.Int("maxIterations", a.maxIterations),
		zap.Strings("functionCalls", called),
	)
	return nil, ErrIterationLimit
}

// ResetSession forgets the stored history of sessionID.
func (a *BookingAssistant) ResetSession(ctx context.Context, sessionID string) error {
	if a.contexts == nil || sessionID == "" {
		return nil
	}
	return a.contexts.Clear(ctx, sessionID)
}

func (a *BookingAssistant) send(ctx context.Context, session ChatSession, parts []genai.Part) ([]genai.FunctionCall, string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.modelTimeout)
	defer cancel()

	started := time.Now()
	resp, err := session.SendMessage(ctx, parts...)
	a.metrics.ObserveModelLatency(a.model.Name(), started, err)
	if err != nil {
		return nil, "", fmt.Errorf("gemini request: %w", err)
	}
	return splitResponse(resp)
}

// dispatchAll runs a batch of calls concurrently and returns their responses
// in the order the model issued them.
func (a *BookingAssistant) dispatchAll(ctx context.Context, calls []genai.FunctionCall) []genai.Part {
	responses := make([]genai.Part, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call genai.FunctionCall) {
			defer wg.Done()
			fctx, span := a.tracer.Start(ctx, "assistant.function."+call.Name)
			defer span.End()

			responses[i] = genai.FunctionResponse{
				Name:     call.Name,
				Response: a.dispatcher.Dispatch(fctx, call),
			}
		}(i, call)
	}
	wg.Wait()
	return responses
}

// loadHistory prefers the history sent by the client; the session store only
// fills in when the client sent none.
func (a *BookingAssistant) loadHistory(ctx context.Context, req models.BookingChatRequest) ([]models.ConversationTurn, string) {
	if a.contexts == nil {
		return req.History, ""
	}

	sessionID := req.SessionID
	if sessionID == "" {
		return req.History, uuid.NewString()
	}
	if len(req.History) > 0 {
		return req.History, sessionID
	}

	stored, err := a.contexts.Get(ctx, sessionID)
	if err != nil {
		a.logger.Warn("Failed to load chat context", zap.String("sessionId", sessionID), zap.Error(err))
		return nil, sessionID
	}
	return stored.Turns, sessionID
}

func (a *BookingAssistant) saveHistory(ctx context.Context, sessionID string, turns []models.ConversationTurn, message, reply string) {
	if a.contexts == nil || sessionID == "" {
		return
	}
	now := time.Now()
	updated := make([]models.ConversationTurn, 0, len(turns)+2)
	updated = append(updated, turns...)
	updated = append(updated,
		models.ConversationTurn{Role: models.RoleUser, Content: message, Timestamp: now},
		models.ConversationTurn{Role: models.RoleAssistant, Content: reply, Timestamp: now},
	)
	if err := a.contexts.Set(ctx, sessionID, &models.ChatContext{Turns: updated, UpdatedAt: now}); err != nil {
		a.logger.Warn("Failed to save chat context", zap.String("sessionId", sessionID), zap.Error(err))
	}
}
