package ai

import (
	"context"
	"errors"
	"sync"

	"cafebooking/models"

	"github.com/google/generative-ai-go/genai"
)

// fakeSession replays scripted responses and records what was sent.
type fakeSession struct {
	mu        sync.Mutex
	responses []*genai.GenerateContentResponse
	sent      [][]genai.Part
	sendFn    func(ctx context.Context, parts []genai.Part) (*genai.GenerateContentResponse, error)
}

func (s *fakeSession) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	s.mu.Lock()
	s.sent = append(s.sent, parts)
	idx := len(s.sent) - 1
	s.mu.Unlock()

	if s.sendFn != nil {
		return s.sendFn(ctx, parts)
	}
	if idx >= len(s.responses) {
		return nil, errors.New("no scripted response left")
	}
	return s.responses[idx], nil
}

type fakeModel struct {
	session *fakeSession
	history []*genai.Content
}

func (m *fakeModel) Name() string { return "fake-model" }

func (m *fakeModel) StartChat(history []*genai.Content) ChatSession {
	m.history = history
	return m.session
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(text)}},
	}}}
}

func callResponse(calls ...genai.FunctionCall) *genai.GenerateContentResponse {
	parts := make([]genai.Part, 0, len(calls))
	for _, c := range calls {
		parts = append(parts, c)
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: "model", Parts: parts},
	}}}
}

type fakeBookings struct {
	checkFn   func(ctx context.Context, date string) (*models.Availability, error)
	createFn  func(ctx context.Context, in models.CreateBookingInput) (*models.BookingConfirmation, error)
	detailsFn func(ctx context.Context, id string) (*models.BookingDetails, error)
}

func (f *fakeBookings) CheckAvailability(ctx context.Context, date string) (*models.Availability, error) {
	if f.checkFn == nil {
		return &models.Availability{Date: date}, nil
	}
	return f.checkFn(ctx, date)
}

func (f *fakeBookings) CreateBooking(ctx context.Context, in models.CreateBookingInput) (*models.BookingConfirmation, error) {
	if f.createFn == nil {
		return &models.BookingConfirmation{}, nil
	}
	return f.createFn(ctx, in)
}

func (f *fakeBookings) GetBookingDetails(ctx context.Context, id string) (*models.BookingDetails, error) {
	if f.detailsFn == nil {
		return &models.BookingDetails{BookingID: id}, nil
	}
	return f.detailsFn(ctx, id)
}

func (f *fakeBookings) ListBookings(context.Context, models.BookingListQuery) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) CreateManualBooking(context.Context, models.CreateBookingInput) (*models.Booking, error) {
	return nil, nil
}

type fakeContextStore struct {
	mu    sync.Mutex
	saved map[string]*models.ChatContext
}

func newFakeContextStore() *fakeContextStore {
	return &fakeContextStore{saved: map[string]*models.ChatContext{}}
}

func (f *fakeContextStore) Get(_ context.Context, id string) (*models.ChatContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.saved[id]; ok {
		return c, nil
	}
	return &models.ChatContext{}, nil
}

func (f *fakeContextStore) Set(_ context.Context, id string, c *models.ChatContext) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[id] = c
	return nil
}

func (f *fakeContextStore) Clear(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, id)
	return nil
}
