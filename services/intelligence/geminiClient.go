package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoCandidates is returned when Gemini answers without any candidate content.
var ErrNoCandidates = errors.New("gemini returned no candidates")

// ChatSession is one multi-turn exchange with the model.
type ChatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ChatModel starts chat sessions seeded with prior history.
type ChatModel interface {
	Name() string
	StartChat(history []*genai.Content) ChatSession
}

// TextGenerator answers a single prompt with plain text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// BookingModel returns the function-calling model used by the booking assistant.
func (g *GeminiClient) BookingModel(name string) ChatModel {
	model := g.client.GenerativeModel(name)
	model.Tools = []*genai.Tool{{FunctionDeclarations: BookingFunctions()}}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(bookingSystemPrompt)}}
	return &geminiChatModel{name: name, model: model}
}

// TextModel returns a plain model for the general cafe chat.
func (g *GeminiClient) TextModel(name string) TextGenerator {
	return &geminiTextModel{model: g.client.GenerativeModel(name)}
}

type geminiChatModel struct {
	name  string
	model *genai.GenerativeModel
}

func (m *geminiChatModel) Name() string { return m.name }

func (m *geminiChatModel) StartChat(history []*genai.Content) ChatSession {
	cs := m.model.StartChat()
	cs.History = history
	return cs
}

type geminiTextModel struct {
	model *genai.GenerativeModel
}

func (m *geminiTextModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	_, text, err := splitResponse(resp)
	return text, err
}

// splitResponse separates the function calls of the first candidate from its text.
func splitResponse(resp *genai.GenerateContentResponse) ([]genai.FunctionCall, string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", ErrNoCandidates
	}

	var calls []genai.FunctionCall
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			calls = append(calls, p)
		case *genai.FunctionCall:
			calls = append(calls, *p)
		}
	}
	return calls, sb.String(), nil
}
