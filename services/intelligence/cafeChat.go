package ai

import (
	"context"
	"fmt"
	"strings"
)

// CafeChatService answers general cafe questions without tools or history.
type CafeChatService struct {
	generator TextGenerator
}

func NewCafeChatService(generator TextGenerator) *CafeChatService {
	return &CafeChatService{generator: generator}
}

func (s *CafeChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	prompt := fmt.Sprintf("%s\n\nCustomer: %s\n\nAssistant:", cafeContextPrompt, message)
	return s.generator.GenerateText(ctx, prompt)
}
