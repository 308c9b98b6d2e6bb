package ai

import (
	"strings"

	"cafebooking/models"

	"github.com/google/generative-ai-go/genai"
)

const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
)

// BuildHistory converts widget turns into Gemini content. Gemini requires the
// first turn to come from the user, so leading assistant turns (the widget's
// greeting) are dropped, as are empty turns and unknown roles.
func BuildHistory(turns []models.ConversationTurn) []*genai.Content {
	history := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}

		var role string
		switch turn.Role {
		case models.RoleUser:
			role = geminiRoleUser
		case models.RoleAssistant, geminiRoleModel:
			role = geminiRoleModel
		default:
			continue
		}
		if len(history) == 0 && role != geminiRoleUser {
			continue
		}

		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}
	return history
}
