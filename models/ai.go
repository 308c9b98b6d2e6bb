package models

import "time"

// Conversation roles as sent by the widget.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message of the rolling chat history.
type ConversationTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// BookingChatRequest is the POST /booking-chat body.
type BookingChatRequest struct {
	Message   string             `json:"message"`
	History   []ConversationTurn `json:"history"`
	SessionID string             `json:"sessionId,omitempty"`
}

// AssistantReply is the outcome of one conversation turn.
type AssistantReply struct {
	Response      string   `json:"response"`
	FunctionCalls []string `json:"functionCalls"`
	SessionID     string   `json:"sessionId,omitempty"`
}

// ChatRequest is the POST /chat body for the general cafe widget.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatContext is the per-session history kept in redis.
type ChatContext struct {
	Turns     []ConversationTurn `json:"turns"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
