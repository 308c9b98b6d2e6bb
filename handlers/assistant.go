package handlers

import (
	"context"
	"errors"
	"net/http"

	"cafebooking/models"
	ai "cafebooking/services/intelligence"
	"cafebooking/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const missingModelKey = "GEMINI_API_KEY is not configured"

// CafeReplier answers free-form cafe questions.
type CafeReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// AssistantHandler serves the chat widgets. Either service may be nil when
// the model credentials are absent.
type AssistantHandler struct {
	Assistant ai.BookingAssistantService
	Chat      CafeReplier
}

// BookingChatHandler handles POST /booking-chat.
func (h *AssistantHandler) BookingChatHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Message is required", err.Error())
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if h.Assistant == nil {
		logger.Error("Booking chat requested without model credentials")
		c.JSON(http.StatusInternalServerError, gin.H{"error": missingModelKey})
		return
	}

	reply, err := h.Assistant.Process(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		logger.Error("Booking assistant failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request", "details": err.Error()})
		return
	}

	if reply.FunctionCalls == nil {
		reply.FunctionCalls = []string{}
	}
	c.JSON(http.StatusOK, reply)
}

// ResetBookingChatHandler handles DELETE /booking-chat/:sessionId.
func (h *AssistantHandler) ResetBookingChatHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if h.Assistant == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": missingModelKey})
		return
	}
	if err := h.Assistant.ResetSession(c.Request.Context(), sessionID); err != nil {
		getLogger(c).Error("Failed to reset chat session", zap.String("sessionId", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset session", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// CafeChatHandler handles POST /chat.
func (h *AssistantHandler) CafeChatHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if h.Chat == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": missingModelKey})
		return
	}

	response, err := h.Chat.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		logger.Error("Cafe chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": response})
}
