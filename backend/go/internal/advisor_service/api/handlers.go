package api

import (
	"errors"
	"net/http"

	"LoveAI/backend/go/internal/advisor_service/service"
	"LoveAI/backend/go/internal/auth"
	"LoveAI/backend/go/internal/llm"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/logger"

	"github.com/gin-gonic/gin"
)

// API provides handlers for the advisor service.
type API struct {
	advisor *service.Advisor
	logger  *logger.Logger
}

// NewAPI creates a new API handler.
func NewAPI(advisor *service.Advisor, logger *logger.Logger) *API {
	return &API{advisor: advisor, logger: logger}
}

// ChatRequest is the payload for a chat turn.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatHandler runs one conversation turn and returns the full reply.
func (a *API) ChatHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	reply, err := a.advisor.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		a.writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ChatStreamHandler runs one conversation turn and delivers the reply as
// Server-Sent Events, one word per "chunk" event, closed by a "done" event.
func (a *API) ChatStreamHandler(c *gin.Context) {
	userID := auth.UserID(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	err := a.advisor.ChatStream(c.Request.Context(), userID, req.Message, func(chunk string) error {
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		// Errors from the LLM happen before the first chunk is sent, so
		// the error event is the only thing the client receives.
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Chat stream failed")
		c.SSEvent("error", chatErrorMessage(err))
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", "")
	c.Writer.Flush()
}

// HistoryHandler returns the user's conversation history, oldest first.
func (a *API) HistoryHandler(c *gin.Context) {
	userID := auth.UserID(c)

	history, err := a.advisor.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve chat history"})
		return
	}
	if history == nil {
		history = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, history)
}

// ClearHistoryHandler deletes the user's conversation history.
func (a *API) ClearHistoryHandler(c *gin.Context) {
	userID := auth.UserID(c)

	if err := a.advisor.ClearHistory(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat history"})
		return
	}
	c.Status(http.StatusNoContent)
}

// writeChatError maps LLM-layer errors onto HTTP responses.
func (a *API) writeChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, llm.ErrConfigMissing):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": chatErrorMessage(err)})
	case errors.Is(err, llm.ErrAuthFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": chatErrorMessage(err)})
	case errors.Is(err, llm.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": chatErrorMessage(err)})
	default:
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("Chat turn failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": chatErrorMessage(err)})
	}
}

// chatErrorMessage converts an LLM-layer error into a client-safe message.
func chatErrorMessage(err error) string {
	switch {
	case errors.Is(err, llm.ErrConfigMissing):
		return "The AI advisor is not configured. Please set an API key."
	case errors.Is(err, llm.ErrAuthFailed):
		return "Invalid API key. Please check the configured API key."
	case errors.Is(err, llm.ErrRateLimited):
		return "Rate limit exceeded. Please try again later."
	default:
		return "Failed to get response from AI. Please try again."
	}
}
