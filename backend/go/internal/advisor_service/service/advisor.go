package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"LoveAI/backend/go/internal/journal_service/store"
	"LoveAI/backend/go/internal/llm"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/circuitbreaker"
	"LoveAI/backend/go/pkg/logger"
)

// chatMaxTokens caps the length of a single advisor reply.
const chatMaxTokens = 1000

// streamChunkInterval paces simulated streaming. The upstream call is always
// non-streaming; the reply is re-chunked word by word so the client renders
// it progressively.
const streamChunkInterval = 30 * time.Millisecond

// Advisor orchestrates a chat turn: focus detection, context assembly, the
// LLM call and history bookkeeping.
type Advisor struct {
	llm        llm.LLM
	configured bool
	breaker    circuitbreaker.CircuitBreaker
	builder    *ContextBuilder
	prospects  store.ProspectStore
	history    History
	logger     *logger.Logger
}

// NewAdvisor creates a new Advisor. configured reports whether the LLM
// provider has real credentials; when false, Chat fails fast without touching
// the stores. breaker may be nil to call the LLM unguarded.
func NewAdvisor(client llm.LLM, configured bool, breaker circuitbreaker.CircuitBreaker, builder *ContextBuilder, prospects store.ProspectStore, history History, logger *logger.Logger) *Advisor {
	return &Advisor{
		llm:        client,
		configured: configured,
		breaker:    breaker,
		builder:    builder,
		prospects:  prospects,
		history:    history,
		logger:     logger,
	}
}

// complete calls the LLM, through the circuit breaker when one is
// configured. A tripped breaker reads as an upstream failure.
func (a *Advisor) complete(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if a.breaker == nil {
		return a.llm.Complete(ctx, req)
	}

	res, err := a.breaker.Execute(func() (interface{}, error) {
		return a.llm.Complete(ctx, req)
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
			return nil, fmt.Errorf("%w: too many recent upstream failures", llm.ErrUpstream)
		}
		return nil, err
	}
	return res.(*models.ChatResponse), nil
}

// Chat runs one conversation turn and returns the advisor's reply.
func (a *Advisor) Chat(ctx context.Context, userID, message string) (string, error) {
	// Credentials are checked before any store or network work so a
	// misconfigured deployment fails instantly and without side effects.
	if !a.configured {
		return "", llm.ErrConfigMissing
	}

	active, err := a.prospects.GetActiveByUserID(ctx, userID)
	if err != nil {
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Failed to load prospects for focus detection")
		active = nil
	}

	focus := ExtractProspectName(message, active)
	datingContext := a.builder.Build(ctx, userID, focus)

	history, err := a.history.Get(ctx, userID)
	if err != nil {
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Failed to load chat history")
		history = nil
	}

	messages := make([]models.ChatMessage, 0, len(history)+3)
	messages = append(messages,
		models.ChatMessage{Role: models.SpeakerSystem, Content: systemPrompt},
		models.ChatMessage{Role: models.SpeakerSystem, Content: contextPreamble + datingContext},
	)
	messages = append(messages, history...)
	messages = append(messages, models.ChatMessage{Role: models.SpeakerUser, Content: message})

	resp, err := a.complete(ctx, &models.ChatRequest{
		Messages:  messages,
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		return "", err
	}
	reply := resp.Message.Content

	// History is bookkeeping, not part of the answer; losing it must not
	// fail the turn.
	if err := a.history.Append(ctx, userID,
		models.ChatMessage{Role: models.SpeakerUser, Content: message},
		models.ChatMessage{Role: models.SpeakerAssistant, Content: reply},
	); err != nil {
		a.logger.WithError(models.ErrorInfo{Message: err.Error()}).Warn("Failed to persist chat history")
	}

	return reply, nil
}

// ChatStream runs one conversation turn and delivers the reply through
// onChunk, one word at a time. Every chunk except the last carries its
// trailing space so the client can concatenate chunks verbatim. No chunk
// starts with a space: SSE clients strip one leading space after "data:",
// which would silently glue words together.
func (a *Advisor) ChatStream(ctx context.Context, userID, message string, onChunk func(chunk string) error) error {
	reply, err := a.Chat(ctx, userID, message)
	if err != nil {
		return err
	}

	words := strings.Split(reply, " ")
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk = word + " "
		}
		if err := onChunk(chunk); err != nil {
			return err
		}
		if i < len(words)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(streamChunkInterval):
			}
		}
	}
	return nil
}

// History returns the user's conversation history, oldest first.
func (a *Advisor) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	return a.history.Get(ctx, userID)
}

// ClearHistory deletes the user's conversation history.
func (a *Advisor) ClearHistory(ctx context.Context, userID string) error {
	return a.history.Clear(ctx, userID)
}
