package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"LoveAI/backend/go/internal/models"

	"github.com/go-redis/redis/v8"
)

// History is what the advisor needs from conversation storage.
type History interface {
	Get(ctx context.Context, userID string) ([]models.ChatMessage, error)
	Append(ctx context.Context, userID string, messages ...models.ChatMessage) error
	Clear(ctx context.Context, userID string) error
}

// HistoryStore keeps per-user conversation history in Redis. The history is a
// capped list: old turns fall off the front, and the whole key expires after
// a period of inactivity so abandoned conversations clean themselves up.
type HistoryStore struct {
	client   *redis.Client
	ttl      time.Duration
	maxTurns int
}

// NewHistoryStore creates a new HistoryStore. maxTurns counts individual
// messages (a user turn and its reply are two entries).
func NewHistoryStore(client *redis.Client, ttl time.Duration, maxTurns int) *HistoryStore {
	if maxTurns <= 0 {
		maxTurns = 40
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &HistoryStore{client: client, ttl: ttl, maxTurns: maxTurns}
}

func historyKey(userID string) string {
	return "advisor:history:" + userID
}

// Get returns the user's conversation history, oldest first.
func (h *HistoryStore) Get(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	raw, err := h.client.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	messages := make([]models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg models.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// Skip entries that no longer parse rather than lose the
			// whole conversation.
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Append adds messages to the end of the user's history, trims it to the
// configured size and refreshes the expiry.
func (h *HistoryStore) Append(ctx context.Context, userID string, messages ...models.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	key := historyKey(userID)
	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal chat message: %w", err)
		}
		values = append(values, data)
	}

	pipe := h.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, int64(-h.maxTurns), -1)
	pipe.Expire(ctx, key, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append chat history: %w", err)
	}
	return nil
}

// Clear deletes the user's conversation history.
func (h *HistoryStore) Clear(ctx context.Context, userID string) error {
	if err := h.client.Del(ctx, historyKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
