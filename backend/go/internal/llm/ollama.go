package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"LoveAI/backend/go/internal/models"

	olla "github.com/ollama/ollama/api"
)

// Ollama 是一个用于本地 Ollama 服务的 LLM 客户端。
type Ollama struct {
	client *olla.Client // Ollama 客户端实例。
	model  string       // 要使用的模型名称。
}

// NewOllama 创建一个新的 Ollama 客户端。
//
// 参数:
//
//	model: 要使用的模型名称。
//	baseURL: Ollama 服务的基准 URL。如果为空，则默认为 "http://localhost:11434"。
func NewOllama(model, baseURL string) (*Ollama, error) {
	// 如果 baseURL 为空，则使用默认地址。
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// 创建一个带有超时设置的 HTTP 客户端。
	hc := &http.Client{
		Timeout: 120 * time.Second,
	}

	client := olla.NewClient(parsedURL, hc)

	return &Ollama{client: client, model: model}, nil
}

// Complete 使用 Ollama 的 chat 接口生成一条回复。
func (o *Ollama) Complete(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	var ollaMessages []olla.Message
	for _, m := range req.Messages {
		role := string(m.Role)
		if m.Role == models.SpeakerModel {
			role = "assistant"
		}
		ollaMessages = append(ollaMessages, olla.Message{
			Role:    role,
			Content: m.Content,
		})
	}

	options := map[string]interface{}{}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	stream := false
	var result *olla.ChatResponse

	err := o.client.Chat(ctx, &olla.ChatRequest{
		Model:    o.model,
		Messages: ollaMessages,
		Stream:   &stream,
		Options:  options,
	}, func(resp olla.ChatResponse) error {
		result = &resp
		return nil
	})
	if err != nil {
		return nil, mapOllamaError(err)
	}
	if result == nil {
		return nil, ErrUpstream
	}

	return &models.ChatResponse{
		Message: models.ChatMessage{
			Role:    models.SpeakerAssistant,
			Content: result.Message.Content,
		},
		CreateTime:   result.CreatedAt,
		ModelVersion: o.model,
	}, nil
}

// mapOllamaError 将 Ollama 客户端的错误归类到统一的错误分类。
func mapOllamaError(err error) error {
	var statusErr olla.StatusError
	if errors.As(err, &statusErr) {
		return wrapStatus(statusErr.StatusCode, err)
	}
	return wrapStatus(0, err)
}
