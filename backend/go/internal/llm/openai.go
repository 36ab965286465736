package llm

import (
	"context"
	"errors"
	"time"

	"LoveAI/backend/go/internal/models"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// OpenAI 是一个用于 OpenAI API 的 LLM 客户端。
type OpenAI struct {
	client *openai.Client // OpenAI 客户端实例。
	model  string         // 要使用的模型名称。
	apiKey string
}

// NewOpenAI 创建一个新的 OpenAI 客户端。
// 凭证未配置不是构造错误：客户端照常创建，在 Complete 时返回 ErrConfigMissing，
// 这样服务可以在没有密钥的环境下启动，只有聊天功能不可用。
func NewOpenAI(model string, apiKey string) (*OpenAI, error) {
	config := openai.DefaultConfig(apiKey)
	client := openai.NewClientWithConfig(config)
	return &OpenAI{
		client: client,
		model:  model,
		apiKey: apiKey,
	}, nil
}

// Complete 使用 OpenAI API 生成一条回复。
func (o *OpenAI) Complete(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if !credentialConfigured("openai", o.apiKey) {
		return nil, ErrConfigMissing
	}

	resp, err := o.client.CreateChatCompletion(ctx, o.toOpenAIRequest(req))
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrUpstream
	}

	return &models.ChatResponse{
		Message: models.ChatMessage{
			Role:    models.SpeakerAssistant,
			Content: resp.Choices[0].Message.Content,
		},
		CreateTime:   time.Unix(resp.Created, 0),
		ResponseID:   resp.ID,
		ModelVersion: resp.Model,
	}, nil
}

// toOpenAIRequest 将我们的内部请求格式转换为 OpenAI 格式。
func (o *OpenAI) toOpenAIRequest(req *models.ChatRequest) openai.ChatCompletionRequest {
	var messages []openai.ChatCompletionMessage
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:     o.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
}

// mapOpenAIError 将 go-openai 的错误归类到统一的错误分类。
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return wrapStatus(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return wrapStatus(reqErr.HTTPStatusCode, err)
	}
	return wrapStatus(0, err)
}
