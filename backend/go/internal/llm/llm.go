package llm

import (
	"context"
	"fmt"

	"LoveAI/backend/go/internal/config"
	"LoveAI/backend/go/internal/models"
)

// LLM 定义了所有大型语言模型客户端必须实现的通用接口。
// 顾问服务只依赖这个接口，不关心具体的提供商。
type LLM interface {
	Complete(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
}

// NewClient 是一个工厂函数，根据提供的配置创建并返回一个实现了 LLM 接口的客户端。
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.OpenAI.Model, cfg.OpenAI.APIKey)
	case "gemini":
		return NewGemini(ctx, cfg.Gemini.Model, cfg.Gemini.APIKey)
	case "ollama":
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
