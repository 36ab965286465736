package llm

import (
	"errors"
	"fmt"
	"net/http"

	"LoveAI/backend/go/internal/config"
)

// 上游调用失败被归入固定的几类，调用方据此向用户展示不同的提示。
// 任何一类都不会被自动重试，重试始终是用户主动发起的动作。
var (
	// ErrConfigMissing 表示 API 凭证未配置（为空或仍是占位符）。
	// 返回该错误时保证没有发起过任何网络请求。
	ErrConfigMissing = errors.New("llm: api credential is not configured")
	// ErrAuthFailed 表示上游拒绝了凭证（401/403）。
	ErrAuthFailed = errors.New("llm: upstream rejected the api credential")
	// ErrRateLimited 表示触发了上游限流（429）。
	ErrRateLimited = errors.New("llm: upstream rate limit exceeded")
	// ErrUpstream 表示其他的上游失败（网络错误、5xx 等）。
	ErrUpstream = errors.New("llm: upstream request failed")
)

// apiKeyPlaceholder 是配置样例里的占位符，视同未配置。
const apiKeyPlaceholder = "YOUR_OPENAI_API_KEY_HERE"

// credentialConfigured 检查指定提供商的凭证是否已经配置。
// Ollama 是本地服务，不需要凭证。
func credentialConfigured(provider, apiKey string) bool {
	if provider == "ollama" {
		return true
	}
	return apiKey != "" && apiKey != apiKeyPlaceholder
}

// Configured 报告配置中当前选定的提供商是否具备可用的凭证。
// 调用方可以在组装上下文之前先行检查，避免做无意义的准备工作。
func Configured(cfg config.LLMConfig) bool {
	switch cfg.Provider {
	case "openai":
		return credentialConfigured("openai", cfg.OpenAI.APIKey)
	case "gemini":
		return credentialConfigured("gemini", cfg.Gemini.APIKey)
	case "ollama":
		return true
	default:
		return false
	}
}

// wrapStatus 根据上游返回的 HTTP 状态码将错误归类。
func wrapStatus(statusCode int, err error) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}
