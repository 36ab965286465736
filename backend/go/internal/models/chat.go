package models

import "time"

// SpeakerRole 定义了消息发送者的角色。
type SpeakerRole string

const (
	SpeakerSystem    SpeakerRole = "system"    // 系统角色（指令与上下文）。
	SpeakerUser      SpeakerRole = "user"      // 用户角色。
	SpeakerAssistant SpeakerRole = "assistant" // 助手角色。
	SpeakerModel     SpeakerRole = "model"     // 模型角色（Gemini 的历史记录使用）。
)

// ChatMessage 是对话中的一条消息。顾问功能只处理纯文本，
// 所以这里不再使用多模态的 Content/Part 结构。
type ChatMessage struct {
	Role    SpeakerRole `json:"role"`
	Content string      `json:"content"`
}

// ChatRequest 定义了向 LLM 提供商发起一次补全请求的结构。
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	// MaxTokens 限制模型输出的最大 token 数，防止上游请求无限增长。
	MaxTokens int `json:"maxTokens,omitempty"`
}

// ChatResponse 定义了一次补全请求的响应。
type ChatResponse struct {
	Message      ChatMessage `json:"message"`
	CreateTime   time.Time   `json:"createTime,omitempty"`   // 响应创建时间。
	ResponseID   string      `json:"responseId,omitempty"`   // 响应ID。
	ModelVersion string      `json:"modelVersion,omitempty"` // 模型版本。
}
