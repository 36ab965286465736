package llm

import (
	"context"
	"errors"
	"strings"

	"LoveAI/backend/go/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Gemini 是一个实现了 LLM 接口的结构体，用于与 Gemini API 交互。
type Gemini struct {
	client    *genai.Client
	modelName string
	apiKey    string
}

// NewGemini 创建一个新的 Gemini 客户端。
//
// 参数:
//
//	ctx: 上下文，用于控制客户端的生命周期。
//	model: 要使用的 Gemini 模型名称。
//	apiKey: Gemini API 密钥。
func NewGemini(ctx context.Context, model, apiKey string) (*Gemini, error) {
	// 密钥为空时不创建底层客户端，Complete 会直接返回 ErrConfigMissing。
	if !credentialConfigured("gemini", apiKey) {
		return &Gemini{modelName: model, apiKey: apiKey}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Gemini{
		client:    client,
		modelName: model,
		apiKey:    apiKey,
	}, nil
}

// Complete 向 Gemini API 发送请求并返回响应。
// system 消息被合并为模型的 SystemInstruction，其余消息构成聊天历史，
// 最后一条 user 消息作为本次请求发送。
func (g *Gemini) Complete(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if g.client == nil {
		return nil, ErrConfigMissing
	}

	model := g.client.GenerativeModel(g.modelName)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	system, history, last := splitForGemini(req.Messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, mapGeminiError(err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		return nil, ErrUpstream
	}

	return &models.ChatResponse{
		Message: models.ChatMessage{
			Role:    models.SpeakerAssistant,
			Content: text,
		},
		ModelVersion: g.modelName,
	}, nil
}

// splitForGemini 把内部消息列表拆成 Gemini 需要的三部分：
// 合并后的系统指令、角色化的历史记录、以及最后一条用户消息。
func splitForGemini(messages []models.ChatMessage) (string, []*genai.Content, string) {
	var systemParts []string
	var conversation []models.ChatMessage

	for _, m := range messages {
		if m.Role == models.SpeakerSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		conversation = append(conversation, m)
	}

	last := ""
	if n := len(conversation); n > 0 && conversation[n-1].Role == models.SpeakerUser {
		last = conversation[n-1].Content
		conversation = conversation[:n-1]
	}

	var history []*genai.Content
	for _, m := range conversation {
		role := "user"
		if m.Role == models.SpeakerAssistant || m.Role == models.SpeakerModel {
			role = "model"
		}
		history = append(history, &genai.Content{
			Parts: []genai.Part{genai.Text(m.Content)},
			Role:  role,
		})
	}

	return strings.Join(systemParts, "\n\n"), history, last
}

// firstCandidateText 取出响应中第一个候选的文本内容。
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// mapGeminiError 将 Gemini SDK 的错误归类到统一的错误分类。
func mapGeminiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return wrapStatus(gerr.Code, err)
	}
	return wrapStatus(0, err)
}
