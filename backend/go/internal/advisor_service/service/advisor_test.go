package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"LoveAI/backend/go/internal/llm"
	"LoveAI/backend/go/internal/models"
	"LoveAI/backend/go/pkg/circuitbreaker"
	"LoveAI/backend/go/pkg/logger"
)

func testAdvisor(client *fakeLLM, configured bool, prospects *fakeProspectStore, history *fakeHistory) *Advisor {
	if prospects == nil {
		prospects = &fakeProspectStore{}
	}
	if history == nil {
		history = &fakeHistory{}
	}
	log := logger.New("test", "", "")
	builder := NewContextBuilder(&fakeProfileStore{}, prospects, &fakeNoteStore{}, &fakeDateStore{}, log)
	return NewAdvisor(client, configured, nil, builder, prospects, history, log)
}

func TestChatCircuitOpenReadsAsUpstreamError(t *testing.T) {
	client := &fakeLLM{err: llm.ErrUpstream}
	prospects := &fakeProspectStore{}
	history := &fakeHistory{}
	log := logger.New("test", "", "")
	builder := NewContextBuilder(&fakeProfileStore{}, prospects, &fakeNoteStore{}, &fakeDateStore{}, log)
	breaker := circuitbreaker.New(2, 1, time.Minute)
	a := NewAdvisor(client, true, breaker, builder, prospects, history, log)

	ctx := context.Background()
	// Two failures trip the breaker.
	for i := 0; i < 2; i++ {
		if _, err := a.Chat(ctx, "u1", "hi"); !errors.Is(err, llm.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	}

	calls := client.calls
	_, err := a.Chat(ctx, "u1", "hi")
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream while the circuit is open, got %v", err)
	}
	if client.calls != calls {
		t.Errorf("open circuit must not reach the LLM, got %d extra calls", client.calls-calls)
	}
}

func TestChatNotConfiguredFailsFast(t *testing.T) {
	client := &fakeLLM{reply: "hi"}
	prospects := &fakeProspectStore{}
	a := testAdvisor(client, false, prospects, nil)

	_, err := a.Chat(context.Background(), "u1", "hello")
	if !errors.Is(err, llm.ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("LLM must not be called when unconfigured, got %d calls", client.calls)
	}
	if prospects.calls != 0 {
		t.Errorf("stores must not be touched when unconfigured, got %d calls", prospects.calls)
	}
}

func TestChatMessageAssembly(t *testing.T) {
	client := &fakeLLM{reply: "take it slow"}
	history := &fakeHistory{messages: []models.ChatMessage{
		{Role: models.SpeakerUser, Content: "earlier question"},
		{Role: models.SpeakerAssistant, Content: "earlier answer"},
	}}
	a := testAdvisor(client, true, nil, history)

	reply, err := a.Chat(context.Background(), "u1", "what now?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "take it slow" {
		t.Errorf("unexpected reply %q", reply)
	}

	msgs := client.lastReq.Messages
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.SpeakerSystem || msgs[0].Content != systemPrompt {
		t.Errorf("first message must be the system prompt")
	}
	if msgs[1].Role != models.SpeakerSystem || !strings.HasPrefix(msgs[1].Content, contextPreamble) {
		t.Errorf("second message must carry the dating context, got %q", msgs[1].Content)
	}
	if msgs[2].Content != "earlier question" || msgs[3].Content != "earlier answer" {
		t.Errorf("history must sit between context and the new message")
	}
	if msgs[4].Role != models.SpeakerUser || msgs[4].Content != "what now?" {
		t.Errorf("last message must be the user's new message, got %+v", msgs[4])
	}
	if client.lastReq.MaxTokens != chatMaxTokens {
		t.Errorf("expected MaxTokens %d, got %d", chatMaxTokens, client.lastReq.MaxTokens)
	}
}

func TestChatAppendsHistory(t *testing.T) {
	client := &fakeLLM{reply: "sounds good"}
	history := &fakeHistory{}
	a := testAdvisor(client, true, nil, history)

	if _, err := a.Chat(context.Background(), "u1", "dinner ideas?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(history.appended) != 2 {
		t.Fatalf("expected 2 appended messages, got %d", len(history.appended))
	}
	if history.appended[0].Role != models.SpeakerUser || history.appended[0].Content != "dinner ideas?" {
		t.Errorf("first appended message should be the user turn, got %+v", history.appended[0])
	}
	if history.appended[1].Role != models.SpeakerAssistant || history.appended[1].Content != "sounds good" {
		t.Errorf("second appended message should be the reply, got %+v", history.appended[1])
	}
}

func TestChatLLMErrorLeavesHistoryUntouched(t *testing.T) {
	client := &fakeLLM{err: llm.ErrRateLimited}
	history := &fakeHistory{}
	a := testAdvisor(client, true, nil, history)

	_, err := a.Chat(context.Background(), "u1", "hello")
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(history.appended) != 0 {
		t.Errorf("failed turns must not be recorded, got %d messages", len(history.appended))
	}
}

func TestChatSurvivesHistoryFailures(t *testing.T) {
	client := &fakeLLM{reply: "ok"}
	history := &fakeHistory{getErr: errors.New("redis down"), appendErr: errors.New("redis down")}
	a := testAdvisor(client, true, nil, history)

	reply, err := a.Chat(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("history failures must not fail the turn, got %v", err)
	}
	if reply != "ok" {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestChatStreamChunks(t *testing.T) {
	client := &fakeLLM{reply: "hello there world"}
	a := testAdvisor(client, true, nil, nil)

	var chunks []string
	err := a.ChatStream(context.Background(), "u1", "hi", func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"hello ", "there ", "world"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %v", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], chunks[i])
		}
	}
	for i, chunk := range chunks {
		// A leading space would be eaten by SSE data-field parsing.
		if strings.HasPrefix(chunk, " ") {
			t.Errorf("chunk %d starts with a space: %q", i, chunk)
		}
	}
	if strings.Join(chunks, "") != "hello there world" {
		t.Errorf("concatenated chunks must equal the reply")
	}
}

func TestChatStreamStopsOnChunkError(t *testing.T) {
	client := &fakeLLM{reply: "one two three four"}
	a := testAdvisor(client, true, nil, nil)

	boom := errors.New("client gone")
	sent := 0
	err := a.ChatStream(context.Background(), "u1", "hi", func(chunk string) error {
		sent++
		if sent == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected chunk error to propagate, got %v", err)
	}
	if sent != 2 {
		t.Errorf("streaming should stop after the failing chunk, sent %d", sent)
	}
}
