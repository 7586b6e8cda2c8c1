package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/arcadia-cloud/placedex/internal/domain"
)

// chatRequest mirrors the fields of the chat completion request we assert on.
type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
}

func chatResponse(content string) string {
	return `{"id":"c-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` +
		mustJSON(content) + `},"finish_reason":"stop"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestCompleter_Complete(t *testing.T) {
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse(`[{"id":"a","relevance_score":0.9}]`)))
	}))
	defer server.Close()

	comp := NewCompleter(&CompleterConfig{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Model:    "test-chat-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})

	out, err := comp.Complete(context.Background(), "you rank places", "query: spicy food")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != `[{"id":"a","relevance_score":0.9}]` {
		t.Errorf("content = %q", out)
	}
	if gotReq.Model != "test-chat-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("messages = %v", gotReq.Messages)
	}
	if gotReq.Temperature != 0 {
		t.Errorf("temperature = %f, want 0", gotReq.Temperature)
	}
}

func TestCompleter_APIErrorIsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream down"}}`))
	}))
	defer server.Close()

	comp := NewCompleter(&CompleterConfig{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Model:    "test-chat-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})

	if _, err := comp.Complete(context.Background(), "sys", "user"); !errors.Is(err, domain.ErrProvider) {
		t.Fatalf("error = %v, want ErrProvider", err)
	}
}

func TestCompleter_EmptyChoicesIsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	comp := NewCompleter(&CompleterConfig{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Model:    "test-chat-model",
		Provider: "test",
		Logger:   zap.NewNop(),
	})

	if _, err := comp.Complete(context.Background(), "sys", "user"); !errors.Is(err, domain.ErrProvider) {
		t.Fatalf("error = %v, want ErrProvider", err)
	}
}
