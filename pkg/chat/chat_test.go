package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/perbu/ragqa/pkg/azure"
)

func newTestChat(t *testing.T, handler http.HandlerFunc) *AzureChat {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := azure.NewClient(azure.Options{
		Endpoint:   srv.URL,
		APIKey:     "test-key",
		APIVersion: "2023-05-15",
		HTTPClient: srv.Client(),
	})
	c, err := NewAzureChat(client, "gpt-4o")
	if err != nil {
		t.Fatalf("NewAzureChat failed: %v", err)
	}
	return c
}

func TestAzureChat_Complete(t *testing.T) {
	c := newTestChat(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/deployments/gpt-4o/chat/completions" {
			t.Errorf("Unexpected path '%s'", r.URL.Path)
		}
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "the prompt" {
			t.Errorf("Unexpected messages %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","created":0,"model":"gpt-4o",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Tokyo."},"finish_reason":"stop"}]}`))
	})

	got, err := c.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "Tokyo." {
		t.Errorf("Expected 'Tokyo.', got '%s'", got)
	}
}

func TestAzureChat_NoChoices(t *testing.T) {
	c := newTestChat(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	})

	if _, err := c.Complete(context.Background(), "p"); err == nil {
		t.Error("Expected error for empty choices")
	}
}

func TestAzureChat_QuotaError(t *testing.T) {
	c := newTestChat(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":"429","message":"Rate limit is exceeded."}}`))
	})

	_, err := c.Complete(context.Background(), "p")
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *openai.APIError, got %T: %v", err, err)
	}
	if apiErr.HTTPStatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", apiErr.HTTPStatusCode)
	}
	if !strings.Contains(err.Error(), "gpt-4o") {
		t.Errorf("Expected deployment in error, got %v", err)
	}
}

func TestEchoCompleter(t *testing.T) {
	var c Completer = EchoCompleter{}
	got, err := c.Complete(context.Background(), "context\n\nQuestion: q")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "context\n\nQuestion: q" {
		t.Errorf("Expected prompt echoed, got '%s'", got)
	}
}
