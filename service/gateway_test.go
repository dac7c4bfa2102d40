package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistantia/model"
)

func newTestLLM(t *testing.T, handler http.HandlerFunc, apiKey string, timeout time.Duration) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := openai.NewClient(
		option.WithBaseURL(server.URL+"/"),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewLLMService(client, "openrouter/auto", apiKey, timeout, logger)
}

func completionBody(content string) string {
	return `{"id":"gen-1","object":"chat.completion","model":"openrouter/auto","choices":[{"index":0,"message":{"role":"assistant","content":` + mustJSON(content) + `},"finish_reason":"stop"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestLLMCompleteSuccess(t *testing.T) {
	var gotBody map[string]any
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionBody("bonjour"))
	}, "test-key", 5*time.Second)

	answer, err := llm.Complete(context.Background(), []ChatMessage{
		{Role: model.MessageRoleSystem, Content: SystemPrompt},
		{Role: model.MessageRoleUser, Content: "salut"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bonjour", answer)

	// the request carries the window verbatim, role and content only
	require.NotNil(t, gotBody)
	assert.Equal(t, "openrouter/auto", gotBody["model"])
	sent, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, sent, 2)
	first := sent[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, SystemPrompt, first["content"])
}

func TestLLMCompleteWithoutKey(t *testing.T) {
	called := false
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}, "", 5*time.Second)

	_, err := llm.Complete(context.Background(), []ChatMessage{{Role: model.MessageRoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.False(t, called)
}

func TestLLMCompleteUpstreamError(t *testing.T) {
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"rate limited","type":"rate_limit"}}`)
	}, "test-key", 5*time.Second)

	_, err := llm.Complete(context.Background(), []ChatMessage{{Role: model.MessageRoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, ErrBadGateway)
}

func TestLLMCompleteEmptyAnswer(t *testing.T) {
	t.Run("no choices", func(t *testing.T) {
		llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"id":"gen-1","object":"chat.completion","model":"openrouter/auto","choices":[]}`)
		}, "test-key", 5*time.Second)

		_, err := llm.Complete(context.Background(), []ChatMessage{{Role: model.MessageRoleUser, Content: "hi"}})
		assert.ErrorIs(t, err, ErrBadGateway)
	})

	t.Run("blank content", func(t *testing.T) {
		llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, completionBody("   "))
		}, "test-key", 5*time.Second)

		_, err := llm.Complete(context.Background(), []ChatMessage{{Role: model.MessageRoleUser, Content: "hi"}})
		assert.ErrorIs(t, err, ErrBadGateway)
	})
}

func TestLLMCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	llm := newTestLLM(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, "test-key", 100*time.Millisecond)
	t.Cleanup(func() { close(release) })

	start := time.Now()
	_, err := llm.Complete(context.Background(), []ChatMessage{{Role: model.MessageRoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, ErrGatewayTimeout)
	assert.Less(t, time.Since(start), 3*time.Second)
}
