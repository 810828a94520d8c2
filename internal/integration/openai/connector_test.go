package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
	pkgRetry "github.com/myebookchess-cloud/jyro-demo/internal/pkg/retry"
)

func testConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "gpt-4.1-mini",
		Temperature: 0.3,
		Timeout:     5 * time.Second,
		ConnTimeout: 5 * time.Second,
		Retry: pkgRetry.RetryConfig{
			Attempts: 1,
			Delay:    time.Millisecond,
			MaxDelay: time.Millisecond,
		},
	}
}

func completionResponse(content string) entity.ChatCompletionResponse {
	return entity.ChatCompletionResponse{
		Choices: []entity.ChatCompletionChoice{
			{Message: entity.ChatMessage{Role: entity.ChatRoleAssistant, Content: content}},
		},
	}
}

func TestComplete_SendsModelTemperatureAndAuth(t *testing.T) {
	var captured entity.ChatCompletionRequest
	var authHeader, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(completionResponse("Bonjour!"))
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	messages := []entity.ChatMessage{
		{Role: entity.ChatRoleSystem, Content: "You are a helpful assistant."},
		{Role: entity.ChatRoleUser, Content: "Say hello."},
	}

	answer, err := conn.Complete(context.Background(), messages)
	require.NoError(t, err)

	assert.Equal(t, "Bonjour!", answer)
	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "gpt-4.1-mini", captured.Model)
	assert.InDelta(t, 0.3, captured.Temperature, 1e-9)
	assert.Equal(t, messages, captured.Messages)
}

func TestComplete_TrimsAnswerWhitespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse("  answer \n"))
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	answer, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.ChatCompletionResponse{})
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "q"}})
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestComplete_BlankContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse("   "))
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "q"}})
	assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestComplete_UpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "q"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestComplete_SingleAttemptByDefault(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	conn := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "q"}})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestComplete_RetriesWhenConfigured(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(completionResponse("recovered"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retry.Attempts = 3

	conn := NewConnector(cfg, zap.NewNop())

	answer, err := conn.Complete(context.Background(), []entity.ChatMessage{{Role: entity.ChatRoleUser, Content: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "recovered", answer)
	assert.Equal(t, 3, calls)
}
