package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinNourian/HealthAssistant/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "symptoms")
		assert.Nil(t, req.ResponseFormat)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Fever and cough."}},
			},
		})
	})

	text, err := svc.Complete(context.Background(), "What are the symptoms?", driven.CompleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Fever and cough.", text)
}

func TestComplete_SendsZeroTemperature(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		temp, ok := raw["temperature"]
		require.True(t, ok, "temperature must be present in the request")
		assert.Equal(t, "0", string(temp))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "ok"}},
			},
		})
	})

	_, err := svc.Complete(context.Background(), "prompt", driven.CompleteOptions{Temperature: 0})
	require.NoError(t, err)
}

func TestCompleteJSON_SetsResponseFormat(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"answer_found": false}`}},
			},
		})
	})

	raw, err := svc.CompleteJSON(context.Background(), "prompt", driven.CompleteOptions{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer_found": false}`, raw)
}

func TestComplete_APIError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limit", "type": "rate_limit"},
		})
	})

	_, err := svc.Complete(context.Background(), "q", driven.CompleteOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestComplete_NoChoices(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := svc.Complete(context.Background(), "q", driven.CompleteOptions{})
	assert.Error(t, err)
}
