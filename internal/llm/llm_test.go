package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Complete(t *testing.T) {
	var got openaiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}],"usage":{"prompt_tokens":12,"completion_tokens":3}}`)) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewOpenAIClient(ClientConfig{APIKey: "sk-test", BaseURL: server.URL})

	resp, err := client.Complete(context.Background(), Request{
		System:      "be brief",
		Messages:    []Message{{Role: "user", Content: "hi"}},
		Temperature: 0.7,
		JSON:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"ok":true}`, resp.Text)
	assert.Equal(t, 12, resp.InputTokens)
	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
}

func TestOpenAIClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(ClientConfig{APIKey: "sk-test", BaseURL: server.URL})

	_, err := client.Complete(context.Background(), Request{Messages: []Message{{Role: "user", Content: "hi"}}})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, ProviderOpenAI, apiErr.Provider)
	assert.Contains(t, apiErr.Message, "rate limited")
}

func TestGeminiClient_Complete(t *testing.T) {
	var got geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-1.5-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "g-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hello "},{"text":"world"}]}}]}`)) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewGeminiClient(ClientConfig{APIKey: "g-key", BaseURL: server.URL})

	resp, err := client.Complete(context.Background(), Request{
		System: "system prompt",
		Messages: []Message{
			{Role: "user", Content: "q1"},
			{Role: "assistant", Content: "a1"},
			{Role: "user", Content: "q2"},
		},
		JSON: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", resp.Text)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "system prompt", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`)) //nolint:errcheck // test server
	}))
	defer server.Close()

	_, err := NewGeminiClient(ClientConfig{APIKey: "g-key", BaseURL: server.URL}).
		Complete(context.Background(), Request{Messages: []Message{{Role: "user", Content: "hi"}}})

	assert.Error(t, err)
}

func TestComplete_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOpenAIClient(ClientConfig{APIKey: "sk", BaseURL: server.URL}).
		Complete(ctx, Request{Messages: []Message{{Role: "user", Content: "hi"}}})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComplete_LimiterWaitPastDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewOpenAIClient(ClientConfig{APIKey: "sk", BaseURL: server.URL, RateLimit: 0.01, Burst: 1})
	req := Request{Messages: []Message{{Role: "user", Content: "hi"}}}

	_, err := client.Complete(context.Background(), req)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Complete(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, ctx.Err())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(NewOpenAIClient(ClientConfig{APIKey: "sk"}))

	b, err := r.Get(ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", b.Model())

	_, err = r.Get(ProviderGemini)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	assert.Equal(t, []Provider{ProviderOpenAI}, r.Providers())
}

func TestNewRegistryFromKeys(t *testing.T) {
	_, err := NewRegistryFromKeys(ClientConfig{}, ClientConfig{})
	assert.Error(t, err)

	r, err := NewRegistryFromKeys(ClientConfig{APIKey: "sk"}, ClientConfig{APIKey: "g", Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	assert.Equal(t, []Provider{ProviderGemini, ProviderOpenAI}, r.Providers())

	g, err := r.Get(ProviderGemini)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", g.Model())
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p)

	p, err = ParseProvider("gemini")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ParseProvider("cohere")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
