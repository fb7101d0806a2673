package iollm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bikeq/bikeq/internal/iollm"
	"github.com/bikeq/bikeq/pkg/config"
	"github.com/bikeq/bikeq/pkg/entity"
	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/bikeq/bikeq/pkg/mapper"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/bikeq/bikeq/pkg/synth"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var prompt = synth.Prompt{System: "write SQL", User: "how many trips"}

func TestOpenAIGenerate(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant",` +
				`"content":"{\"sql\":\"SELECT COUNT(*) FROM trips\",\"params\":[]}"}}]}`))
		}))
	defer srv.Close()

	gen := iollm.NewOpenAI(srv.URL+"/v1/", "sk-test", "gpt-4o", 0.1, nil)
	res, err := gen.Generate(context.Background(), prompt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sql":"SELECT COUNT(*) FROM trips","params":[]}`, string(res))

	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "gpt-4o", got["model"])
	assert.InDelta(t, 0.1, got["temperature"], 0.0001)
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "how many trips", msgs[1].(map[string]any)["content"])
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		msg    string
		status int
		body   string
	}{
		{"api error", http.StatusUnauthorized,
			`{"error":{"message":"invalid api key"}}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"not json", http.StatusOK, `<html></html>`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
	}

	for _, v := range tests {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(v.status)
				_, _ = w.Write([]byte(v.body))
			}))

		gen := iollm.NewOpenAI(srv.URL, "", "gpt-4o", 0, nil)
		_, err := gen.Generate(context.Background(), prompt)
		srv.Close()

		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.LLMResponseError, gnErr.Code, v.msg)
	}
}

func TestOpenAIKeepsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limit reached"}}`))
		}))
	defer srv.Close()

	gen := iollm.NewOpenAI(srv.URL, "k", "m", 0, nil)
	_, err := gen.Generate(context.Background(), prompt)
	require.Error(t, err)
	assert.Contains(t, err.(*gn.Error).Err.Error(), "rate limit reached")
	assert.Contains(t, err.(*gn.Error).Err.Error(), "429")
}

func TestOpenAIUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gen := iollm.NewOpenAI(url, "k", "m", 0, nil)
	_, err := gen.Generate(context.Background(), prompt)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.LLMRequestError, gnErr.Code)
}

func TestOpenAIDeadline(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(
		func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-done:
			}
		}))
	defer srv.Close()
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	gen := iollm.NewOpenAI(srv.URL, "k", "m", 0, nil)
	_, err := gen.Generate(ctx, prompt)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the synthesizer turns it into a timeout
	_, err = synth.New(gen, synth.OptTimeout(50*time.Millisecond)).
		Synthesize(context.Background(), "how many trips",
			entity.NewBag(), schema.Description{}, mapper.NewMapping())
	require.Error(t, err)
	assert.Equal(t, errcode.GenerationTimeoutError, err.(*gn.Error).Code)
}

func TestNew(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := config.New().LLM
	_, err := iollm.New(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errcode.LLMConfigError, err.(*gn.Error).Code)

	t.Setenv("OPENAI_API_KEY", "sk-env")
	assert.Equal(t, "sk-env", iollm.APIKey(cfg))
	gen, err := iollm.New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &iollm.OpenAI{}, gen)

	// local servers do not need a key
	cfg.BaseURL = "http://localhost:11434/v1"
	t.Setenv("OPENAI_API_KEY", "")
	_, err = iollm.New(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Provider = iollm.ProviderGemini
	_, err = iollm.New(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errcode.LLMConfigError, err.(*gn.Error).Code)

	cfg.APIKey = "explicit"
	t.Setenv("GEMINI_API_KEY", "from-env")
	assert.Equal(t, "explicit", iollm.APIKey(cfg))

	cfg.Provider = "unknown"
	_, err = iollm.New(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errcode.LLMConfigError, err.(*gn.Error).Code)
}
