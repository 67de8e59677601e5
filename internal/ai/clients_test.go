package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// capturedRequest records what a fake provider server received.
type capturedRequest struct {
	path    string
	query   string
	headers http.Header
	body    map[string]any
}

// newProviderServer returns an httptest server that records the request
// and replies with the given JSON body.
func newProviderServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&captured.body); err != nil {
			captured.body = nil
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

const chatResponse = `{"choices":[{"message":{"role":"assistant","content":"feat: add config layer"}}]}`

func TestOpenAIClient_GenerateCommitMessage(t *testing.T) {
	t.Parallel()

	server, captured := newProviderServer(t, http.StatusOK, chatResponse)
	client := NewOpenAIClient("gpt-4o", "sk-test", WithOpenAIBaseURL(server.URL))

	msg, err := client.GenerateCommitMessage(context.Background(), "diff --git a/x b/x", "en", "", "")
	require.NoError(t, err)
	assert.Equal(t, "feat: add config layer", msg)

	assert.Equal(t, "/v1/chat/completions", captured.path)
	assert.Equal(t, "Bearer sk-test", captured.headers.Get("Authorization"))
	assert.Equal(t, "application/json", captured.headers.Get("Content-Type"))
	assert.NotEmpty(t, captured.headers.Get("X-Request-ID"))

	assert.Equal(t, "gpt-4o", captured.body["model"])
	assert.InDelta(t, float64(defaultMaxTokens), captured.body["max_tokens"], 0)
	assert.InDelta(t, defaultTemperature, captured.body["temperature"], 0.001)

	messages, ok := captured.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system, ok := messages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", system["role"])

	user, ok := messages[1].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, user["content"], "diff --git a/x b/x")
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	t.Parallel()

	const secret = "sk-verysecretvalue"
	server, _ := newProviderServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key"}}`)
	client := NewOpenAIClient("gpt-4o", secret, WithOpenAIBaseURL(server.URL))

	_, err := client.GenerateCommitMessage(context.Background(), "diff", "en", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGeneration)
	assert.Contains(t, err.Error(), "401")
	assert.NotContains(t, err.Error(), secret, "API key must never appear in errors")
	assert.NotContains(t, err.Error(), "bad key", "provider response body must never appear in errors")
}

func TestOpenAIClient_EmptyCompletion(t *testing.T) {
	t.Parallel()

	server, _ := newProviderServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`)
	client := NewOpenAIClient("gpt-4o", "sk-test", WithOpenAIBaseURL(server.URL))

	_, err := client.GenerateChangelog(context.Background(), []string{"feat: x"}, "en")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGeneration)
	assert.Contains(t, err.Error(), "empty response")
}

func TestOpenAIClient_CancelledContext(t *testing.T) {
	t.Parallel()

	server, _ := newProviderServer(t, http.StatusOK, chatResponse)
	client := NewOpenAIClient("gpt-4o", "sk-test", WithOpenAIBaseURL(server.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateCommitMessage(ctx, "diff", "en", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUserCancelled)
}

func TestAzureOpenAIClient_GenerateCommitMessage(t *testing.T) {
	t.Parallel()

	server, captured := newProviderServer(t, http.StatusOK, chatResponse)
	client := NewAzureOpenAIClient(server.URL, "my-deployment", "2024-02-15-preview", "gpt-4o", "az-key")

	msg, err := client.GenerateCommitMessage(context.Background(), "diff", "en", "PROJ-42", "0w 0d 2h 0m")
	require.NoError(t, err)
	assert.Equal(t, "feat: add config layer", msg)

	assert.Equal(t, "/openai/deployments/my-deployment/chat/completions", captured.path)
	assert.Contains(t, captured.query, "api-version=2024-02-15-preview")
	assert.Equal(t, "az-key", captured.headers.Get("api-key"))
	assert.Empty(t, captured.headers.Get("Authorization"))

	// The deployment selects the model; the payload must not carry one.
	_, hasModel := captured.body["model"]
	assert.False(t, hasModel)

	messages, ok := captured.body["messages"].([]any)
	require.True(t, ok)
	user, ok := messages[1].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, user["content"], "PROJ-42")
	assert.Contains(t, user["content"], "0w 0d 2h 0m")
}

func TestAzureOpenAIClient_DeploymentDefaultsToModel(t *testing.T) {
	t.Parallel()

	server, captured := newProviderServer(t, http.StatusOK, chatResponse)
	client := NewAzureOpenAIClient(server.URL, "", "", "gpt-4o", "az-key")

	_, err := client.GenerateChangelog(context.Background(), []string{"fix: y"}, "en")
	require.NoError(t, err)

	assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", captured.path)
	assert.Contains(t, captured.query, "api-version="+defaultAzureAPIVersion)
}

func TestAnthropicClient_GenerateCommitMessage(t *testing.T) {
	t.Parallel()

	response := `{"content":[{"type":"text","text":"fix: handle empty diff"}]}`
	server, captured := newProviderServer(t, http.StatusOK, response)
	client := NewAnthropicClient("claude-3-5-sonnet-20241022", "sk-ant-test", WithAnthropicBaseURL(server.URL))

	msg, err := client.GenerateCommitMessage(context.Background(), "diff", "en", "", "")
	require.NoError(t, err)
	assert.Equal(t, "fix: handle empty diff", msg)

	assert.Equal(t, "/v1/messages", captured.path)
	assert.Equal(t, "sk-ant-test", captured.headers.Get("x-api-key"))
	assert.Equal(t, anthropicVersion, captured.headers.Get("anthropic-version"))

	assert.Equal(t, "claude-3-5-sonnet-20241022", captured.body["model"])
	assert.InDelta(t, float64(defaultMaxTokens), captured.body["max_tokens"], 0)
	assert.Equal(t, systemPrompt, captured.body["system"])
}

func TestAnthropicClient_SkipsNonTextBlocks(t *testing.T) {
	t.Parallel()

	response := `{"content":[{"type":"thinking","text":""},{"type":"text","text":"docs: update readme"}]}`
	server, _ := newProviderServer(t, http.StatusOK, response)
	client := NewAnthropicClient("claude-3-opus", "sk-ant-test", WithAnthropicBaseURL(server.URL))

	msg, err := client.GenerateChangelog(context.Background(), []string{"docs: update readme"}, "en")
	require.NoError(t, err)
	assert.Equal(t, "docs: update readme", msg)
}

func TestGeminiClient_GenerateChangelog(t *testing.T) {
	t.Parallel()

	response := `{"candidates":[{"content":{"parts":[{"text":"## Features\n- added things"}]}}]}`
	server, captured := newProviderServer(t, http.StatusOK, response)
	client := NewGeminiClient("gemini-1.5-pro", "g-key", WithGeminiBaseURL(server.URL))

	out, err := client.GenerateChangelog(context.Background(), []string{"feat: added things"}, "en")
	require.NoError(t, err)
	assert.Equal(t, "## Features\n- added things", out)

	assert.Equal(t, "/v1beta/models/gemini-1.5-pro:generateContent", captured.path)
	assert.Contains(t, captured.query, "key=g-key")

	genCfg, ok := captured.body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, deterministicTemperature, genCfg["temperature"], 0.001)
	assert.InDelta(t, float64(defaultMaxTokens), genCfg["maxOutputTokens"], 0)
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	t.Parallel()

	server, _ := newProviderServer(t, http.StatusOK, `{"candidates":[]}`)
	client := NewGeminiClient("gemini-1.5-flash", "g-key", WithGeminiBaseURL(server.URL))

	_, err := client.GenerateCommitMessage(context.Background(), "diff", "en", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGeneration)
}

func TestOllamaClient_GenerateCommitMessage(t *testing.T) {
	t.Parallel()

	server, captured := newProviderServer(t, http.StatusOK, `{"response":"chore: bump deps"}`)
	client := NewOllamaClient("llama3.2", server.URL)

	msg, err := client.GenerateCommitMessage(context.Background(), "diff", "de", "", "")
	require.NoError(t, err)
	assert.Equal(t, "chore: bump deps", msg)

	assert.Equal(t, "/api/generate", captured.path)
	assert.Equal(t, "llama3.2", captured.body["model"])
	assert.Equal(t, false, captured.body["stream"])
	assert.Equal(t, systemPrompt, captured.body["system"])

	// Language instruction flows through the prompt.
	assert.Contains(t, captured.body["prompt"], "German")

	options, ok := captured.body["options"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, deterministicTemperature, options["temperature"], 0.001)
}

func TestOllamaClient_ServerUnavailable(t *testing.T) {
	t.Parallel()

	server, _ := newProviderServer(t, http.StatusOK, `{}`)
	url := server.URL
	server.Close()

	client := NewOllamaClient("llama3.2", url)

	_, err := client.GenerateChangelog(context.Background(), []string{"feat: z"}, "en")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrGeneration)
}
