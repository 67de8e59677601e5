package ai

import (
	"context"
	"net/http"
	"strings"
)

// ollamaRequest is the /api/generate payload.
// Streaming is disabled; one blocking call returns the whole completion.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the subset of the generate response we read.
type ollamaResponse struct {
	Response string `json:"response"`
}

// OllamaClient is the Backend for a local Ollama server.
// Ollama requires no credential; the base URL comes from
// llm.ollama_base_url.
type OllamaClient struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOllamaClient creates a Backend talking to an Ollama server.
func NewOllamaClient(model, baseURL string) *OllamaClient {
	return &OllamaClient{
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

// GenerateCommitMessage implements Backend.
func (c *OllamaClient) GenerateCommitMessage(ctx context.Context, diffText, languageCode, jiraTicket, workHours string) (string, error) {
	return generateCommitMessage(ctx, c, diffText, languageCode, jiraTicket, workHours)
}

// GenerateChangelog implements Backend.
func (c *OllamaClient) GenerateChangelog(ctx context.Context, logEntries []string, languageCode string) (string, error) {
	return generateChangelog(ctx, c, logEntries, languageCode)
}

func (c *OllamaClient) complete(ctx context.Context, prompt string) (string, error) {
	payload := ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		System: systemPrompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: deterministicTemperature,
			NumPredict:  defaultMaxTokens,
		},
	}

	var resp ollamaResponse
	url := c.baseURL + "/api/generate"
	if err := postJSON(ctx, c.client, "ollama", url, nil, payload, &resp); err != nil {
		return "", err
	}

	return resp.Response, nil
}

// Compile-time check that OllamaClient implements Backend.
var _ Backend = (*OllamaClient)(nil)
