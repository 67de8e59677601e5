package ai

import (
	"context"
	"net/http"
	"strings"
)

const (
	// defaultAnthropicBaseURL is the public Anthropic API endpoint.
	defaultAnthropicBaseURL = "https://api.anthropic.com"

	// anthropicVersion is the required API version header value.
	anthropicVersion = "2023-06-01"
)

// anthropicRequest is the Anthropic messages API payload.
type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
	Messages    []chatMessage `json:"messages"`
	System      string        `json:"system,omitempty"`
}

// anthropicResponse is the subset of the messages API response we read.
// Content arrives as a list of blocks; the completion is the first text block.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// AnthropicClient is the Backend for the Anthropic messages API.
type AnthropicClient struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// AnthropicOption customizes an AnthropicClient.
type AnthropicOption func(*AnthropicClient)

// WithAnthropicBaseURL overrides the API base URL (tests and proxies).
func WithAnthropicBaseURL(baseURL string) AnthropicOption {
	return func(c *AnthropicClient) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// NewAnthropicClient creates a Backend talking to the Anthropic API.
func NewAnthropicClient(model, apiKey string, opts ...AnthropicOption) *AnthropicClient {
	c := &AnthropicClient{
		model:   model,
		apiKey:  apiKey,
		baseURL: defaultAnthropicBaseURL,
		client:  newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateCommitMessage implements Backend.
func (c *AnthropicClient) GenerateCommitMessage(ctx context.Context, diffText, languageCode, jiraTicket, workHours string) (string, error) {
	return generateCommitMessage(ctx, c, diffText, languageCode, jiraTicket, workHours)
}

// GenerateChangelog implements Backend.
func (c *AnthropicClient) GenerateChangelog(ctx context.Context, logEntries []string, languageCode string) (string, error) {
	return generateChangelog(ctx, c, logEntries, languageCode)
}

func (c *AnthropicClient) complete(ctx context.Context, prompt string) (string, error) {
	payload := anthropicRequest{
		Model:       c.model,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
		System:      systemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp anthropicResponse
	url := c.baseURL + "/v1/messages"
	if err := postJSON(ctx, c.client, "anthropic", url, headers, payload, &resp); err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}

// Compile-time check that AnthropicClient implements Backend.
var _ Backend = (*AnthropicClient)(nil)
