package ai

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// defaultGeminiBaseURL is the public Google Generative Language endpoint.
const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiRequest is the generateContent payload.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiClient is the Backend for the Google Gemini generateContent API.
type GeminiClient struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// GeminiOption customizes a GeminiClient.
type GeminiOption func(*GeminiClient)

// WithGeminiBaseURL overrides the API base URL (tests and proxies).
func WithGeminiBaseURL(baseURL string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// NewGeminiClient creates a Backend talking to the Gemini API.
func NewGeminiClient(model, apiKey string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		model:   model,
		apiKey:  apiKey,
		baseURL: defaultGeminiBaseURL,
		client:  newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateCommitMessage implements Backend.
func (c *GeminiClient) GenerateCommitMessage(ctx context.Context, diffText, languageCode, jiraTicket, workHours string) (string, error) {
	return generateCommitMessage(ctx, c, diffText, languageCode, jiraTicket, workHours)
}

// GenerateChangelog implements Backend.
func (c *GeminiClient) GenerateChangelog(ctx context.Context, logEntries []string, languageCode string) (string, error) {
	return generateChangelog(ctx, c, logEntries, languageCode)
}

func (c *GeminiClient) complete(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens: defaultMaxTokens,
			Temperature:     deterministicTemperature,
		},
	}

	// Gemini authenticates with the key as a query parameter, not a header.
	endpoint := c.baseURL + "/v1beta/models/" + url.PathEscape(c.model) +
		":generateContent?key=" + url.QueryEscape(c.apiKey)

	var resp geminiResponse
	if err := postJSON(ctx, c.client, "gemini", endpoint, nil, payload, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Compile-time check that GeminiClient implements Backend.
var _ Backend = (*GeminiClient)(nil)
