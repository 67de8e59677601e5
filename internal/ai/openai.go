package ai

import (
	"context"
	"net/http"
	"strings"
)

// systemPrompt frames every chat-style completion.
const systemPrompt = "You are a helpful assistant that generates git commit messages and changelogs."

// defaultOpenAIBaseURL is the public OpenAI API endpoint.
const defaultOpenAIBaseURL = "https://api.openai.com"

// chatMessage is one message in an OpenAI-compatible chat payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest is the OpenAI chat completions payload, also used
// verbatim by the Azure OpenAI deployment endpoint.
type chatCompletionRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

// chatCompletionResponse is the subset of the response both APIs share.
type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chatMessages builds the two-message conversation for a prompt.
func chatMessages(prompt string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
}

// firstChoiceContent extracts the completion text from a chat response.
func firstChoiceContent(resp chatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}

// OpenAIClient is the Backend for the public OpenAI chat completions API.
type OpenAIClient struct {
	model   string
	apiKey  string
	baseURL string
	client  *http.Client
}

// OpenAIOption customizes an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithOpenAIBaseURL overrides the API base URL (tests and proxies).
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(c *OpenAIClient) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// NewOpenAIClient creates a Backend talking to the OpenAI API.
func NewOpenAIClient(model, apiKey string, opts ...OpenAIOption) *OpenAIClient {
	c := &OpenAIClient{
		model:   model,
		apiKey:  apiKey,
		baseURL: defaultOpenAIBaseURL,
		client:  newHTTPClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateCommitMessage implements Backend.
func (c *OpenAIClient) GenerateCommitMessage(ctx context.Context, diffText, languageCode, jiraTicket, workHours string) (string, error) {
	return generateCommitMessage(ctx, c, diffText, languageCode, jiraTicket, workHours)
}

// GenerateChangelog implements Backend.
func (c *OpenAIClient) GenerateChangelog(ctx context.Context, logEntries []string, languageCode string) (string, error) {
	return generateChangelog(ctx, c, logEntries, languageCode)
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages(prompt),
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var resp chatCompletionResponse
	url := c.baseURL + "/v1/chat/completions"
	if err := postJSON(ctx, c.client, "openai", url, headers, payload, &resp); err != nil {
		return "", err
	}

	return firstChoiceContent(resp), nil
}

// Compile-time check that OpenAIClient implements Backend.
var _ Backend = (*OpenAIClient)(nil)
