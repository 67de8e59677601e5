package ai

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// defaultAzureAPIVersion is used when llm.azure_openai.api_version is unset.
const defaultAzureAPIVersion = "2024-02-15-preview"

// AzureOpenAIClient is the Backend for an Azure OpenAI deployment.
// It speaks the same chat completions payload as OpenAI but addresses a
// resource-specific endpoint and authenticates with an api-key header.
type AzureOpenAIClient struct {
	endpoint   string // resource endpoint, e.g. https://myresource.openai.azure.com
	deployment string
	apiVersion string
	apiKey     string
	client     *http.Client
}

// NewAzureOpenAIClient creates a Backend talking to an Azure OpenAI resource.
// An empty deployment falls back to the model name, mirroring how Azure
// deployments are conventionally named; an empty apiVersion uses the default.
func NewAzureOpenAIClient(endpoint, deployment, apiVersion, model, apiKey string) *AzureOpenAIClient {
	if deployment == "" {
		deployment = model
	}
	if apiVersion == "" {
		apiVersion = defaultAzureAPIVersion
	}
	return &AzureOpenAIClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		deployment: deployment,
		apiVersion: apiVersion,
		apiKey:     apiKey,
		client:     newHTTPClient(),
	}
}

// GenerateCommitMessage implements Backend.
func (c *AzureOpenAIClient) GenerateCommitMessage(ctx context.Context, diffText, languageCode, jiraTicket, workHours string) (string, error) {
	return generateCommitMessage(ctx, c, diffText, languageCode, jiraTicket, workHours)
}

// GenerateChangelog implements Backend.
func (c *AzureOpenAIClient) GenerateChangelog(ctx context.Context, logEntries []string, languageCode string) (string, error) {
	return generateChangelog(ctx, c, logEntries, languageCode)
}

func (c *AzureOpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	// The deployment, not the payload, selects the model on Azure.
	payload := chatCompletionRequest{
		Messages:    chatMessages(prompt),
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	headers := map[string]string{"api-key": c.apiKey}

	endpoint := c.endpoint + "/openai/deployments/" + url.PathEscape(c.deployment) +
		"/chat/completions?api-version=" + url.QueryEscape(c.apiVersion)

	var resp chatCompletionResponse
	if err := postJSON(ctx, c.client, "azure_openai", endpoint, headers, payload, &resp); err != nil {
		return "", err
	}

	return firstChoiceContent(resp), nil
}

// Compile-time check that AzureOpenAIClient implements Backend.
var _ Backend = (*AzureOpenAIClient)(nil)
