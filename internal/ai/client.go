package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/git-llm-tool/internal/errors"
)

// Generation parameters shared by the chat-style providers.
const (
	// defaultMaxTokens bounds the completion length for commit messages
	// and changelogs.
	defaultMaxTokens = 500

	// defaultTemperature is used by the OpenAI-family and Anthropic APIs.
	defaultTemperature = 0.7

	// deterministicTemperature is used by Gemini and Ollama, which respond
	// better to near-deterministic settings for structured output.
	deterministicTemperature = 0.1
)

// requestTimeout bounds one provider call. Slow models on large diffs can
// legitimately take minutes; the surrounding command has no retry loop, so
// a timeout here fails the whole invocation.
const requestTimeout = 120 * time.Second

// newHTTPClient builds the HTTP client used by every provider backend.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// postJSON marshals payload, POSTs it to url with the given headers, and
// decodes the JSON response into result. Every request carries a generated
// X-Request-ID so a failure in the logs can be tied to one invocation.
//
// Non-2xx statuses and transport failures come back wrapped in
// ErrGeneration with the provider name and status only; response bodies of
// failed calls are logged at debug level, never included in the error.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(errors.ErrGeneration, "%s: failed to marshal request: %v", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(errors.ErrGeneration, "%s: failed to build request: %v", provider, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("component", "ai").
		Str("provider", provider).
		Str("request_id", requestID).
		Logger()
	logger.Debug().Int("payload_bytes", len(body)).Msg("sending generation request")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrapf(errors.ErrGeneration, "%s: request failed: %v", provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		logger.Debug().
			Int("status", resp.StatusCode).
			Str("body", string(detail)).
			Msg("provider returned error status")
		return errors.Wrapf(errors.ErrGeneration, "%s: API returned status %s", provider, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Wrapf(errors.ErrGeneration, "%s: failed to decode response: %v", provider, err)
	}

	logger.Debug().Msg("generation request completed")
	return nil
}
