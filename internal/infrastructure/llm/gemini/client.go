// Package gemini calls the Gemini generateContent REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/infrastructure/llm"
	"github.com/kirillkom/slidemaker/internal/infrastructure/resilience"
)

const (
	provider       = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
)

var errMissingAPIKey = errors.New("gemini api key is not configured")

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithExecutor(executor *resilience.Executor) Option {
	return func(c *Client) {
		c.executor = executor
	}
}

// New creates a client using apiKey as the server-side key. A request policy
// carrying its own key takes precedence.
func New(apiKey, model string, opts ...Option) *Client {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     strings.TrimSpace(apiKey),
		model:      model,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (c *Client) Synthesize(ctx context.Context, text string, policy domain.SynthesisPolicy) (string, error) {
	apiKey := strings.TrimSpace(policy.APIKey)
	if apiKey == "" {
		apiKey = c.apiKey
	}
	if apiKey == "" {
		return "", domain.WrapError(domain.ErrUnauthorized, "gemini generate", errMissingAPIKey)
	}
	model := c.model
	if m := strings.TrimSpace(policy.Model); m != "" {
		model = m
	}

	request := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: llm.BuildSlidesPrompt(text)}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	var response generateResponse
	call := func(ctx context.Context) error {
		return c.generateContent(ctx, apiKey, model, request, &response)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "gemini.generate", call, llm.Classify)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", llm.WrapTemporary("gemini generate", err)
	}

	if len(response.Candidates) == 0 {
		if reason := response.PromptFeedback.BlockReason; reason != "" {
			return "", fmt.Errorf("gemini generate: prompt blocked: %s", reason)
		}
		return "", fmt.Errorf("gemini generate: response has no candidates")
	}
	var out strings.Builder
	for _, p := range response.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return strings.TrimSpace(out.String()), nil
}

func (c *Client) generateContent(ctx context.Context, apiKey, model string, payload generateRequest, out *generateResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := c.baseURL + "/v1beta/models/" + url.PathEscape(model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		statusErr := llm.NewHTTPStatusError(provider, "generate", resp)
		if isAPIKeyRejection(statusErr) {
			return domain.WrapError(domain.ErrUnauthorized, "gemini generate", statusErr)
		}
		return statusErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode generate response: %w", err)
	}
	return nil
}

func isAPIKeyRejection(err *llm.HTTPStatusError) bool {
	if err.StatusCode == http.StatusUnauthorized || err.StatusCode == http.StatusForbidden {
		return true
	}
	return strings.Contains(err.Body, "API_KEY_INVALID") || strings.Contains(err.Body, "API key")
}
