package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	CohereBaseURL = "https://api.cohere.ai"
	CohereModel   = "command"
)

type CohereGenerator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type cohereRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

type cohereError struct {
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the generation API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cohere API error (%d): %s", e.StatusCode, e.Message)
}

type CohereOption func(*CohereGenerator)

func WithBaseURL(baseURL string) CohereOption {
	return func(g *CohereGenerator) {
		if baseURL != "" {
			g.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithModel(model string) CohereOption {
	return func(g *CohereGenerator) {
		if model != "" {
			g.model = model
		}
	}
}

func WithHTTPClient(client *http.Client) CohereOption {
	return func(g *CohereGenerator) {
		if client != nil {
			g.client = client
		}
	}
}

func NewCohereGenerator(apiKey string, opts ...CohereOption) *CohereGenerator {
	g := &CohereGenerator{
		apiKey:  apiKey,
		baseURL: CohereBaseURL,
		model:   CohereModel,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate calls /v1/generate once and returns the first generation's text
// as received. Failures are not retried.
func (g *CohereGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(cohereRequest{
		Model:       g.model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr cohereError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return "", &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var genResp cohereResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(genResp.Generations) == 0 {
		return "", ErrNoGenerations
	}

	return genResp.Generations[0].Text, nil
}
