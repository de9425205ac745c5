package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicMaxTokens   = 8192
	anthropicTimeout     = 120 * time.Second
)

// AnthropicClient implements Client against the Anthropic Messages API.
// The provider has no SDK dependency here; the API is a single JSON
// endpoint and a plain HTTP client keeps the surface small.
type AnthropicClient struct {
	httpClient *http.Client
	config     *Config
	apiKey     string
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(config *Config, apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, &MissingKeyError{Provider: ProviderAnthropic}
	}
	return &AnthropicClient{
		httpClient: &http.Client{Timeout: anthropicTimeout},
		config:     config,
		apiKey:     apiKey,
	}, nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent generates text content using the specified model tier
func (c *AnthropicClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.message(ctx, prompt, tier)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *AnthropicClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.message(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *AnthropicClient) message(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &ProviderError{Provider: ProviderAnthropic, Message: "no model configured for tier " + string(tier)}
	}

	body, err := json.Marshal(anthropicRequest{
		Model:       modelName,
		MaxTokens:   anthropicMaxTokens,
		Temperature: generationTemperature,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &ProviderError{Provider: ProviderAnthropic, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: ProviderAnthropic, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: ProviderAnthropic, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: ProviderAnthropic, Message: "failed to read response", Cause: err}
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", &ProviderError{Provider: ProviderAnthropic, Message: "failed to decode response", Cause: err}
	}
	if decoded.Error != nil {
		return "", &ProviderError{
			Provider: ProviderAnthropic,
			Message:  fmt.Sprintf("API error %s (HTTP %d): %s", decoded.Error.Type, resp.StatusCode, decoded.Error.Message),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: ProviderAnthropic, Message: fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode)}
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", &ProviderError{Provider: ProviderAnthropic, Message: "no text content in response"}
}

// GetModel returns the model name for a tier
func (c *AnthropicClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *AnthropicClient) Close() error {
	return nil
}
