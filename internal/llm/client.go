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
	defaultMaxTokens   = 1024
	defaultTemperature = 0.1
)

// Client implements the Service interface with multiple provider support
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new LLM client with the given configuration. Provider
// defaults are applied here; a missing API key for a remote provider is a
// configuration error.
func NewClient(config Config) (*Client, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}

	if config.Temperature <= 0 {
		config.Temperature = defaultTemperature
	}

	switch config.Provider {
	case ProviderOpenAI:
		if config.APIKey == "" {
			return nil, fmt.Errorf("API key is required for OpenAI provider")
		}
		if config.BaseURL == "" {
			config.BaseURL = "https://api.openai.com/v1"
		}
	case ProviderAnthropic:
		if config.APIKey == "" {
			return nil, fmt.Errorf("API key is required for Anthropic provider")
		}
		if config.BaseURL == "" {
			config.BaseURL = "https://api.anthropic.com/v1"
		}
	case ProviderOllama, ProviderLocal:
		if config.BaseURL == "" {
			config.BaseURL = "http://localhost:11434"
		}
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Complete sends one prompt to the configured provider and returns the raw
// response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	switch c.config.Provider {
	case ProviderOpenAI:
		return c.completeOpenAI(ctx, prompt)
	case ProviderAnthropic:
		return c.completeAnthropic(ctx, prompt)
	case ProviderOllama, ProviderLocal:
		return c.completeOllama(ctx, prompt)
	default:
		return "", fmt.Errorf("unsupported provider: %s", c.config.Provider)
	}
}

// OpenAI API structures
type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	Temperature    float64               `json:"temperature,omitempty"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
	Error   *openAIError   `json:"error,omitempty"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// completeOpenAI handles OpenAI API calls
func (c *Client) completeOpenAI(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model: c.config.Model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
		Temperature:    c.config.Temperature,
		MaxTokens:      c.config.MaxTokens,
		ResponseFormat: &openAIResponseFormat{Type: "json_object"},
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.config.APIKey,
	}

	respBody, err := c.makeRequest(ctx, "/chat/completions", reqBody, headers)
	if err != nil {
		return "", err
	}

	var response openAIResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("OpenAI API error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return response.Choices[0].Message.Content, nil
}

// Anthropic API structures
type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// completeAnthropic handles Anthropic API calls
func (c *Client) completeAnthropic(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	headers := map[string]string{
		"x-api-key":         c.config.APIKey,
		"anthropic-version": "2023-06-01",
	}

	respBody, err := c.makeRequest(ctx, "/messages", reqBody, headers)
	if err != nil {
		return "", err
	}

	var response anthropicResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("failed to parse Anthropic response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("Anthropic API error: %s", response.Error.Message)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no response from Anthropic")
	}

	return response.Content[0].Text, nil
}

// Ollama API structures
type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// completeOllama handles Ollama API calls
func (c *Client) completeOllama(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: map[string]any{
			"temperature": c.config.Temperature,
			"num_predict": c.config.MaxTokens,
		},
	}

	respBody, err := c.makeRequest(ctx, "/api/generate", reqBody, nil)
	if err != nil {
		return "", err
	}

	var response ollamaResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("failed to parse Ollama response: %w", err)
	}

	if response.Error != "" {
		return "", fmt.Errorf("Ollama API error: %s", response.Error)
	}

	return response.Response, nil
}

// makeRequest makes an HTTP request to the provider API
func (c *Client) makeRequest(
	ctx context.Context,
	endpoint string,
	reqBody interface{},
	headers map[string]string,
) ([]byte, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.BaseURL+endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
