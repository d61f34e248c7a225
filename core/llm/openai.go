package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Default generation settings. The endpoint is any OpenAI-compatible chat
// completions API; the defaults target Groq's, matching the deployment this
// pipeline was built against.
const (
	DefaultBaseURL   = "https://api.groq.com/openai/v1"
	DefaultModel     = "llama-3.3-70b-versatile"
	DefaultMaxTokens = 2048

	summaryTemperature = 0.3
	listTemperature    = 0.5
)

// ErrMissingAPIKey is returned when constructing a client without a key.
var ErrMissingAPIKey = errors.New("llm api key is required")

// OpenAIConfig configures the OpenAI-compatible generator.
type OpenAIConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int64
}

// OpenAIGenerator implements Generator against an OpenAI-compatible chat
// completions endpoint.
type OpenAIGenerator struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAIGenerator creates a generator for the configured endpoint.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)

	return &OpenAIGenerator{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Summarize returns a short summary of one source file. Only the leading
// portion of large files is sent.
func (g *OpenAIGenerator) Summarize(ctx context.Context, code, language, path string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize this %s file (%s) in 2-3 sentences, focusing on what it does and why it exists:\n\n%s",
		language, path, truncate(code, 3000),
	)
	return g.complete(ctx, prompt, summaryTemperature)
}

// Generate returns free-form text for a prompt.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.complete(ctx, prompt, listTemperature)
}

// GenerateList returns the parsed items of a bulleted response.
func (g *OpenAIGenerator) GenerateList(ctx context.Context, prompt string) ([]string, error) {
	response, err := g.complete(ctx, prompt, listTemperature)
	if err != nil {
		return nil, err
	}
	return ParseBulletList(response), nil
}

// complete performs one chat completion and returns the response text.
func (g *OpenAIGenerator) complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(g.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("llm completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm completion: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

// truncate limits text to n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
