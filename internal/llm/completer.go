// Package llm asks a chat model what it knows about a company.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/brandlens/ai-visibility/backend/internal/config"
)

// ErrNotConfigured is returned when the selected provider has no API key
var ErrNotConfigured = errors.New("llm provider is not configured")

// Completer sends one system and one user message and returns the reply text
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ChatCompleter talks to any OpenAI-compatible chat completions endpoint
type ChatCompleter struct {
	chatModel model.BaseChatModel
}

func NewChatCompleter(chatModel model.BaseChatModel) *ChatCompleter {
	return &ChatCompleter{chatModel: chatModel}
}

func NewOpenAICompleter(ctx context.Context, cfg *config.Config) (*ChatCompleter, error) {
	if cfg.LLM.OpenAIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is empty", ErrNotConfigured)
	}

	temperature := cfg.LLM.Temperature
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.OpenAIKey,
		Model:       cfg.LLM.Model,
		Temperature: &temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewChatCompleter(chatModel), nil
}

func (c *ChatCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}
	return resp.Content, nil
}

// NewCompleter builds the completer for the configured provider
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, cfg)
	case config.ProviderOpenAI, "":
		return NewOpenAICompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
