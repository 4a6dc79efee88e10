package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/llm"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const (
	maxOutputTokens = 300
	temperature     = 0.4
)

var errMissingAPIKey = errors.New("openai formatter: API key is not set")

/**
 * The one chat completion call the formatter needs.
 */
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

/**
 * Generates "lesson learned" insights with the OpenAI chat API and
 * validates them before they are published.
 */
type Formatter struct {
	client ChatClient
	model  string
}

func NewFormatter(apiKey, model, baseURL string) (*Formatter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errMissingAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	return &Formatter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Close exists for symmetry with the Gemini formatter; nothing to release.
func (f *Formatter) Close() error {
	return nil
}

/**
 * Sends the story to the model and returns the raw insight as pending.
 */
func (f *Formatter) Format(ctx context.Context, req *llm.FormatRequest) (*llm.FormatResult, error) {
	if err := llm.CheckRequest(req); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       f.model,
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llm.Instructions},
			{Role: openai.ChatMessageRoleUser, Content: strings.TrimSpace(req.Content)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrFormatterUnavailable, err)
	}

	text := firstChoice(resp)
	if text == "" {
		return nil, llm.ErrInvalidFormat
	}

	log.Debug().Str("postID", string(req.PostID)).Str("model", f.model).Msg("OpenAI insight generated")

	return &llm.FormatResult{
		PostID:  req.PostID,
		Insight: text,
		Status:  post.InsightPending,
	}, nil
}

// Validate applies the shared publishing rules.
func (f *Formatter) Validate(ctx context.Context, result *llm.FormatResult) (*llm.FormatResult, error) {
	return llm.ValidateResult(result)
}

// firstChoice returns the first non-blank message across choices.
func firstChoice(resp openai.ChatCompletionResponse) string {
	for _, choice := range resp.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text
		}
	}
	return ""
}
