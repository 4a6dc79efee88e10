package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/llm"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const (
	maxOutputTokens = 300
	temperature     = 0.4
)

var errMissingAPIKey = errors.New("gemini formatter: API key is not set")

var newGeminiClient = genai.NewClient

// generator is the one genai.GenerativeModel call the formatter makes.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Formatter writes post insights with a Gemini model.
type Formatter struct {
	model   generator
	name    string
	release func() error
}

/**
 * Opens a Gemini client for apiKey. A blank model falls back to
 * config.DefaultGeminiModel.
 */
func NewFormatter(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Formatter, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errMissingAPIKey
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(model) == "" {
		model = config.DefaultGeminiModel
	}

	client, err := newGeminiClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrFormatterUnavailable, err)
	}
	return &Formatter{
		model:   tune(client.GenerativeModel(model)),
		name:    model,
		release: client.Close,
	}, nil
}

func (f *Formatter) Close() error {
	if f == nil || f.release == nil {
		return nil
	}
	return f.release()
}

// Format sends the story as the only user part; the rules travel as the
// model's system instruction.
func (f *Formatter) Format(ctx context.Context, req *llm.FormatRequest) (*llm.FormatResult, error) {
	if err := llm.CheckRequest(req); err != nil {
		return nil, err
	}
	if f.model == nil {
		return nil, fmt.Errorf("%w: gemini model is not configured", llm.ErrFormatterUnavailable)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := f.model.GenerateContent(ctx, genai.Text(strings.TrimSpace(req.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrFormatterUnavailable, err)
	}
	text := firstText(resp)
	if text == "" {
		return nil, llm.ErrInvalidFormat
	}

	log.Debug().Str("postID", string(req.PostID)).Str("model", f.name).Msg("Gemini insight generated")
	return &llm.FormatResult{PostID: req.PostID, Insight: text, Status: post.InsightPending}, nil
}

func (f *Formatter) Validate(ctx context.Context, result *llm.FormatResult) (*llm.FormatResult, error) {
	return llm.ValidateResult(result)
}

func tune(model *genai.GenerativeModel) *genai.GenerativeModel {
	model.SetCandidateCount(1)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.SetTemperature(temperature)
	model.SystemInstruction = genai.NewUserContent(genai.Text(llm.Instructions))
	return model
}

// firstText returns the first non-blank text part across candidates.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				if trimmed := strings.TrimSpace(string(text)); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}
