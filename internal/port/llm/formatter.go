package llm

import (
	"context"
	"errors"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
)

var (
	ErrFormatterUnavailable = errors.New("llm: text completion service unavailable")
	ErrContentRejected      = errors.New("llm: content was rejected")
	ErrInvalidFormat        = errors.New("llm: output did not match the expected format")
)

/**
 * Data sent to the LLM
 * @param PostID post the insight is for
 * @param Content the failure story
 */
type FormatRequest struct {
	PostID  post.ID
	Content string
}

/**
 * Data returned by the LLM
 * @param PostID post the insight is for
 * @param Insight generated "lesson learned" text
 * @param Status InsightPending after Format, Verified or Rejected after Validate
 * @param ValidationReason set when Status is InsightRejected
 */
type FormatResult struct {
	PostID           post.ID
	Insight          string
	Status           post.InsightStatus
	ValidationReason string
}

/**
 * LLM formatter contract
 * Format: always returns InsightPending
 * Validate: checks a FormatResult and sets InsightVerified or InsightRejected
 */
type Formatter interface {
	Format(ctx context.Context, req *FormatRequest) (*FormatResult, error)
	Validate(ctx context.Context, result *FormatResult) (*FormatResult, error)
}
