package llm

import (
	"strings"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
)

// Instructions is the system prompt every provider sends with the story.
const Instructions = `You read short stories people share about their own failures.
Reply with a "lesson learned" reflection for the author.

Rules:
1. Two or three sentences, 400 characters at most, on a single line.
2. Warm and specific to the story. No judgement, no cliches about failure being good.
3. No names, URLs, lists, hashtags or emoji.
4. Do not repeat the story and do not add any preface. Output the reflection only.`

// CheckRequest rejects requests without a post id or story.
func CheckRequest(req *FormatRequest) error {
	if req == nil || req.PostID == "" || strings.TrimSpace(req.Content) == "" {
		return ErrInvalidFormat
	}
	return nil
}

/**
 * Applies the publishing rules to a generated insight in place.
 * Empty text fails with ErrInvalidFormat, text breaking a rule fails with
 * ErrContentRejected; both leave the result Rejected with a reason.
 */
func ValidateResult(result *FormatResult) (*FormatResult, error) {
	if result == nil || result.PostID == "" {
		return nil, ErrInvalidFormat
	}

	text := post.NormalizeInsightText(result.Insight)
	reason := post.CheckInsightText(text)
	switch {
	case text == "":
		result.Status, result.ValidationReason = post.InsightRejected, reason
		return result, ErrInvalidFormat
	case reason != "":
		result.Status, result.ValidationReason = post.InsightRejected, reason
		return result, ErrContentRejected
	}

	result.Insight = text
	result.Status = post.InsightVerified
	result.ValidationReason = ""
	return result, nil
}
