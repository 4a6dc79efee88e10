package post

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// InsightStatus is the generation state of a post's insight.
type InsightStatus string

const (
	InsightPending  InsightStatus = "pending"
	InsightVerified InsightStatus = "verified"
	InsightRejected InsightStatus = "rejected"
)

var (
	// ErrInvalidInsightStatus is returned for an unknown stored status.
	ErrInvalidInsightStatus = errors.New("post: invalid insight status")
	// ErrInvalidInsightTransition is returned when the insight is no longer pending.
	ErrInvalidInsightTransition = errors.New("post: invalid insight transition")
	// ErrEmptyInsight is returned when a verified insight has no text.
	ErrEmptyInsight = errors.New("post: insight is empty")
)

const (
	MinInsightLength = 40
	MaxInsightLength = 400
)

var bannedInsightWords = []string{"kill", "suicide", "die", "worthless"}

// Insight is the generated "lesson learned" attached to a post.
type Insight struct {
	Text   string
	Status InsightStatus
	Reason string
}

// IsPending reports whether the insight still waits for generation.
func (p *Post) IsPending() bool {
	return p.insight.Status == InsightPending
}

// MarkInsightVerified only allows the pending -> verified transition.
func (p *Post) MarkInsightVerified(text string) error {
	if p.insight.Status != InsightPending {
		return ErrInvalidInsightTransition
	}
	if text == "" {
		return ErrEmptyInsight
	}
	p.insight = Insight{Text: text, Status: InsightVerified}
	return nil
}

// MarkInsightRejected records why no insight could be published.
func (p *Post) MarkInsightRejected(reason string) error {
	if p.insight.Status != InsightPending {
		return ErrInvalidInsightTransition
	}
	p.insight = Insight{Status: InsightRejected, Reason: reason}
	return nil
}

func (s InsightStatus) isValid() bool {
	return s == InsightPending || s == InsightVerified || s == InsightRejected
}

// NormalizeInsightText joins lines and trims the generated text.
func NormalizeInsightText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
	return strings.TrimSpace(text)
}

// CheckInsightText returns a rejection reason, or "" when text may be
// published. text is expected to be normalised already.
func CheckInsightText(text string) string {
	length := utf8.RuneCountInString(text)
	switch {
	case length == 0:
		return "insight is empty"
	case length < MinInsightLength:
		return "insight is too short"
	case length > MaxInsightLength:
		return "insight is too long"
	}

	lower := strings.ToLower(text)
	for _, word := range strings.FieldsFunc(lower, isWordSeparator) {
		for _, banned := range bannedInsightWords {
			if word == banned {
				return fmt.Sprintf("insight contains a banned word (%s)", banned)
			}
		}
	}
	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") || strings.Contains(lower, "www.") {
		return "insight must not contain URLs"
	}
	return ""
}

func isWordSeparator(r rune) bool {
	return !(r == '\'' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
}
