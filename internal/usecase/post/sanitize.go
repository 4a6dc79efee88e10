package post

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all markup. Posts and comments are plain text.
var textPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds how many layers of entity encoding are peeled.
const maxSanitizePasses = 4

/**
 * sanitizeText removes HTML from user input and returns plain text.
 * Entities are decoded and the result stripped again until nothing
 * changes, so encoded markup cannot come back to life after decoding.
 * Input that is still changing after maxSanitizePasses stays escaped.
 */
func sanitizeText(raw string) string {
	text := raw
	for i := 0; i < maxSanitizePasses; i++ {
		stripped := textPolicy.Sanitize(text)
		decoded := html.UnescapeString(stripped)
		if decoded == text {
			return strings.TrimSpace(decoded)
		}
		text = decoded
	}
	return strings.TrimSpace(textPolicy.Sanitize(text))
}
