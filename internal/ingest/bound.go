package ingest

import (
	"strings"
	"unicode/utf8"

	"github.com/myebookchess-cloud/jyro-demo/internal/entity"
)

// Bound truncates sanitized text to its first maxChars bytes (backed off to a
// rune boundary) so prompt size stays predictable. Text already within the
// budget passes through unchanged. Empty or whitespace-only input is the
// "no usable content" condition, distinct from a failed fetch.
func Bound(text, sourceID string, maxChars int) (entity.BoundedContext, error) {
	if strings.TrimSpace(text) == "" {
		return entity.BoundedContext{}, entity.ErrNoContent
	}

	if len(text) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	return entity.BoundedContext{
		Text:     text,
		SourceID: sourceID,
		MaxChars: maxChars,
	}, nil
}
