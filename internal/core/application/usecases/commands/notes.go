package commands

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"marketplace/internal/pkg/errs"

	"github.com/microcosm-cc/bluemonday"
)

// MaxNoteLength bounds free-text notes on history entries and tracking info.
const MaxNoteLength = 1000

var notePolicy = bluemonday.StrictPolicy()

// sanitizeNote strips markup and control characters from operator supplied
// text. Notes end up in the audit trail and in notifications, so they are
// stored as plain text only.
func sanitizeNote(param, raw string) (string, error) {
	cleaned := html.UnescapeString(notePolicy.Sanitize(raw))
	cleaned = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.TrimSpace(cleaned)

	if n := utf8.RuneCountInString(cleaned); n > MaxNoteLength {
		return "", errs.NewValueIsOutOfRangeError(param, n, 0, MaxNoteLength)
	}
	return cleaned, nil
}

func sanitizeOptional(param string, raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	cleaned, err := sanitizeNote(param, *raw)
	if err != nil {
		return nil, err
	}
	return &cleaned, nil
}
