package domain

import (
	"strings"
	"unicode/utf8"
)

const terminators = ".!?…"

// BuildPayload assembles the submission payload from raw file content.
//
// Word lists are re-joined with single newlines regardless of the whitespace
// runs in the source. Texts are trimmed and get a trailing period appended
// when they do not already end with terminal punctuation; building an
// already-terminated text again never doubles the terminator.
func BuildPayload(content string, meta Metadata, visibility Visibility, kind Kind, token string) Payload {
	return Payload{
		Name:        meta.Name,
		Description: meta.Description,
		Visibility:  visibility,
		Kind:        kind,
		Content:     normalizeContent(content, kind),
		CsrfToken:   token,
	}
}

func normalizeContent(content string, kind Kind) string {
	if kind == KindTexts {
		trimmed := strings.TrimSpace(content)
		if trimmed == "" {
			return trimmed
		}
		last, _ := utf8.DecodeLastRuneInString(trimmed)
		if !strings.ContainsRune(terminators, last) {
			return trimmed + "."
		}
		return trimmed
	}

	return strings.Join(strings.Fields(content), "\n")
}
