package domain

import "fmt"

// Visibility is the access level the remote form accepts for a dictionary.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Kind selects how the remote system treats the uploaded content.
type Kind string

const (
	// KindWords is a newline-joined word list.
	KindWords Kind = "words"
	// KindTexts is free-form prose; the last character must be terminal
	// punctuation or the remote system corrupts it.
	KindTexts Kind = "texts"
)

func ParseVisibility(raw string) (Visibility, error) {
	switch Visibility(raw) {
	case VisibilityPublic, VisibilityPrivate:
		return Visibility(raw), nil
	}
	return "", fmt.Errorf("unknown visibility %q", raw)
}

func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindWords, KindTexts:
		return Kind(raw), nil
	}
	return "", fmt.Errorf("unknown dictionary kind %q", raw)
}

// Metadata is the human-readable description of one source file, looked up
// by the file's base name in the descriptor file next to it.
type Metadata struct {
	Name        string
	Description string
}

// Payload is one ready-to-submit dictionary form.
type Payload struct {
	Name        string
	Description string
	Visibility  Visibility
	Kind        Kind
	Content     string
	CsrfToken   string
}
