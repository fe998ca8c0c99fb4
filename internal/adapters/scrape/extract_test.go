package scrape

import (
	"regexp"
	"testing"

	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formPage = `<html><body>
<form method="post" action="/vocs/add">
<input type='hidden' name='csrftoken' value='ABC123'>
<input type='hidden' name='csrftoken' value='LATER456'>
</form></body></html>`

func TestTokenReturnsFirstMatch(t *testing.T) {
	t.Parallel()

	token, err := Token(formPage)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", token)
}

func TestTokenMissingIsCsrfNotFound(t *testing.T) {
	t.Parallel()

	_, err := Token(`<html><body><form><input name='other' value='x'></form></body></html>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCsrfNotFound)
}

func TestErrorMessageDetectsErrorDiv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantFound   bool
	}{
		{
			name:        "bare class attribute",
			body:        `<div class=error>Словарь с таким названием уже существует</div>`,
			wantMessage: "Словарь с таким названием уже существует",
			wantFound:   true,
		},
		{
			name:        "quoted class attribute",
			body:        `<div class="error">name is required</div>`,
			wantMessage: "name is required",
			wantFound:   true,
		},
		{
			name:      "no marker means success",
			body:      `<html><body>Словарь добавлен</body></html>`,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, found := ErrorMessage(tt.body)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestExtractByPattern(t *testing.T) {
	t.Parallel()

	re := regexp.MustCompile(`id=(\d+)`)

	value, ok := ExtractByPattern("page id=42 id=43", re)
	assert.True(t, ok)
	assert.Equal(t, "42", value)

	_, ok = ExtractByPattern("no numbers here", re)
	assert.False(t, ok)

	_, ok = ExtractByPattern("", re)
	assert.False(t, ok)
}
