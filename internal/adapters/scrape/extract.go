// Package scrape pulls fragments out of uncontrolled remote HTML by text
// pattern. The remote site is not an API; the markup can change without
// notice, so everything here is best-effort and deliberately narrow.
package scrape

import (
	"fmt"
	"regexp"

	"github.com/101Room/berezin-dicts/internal/domain"
)

const tokenField = "csrftoken"

var (
	tokenPattern    = regexp.MustCompile(`name='` + tokenField + `' value='([^']+)'`)
	errorDivPattern = regexp.MustCompile(`class=['"]?error['"]?>([^<]*)</div>`)
)

// ExtractByPattern returns the first capture group of the first match of re
// in body, and whether a match was found.
func ExtractByPattern(body string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(body)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Token extracts the CSRF token from a fetched form page. Tokens are
// page-scoped; callers must re-fetch before every submission.
func Token(pageBody string) (string, error) {
	value, ok := ExtractByPattern(pageBody, tokenPattern)
	if !ok {
		return "", fmt.Errorf("%w: no %s input on page", domain.ErrCsrfNotFound, tokenField)
	}
	return value, nil
}

// ErrorMessage scans a submission response body for the error-class div the
// site renders on rejection. Absence of the marker is the only success
// signal the site gives us.
func ErrorMessage(responseBody string) (string, bool) {
	return ExtractByPattern(responseBody, errorDivPattern)
}
