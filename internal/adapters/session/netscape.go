package session

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/101Room/berezin-dicts/internal/domain"
)

const httpOnlyPrefix = "#HttpOnly_"

// jarEntry is one cookie decoded from a Netscape/Mozilla cookie file,
// together with the domain it must be replayed against.
type jarEntry struct {
	Domain string
	Cookie *http.Cookie
}

// loadNetscapeCookies reads a Netscape-format cookie file: one cookie per
// line, seven tab-separated columns (domain, include-subdomains flag, path,
// secure flag, expiry epoch, name, value). Lines starting with # are
// comments, except the #HttpOnly_ prefix curl and friends emit.
func loadNetscapeCookies(path string) ([]jarEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCookieLoad, err)
	}
	defer func() { _ = file.Close() }()

	var entries []jarEntry
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return nil, fmt.Errorf("%w: %s:%d: expected 7 tab-separated fields, got %d",
				domain.ErrCookieLoad, path, lineNo, len(fields))
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: bad expiry %q", domain.ErrCookieLoad, path, lineNo, fields[4])
		}

		cookie := &http.Cookie{
			Name:     fields[5],
			Value:    fields[6],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			HttpOnly: httpOnly,
		}
		if expires > 0 {
			cookie.Expires = time.Unix(expires, 0)
		}

		entries = append(entries, jarEntry{
			Domain: strings.TrimPrefix(fields[0], "."),
			Cookie: cookie,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCookieLoad, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s holds no cookies", domain.ErrCookieLoad, path)
	}

	return entries, nil
}
