// Package session owns the authenticated HTTP session: a cookie jar seeded
// from a persisted cookie file, replayed and updated across every request of
// a batch.
package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"sort"

	"github.com/101Room/berezin-dicts/internal/ports"
	"golang.org/x/net/publicsuffix"
)

const maxResponseBytes = 4 << 20

// Plain text fields must not carry a filename attribute: the remote server
// garbles fields that do. Stripped from the encoded body, never prevented at
// the encoder.
var filenameAttrPattern = regexp.MustCompile(`; filename="[^"]*"`)

type Gateway struct {
	client *http.Client
}

var _ ports.SessionGateway = (*Gateway)(nil)

// New builds a gateway whose cookie jar is seeded from the Netscape cookie
// file at cookiePath. The caller's client supplies transport and timeout
// policy; its Jar is replaced.
func New(client *http.Client, cookiePath string) (*Gateway, error) {
	entries, err := loadNetscapeCookies(cookiePath)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	for _, entry := range entries {
		scheme := "http"
		if entry.Cookie.Secure {
			scheme = "https"
		}
		u := &url.URL{Scheme: scheme, Host: entry.Domain, Path: "/"}
		jar.SetCookies(u, []*http.Cookie{entry.Cookie})
	}

	if client == nil {
		client = &http.Client{}
	}
	client.Jar = jar

	return &Gateway{client: client}, nil
}

func (g *Gateway) Get(ctx context.Context, rawURL string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	response, err := g.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("status %d fetching %s", response.StatusCode, rawURL)
	}

	return string(body), nil
}

func (g *Gateway) SubmitForm(ctx context.Context, rawURL string, fields map[string]string) (ports.FormResponse, error) {
	body, contentType, err := encodeForm(fields)
	if err != nil {
		return ports.FormResponse{}, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return ports.FormResponse{}, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", contentType)

	response, err := g.client.Do(request)
	if err != nil {
		return ports.FormResponse{}, fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return ports.FormResponse{}, fmt.Errorf("read response: %w", err)
	}

	finalURL := rawURL
	if response.Request != nil && response.Request.URL != nil {
		finalURL = response.Request.URL.String()
	}

	return ports.FormResponse{
		Status: response.StatusCode,
		URL:    finalURL,
		Body:   string(responseBody),
	}, nil
}

// encodeForm multipart-encodes fields in sorted key order, then normalizes
// the raw body. Content-Length follows from the normalized body length, so
// it is always recomputed after stripping.
func encodeForm(fields map[string]string) ([]byte, string, error) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, key := range keys {
		if err := writer.WriteField(key, fields[key]); err != nil {
			return nil, "", fmt.Errorf("encode form field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize form body: %w", err)
	}

	return normalizeFormBody(buf.Bytes()), writer.FormDataContentType(), nil
}

func normalizeFormBody(encoded []byte) []byte {
	if !bytes.Contains(encoded, []byte("filename=")) {
		return encoded
	}

	normalized := make([]byte, 0, len(encoded))
	for _, line := range bytes.SplitAfter(encoded, []byte("\r\n")) {
		if bytes.HasPrefix(line, []byte("Content-Disposition:")) {
			line = []byte(filenameAttrPattern.ReplaceAllString(string(line), ""))
		}
		normalized = append(normalized, line...)
	}
	return normalized
}
