package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localCookieFile(t *testing.T, serverURL string) string {
	t.Helper()

	host, err := url.Parse(serverURL)
	require.NoError(t, err)
	hostname := host.Hostname()

	return writeCookieFile(t, fmt.Sprintf("%s\tTRUE\t/\tFALSE\t2000000000\tsessionid\ts3cr3t\n", hostname))
}

func TestGatewayGetSendsJarCookies(t *testing.T) {
	t.Parallel()

	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("sessionid"); err == nil {
			gotCookie = cookie.Value
		}
		_, _ = io.WriteString(w, "<html>form page</html>")
	}))
	defer server.Close()

	gateway, err := New(server.Client(), localCookieFile(t, server.URL))
	require.NoError(t, err)

	body, err := gateway.Get(context.Background(), server.URL+"/vocs/add")
	require.NoError(t, err)
	assert.Equal(t, "<html>form page</html>", body)
	assert.Equal(t, "s3cr3t", gotCookie)
}

func TestGatewayGetNon2xxIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	gateway, err := New(server.Client(), localCookieFile(t, server.URL))
	require.NoError(t, err)

	_, err = gateway.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 410")
}

func TestGatewayCarriesRotatedCookiesAcrossRequests(t *testing.T) {
	t.Parallel()

	var rotated string
	mux := http.NewServeMux()
	mux.HandleFunc("/first", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "rotated", Path: "/"})
	})
	mux.HandleFunc("/second", func(_ http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("sessionid"); err == nil {
			rotated = cookie.Value
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gateway, err := New(server.Client(), localCookieFile(t, server.URL))
	require.NoError(t, err)

	_, err = gateway.Get(context.Background(), server.URL+"/first")
	require.NoError(t, err)
	_, err = gateway.Get(context.Background(), server.URL+"/second")
	require.NoError(t, err)

	assert.Equal(t, "rotated", rotated)
}

func TestGatewaySubmitFormPostsFieldsWithoutFilenameAttr(t *testing.T) {
	t.Parallel()

	var rawBody []byte
	var contentType string
	var contentLength int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawBody, _ = io.ReadAll(r.Body)
		contentType = r.Header.Get("Content-Type")
		contentLength = r.ContentLength
		_, _ = io.WriteString(w, "<html>created</html>")
	}))
	defer server.Close()

	gateway, err := New(server.Client(), localCookieFile(t, server.URL))
	require.NoError(t, err)

	response, err := gateway.SubmitForm(context.Background(), server.URL+"/vocs/add", map[string]string{
		"name":      "Словарь",
		"words":     "альфа\nбета",
		"csrftoken": "tok-1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.Status)
	assert.Equal(t, "<html>created</html>", response.Body)
	assert.NotContains(t, string(rawBody), `filename="`)
	assert.Equal(t, int64(len(rawBody)), contentLength)

	reader := multipart.NewReader(bytes.NewReader(rawBody), boundaryFromContentType(t, contentType))
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Словарь"}, form.Value["name"])
	assert.Equal(t, []string{"альфа\nбета"}, form.Value["words"])
	assert.Equal(t, []string{"tok-1"}, form.Value["csrftoken"])
}

func TestGatewaySubmitFormReportsFinalURLAfterRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/vocs/add", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/vocs/777", http.StatusFound)
	})
	mux.HandleFunc("/vocs/777", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>dictionary page</html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	gateway, err := New(server.Client(), localCookieFile(t, server.URL))
	require.NoError(t, err)

	response, err := gateway.SubmitForm(context.Background(), server.URL+"/vocs/add", map[string]string{"name": "n"})
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/vocs/777", response.URL)
	assert.Equal(t, "<html>dictionary page</html>", response.Body)
}

type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls++
	return nil, fmt.Errorf("transport must not be touched")
}

func TestBrokenCookieJarIssuesNoRequests(t *testing.T) {
	t.Parallel()

	transport := &countingTransport{}
	client := &http.Client{Transport: transport}

	_, err := New(client, writeCookieFile(t, "not\ta\tcookie\tfile\n"))
	require.Error(t, err)
	assert.Equal(t, 0, transport.calls)
}

func TestNormalizeFormBodyStripsFilenameAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("words", "content")
	require.NoError(t, err)
	_, err = io.WriteString(part, "альфа бета")
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.Contains(t, buf.String(), `filename="content"`)

	normalized := normalizeFormBody(buf.Bytes())

	assert.NotContains(t, string(normalized), `filename="`)
	assert.Contains(t, string(normalized), `form-data; name="words"`)
	assert.Contains(t, string(normalized), "альфа бета")
	assert.Equal(t, len(normalized), len(buf.Bytes())-len(`; filename="content"`))

	reader := multipart.NewReader(bytes.NewReader(normalized), writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"альфа бета"}, form.Value["words"])
}

func boundaryFromContentType(t *testing.T, contentType string) string {
	t.Helper()

	const marker = "boundary="
	idx := strings.Index(contentType, marker)
	require.GreaterOrEqual(t, idx, 0)
	return strings.Trim(contentType[idx+len(marker):], `"`)
}
