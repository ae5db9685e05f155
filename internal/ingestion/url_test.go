package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-ledger/internal/fetch"
)

const jobPage = `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Senior   Software Engineer</h1>
<p>Acme builds   rockets.</p>
<h2>Requirements</h2>
<ul>
<li>Go experience</li>
<li>Distributed systems</li>
</ul>
<form>Apply here</form>
</main>
<footer>Footer</footer>
</body>
</html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestIngestFromURL_Text(t *testing.T) {
	server := serve(t, http.StatusOK, jobPage)

	text, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Senior Software Engineer\nAcme builds rockets.\nRequirements\nGo experience\nDistributed systems", text)
	assert.Equal(t, server.URL, metadata.Source)
	assert.Equal(t, server.URL, metadata.URL)
	assert.Equal(t, string(fetch.PlatformUnknown), metadata.Platform)
	assert.Equal(t, FormatText, metadata.Format)
	assert.Equal(t, computeHash(text), metadata.Hash)
}

func TestIngestFromURL_Markdown(t *testing.T) {
	server := serve(t, http.StatusOK, jobPage)

	text, metadata, err := IngestFromURL(context.Background(), server.URL, URLOptions{Format: FormatMarkdown})
	require.NoError(t, err)

	assert.Contains(t, text, "# Senior Software Engineer")
	assert.Contains(t, text, "## Requirements")
	assert.Contains(t, text, "- Go experience")
	assert.NotContains(t, text, "Nav")
	assert.NotContains(t, text, "Footer")
	assert.NotContains(t, text, "Apply here")
	assert.Equal(t, FormatMarkdown, metadata.Format)
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	for _, input := range []string{"", "not-a-url", "example.com", "http://"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := IngestFromURL(context.Background(), input, URLOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHTTPRequestFailed)

			var fetchErr *fetch.Error
			assert.True(t, errors.As(err, &fetchErr))
		})
	}
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	server := serve(t, http.StatusInternalServerError, "oops")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "500")
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	server := serve(t, http.StatusOK, "<html><body><script>app()</script></body></html>")

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}
