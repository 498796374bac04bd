package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func serve(contentType, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
}

func TestURL_Success(t *testing.T) {
	server := serve("text/html", "<html><body><h1>Jane Doe</h1></body></html>")
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, string(result.Body), "<h1>Jane Doe</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://example.com/cv.pdf", "file:///etc/passwd"} {
		_, err := URL(context.Background(), u, nil)
		require.Error(t, err, u)

		var fetchErr *Error
		assert.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_TooLarge(t *testing.T) {
	server := serve("text/plain", strings.Repeat("x", 100))
	defer server.Close()

	opts := DefaultOptions()
	opts.MaxBytes = 10
	_, err := URL(context.Background(), server.URL, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 10 bytes")
}

func TestDocument_TypeFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		expected    types.DocumentType
	}{
		{"text/html; charset=utf-8", types.DocumentTypeHTML},
		{"text/plain", types.DocumentTypeTXT},
		{"application/pdf", types.DocumentTypePDF},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", types.DocumentTypeDOCX},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			server := serve(tt.contentType, "content")
			defer server.Close()

			doc, err := Document(context.Background(), server.URL, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.Type)
			assert.Equal(t, server.URL, doc.ID)
			assert.Equal(t, []byte("content"), doc.Content)
		})
	}
}

func TestDocument_TypeFromPath(t *testing.T) {
	server := serve("application/octet-stream", "%PDF-1.4")
	defer server.Close()

	doc, err := Document(context.Background(), server.URL+"/files/resume.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, types.DocumentTypePDF, doc.Type)
}

func TestDocument_UnsupportedType(t *testing.T) {
	server := serve("image/png", "png")
	defer server.Close()

	_, err := Document(context.Background(), server.URL+"/photo", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}
