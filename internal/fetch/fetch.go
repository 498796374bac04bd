// Package fetch retrieves remote documents, such as a public portfolio or profile page, so
// they can be parsed like a local file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeBuilder/1.0)"

// DefaultMaxBytes caps the size of a fetched document.
const DefaultMaxBytes = 10 << 20

// Result holds the raw content of a URL fetch.
type Result struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

// URL retrieves the content at an http or https URL.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Host == "" || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	// Read one byte past the cap to detect oversize bodies
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}
	if int64(len(body)) > maxBytes {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("response exceeds %d bytes", maxBytes),
		}
	}

	return result, nil
}

// Document fetches urlStr as a document. The type comes from the response content type,
// then from the URL path extension. The document id and name are the URL itself.
func Document(ctx context.Context, urlStr string, opts *Options) (types.Document, error) {
	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return types.Document{}, err
	}

	docType := typeFromContentType(result.ContentType)
	if docType == "" {
		if u, err := url.Parse(urlStr); err == nil {
			docType = types.DocumentTypeFromName(path.Base(u.Path))
		}
	}
	if docType == "" {
		return types.Document{}, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("unsupported content type %q", result.ContentType),
		}
	}

	return types.Document{
		ID:      urlStr,
		Name:    urlStr,
		Type:    docType,
		Content: result.Body,
	}, nil
}

func typeFromContentType(contentType string) types.DocumentType {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch strings.ToLower(mediaType) {
	case "text/html", "application/xhtml+xml":
		return types.DocumentTypeHTML
	case "text/plain", "text/markdown":
		return types.DocumentTypeTXT
	case "application/pdf":
		return types.DocumentTypePDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return types.DocumentTypeDOCX
	default:
		return ""
	}
}
