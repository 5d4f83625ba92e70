// Package fetch retrieves job postings from URLs and reduces their HTML
// to plain text suitable for the matching engine. JavaScript-rendered
// postings can be fetched through a headless browser fallback.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-application-assistant/internal/ingestion"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobAssistant/1.0)"

// maxBodyBytes caps response reads; job postings are small documents.
const maxBodyBytes = 8 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL        string
	HTML       string
	Text       string
	StatusCode int
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
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // render with a headless browser when static HTML looks empty
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves a job posting and extracts its text content. When
// opts.UseBrowser is set and the static HTML yields too little text,
// the page is re-fetched through a headless browser.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, status, err := fetchStatic(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	text, err := ExtractText(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}

	if opts.UseBrowser && ShouldUseBrowser(text) {
		rendered, browserErr := renderWithBrowser(ctx, urlStr, opts.Timeout)
		if browserErr != nil {
			return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: browserErr}
		}
		html = rendered
		if text, err = ExtractText(html); err != nil {
			return nil, &Error{URL: urlStr, Message: "failed to parse rendered HTML", Cause: err}
		}
	}

	return &Result{URL: urlStr, HTML: html, Text: text, StatusCode: status}, nil
}

func fetchStatic(ctx context.Context, urlStr string, opts *Options) (string, int, error) {
	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", 0, &Error{URL: urlStr, Message: "failed to build request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, &Error{URL: urlStr, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", resp.StatusCode, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", resp.StatusCode, &Error{URL: urlStr, Message: "failed to read body", Cause: err}
	}
	return string(body), resp.StatusCode, nil
}

// ExtractText reduces an HTML document to cleaned plain text. Script,
// style, and navigation chrome are removed; block elements become line
// breaks so the downstream segmenter still sees document structure.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, p, li, div, td, section, article").Each(func(_ int, s *goquery.Selection) {
		// Only leaf-ish nodes: taking text from containers would
		// duplicate every nested block.
		if s.Children().Filter("p, div, li, section, article").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			sb.WriteString("- ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		// Fallback for fragment-like documents with no block structure.
		text = doc.Text()
	}
	return ingestion.CleanText(text), nil
}
