// Package research gathers public information about a target company
// for cover-letter personalization. It queries Google Custom Search and
// scrapes the top results down to short text snippets.
package research

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/job-application-assistant/internal/fetch"
)

// maxResults is how many search hits are scraped per query.
const maxResults = 3

// snippetLimit caps the text kept per scraped page.
const snippetLimit = 1200

// CompanyInfo is the research output handed to the cover-letter prompt.
type CompanyInfo struct {
	Company  string   `json:"company"`
	Sources  []Source `json:"sources"`
	Combined string   `json:"combined"` // merged snippet text, ready for a prompt
}

// Source is one scraped page.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Error represents a research failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("research error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("research error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Researcher looks up companies through the Custom Search API.
type Researcher struct {
	service  *customsearch.Service
	engineID string
}

// NewResearcher creates a Researcher. Both the API key and the custom
// search engine ID are required.
func NewResearcher(ctx context.Context, apiKey, engineID string) (*Researcher, error) {
	if apiKey == "" || engineID == "" {
		return nil, &Error{Message: "API key and search engine ID are required"}
	}

	service, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Message: "failed to create search service", Cause: err}
	}
	return &Researcher{service: service, engineID: engineID}, nil
}

// Research searches for the company and scrapes the top hits.
func (r *Researcher) Research(ctx context.Context, company string) (*CompanyInfo, error) {
	if strings.TrimSpace(company) == "" {
		return nil, &Error{Message: "company name is empty"}
	}

	query := fmt.Sprintf("%s company about mission products", company)
	resp, err := r.service.Cse.List().Cx(r.engineID).Q(query).Num(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, &Error{Message: "search request failed", Cause: err}
	}

	info := &CompanyInfo{Company: company}
	for _, item := range resp.Items {
		source := Source{Title: item.Title, URL: item.Link, Snippet: item.Snippet}

		// Scrape failures fall back to the search snippet.
		if result, fetchErr := fetch.URL(ctx, item.Link, nil); fetchErr == nil {
			source.Snippet = truncate(result.Text, snippetLimit)
		}
		info.Sources = append(info.Sources, source)
	}

	info.Combined = combine(info.Sources)
	return info, nil
}

func combine(sources []Source) string {
	var sb strings.Builder
	for _, s := range sources {
		if s.Snippet == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s (%s):\n%s\n\n", s.Title, s.URL, s.Snippet)
	}
	return strings.TrimSpace(sb.String())
}

func truncate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
