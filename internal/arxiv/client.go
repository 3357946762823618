// Package arxiv queries the arXiv export API and turns its Atom feed into papers.
package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/paperdesk/paperdesk/internal/model"
)

const (
	// DefaultBaseURL is the public arXiv query endpoint.
	DefaultBaseURL = "http://export.arxiv.org/api/query"
	// DefaultCategory restricts searches to computer science.
	DefaultCategory = "cs.*"

	userAgent = "paperdesk/1.0 (+https://github.com/paperdesk/paperdesk)"
)

var (
	// ErrEmptyQuery indicates a blank search string.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrUpstream indicates arXiv answered with an error.
	ErrUpstream = errors.New("arxiv api error")
)

// Client calls the arXiv search endpoint.
type Client struct {
	baseURL    string
	category   string
	httpClient *http.Client
}

// NewClient creates a Client. Empty baseURL or category fall back to the defaults.
func NewClient(baseURL, category string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if category == "" {
		category = DefaultCategory
	}
	return &Client{
		baseURL:    baseURL,
		category:   category,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Category returns the subject-category prefix applied to every search.
func (c *Client) Category() string {
	return c.category
}

// Search returns up to maxResults papers whose title or abstract match query,
// most relevant first. Summaries are left empty.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]model.Paper, error) {
	expr := BuildQuery(query, c.category)
	if expr == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("search_query", expr)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create arxiv request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/atom+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse arxiv feed: %w", err)
	}

	papers := make([]model.Paper, 0, len(feed.Items))
	for _, item := range feed.Items {
		if isErrorEntry(item) {
			return nil, fmt.Errorf("%w: %s", ErrUpstream, collapse(item.Description))
		}
		papers = append(papers, toPaper(item))
		if len(papers) == maxResults {
			break
		}
	}

	return papers, nil
}

// BuildQuery builds the search expression matching query against title or
// abstract within category, e.g. (ti:"gnn" OR abs:"gnn") AND cat:cs.*
func BuildQuery(query, category string) string {
	q := collapse(strings.ReplaceAll(query, `"`, ""))
	if q == "" {
		return ""
	}

	expr := fmt.Sprintf(`(ti:"%s" OR abs:"%s")`, q, q)
	if category != "" {
		expr += " AND cat:" + category
	}
	return expr
}

func toPaper(item *gofeed.Item) model.Paper {
	authors := make([]string, 0, len(item.Authors))
	for _, a := range item.Authors {
		if a == nil {
			continue
		}
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	link := strings.TrimSpace(item.GUID)
	if link == "" {
		link = strings.TrimSpace(item.Link)
	}

	return model.Paper{
		Title:         collapse(item.Title),
		Authors:       authors,
		URL:           link,
		PublishedDate: strings.TrimSpace(item.Published),
		Abstract:      collapse(item.Description),
	}
}

// isErrorEntry detects the single "Error" entry arXiv returns with HTTP 200
// for malformed queries.
func isErrorEntry(item *gofeed.Item) bool {
	return strings.TrimSpace(item.Title) == "Error" && strings.Contains(item.GUID, "/api/errors")
}

// collapse trims s and folds internal runs of whitespace, including the hard
// line wraps arXiv puts in titles and abstracts.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
