package model

import "time"

// MaxResultsPerQuery caps the number of papers kept for a single search.
const MaxResultsPerQuery = 3

// Result is one paper as persisted inside a QueryRecord.
// The raw abstract is deliberately absent; only derived fields are stored.
type Result struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Summary       string   `json:"summary"`
	URL           string   `json:"url"`
	PublishedDate string   `json:"publishedDate"`
}

// QueryRecord is the persisted trace of one search request.
type QueryRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Query     string    `json:"query"`
	Results   []Result  `json:"results"`
	CreatedAt time.Time `json:"createdAt"`
}

// Paper is a search hit as returned to the caller.
type Paper struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	URL           string   `json:"url"`
	PublishedDate string   `json:"publishedDate"`
	Abstract      string   `json:"abstract"`
	Summary       string   `json:"summary"`
}

// ToResult drops the abstract and keeps the fields that are persisted.
func (p Paper) ToResult() Result {
	authors := p.Authors
	if authors == nil {
		authors = []string{}
	}
	return Result{
		Title:         p.Title,
		Authors:       authors,
		Summary:       p.Summary,
		URL:           p.URL,
		PublishedDate: p.PublishedDate,
	}
}

// ResultsFromPapers converts papers to persisted results, keeping at most
// MaxResultsPerQuery entries in their original order.
func ResultsFromPapers(papers []Paper) []Result {
	n := len(papers)
	if n > MaxResultsPerQuery {
		n = MaxResultsPerQuery
	}
	results := make([]Result, 0, n)
	for _, p := range papers[:n] {
		results = append(results, p.ToResult())
	}
	return results
}
