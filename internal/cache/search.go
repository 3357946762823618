package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paperdesk/paperdesk/internal/auth"
	"github.com/paperdesk/paperdesk/internal/model"
)

const (
	// searchCachePrefix is the Redis key prefix for cached arXiv results.
	searchCachePrefix = "search:arxiv:"
	// defaultSearchCacheTTL applies when no TTL is configured.
	defaultSearchCacheTTL = 10 * time.Minute
)

// cachedPaper is a search hit as stored in Redis. Summaries are never cached
// because they depend on the caller's provider key.
type cachedPaper struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	URL           string   `json:"url"`
	PublishedDate string   `json:"published_date"`
	Abstract      string   `json:"abstract"`
}

// SearchCache stores parsed arXiv results keyed by category and query text.
type SearchCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewSearchCache wraps c with the given TTL.
func NewSearchCache(c *Cache, ttl time.Duration) *SearchCache {
	if ttl <= 0 {
		ttl = defaultSearchCacheTTL
	}
	return &SearchCache{cache: c, ttl: ttl}
}

// GetPapers returns cached papers for the query.
// The second return value is false on a cache miss.
func (s *SearchCache) GetPapers(ctx context.Context, category, query string) ([]model.Paper, bool) {
	data, err := s.cache.client.Get(ctx, searchKey(category, query)).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, false
	}

	var cached []cachedPaper
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, false
	}

	papers := make([]model.Paper, 0, len(cached))
	for _, c := range cached {
		papers = append(papers, model.Paper{
			Title:         c.Title,
			Authors:       c.Authors,
			URL:           c.URL,
			PublishedDate: c.PublishedDate,
			Abstract:      c.Abstract,
		})
	}
	return papers, true
}

// SetPapers caches papers for the query.
func (s *SearchCache) SetPapers(ctx context.Context, category, query string, papers []model.Paper) error {
	cached := make([]cachedPaper, 0, len(papers))
	for _, p := range papers {
		cached = append(cached, cachedPaper{
			Title:         p.Title,
			Authors:       p.Authors,
			URL:           p.URL,
			PublishedDate: p.PublishedDate,
			Abstract:      p.Abstract,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal search results: %w", err)
	}

	return s.cache.client.Set(ctx, searchKey(category, query), data, s.ttl).Err()
}

// searchKey derives the Redis key. Query text is hashed so user input never
// appears in key names.
func searchKey(category, query string) string {
	return searchCachePrefix + auth.QuickHash(category+"\x00"+query)
}
