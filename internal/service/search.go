package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/paperdesk/paperdesk/internal/metrics"
	"github.com/paperdesk/paperdesk/internal/model"
	"github.com/paperdesk/paperdesk/internal/repository"
)

// SearchServiceConfig holds the collaborators of a SearchService.
// Cache, Metrics and Logger are optional.
type SearchServiceConfig struct {
	Users     UserStore
	Queries   QueryStore
	Index     PaperIndex
	Completer Completer
	Cache     PaperCache
	Metrics   metrics.Recorder
	Logger    *slog.Logger
}

// SearchService finds papers, summarizes them with the caller's provider key
// and records the search in the caller's history.
type SearchService struct {
	users     UserStore
	queries   QueryStore
	index     PaperIndex
	completer Completer
	cache     PaperCache
	metrics   metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewSearchService creates a new SearchService.
func NewSearchService(cfg SearchServiceConfig) *SearchService {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &SearchService{
		users:     cfg.Users,
		queries:   cfg.Queries,
		index:     cfg.Index,
		completer: cfg.Completer,
		cache:     cfg.Cache,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// Search runs query against the paper index and returns at most
// model.MaxResultsPerQuery papers, each with a summary.
func (s *SearchService) Search(ctx context.Context, userID, query string) ([]model.Paper, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}

	user, err := loadUserWithKey(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	papers, err := s.findPapers(ctx, query)
	if err != nil {
		s.metrics.IncSearch(metrics.StatusFailure)
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	if len(papers) > model.MaxResultsPerQuery {
		papers = papers[:model.MaxResultsPerQuery]
	}

	s.summarizeAll(ctx, user.ExternalAPIKey, papers)

	record := &model.QueryRecord{
		ID:        ulid.Make().String(),
		UserID:    user.ID,
		Query:     query,
		Results:   model.ResultsFromPapers(papers),
		CreatedAt: s.now().UTC(),
	}
	if err := s.queries.CreateQueryRecord(ctx, record); err != nil {
		s.metrics.IncSearch(metrics.StatusFailure)
		return nil, fmt.Errorf("save query record: %w", err)
	}

	s.metrics.IncSearch(metrics.StatusSuccess)
	s.logger.Info("search_completed",
		"user_id", user.ID,
		"query_id", record.ID,
		"results", len(papers),
	)

	return papers, nil
}

// findPapers consults the cache before the index.
func (s *SearchService) findPapers(ctx context.Context, query string) ([]model.Paper, error) {
	category := s.index.Category()

	if s.cache != nil {
		if papers, ok := s.cache.GetPapers(ctx, category, query); ok {
			s.metrics.IncSearchCache(true)
			return papers, nil
		}
		s.metrics.IncSearchCache(false)
	}

	start := time.Now()
	papers, err := s.index.Search(ctx, query, model.MaxResultsPerQuery)
	s.metrics.ObserveUpstreamDuration(metrics.UpstreamArxiv, time.Since(start))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPapers(ctx, category, query, papers); err != nil {
			s.logger.Warn("search_cache_write_failed", "error", err)
		}
	}

	return papers, nil
}

// summarizeAll fills in Summary for every paper. Calls run concurrently;
// each writes only its own slot so result order is preserved.
func (s *SearchService) summarizeAll(ctx context.Context, apiKey string, papers []model.Paper) {
	var g errgroup.Group
	g.SetLimit(model.MaxResultsPerQuery)

	for i := range papers {
		i := i
		g.Go(func() error {
			start := time.Now()
			sum := summarize(ctx, s.completer, apiKey, papers[i].Abstract)
			if papers[i].Abstract != "" {
				s.metrics.ObserveUpstreamDuration(metrics.UpstreamLLM, time.Since(start))
			}

			papers[i].Summary = sum.Text
			if sum.Generated {
				s.metrics.IncSummary(metrics.SummaryGenerated)
			} else {
				s.metrics.IncSummary(metrics.SummaryFallback)
			}
			if sum.Err != nil {
				s.logger.Warn("summary_fallback", "paper_url", papers[i].URL, "error", sum.Err)
			}
			return nil
		})
	}

	_ = g.Wait()
}

// loadUserWithKey fetches the caller and requires a configured provider key.
func loadUserWithKey(ctx context.Context, users UserStore, userID string) (*model.User, error) {
	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.HasExternalAPIKey() {
		return nil, ErrAPIKeyRequired
	}
	return user, nil
}
