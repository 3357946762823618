package service

import (
	"context"
	"fmt"

	"github.com/paperdesk/paperdesk/internal/model"
)

// HistoryLimit is the number of query records returned per request.
const HistoryLimit = 10

// HistoryService reads a user's recent searches.
type HistoryService struct {
	queries QueryStore
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(queries QueryStore) *HistoryService {
	return &HistoryService{queries: queries}
}

// Recent returns up to HistoryLimit records owned by userID, newest first.
func (s *HistoryService) Recent(ctx context.Context, userID string) ([]*model.QueryRecord, error) {
	records, err := s.queries.ListRecentQueryRecords(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list query records: %w", err)
	}
	if records == nil {
		records = []*model.QueryRecord{}
	}
	return records, nil
}
