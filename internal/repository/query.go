package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/paperdesk/paperdesk/internal/model"
)

// CreateQueryRecord inserts a search record with its embedded results.
func (r *Repository) CreateQueryRecord(ctx context.Context, rec *model.QueryRecord) error {
	results := rec.Results
	if results == nil {
		results = []model.Result{}
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	query := `
		INSERT INTO queries (id, user_id, query, results, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.db.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Query,
		payload,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create query record: %w", err)
	}

	return nil
}

// ListRecentQueryRecords returns up to limit records owned by userID, newest first.
func (r *Repository) ListRecentQueryRecords(ctx context.Context, userID string, limit int) ([]*model.QueryRecord, error) {
	query := `
		SELECT id, user_id, query, results, created_at
		FROM queries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list query records: %w", err)
	}
	defer rows.Close()

	records := make([]*model.QueryRecord, 0, limit)
	for rows.Next() {
		var (
			rec     model.QueryRecord
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Query, &payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query record: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Results); err != nil {
			return nil, fmt.Errorf("failed to decode results for %s: %w", rec.ID, err)
		}
		if rec.Results == nil {
			rec.Results = []model.Result{}
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate query records: %w", err)
	}

	return records, nil
}
