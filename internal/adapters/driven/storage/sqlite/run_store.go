package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun creates or updates a run report by ID.
func (s *runStore) SaveRun(ctx context.Context, report *domain.RunReport) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}

	var errorsJSON any
	if len(report.Errors) > 0 {
		b, err := json.Marshal(report.Errors)
		if err != nil {
			return fmt.Errorf("marshalling run errors: %w", err)
		}
		errorsJSON = string(b)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, organization, started_at, ended_at, events_scraped, events_classified,
			events_deduplicated, events_stored, status, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			organization = excluded.organization,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			events_scraped = excluded.events_scraped,
			events_classified = excluded.events_classified,
			events_deduplicated = excluded.events_deduplicated,
			events_stored = excluded.events_stored,
			status = excluded.status,
			errors = excluded.errors
	`, report.ID, nullString(report.Organization),
		formatNullableTime(report.StartedAt), formatNullableTime(report.EndedAt),
		report.EventsScraped, report.EventsClassified, report.EventsDeduplicated, report.EventsStored,
		string(report.Status), errorsJSON)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns recent runs, most recent first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunReport, error) {
	query := `
		SELECT id, organization, started_at, ended_at, events_scraped, events_classified,
			events_deduplicated, events_stored, status, errors
		FROM runs
		ORDER BY started_at DESC, id
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.RunReport{}
	for rows.Next() {
		var (
			r                            domain.RunReport
			org, startedAt, endedAt, msg sql.NullString
			status                       string
		)
		if err := rows.Scan(&r.ID, &org, &startedAt, &endedAt, &r.EventsScraped, &r.EventsClassified,
			&r.EventsDeduplicated, &r.EventsStored, &status, &msg); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Organization = org.String
		r.StartedAt = parseNullableTime(startedAt)
		r.EndedAt = parseNullableTime(endedAt)
		r.Status = domain.RunStatus(status)
		if msg.Valid && msg.String != "" {
			if err := json.Unmarshal([]byte(msg.String), &r.Errors); err != nil {
				return nil, fmt.Errorf("decoding run errors: %w", err)
			}
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
