package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// eventStore implements driven.EventStore.
type eventStore struct {
	store *Store
}

var _ driven.EventStore = (*eventStore)(nil)

const eventColumns = `id, name, organization, date, time, modality, location, link,
	country, category, description, scraped_at, merged_from, merged_at`

const upsertEvent = `
	INSERT INTO events (` + eventColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		organization = excluded.organization,
		date = excluded.date,
		time = excluded.time,
		modality = excluded.modality,
		location = excluded.location,
		link = excluded.link,
		country = excluded.country,
		category = excluded.category,
		description = excluded.description,
		scraped_at = excluded.scraped_at,
		merged_from = excluded.merged_from,
		merged_at = excluded.merged_at
`

// Replace discards all stored events and writes events in their place.
// The swap happens in one transaction.
func (s *eventStore) Replace(ctx context.Context, events []domain.Event) error {
	return s.write(ctx, events, true)
}

// Append upserts events by ID.
func (s *eventStore) Append(ctx context.Context, events []domain.Event) error {
	return s.write(ctx, events, false)
}

func (s *eventStore) write(ctx context.Context, events []domain.Event, replace bool) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
			return fmt.Errorf("clearing events: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, upsertEvent)
	if err != nil {
		return fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		e := events[i]
		e.EnsureID()
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Name, e.Organization, e.Date, e.Time, string(e.Modality), e.Location, e.Link,
			e.Country, e.Category, e.Description,
			formatNullableTime(e.ScrapedAt), e.MergedFrom, formatNullableTime(e.MergedAt))
		if err != nil {
			return fmt.Errorf("saving event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing events: %w", err)
	}
	return nil
}

// Get retrieves an event by ID.
func (s *eventStore) Get(ctx context.Context, id string) (*domain.Event, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns events matching filter, ordered by date then name.
func (s *eventStore) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Country != "" {
		where = append(where, "country = ?")
		args = append(args, filter.Country)
	}
	if filter.Organization != "" {
		where = append(where, "organization = ?")
		args = append(args, filter.Organization)
	}
	// ISO dates compare correctly as text.
	if filter.From != "" {
		where = append(where, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		where = append(where, "date <= ?")
		args = append(args, filter.To)
	}

	query := "SELECT " + eventColumns + " FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date, name, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// Count returns the number of stored events.
func (s *eventStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

// Clear removes all events.
func (s *eventStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e                   domain.Event
		modality            string
		scrapedAt, mergedAt sql.NullString
	)
	err := row.Scan(&e.ID, &e.Name, &e.Organization, &e.Date, &e.Time, &modality, &e.Location, &e.Link,
		&e.Country, &e.Category, &e.Description, &scrapedAt, &e.MergedFrom, &mergedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	e.Modality = domain.Modality(modality)
	e.ScrapedAt = parseNullableTime(scrapedAt)
	e.MergedAt = parseNullableTime(mergedAt)
	return &e, nil
}

// formatNullableTime formats a time to RFC3339 string, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
