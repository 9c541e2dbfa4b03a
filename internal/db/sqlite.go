// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/palisadeengineering/timeaudit/internal/block"
)

// SQLite implements block.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateBlock adds a new block to the repository.
// Live blocks are rejected with ErrTimeBlockOverlap if they conflict with
// another live block on the same date. External blocks may overlap freely;
// the grid layout stacks them side by side.
func (s *SQLite) CreateBlock(ctx context.Context, b *block.TimeBlock) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	if !b.IsExternal() {
		if err := s.checkOverlap(ctx, b.Date, b.Start, b.End, ""); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertBlockTx(ctx, tx, b); err != nil {
		return err
	}

	if err := replaceBlockTagsTx(ctx, tx, b.ID, b.TagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetBlock retrieves a block by ID. Returns nil, nil if not found.
func (s *SQLite) GetBlock(ctx context.Context, id string) (*block.TimeBlock, error) {
	query := selectBlockColumns + ` FROM blocks WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id)
	b, err := scanBlock(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying block: %w", err)
	}

	tags, err := s.tagsForBlocks(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	b.TagIDs = tags[id]

	return b, nil
}

// ListBlocksByDateRange returns all blocks scheduled within the date range
// (inclusive), ordered by date then start time.
func (s *SQLite) ListBlocksByDateRange(ctx context.Context, start, end time.Time) ([]*block.TimeBlock, error) {
	query := selectBlockColumns + `
		FROM blocks
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time
	`

	rows, err := s.db.QueryContext(ctx, query,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blocks []*block.TimeBlock
	var ids []string
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		blocks = append(blocks, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}

	tags, err := s.tagsForBlocks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		b.TagIDs = tags[b.ID]
	}

	return blocks, nil
}

// MoveBlock reschedules a block to a new date and time window.
// Returns ErrTimeBlockOverlap if the new position conflicts with a live block.
func (s *SQLite) MoveBlock(ctx context.Context, id string, newDate time.Time, newStart, newEnd string) error {
	b, err := s.GetBlock(ctx, id)
	if err != nil {
		return fmt.Errorf("getting block: %w", err)
	}
	if b == nil {
		return fmt.Errorf("block %s: %w", id, block.ErrBlockNotFound)
	}

	if err := s.checkOverlap(ctx, newDate, newStart, newEnd, id); err != nil {
		return err
	}

	query := `UPDATE blocks SET date = ?, start_time = ?, end_time = ? WHERE id = ?`
	_, err = s.db.ExecContext(ctx, query, newDate.Format("2006-01-02"), newStart, newEnd, id)
	if err != nil {
		return fmt.Errorf("updating block times: %w", err)
	}
	return nil
}

// ResizeBlock changes only the end time of a block.
// Returns ErrTimeBlockOverlap if extending into a live block.
func (s *SQLite) ResizeBlock(ctx context.Context, id string, newEnd string) error {
	b, err := s.GetBlock(ctx, id)
	if err != nil {
		return fmt.Errorf("getting block: %w", err)
	}
	if b == nil {
		return fmt.Errorf("block %s: %w", id, block.ErrBlockNotFound)
	}

	if newEnd <= b.Start {
		return block.ErrEndBeforeStart
	}

	if err := s.checkOverlap(ctx, b.Date, b.Start, newEnd, id); err != nil {
		return err
	}

	query := `UPDATE blocks SET end_time = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, newEnd, id); err != nil {
		return fmt.Errorf("updating block end: %w", err)
	}
	return nil
}

// UpdateBlockDetails changes a block's activity name, quadrant, and energy
// rating without touching its schedule.
func (s *SQLite) UpdateBlockDetails(ctx context.Context, id, name string, q block.Quadrant, e block.Energy) error {
	if name == "" {
		return block.ErrEmptyActivityName
	}
	if !q.Valid() {
		return block.ErrInvalidQuadrant
	}
	if !e.Valid() {
		return block.ErrInvalidEnergy
	}

	query := `UPDATE blocks SET activity_name = ?, quadrant = ?, energy = ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query, name, string(q), string(e), id)
	if err != nil {
		return fmt.Errorf("updating block details: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating block details: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("block %s: %w", id, block.ErrBlockNotFound)
	}
	return nil
}

// DeleteBlock removes a block permanently.
func (s *SQLite) DeleteBlock(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("block %s: %w", id, block.ErrBlockNotFound)
	}
	return nil
}

// UpsertExternalBlock creates or updates a block keyed by its ExternalEventID,
// so re-importing the same calendar feed is idempotent.
func (s *SQLite) UpsertExternalBlock(ctx context.Context, b *block.TimeBlock) error {
	if b.ExternalEventID == "" {
		return fmt.Errorf("upserting external block: missing external event id")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	b.Source = block.SourceExternal

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM blocks WHERE external_event_id = ?`, b.ExternalEventID,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		if err := insertBlockTx(ctx, tx, b); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("querying external block: %w", err)
	default:
		b.ID = existingID
		query := `
			UPDATE blocks
			SET activity_name = ?, quadrant = ?, energy = ?,
			    date = ?, start_time = ?, end_time = ?,
			    is_recurring = ?, recurrence_rule = ?,
			    is_recurrence_instance = ?, parent_block_id = ?
			WHERE id = ?
		`
		_, err := tx.ExecContext(ctx, query,
			b.ActivityName,
			nullString(string(b.Quadrant)),
			nullString(string(b.Energy)),
			b.Date.Format("2006-01-02"),
			b.Start,
			b.End,
			b.IsRecurring,
			nullString(b.RecurrenceRule),
			b.IsRecurrenceInstance,
			nullString(b.ParentBlockID),
			existingID,
		)
		if err != nil {
			return fmt.Errorf("updating external block: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// CreateTag adds a new tag.
func (s *SQLite) CreateTag(ctx context.Context, t *block.Tag) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `INSERT INTO tags (id, name, color) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, t.ID, t.Name, t.Color); err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

// GetTag retrieves a tag by ID.
func (s *SQLite) GetTag(ctx context.Context, id string) (*block.Tag, error) {
	var t block.Tag
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM tags WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Color)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %s: %w", id, block.ErrTagNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying tag: %w", err)
	}
	return &t, nil
}

// ListTags returns all tags ordered by name.
func (s *SQLite) ListTags(ctx context.Context) ([]*block.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []*block.Tag
	for rows.Next() {
		var t block.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

const selectBlockColumns = `
	SELECT id, activity_name, quadrant, energy, date, start_time, end_time,
	       source, external_event_id, is_recurring, recurrence_rule,
	       is_recurrence_instance, parent_block_id, created_at`

// scanner abstracts *sql.Row and *sql.Rows for scanBlock.
type scanner interface {
	Scan(dest ...any) error
}

func scanBlock(row scanner) (*block.TimeBlock, error) {
	var (
		b               block.TimeBlock
		quadrant        sql.NullString
		energy          sql.NullString
		date            string
		externalEventID sql.NullString
		recurrenceRule  sql.NullString
		parentBlockID   sql.NullString
		createdAt       string
	)

	err := row.Scan(
		&b.ID,
		&b.ActivityName,
		&quadrant,
		&energy,
		&date,
		&b.Start,
		&b.End,
		&b.Source,
		&externalEventID,
		&b.IsRecurring,
		&recurrenceRule,
		&b.IsRecurrenceInstance,
		&parentBlockID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing block date: %w", err)
	}
	b.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	b.Quadrant = block.Quadrant(quadrant.String)
	b.Energy = block.Energy(energy.String)
	b.ExternalEventID = externalEventID.String
	b.RecurrenceRule = recurrenceRule.String
	b.ParentBlockID = parentBlockID.String

	return &b, nil
}

func insertBlockTx(ctx context.Context, tx *sql.Tx, b *block.TimeBlock) error {
	query := `
		INSERT INTO blocks (
			id, activity_name, quadrant, energy, date, start_time, end_time,
			source, external_event_id, is_recurring, recurrence_rule,
			is_recurrence_instance, parent_block_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		b.ID,
		b.ActivityName,
		nullString(string(b.Quadrant)),
		nullString(string(b.Energy)),
		b.Date.Format("2006-01-02"),
		b.Start,
		b.End,
		b.Source,
		nullString(b.ExternalEventID),
		b.IsRecurring,
		nullString(b.RecurrenceRule),
		b.IsRecurrenceInstance,
		nullString(b.ParentBlockID),
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting block: %w", err)
	}
	return nil
}

// replaceBlockTagsTx rewrites the tag associations for a block.
func replaceBlockTagsTx(ctx context.Context, tx *sql.Tx, blockID string, tagIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM block_tags WHERE block_id = ?`, blockID); err != nil {
		return fmt.Errorf("clearing block tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO block_tags (block_id, tag_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, tagID := range tagIDs {
		if _, err := stmt.ExecContext(ctx, blockID, tagID); err != nil {
			return fmt.Errorf("inserting block tag %s: %w", tagID, err)
		}
	}
	return nil
}

// tagsForBlocks returns the tag IDs for each of the given block IDs.
func (s *SQLite) tagsForBlocks(ctx context.Context, blockIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(blockIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(blockIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT block_id, tag_id FROM block_tags WHERE block_id IN (` + placeholders + `)`

	args := make([]any, len(blockIDs))
	for i, id := range blockIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying block tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var blockID, tagID string
		if err := rows.Scan(&blockID, &tagID); err != nil {
			return nil, fmt.Errorf("scanning block tag: %w", err)
		}
		result[blockID] = append(result[blockID], tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating block tags: %w", err)
	}
	return result, nil
}

// checkOverlap checks if a time window conflicts with a live block on the
// same date. excludeID skips the block being updated so it does not conflict
// with itself; pass "" for inserts.
// Two time ranges overlap if: start1 < end2 AND start2 < end1
func (s *SQLite) checkOverlap(ctx context.Context, date time.Time, start, end, excludeID string) error {
	query := `
		SELECT id, start_time, end_time, activity_name
		FROM blocks
		WHERE date = ?
		  AND source = ?
		  AND id != ?
		  AND start_time < ?
		  AND end_time > ?
		LIMIT 1
	`

	var (
		id           string
		existStart   string
		existEnd     string
		activityName string
	)

	err := s.db.QueryRowContext(ctx, query,
		date.Format("2006-01-02"),
		block.SourceLive,
		excludeID,
		end,
		start,
	).Scan(&id, &existStart, &existEnd, &activityName)

	if err == sql.ErrNoRows {
		return nil // No overlap
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: conflicts with %q (%s-%s)",
		block.ErrTimeBlockOverlap, activityName, existStart, existEnd)
}

// nullString converts an empty string to NULL for storage.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; extract the date
	// part and treat it as local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// parseTimestamp parses a stored timestamp, accepting the formats SQLite uses
// for DATETIME defaults alongside the RFC3339 values we write ourselves.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
