package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

// captureStore implements driven.CaptureStore.
type captureStore struct {
	store *Store
}

var _ driven.CaptureStore = (*captureStore)(nil)

const captureColumns = `id, image_path, raw_text, qr_payload, annotations, category,
	extracted_content, event_time, title, blocks, captured_at, created_at`

// Save stores or replaces a capture.
func (s *captureStore) Save(ctx context.Context, c *domain.Capture) error {
	if c == nil || c.ID == "" {
		return domain.ErrInvalidInput
	}

	annotations, err := marshalJSON(c.Annotations)
	if err != nil {
		return fmt.Errorf("marshalling annotations: %w", err)
	}
	blocks, err := marshalJSON(c.Blocks)
	if err != nil {
		return fmt.Errorf("marshalling blocks: %w", err)
	}

	var eventTime sql.NullInt64
	if c.EventTime != nil {
		eventTime = sql.NullInt64{Int64: c.EventTime.UnixMilli(), Valid: true}
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO captures (`+captureColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			image_path = excluded.image_path,
			raw_text = excluded.raw_text,
			qr_payload = excluded.qr_payload,
			annotations = excluded.annotations,
			category = excluded.category,
			extracted_content = excluded.extracted_content,
			event_time = excluded.event_time,
			title = excluded.title,
			blocks = excluded.blocks,
			captured_at = excluded.captured_at
	`, c.ID, c.ImagePath, c.RawText, c.QRPayload, annotations, string(c.Category),
		c.ExtractedContent, eventTime, c.Title, blocks,
		c.CapturedAt.UnixMilli(), createdAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("saving capture: %w", err)
	}
	return nil
}

// Get retrieves a capture by ID.
func (s *captureStore) Get(ctx context.Context, id string) (*domain.Capture, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+captureColumns+` FROM captures WHERE id = ?`, id)
	c, err := scanCapture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a capture.
func (s *captureStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `DELETE FROM captures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting capture: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting capture: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns captures passing the filter, newest CapturedAt first.
// Category selection runs in SQL; the text query is matched in Go because
// SQLite's LOWER only folds ASCII.
func (s *captureStore) List(ctx context.Context, filter domain.CaptureFilter) ([]domain.Capture, error) {
	query := `SELECT ` + captureColumns + ` FROM captures`
	var where []string
	var args []any

	switch {
	case filter.Category != nil:
		where = append(where, "category = ?")
		args = append(args, string(*filter.Category))
	case !filter.IncludeSensitive:
		for _, c := range domain.AllCategories() {
			if c.IsSensitive() {
				where = append(where, "category <> ?")
				args = append(args, string(c))
			}
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY captured_at DESC, id ASC"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing captures: %w", err)
	}
	defer rows.Close()

	var captures []domain.Capture
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, err
		}
		if !filter.Matches(c) {
			continue
		}
		captures = append(captures, *c)
		if filter.Limit > 0 && len(captures) == filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating captures: %w", err)
	}
	return captures, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCapture(row rowScanner) (*domain.Capture, error) {
	var (
		c                     domain.Capture
		category              string
		annotations, blocks   string
		eventTime             sql.NullInt64
		capturedAt, createdAt int64
	)
	if err := row.Scan(&c.ID, &c.ImagePath, &c.RawText, &c.QRPayload, &annotations, &category,
		&c.ExtractedContent, &eventTime, &c.Title, &blocks, &capturedAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning capture: %w", err)
	}

	c.Category = domain.Category(category)
	if err := unmarshalJSON(annotations, &c.Annotations); err != nil {
		return nil, fmt.Errorf("unmarshaling annotations: %w", err)
	}
	if err := unmarshalJSON(blocks, &c.Blocks); err != nil {
		return nil, fmt.Errorf("unmarshaling blocks: %w", err)
	}
	if eventTime.Valid {
		t := time.UnixMilli(eventTime.Int64)
		c.EventTime = &t
	}
	c.CapturedAt = time.UnixMilli(capturedAt)
	c.CreatedAt = time.UnixMilli(createdAt)
	return &c, nil
}

// ==================== Helper Functions ====================

// jsonNull is the JSON representation of null.
const jsonNull = "null"

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == jsonNull {
		return "[]", nil
	}
	return string(data), nil
}

func unmarshalJSON(data string, v any) error {
	if data == "" || data == jsonNull || data == "[]" {
		return nil
	}
	return json.Unmarshal([]byte(data), v)
}
