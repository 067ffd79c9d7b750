package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/locgen"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ locgen.RunService = (*RunService)(nil)

// RunService implements locgen.RunService using SQLite.
// Elements are stored one row per element as JSON.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// HashContent computes the xxHash of content as a hex string.
func HashContent(content string) string {
	var b [8]byte
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// CreateRun saves the run and its elements in one transaction.
func (s *RunService) CreateRun(ctx context.Context, run *locgen.Run, html string) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC().Truncate(time.Second)
	run.ContentHash = HashContent(html)
	run.ElementCount = len(run.Elements)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, content_hash, element_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.ContentHash, run.ElementCount, run.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, el := range run.Elements {
		data, err := json.Marshal(el)
		if err != nil {
			return fmt.Errorf("failed to encode element %s: %w", el.Key, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO elements (run_id, position, key, tag_name, data)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, i, el.Key, el.TagName, string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its elements in extraction order.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*locgen.Run, error) {
	var run locgen.Run
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, content_hash, element_count, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Source, &run.ContentHash, &run.ElementCount, &createdAt)

	if err == sql.ErrNoRows {
		return nil, locgen.Errorf(locgen.ENOTFOUND, "run %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	if run.Elements, err = s.findElements(ctx, id); err != nil {
		return nil, err
	}

	return &run, nil
}

func (s *RunService) findElements(ctx context.Context, runID string) ([]*locgen.ElementInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM elements WHERE run_id = ? ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	elems := []*locgen.ElementInfo{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var el locgen.ElementInfo
		if err := json.Unmarshal([]byte(data), &el); err != nil {
			return nil, fmt.Errorf("failed to decode element: %w", err)
		}
		elems = append(elems, &el)
	}

	return elems, rows.Err()
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter locgen.RunFilter) ([]*locgen.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, content_hash, element_count, created_at FROM runs WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*locgen.Run
	for rows.Next() {
		var run locgen.Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.Source, &run.ContentHash, &run.ElementCount, &createdAt); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run. Its elements are removed by the
// foreign key cascade.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return locgen.Errorf(locgen.ENOTFOUND, "run %q not found", id)
	}

	return nil
}
