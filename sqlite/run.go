package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/tagscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tagscan.RunService = (*RunService)(nil)

// RunService implements tagscan.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores run and its records in one transaction. ID, CreatedAt
// and the counters are set on run only after the commit succeeds.
func (s *RunService) CreateRun(ctx context.Context, run *tagscan.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	tags, err := encodeStrings(run.Tags)
	if err != nil {
		return err
	}
	errs, err := encodeStrings(run.Errors)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()
	recordCount := len(run.Records)
	malformedCount := tagscan.CountMalformed(run.Records)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, approach, tags, input_hash, input_bytes, record_count, malformed_count, duration_ns, errors, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, run.Source, run.Approach, tags, run.InputHash, run.InputBytes, recordCount,
		malformedCount, int64(run.Duration), errs, createdAt.Format(timestampLayout))
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, position, tag, content, status)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range run.Records {
		if _, err := stmt.ExecContext(ctx, id, i, r.Tag, r.Content, string(r.Status)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// The caller's run only changes once it is stored.
	run.ID = id
	run.CreatedAt = createdAt
	run.RecordCount = recordCount
	run.MalformedCount = malformedCount
	return nil
}

// FindRunByID retrieves a run with its records and errors.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*tagscan.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, approach, tags, input_hash, input_bytes, record_count, malformed_count, duration_ns, errors, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, errs, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, tagscan.Errorf(tagscan.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Errors, err = decodeStrings(errs, "errors")
	if err != nil {
		return nil, err
	}

	run.Records, err = s.findRecords(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter tagscan.RunFilter) ([]*tagscan.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source, approach, tags, input_hash, input_bytes, record_count, malformed_count, duration_ns, errors, created_at FROM runs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.Approach != nil {
		query.WriteString(" AND approach = ?")
		args = append(args, *filter.Approach)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*tagscan.Run
	for rows.Next() {
		run, _, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run. Its records go with it.
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
		return tagscan.Errorf(tagscan.ENOTFOUND, "run not found")
	}

	return nil
}

func (s *RunService) findRecords(ctx context.Context, runID string) ([]tagscan.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, content, status
		FROM records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []tagscan.Record
	for rows.Next() {
		var r tagscan.Record
		var status string
		if err := rows.Scan(&r.Tag, &r.Content, &status); err != nil {
			return nil, err
		}
		r.Status = tagscan.RecordStatus(status)
		records = append(records, r)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row. The raw errors column is returned separately
// so list queries can skip decoding it.
func scanRun(row scanner) (*tagscan.Run, string, error) {
	var run tagscan.Run
	var tags, errs, createdAt string
	var durationNS int64

	if err := row.Scan(&run.ID, &run.Source, &run.Approach, &tags, &run.InputHash, &run.InputBytes,
		&run.RecordCount, &run.MalformedCount, &durationNS, &errs, &createdAt); err != nil {
		return nil, "", err
	}

	var err error
	run.Tags, err = decodeStrings(tags, "tags")
	if err != nil {
		return nil, "", err
	}
	run.CreatedAt, err = parseTimestamp(createdAt, "created_at")
	if err != nil {
		return nil, "", err
	}
	run.Duration = time.Duration(durationNS)

	return &run, errs, nil
}
