// Package store records check runs in a SQLite history database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/segcheck/internal/girder"
	"github.com/harrison/segcheck/internal/models"
	"github.com/harrison/segcheck/internal/segment"
)

var (
	// ErrRunNotFound is returned when no run matches an ID.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRunID is returned when an ID prefix matches several runs.
	ErrAmbiguousRunID = errors.New("ambiguous run id")
)

// RunRecord is one recorded check run.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Files      int
	Segments   int
	Passed     int
	Failed     int
	LoadErrors int
	Success    bool
}

// SegmentRecord is the stored outcome of one segment in a run.
type SegmentRecord struct {
	RunID                string
	Girder               string
	FilePath             string
	Key                  models.SegmentKey
	Passed               bool
	ReleaseStrength      models.RequiredStrength
	SegmentStrength      models.RequiredStrength
	ClosureJointStrength models.RequiredStrength
	DeckStrength         models.RequiredStrength
	FailedChecks         []segment.Check
}

// Store manages the run history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens the database at dbPath, creating parent directories, and
// applies pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	// busy_timeout must be first so later statements wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// execWithRetry retries "database is locked" failures with exponential backoff.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path.
func (s *Store) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores run and its segment outcomes and returns the new run ID.
func (s *Store) RecordRun(ctx context.Context, run *girder.Run) (string, error) {
	if run == nil {
		return "", fmt.Errorf("record run: nil run")
	}

	id := uuid.NewString()
	total, passed, failed := run.Counts()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, started_at, duration_ms, files, segments, passed, failed, load_errors, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.StartedAt.UTC(), run.Duration.Milliseconds(),
		len(run.Girders)+len(run.Errors), total, passed, failed, len(run.Errors), run.Passed())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO segment_results
		(run_id, girder, file_path, group_index, girder_index, segment_index, passed,
		 release_fc, segment_fc, closure_joint_fc, deck_fc, failed_checks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare segment insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range run.Girders {
		for _, sm := range g.Segments {
			_, err := stmt.ExecContext(ctx, id, g.Name, g.FilePath,
				sm.Key.Group, sm.Key.Girder, sm.Key.Segment, sm.Passed,
				sm.ReleaseStrength.Sentinel(), sm.SegmentStrength.Sentinel(),
				sm.ClosureJointStrength.Sentinel(), sm.DeckStrength.Sentinel(),
				joinChecks(sm.FailedChecks()))
			if err != nil {
				return "", fmt.Errorf("insert segment %s: %w", sm.Key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// Prune deletes all but the keep most recent runs. keep <= 0 keeps everything.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM runs WHERE seq NOT IN (SELECT seq FROM runs ORDER BY seq DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("delete old runs: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM segment_results WHERE run_id NOT IN (SELECT id FROM runs)`); err != nil {
		return 0, fmt.Errorf("delete orphaned segments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit prune: %w", err)
	}
	return deleted, nil
}

const runColumns = `id, started_at, duration_ms, files, segments, passed, failed, load_errors, success`

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the run whose ID equals or starts with id, and its
// segment outcomes in girder and key order.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, []SegmentRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	run, err := s.findRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	segments, err := s.segments(ctx, run.ID)
	if err != nil {
		return nil, nil, err
	}
	return run, segments, nil
}

// findRun prefers an exact ID match and otherwise requires a unique prefix.
func (s *Store) findRun(ctx context.Context, id string) (*RunRecord, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, length(?)) = ? ORDER BY seq DESC LIMIT 2`, id, id)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []*RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRunID, id)
	}
}

func (s *Store) segments(ctx context.Context, runID string) ([]SegmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, girder, file_path, group_index, girder_index, segment_index,
		passed, release_fc, segment_fc, closure_joint_fc, deck_fc, failed_checks
		FROM segment_results WHERE run_id = ?
		ORDER BY girder, group_index, girder_index, segment_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var out []SegmentRecord
	for rows.Next() {
		var (
			rec                           SegmentRecord
			release, final, closure, deck float64
			failed                        string
		)
		if err := rows.Scan(&rec.RunID, &rec.Girder, &rec.FilePath,
			&rec.Key.Group, &rec.Key.Girder, &rec.Key.Segment, &rec.Passed,
			&release, &final, &closure, &deck, &failed); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		rec.ReleaseStrength = models.StrengthFromSentinel(release)
		rec.SegmentStrength = models.StrengthFromSentinel(final)
		rec.ClosureJointStrength = models.StrengthFromSentinel(closure)
		rec.DeckStrength = models.StrengthFromSentinel(deck)
		rec.FailedChecks = splitChecks(failed)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunRecord, error) {
	r := &RunRecord{}
	var durationMs int64
	if err := row.Scan(&r.ID, &r.StartedAt, &durationMs, &r.Files, &r.Segments,
		&r.Passed, &r.Failed, &r.LoadErrors, &r.Success); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	return r, nil
}

// Checks are stored as a newline-separated list; check names never contain newlines.
func joinChecks(checks []segment.Check) string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = string(c)
	}
	return strings.Join(names, "\n")
}

func splitChecks(s string) []segment.Check {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	checks := make([]segment.Check, len(parts))
	for i, p := range parts {
		checks[i] = segment.Check(p)
	}
	return checks
}
