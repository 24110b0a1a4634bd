package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore records generations in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite state store instance. A nil logger
// discards debug output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if path == ":memory:" {
		// A second pool connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// RecordGeneration inserts one generation record. The ID and CreatedAt
// fields are filled when empty.
func (s *SQLiteStore) RecordGeneration(ctx context.Context, gen *Generation) error {
	if s.db == nil {
		return ErrNotOpened
	}

	if gen.ID == "" {
		gen.ID = generateID()
	}
	if gen.CreatedAt.IsZero() {
		gen.CreatedAt = time.Now().UTC()
	}

	s.logger.Debug("recording generation",
		slog.String("id", gen.ID),
		slog.String("pipeline", gen.Pipeline),
		slog.String("status", string(gen.Status)))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, pipeline, sql_text, descriptor_json, source_type, sink_type, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gen.ID, gen.Pipeline, gen.SQLText, gen.DescriptorJSON,
		gen.SourceType, gen.SinkType, string(gen.Status), nullableString(gen.Error), gen.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// GetGeneration retrieves a generation by ID.
func (s *SQLiteStore) GetGeneration(ctx context.Context, id string) (*Generation, error) {
	if s.db == nil {
		return nil, ErrNotOpened
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, pipeline, sql_text, descriptor_json, source_type, sink_type, status, error, created_at
		 FROM generations WHERE id = ?`, id)

	gen, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("generation not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return gen, nil
}

// ListGenerations retrieves the most recent generations matching the
// filter, newest first.
func (s *SQLiteStore) ListGenerations(ctx context.Context, filter ListFilter) ([]*Generation, error) {
	if s.db == nil {
		return nil, ErrNotOpened
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, pipeline, sql_text, descriptor_json, source_type, sink_type, status, error, created_at
		 FROM generations`
	args := []any{}
	if filter.Pipeline != "" {
		query += ` WHERE pipeline = ?`
		args = append(args, filter.Pipeline)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var gens []*Generation
	for rows.Next() {
		gen, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		gens = append(gens, gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return gens, nil
}

// PruneGenerations deletes all but the newest keep records and returns
// the number deleted.
func (s *SQLiteStore) PruneGenerations(ctx context.Context, keep int) (int64, error) {
	if s.db == nil {
		return 0, ErrNotOpened
	}
	if keep < 0 {
		keep = 0
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM generations WHERE id NOT IN (
			SELECT id FROM generations ORDER BY created_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune generations: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune generations: %w", err)
	}

	s.logger.Debug("pruned generations", slog.Int64("deleted", n), slog.Int("kept", keep))
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row scanner) (*Generation, error) {
	gen := &Generation{}
	var status string
	var errMsg sql.NullString

	err := row.Scan(&gen.ID, &gen.Pipeline, &gen.SQLText, &gen.DescriptorJSON,
		&gen.SourceType, &gen.SinkType, &status, &errMsg, &gen.CreatedAt)
	if err != nil {
		return nil, err
	}

	gen.Status = GenerationStatus(status)
	if errMsg.Valid {
		gen.Error = errMsg.String
	}
	return gen, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
