// Package pgstore implements the signup store on PostgreSQL, for
// deployments that have outgrown the spreadsheet backend. Both backends
// satisfy store.SignupStore, so the coordinator never knows which one it
// has.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// columns maps canonical record field names to table columns, in the order
// they are selected and inserted.
var columns = []struct {
	field  string
	column string
}{
	{store.FieldServiceDate, "service_date"},
	{store.FieldDisplayDate, "display_date"},
	{store.FieldName, "name"},
	{store.FieldEmail, "email"},
	{store.FieldPhone, "phone"},
	{store.FieldRole, "role"},
	{store.FieldNotes, "notes"},
	{store.FieldAttendanceStatus, "attendance_status"},
	{store.FieldSubmittedAt, "submitted_at"},
}

// Store provides signup record operations using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL-backed store.
func New(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// RunMigrations executes all pending SQL migration files in order,
// tracking applied migrations in a schema_migrations table.
func (s *Store) RunMigrations(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	rows, err := s.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration filename: %w", err)
		}
		applied[filename] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") && !applied[entry.Name()] {
			pending = append(pending, entry.Name())
		}
	}
	sort.Strings(pending)

	for _, filename := range pending {
		sql, err := migrationsFS.ReadFile("migrations/" + filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", filename, err)
		}

		if _, err := s.pool.Exec(ctx,
			`INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
	}

	return nil
}

// Create inserts a new signup record and returns its generated id.
func (s *Store) Create(ctx context.Context, signupType store.SignupType, fields map[string]string) (string, error) {
	recordID := uuid.New().String()

	colNames := []string{"id", "signup_type"}
	args := []interface{}{recordID, string(signupType)}
	for _, c := range columns {
		colNames = append(colNames, c.column)
		args = append(args, fields[c.field])
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		`INSERT INTO signup (%s) VALUES (%s)`,
		strings.Join(colNames, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert signup: %w", err)
	}

	return recordID, nil
}

// List retrieves all signup records for a signup type.
func (s *Store) List(ctx context.Context, signupType store.SignupType) ([]store.Record, error) {
	rows, err := s.pool.Query(ctx, selectQuery()+` WHERE signup_type = $1`, string(signupType))
	if err != nil {
		return nil, fmt.Errorf("failed to query signups: %w", err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signups: %w", err)
	}

	return records, nil
}

// Find retrieves one signup record by id.
func (s *Store) Find(ctx context.Context, signupType store.SignupType, recordID string) (store.Record, error) {
	row := s.pool.QueryRow(ctx,
		selectQuery()+` WHERE signup_type = $1 AND id = $2`,
		string(signupType), recordID)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Record{}, store.ErrNotFound
		}
		return store.Record{}, err
	}

	return record, nil
}

// Update merges the given fields into an existing record.
func (s *Store) Update(ctx context.Context, signupType store.SignupType, recordID string, fields map[string]string) error {
	var sets []string
	args := []interface{}{string(signupType), recordID}

	for _, c := range columns {
		value, ok := fields[c.field]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", c.column, len(args)))
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		`UPDATE signup SET %s WHERE signup_type = $1 AND id = $2`,
		strings.Join(sets, ", "),
	)

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update signup %s: %w", recordID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Delete removes a signup record.
func (s *Store) Delete(ctx context.Context, signupType store.SignupType, recordID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM signup WHERE signup_type = $1 AND id = $2`,
		string(signupType), recordID)
	if err != nil {
		return fmt.Errorf("failed to delete signup %s: %w", recordID, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

func selectQuery() string {
	cols := []string{"id"}
	for _, c := range columns {
		cols = append(cols, c.column)
	}
	return `SELECT ` + strings.Join(cols, ", ") + ` FROM signup`
}

func scanRecord(row pgx.Row) (store.Record, error) {
	record := store.Record{Fields: make(map[string]string)}

	dest := make([]interface{}, 0, len(columns)+1)
	dest = append(dest, &record.ID)

	values := make([]*string, len(columns))
	for i := range columns {
		dest = append(dest, &values[i])
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Record{}, err
		}
		return store.Record{}, fmt.Errorf("failed to scan signup: %w", err)
	}

	for i, c := range columns {
		if values[i] != nil {
			record.Fields[c.field] = *values[i]
		}
	}

	return record, nil
}
