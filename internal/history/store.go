// Package history persists saved consoles in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rebeliceyang/pgdesk/internal/models"
)

//go:embed schema.sql
var schemaSQL string

var (
	// ErrConsoleNotFound is returned when no console has the requested id
	ErrConsoleNotFound = errors.New("console not found")
	// ErrInvalidConsole is returned when a console fails validation
	ErrInvalidConsole = errors.New("invalid console")
)

const consoleColumns = `id, name, status, ddl, type, data_source_id, database_name, schema_name, created_at, updated_at`

// Store manages saved console persistence
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (and creates if needed) the console database at path
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s, err := NewStoreWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreWithDB wraps an already opened database and applies the schema
func NewStoreWithDB(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func validate(c *models.Console) error {
	c.Name = strings.TrimSpace(c.Name)
	c.DDL = strings.TrimSpace(c.DDL)

	if c.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidConsole)
	}
	if c.Status == "" {
		c.Status = models.ConsoleStatusDraft
	}
	if _, err := models.ParseConsoleStatus(string(c.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConsole, err)
	}
	if c.Status == models.ConsoleStatusRelease && c.DDL == "" {
		return fmt.Errorf("%w: a released console needs a query", ErrInvalidConsole)
	}
	return nil
}

// SaveConsole inserts a console and returns its id
func (s *Store) SaveConsole(ctx context.Context, c models.Console) (int64, error) {
	if err := validate(&c); err != nil {
		return 0, err
	}

	now := s.now().UnixMilli()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO consoles
		(name, status, ddl, type, data_source_id, database_name, schema_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, string(c.Status), c.DDL, c.Type,
		c.DataSourceID, c.DatabaseName, c.SchemaName,
		now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save console: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read console id: %w", err)
	}
	return id, nil
}

// UpdateConsole overwrites the editable fields of a console
func (s *Store) UpdateConsole(ctx context.Context, c models.Console) error {
	if err := validate(&c); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE consoles
		SET name = ?, status = ?, ddl = ?, type = ?,
		    data_source_id = ?, database_name = ?, schema_name = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, string(c.Status), c.DDL, c.Type,
		c.DataSourceID, c.DatabaseName, c.SchemaName,
		s.now().UnixMilli(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update console %d: %w", c.ID, err)
	}
	return expectOneRow(res, c.ID)
}

// DeleteConsole removes a console by id
func (s *Store) DeleteConsole(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM consoles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete console %d: %w", id, err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrConsoleNotFound, id)
	}
	return nil
}

// GetConsole returns a console by id
func (s *Store) GetConsole(ctx context.Context, id int64) (*models.Console, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+consoleColumns+` FROM consoles WHERE id = ?`, id)

	c, err := scanConsole(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrConsoleNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read console %d: %w", id, err)
	}
	return &c, nil
}

// ListSavedConsoles returns one page of consoles matching the status and
// every non-empty workspace field of q, most recently updated first
func (s *Store) ListSavedConsoles(ctx context.Context, q models.ConsoleQuery) ([]models.Console, error) {
	var (
		conds []string
		args  []interface{}
	)

	if q.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(q.Status))
	}
	for _, f := range []struct{ col, val string }{
		{"data_source_id", q.DataSourceID},
		{"database_name", q.DatabaseName},
		{"schema_name", q.SchemaName},
	} {
		if f.val != "" {
			conds = append(conds, f.col+" = ?")
			args = append(args, f.val)
		}
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + consoleColumns + ` FROM consoles`)
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY updated_at DESC, id DESC")
	if q.PageSize > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, q.PageSize, q.Offset())
	}

	return s.query(ctx, b.String(), args...)
}

// Search finds consoles whose name or query contains text
func (s *Store) Search(ctx context.Context, text string, limit int) ([]models.Console, error) {
	pattern := "%" + text + "%"
	return s.query(ctx, `
		SELECT `+consoleColumns+`
		FROM consoles
		WHERE name LIKE ? OR ddl LIKE ?
		ORDER BY updated_at DESC, id DESC
		LIMIT ?`, pattern, pattern, limit)
}

// All returns every console, oldest first
func (s *Store) All(ctx context.Context) ([]models.Console, error) {
	return s.query(ctx, `SELECT `+consoleColumns+` FROM consoles ORDER BY id`)
}

func (s *Store) query(ctx context.Context, query string, args ...interface{}) ([]models.Console, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query consoles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	consoles := make([]models.Console, 0)
	for rows.Next() {
		c, err := scanConsole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan console: %w", err)
		}
		consoles = append(consoles, c)
	}

	return consoles, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanConsole(sc scanner) (models.Console, error) {
	var (
		c                    models.Console
		status               string
		createdAt, updatedAt int64
	)

	err := sc.Scan(
		&c.ID,
		&c.Name,
		&status,
		&c.DDL,
		&c.Type,
		&c.DataSourceID,
		&c.DatabaseName,
		&c.SchemaName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return c, err
	}

	c.Status = models.ConsoleStatus(status)
	c.CreatedAt = time.UnixMilli(createdAt)
	c.UpdatedAt = time.UnixMilli(updatedAt)
	return c, nil
}
