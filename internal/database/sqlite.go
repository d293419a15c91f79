package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

var ErrUnsupported = errors.New("operation not supported by this database")

type SQLiteAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *SQLiteAdapter) Connect(ctx context.Context, url string) error {
	// Remove sqlite:// prefix if present
	dbPath := strings.TrimPrefix(url, "sqlite://")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteAdapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the handle, mainly for tests that need to create tables.
func (s *SQLiteAdapter) DB() *sql.DB {
	return s.db
}

func (s *SQLiteAdapter) CountRows(ctx context.Context, tableName string) (int64, error) {
	return countRows(ctx, s.db, s.qb, `"`+tableName+`"`, tableName)
}

func (s *SQLiteAdapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := s.qb.Select("COUNT(*)").
		From("sqlite_master").
		Where(squirrel.Eq{"type": "table", "name": tableName}).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteAdapter) CheckNotNullConstraint(ctx context.Context, tableName, columnName string) (bool, error) {
	if err := validIdentifier(tableName); err != nil {
		return false, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", tableName))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == columnName {
			return notNull == 1, nil
		}
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	return false, fmt.Errorf("column %s.%s not found", tableName, columnName)
}

// DropNotNullConstraint is not possible without rebuilding the table.
func (s *SQLiteAdapter) DropNotNullConstraint(ctx context.Context, tableName, columnName string) error {
	return fmt.Errorf("drop NOT NULL on %s.%s: %w", tableName, columnName, ErrUnsupported)
}
