package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
)

type MySQLAdapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewMySQLAdapter() *MySQLAdapter {
	return &MySQLAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (m *MySQLAdapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", url)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	m.db = db
	return nil
}

func (m *MySQLAdapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *MySQLAdapter) CountRows(ctx context.Context, tableName string) (int64, error) {
	return countRows(ctx, m.db, m.qb, "`"+tableName+"`", tableName)
}

func (m *MySQLAdapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := m.qb.Select("1").
		From("information_schema.tables").
		Where("table_schema = DATABASE()").
		Where(squirrel.Eq{"table_name": tableName}).
		ToSql()
	if err != nil {
		return false, err
	}
	var one int
	err = m.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (m *MySQLAdapter) columnType(ctx context.Context, tableName, columnName string) (string, string, error) {
	query, args, err := m.qb.Select("is_nullable", "column_type").
		From("information_schema.columns").
		Where("table_schema = DATABASE()").
		Where(squirrel.Eq{"table_name": tableName, "column_name": columnName}).
		ToSql()
	if err != nil {
		return "", "", err
	}
	var nullable, colType string
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&nullable, &colType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("column %s.%s not found", tableName, columnName)
		}
		return "", "", err
	}
	return nullable, colType, nil
}

func (m *MySQLAdapter) CheckNotNullConstraint(ctx context.Context, tableName, columnName string) (bool, error) {
	nullable, _, err := m.columnType(ctx, tableName, columnName)
	if err != nil {
		return false, err
	}
	return nullable == "NO", nil
}

func (m *MySQLAdapter) DropNotNullConstraint(ctx context.Context, tableName, columnName string) error {
	if err := validIdentifier(tableName, columnName); err != nil {
		return err
	}
	_, colType, err := m.columnType(ctx, tableName, columnName)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf("ALTER TABLE `%s` MODIFY `%s` %s NULL", tableName, columnName, colType)
	_, err = m.db.ExecContext(ctx, stmt)
	return err
}

// countRows runs SELECT COUNT(*) on a database/sql handle. quoted is the
// dialect-quoted form of tableName.
func countRows(ctx context.Context, db *sql.DB, qb squirrel.StatementBuilderType, quoted, tableName string) (int64, error) {
	if err := validIdentifier(tableName); err != nil {
		return 0, err
	}
	query, args, err := qb.Select("COUNT(*)").From(quoted).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", tableName, err)
	}
	return n, nil
}
