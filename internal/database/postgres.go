package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type PostgresAdapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

func NewPostgresAdapter() *PostgresAdapter {
	return &PostgresAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *PostgresAdapter) Connect(ctx context.Context, url string) error {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	p.pool = pool
	return nil
}

func (p *PostgresAdapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *PostgresAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresAdapter) CountRows(ctx context.Context, tableName string) (int64, error) {
	if err := validIdentifier(tableName); err != nil {
		return 0, err
	}
	query, args, err := p.qb.Select("COUNT(*)").From(pq.QuoteIdentifier(tableName)).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", tableName, err)
	}
	return n, nil
}

func (p *PostgresAdapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := p.qb.Select("1").
		From("information_schema.tables").
		Where(squirrel.Eq{"table_schema": "public", "table_name": tableName}).
		ToSql()
	if err != nil {
		return false, err
	}
	var one int
	err = p.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (p *PostgresAdapter) CheckNotNullConstraint(ctx context.Context, tableName, columnName string) (bool, error) {
	query, args, err := p.qb.Select("is_nullable").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_schema": "public", "table_name": tableName, "column_name": columnName}).
		ToSql()
	if err != nil {
		return false, err
	}
	var isNullable string
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&isNullable); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("column %s.%s not found", tableName, columnName)
		}
		return false, err
	}
	return isNullable == "NO", nil
}

func (p *PostgresAdapter) DropNotNullConstraint(ctx context.Context, tableName, columnName string) error {
	if err := validIdentifier(tableName, columnName); err != nil {
		return err
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP NOT NULL",
		pq.QuoteIdentifier(tableName), pq.QuoteIdentifier(columnName))
	_, err := p.pool.Exec(ctx, stmt)
	return err
}
