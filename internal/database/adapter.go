// Package database reads the backend's database directly, bypassing the
// REST API: row counts per table and the customers.last_login schema patch.
package database

import (
	"context"
	"fmt"
	"regexp"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	CountRows(ctx context.Context, tableName string) (int64, error)
	CheckTableExists(ctx context.Context, tableName string) (bool, error)
	CheckNotNullConstraint(ctx context.Context, tableName, columnName string) (bool, error)
	DropNotNullConstraint(ctx context.Context, tableName, columnName string) error
}

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return NewPostgresAdapter()
	case "mysql":
		return NewMySQLAdapter()
	case "sqlite", "sqlite3":
		return NewSQLiteAdapter()
	default:
		return NewPostgresAdapter()
	}
}

// Open creates the adapter for provider and connects it.
func Open(ctx context.Context, provider, url string) (DatabaseAdapter, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is empty")
	}
	adapter := NewAdapter(provider)
	if err := adapter.Connect(ctx, url); err != nil {
		return nil, err
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return adapter, nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validIdentifier(names ...string) error {
	for _, n := range names {
		if !identifier.MatchString(n) {
			return fmt.Errorf("invalid identifier %q", n)
		}
	}
	return nil
}
