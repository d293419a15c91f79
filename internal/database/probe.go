package database

import (
	"context"
	"fmt"
)

// DefaultTables are the backend tables `db counts` reports on.
var DefaultTables = []string{
	"users", "address_books", "food_categories", "admins", "finance_rules",
	"restaurants", "menu_items", "menu_item_variants", "promotions",
	"drivers", "customers", "customer_cares", "orders",
}

type TableCount struct {
	Table string
	Count int64
	Err   error
}

// CountTables counts every table; a missing table is reported, not fatal.
func CountTables(ctx context.Context, db DatabaseAdapter, tables []string) []TableCount {
	out := make([]TableCount, 0, len(tables))
	for _, t := range tables {
		tc := TableCount{Table: t}
		exists, err := db.CheckTableExists(ctx, t)
		switch {
		case err != nil:
			tc.Err = err
		case !exists:
			tc.Err = fmt.Errorf("table does not exist")
		default:
			tc.Count, tc.Err = db.CountRows(ctx, t)
		}
		out = append(out, tc)
	}
	return out
}

// FixResult describes what FixCustomerLastLogin found and did.
type FixResult struct {
	WasNotNull bool
	Altered    bool
}

// FixCustomerLastLogin makes customers.last_login nullable so customers
// can be created without a login timestamp.
func FixCustomerLastLogin(ctx context.Context, db DatabaseAdapter) (FixResult, error) {
	var res FixResult
	notNull, err := db.CheckNotNullConstraint(ctx, "customers", "last_login")
	if err != nil {
		return res, fmt.Errorf("failed to inspect customers.last_login: %w", err)
	}
	res.WasNotNull = notNull
	if !notNull {
		return res, nil
	}
	if err := db.DropNotNullConstraint(ctx, "customers", "last_login"); err != nil {
		return res, fmt.Errorf("failed to make customers.last_login nullable: %w", err)
	}
	res.Altered = true
	return res, nil
}
