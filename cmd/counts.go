package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/flashseed/internal/database"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/spf13/cobra"
)

// countTables are the API collections `counts` reports on.
var countTables = []struct{ Name, Path string }{
	{"Users", "users"},
	{"Customers", "customers"},
	{"Drivers", "drivers"},
	{"Restaurants", "restaurants"},
	{"Food Categories", "food-categories"},
	{"Address Books", "address_books"},
}

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Count records per collection through the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := backendClient(cfg)
		ctx := context.Background()

		rows := make([]report.Row, 0, len(countTables))
		for _, t := range countTables {
			records, err := client.List(ctx, t.Path)
			row := report.Row{Name: t.Name, Count: len(records), Err: err}
			for i := 0; i < len(records) && i < 3; i++ {
				row.Samples = append(row.Samples, records[i].DisplayName())
			}
			rows = append(rows, row)
		}
		report.Stdout().Table("Database Counts", rows)
		return nil
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the backend database directly",
}

var dbCountsCmd = &cobra.Command{
	Use:   "counts [tables...]",
	Short: "Count rows per table straight from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		ctx := context.Background()
		db, err := database.Open(ctx, cfg.Database.Provider, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		tables := args
		if len(tables) == 0 {
			tables = database.DefaultTables
		}

		var rows []report.Row
		for _, tc := range database.CountTables(ctx, db, tables) {
			rows = append(rows, report.Row{Name: tc.Table, Count: int(tc.Count), Err: tc.Err})
		}
		report.Stdout().Table("Table Row Counts", rows)
		return nil
	},
}

var dbFixCustomersCmd = &cobra.Command{
	Use:   "fix-customers",
	Short: "Make customers.last_login nullable",
	Long: `Check whether customers.last_login is declared NOT NULL and drop the
constraint if so, so customer profiles can be created without a login
timestamp. Uses NEON_HOST/NEON_PORT/NEON_USER/NEON_PASSWORD/NEON_DATABASE
when NEON_HOST is set, otherwise the configured database URL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := report.Stdout()

		provider, dbURL, err := cfg.SchemaPatchTarget()
		if err != nil {
			return err
		}

		ctx := context.Background()
		log.Info("🔌 Connecting to database...")
		db, err := database.Open(ctx, provider, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		res, err := database.FixCustomerLastLogin(ctx, db)
		if err != nil {
			return err
		}
		switch {
		case res.Altered:
			log.Success("customers.last_login is now nullable")
		case !res.WasNotNull:
			log.Success("customers.last_login already allows NULL, nothing to do")
		}
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbCountsCmd)
	dbCmd.AddCommand(dbFixCustomersCmd)

	rootCmd.AddCommand(countsCmd)
	rootCmd.AddCommand(dbCmd)
}
