package cmd

import (
	"github.com/Lumos-Labs-HQ/flashseed/internal/accounts"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/Lumos-Labs-HQ/flashseed/internal/seeder"
	"github.com/spf13/cobra"
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Top up every collection to its minimum",
	Long: `Bring every backend collection up to its minimum record count, in
dependency order. Collections that already have enough records are left
untouched, so running it twice is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		entities, err := catalog(cfg, seeder.DefaultEntities)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		log := report.Stdout()
		results, err := orchestrator(cfg, log, entities).Run(ctx, seeder.NewRun(nil))
		if err != nil {
			return err
		}
		log.Success("Population complete: %d create attempts", seeder.Writes(results))
		return nil
	},
}

var skipLoginCheck bool

var structuredCmd = &cobra.Command{
	Use:   "structured",
	Short: "Populate with admin and customer care accounts that can sign in",
	Long: `Populate in strict order, registering the admin hierarchy and customer
care staff through the auth endpoints. Stops immediately if a critical
collection stays empty, then prints the credentials of every new account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := report.Stdout()
		client := backendClient(cfg)
		reg := accounts.NewRegistrar(client, log)

		entities, err := catalog(cfg, func(opts seeder.Options) []seeder.Entity {
			return seeder.StructuredEntities(reg, opts)
		})
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		log.Info("🔐 Creating accounts you can actually sign in with")
		if _, err := orchestrator(cfg, log, entities).Run(ctx, seeder.NewRun(nil)); err != nil {
			reg.PrintCredentials()
			return err
		}

		if !skipLoginCheck {
			reg.VerifyLogins(ctx)
		}
		reg.PrintCredentials()
		return nil
	},
}

func init() {
	structuredCmd.Flags().BoolVar(&skipLoginCheck, "skip-login-check", false, "Do not try to sign in with the new accounts")

	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(structuredCmd)
}
