package cmd

import (
	"context"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/cache"
	"github.com/Lumos-Labs-HQ/flashseed/internal/live"
	"github.com/Lumos-Labs-HQ/flashseed/internal/procmgr"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/Lumos-Labs-HQ/flashseed/internal/scheduler"
	"github.com/Lumos-Labs-HQ/flashseed/internal/seeder"
	"github.com/Lumos-Labs-HQ/flashseed/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveNoJobs bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the auxiliary service and its interval jobs",
	Long: `Start the auxiliary HTTP service. It generates orders, signups,
customer care staff and restaurants on their own intervals, serves the
prepared collections and relays admin chart rows to the backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		entities, err := catalog(cfg, seeder.DefaultEntities)
		if err != nil {
			return err
		}
		snapshots, err := cache.New(cfg.Cache)
		if err != nil {
			return err
		}
		defer snapshots.Close()

		log := report.Stdout()
		client := backendClient(cfg)
		preparer := live.NewPreparer(orchestrator(cfg, log, entities), snapshots, nil, log)

		aux := live.NewAux(client, nil, log)
		jobs := scheduler.NewGroup()
		if !serveNoJobs {
			jobs.Add(scheduler.New("orders", cfg.Intervals.Orders, aux.Orders, scheduler.WithLogger(log)))
			jobs.Add(scheduler.New("users", cfg.Intervals.Users, aux.Users, scheduler.WithLogger(log)))
			jobs.Add(scheduler.New("customer-care", cfg.Intervals.CustomerCare, aux.CustomerCare, scheduler.WithLogger(log)))
			jobs.Add(scheduler.New("restaurants", cfg.Intervals.Restaurants, aux.Restaurants, scheduler.WithLogger(log)))
		}

		mgr := procmgr.New(cfg.StateDir)
		if _, err := mgr.Register("serve", cfg.Intervals.Orders); err != nil {
			return err
		}
		defer mgr.Remove("serve")

		ctx, stop := signalContext()
		defer stop()

		if err := jobs.Start(ctx); err != nil {
			return err
		}

		srv := server.New(cfg.Server.Port, server.Deps{
			Backend:  client,
			Preparer: preparer,
			Jobs:     jobs,
			Log:      log,
		})

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case <-ctx.Done():
		case err = <-errCh:
		}

		log.Info("🛑 Shutting down auxiliary service...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		jobs.Stop()
		jobs.Wait()
		return err
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default 3001)")
	serveCmd.Flags().BoolVar(&serveNoJobs, "no-jobs", false, "serve HTTP only, without interval jobs")

	rootCmd.AddCommand(serveCmd)
}
