package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/flashseed/internal/api"
	"github.com/Lumos-Labs-HQ/flashseed/internal/config"
	"github.com/Lumos-Labs-HQ/flashseed/internal/live"
	"github.com/Lumos-Labs-HQ/flashseed/internal/procmgr"
	"github.com/Lumos-Labs-HQ/flashseed/internal/report"
	"github.com/Lumos-Labs-HQ/flashseed/internal/scheduler"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// generators that run in the foreground and can be stopped by name.
var generatorNames = []string{"auto", "orders", "chart", "serve"}

// runGenerator registers the process under name and runs job every
// interval until SIGINT/SIGTERM or `flashseed stop`.
func runGenerator(cfg *config.Config, log *report.Logger, name string, interval time.Duration, job scheduler.Job) error {
	mgr := procmgr.New(cfg.StateDir)
	if _, err := mgr.Register(name, interval); err != nil {
		return err
	}
	defer mgr.Remove(name)

	ctx, stop := signalContext()
	defer stop()

	log.Info("🚀 Starting %s generator, every %s", name, interval)
	log.Info("⏹️  Press Ctrl+C or run `flashseed stop %s` to stop", name)

	t := scheduler.New(name, interval, job, scheduler.WithLogger(log))
	if err := t.Run(ctx); err != nil {
		return err
	}

	s := t.Stats()
	log.Info("🛑 %s stopped after %d ticks (%d failed)", name, s.Ticks, s.Failures)
	return nil
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Add a restaurant, driver and customer every cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := report.Stdout()
		gen := live.NewAuto(backendClient(cfg), nil, log)

		ctx, stop := signalContext()
		err = gen.Init(ctx)
		stop()
		if err != nil {
			return err
		}
		return runGenerator(cfg, log, "auto", cfg.Intervals.Auto, gen.Cycle)
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Live order generator",
}

var ordersStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Create an order between existing customers and restaurants every cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := report.Stdout()
		orders := live.NewOrders(backendClient(cfg), nil, log)

		if err := orders.Load(context.Background()); err != nil {
			if errors.Is(err, live.ErrNotEnoughData) {
				log.Error("Cannot start without existing customer and restaurant data")
				log.Plain("💡 Run: flashseed structured")
			}
			return err
		}
		return runGenerator(cfg, log, "orders", cfg.Intervals.Orders, orders.Tick)
	},
}

var ordersStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running order generator",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopGenerator("orders")
	},
}

var ordersStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the order generator is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStatus([]string{"orders"})
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Insert fresh admin chart metrics every cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := report.Stdout()
		aux := api.New(cfg.AuxURL, cfg.Timeout)
		chart := live.NewChart(aux, backendClient(cfg), nil, log)
		return runGenerator(cfg, log, "chart", cfg.Intervals.Chart, chart.Tick)
	},
}

var stopCmd = &cobra.Command{
	Use:       "stop <generator>",
	Short:     "Stop a running generator",
	Args:      cobra.ExactArgs(1),
	ValidArgs: generatorNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopGenerator(args[0])
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which generators are running",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStatus(generatorNames)
	},
}

func stopGenerator(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	err = procmgr.New(cfg.StateDir).Stop(name)
	if errors.Is(err, procmgr.ErrNotRunning) {
		color.Yellow("⚠️  %s generator is not running", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stop %s: %w", name, err)
	}
	color.Green("⏹️  %s generator stopped", name)
	return nil
}

func printStatus(names []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mgr := procmgr.New(cfg.StateDir)
	for _, name := range names {
		entry, err := mgr.Status(name)
		if errors.Is(err, procmgr.ErrNotRunning) {
			fmt.Printf("⚪ %-8s stopped\n", name)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Printf("🟢 %-8s running  pid=%d  every %s  since %s\n",
			name, entry.PID, entry.Interval, entry.StartedAt.Local().Format(time.DateTime))
	}
	return nil
}

func init() {
	ordersCmd.AddCommand(ordersStartCmd)
	ordersCmd.AddCommand(ordersStopCmd)
	ordersCmd.AddCommand(ordersStatusCmd)

	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
}
