package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/polypaper/internal/dashboard"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the read-only HTTP dashboard",
	Long: `Serve an HTML status page and a small JSON API over the ledger file.
The server reads the ledger fresh on every request and never writes, so it is
safe to run next to the scan loop.

Routes:
  GET /            HTML status page
  GET /api/stats   wallet stats as JSON
  GET /api/runs    run records as JSON (?date=YYYY-MM-DD to filter)
  GET /healthz     liveness probe`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

var dashboardAddr string

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().StringVar(&dashboardAddr, "addr", "", "listen address (overrides config)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Dashboard.Addr
	if dashboardAddr != "" {
		addr = dashboardAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("dashboard starting", "addr", addr, "ledger", cfg.Storage.TradesFile)

	srv := dashboard.New(cfg.Storage.TradesFile, cfg.Trading.StartingBalance)
	return srv.Run(ctx, addr)
}
