package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/polypaper/internal/adapters/notify"
	"github.com/alejandrodnm/polypaper/internal/adapters/polymarket"
	"github.com/alejandrodnm/polypaper/internal/adapters/storage"
	"github.com/alejandrodnm/polypaper/internal/cron"
	"github.com/alejandrodnm/polypaper/internal/ports"
	"github.com/alejandrodnm/polypaper/internal/report"
	"github.com/alejandrodnm/polypaper/internal/scanner"
	"github.com/alejandrodnm/polypaper/internal/trader"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan markets on an interval and simulate trades",
	Long: `Run the scan loop: fetch open markets from the Gamma API, filter them
against the configured thresholds, simulate buying the dominant side of the
survivors and append one run record per cycle to the JSON ledger. Pending
trades are reconciled against market resolutions at the start of every cycle.

Examples:
  polypaper run
  polypaper run --once --table
  polypaper run --balance 500`,
	RunE: runRun,
}

var (
	runOnce    bool
	runBalance float64
	runTable   bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runOnce, "once", false, "run one scan cycle and exit")
	runCmd.Flags().Float64Var(&runBalance, "balance", 0, "virtual starting balance (overrides config)")
	runCmd.Flags().BoolVar(&runTable, "table", false, "print full table per cycle (default: compact 1-line)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	balance := cfg.Trading.StartingBalance
	if runBalance > 0 {
		balance = runBalance
	}

	slog.Info("polypaper starting",
		"config", cfgPath,
		"interval", cfg.ScanInterval(),
		"once", runOnce,
		"balance", balance,
		"ledger", cfg.Storage.TradesFile,
	)

	client := polymarket.NewClient(cfg.API.GammaBase, cfg.HTTPTimeout(), cfg.Scanner.FetchLimit)

	store, err := storage.OpenFileLedger(cfg.Storage.TradesFile)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	var history ports.HistoryStore
	if cfg.Storage.HistoryDSN != "" {
		h, err := storage.NewHistory(cfg.Storage.HistoryDSN)
		if err != nil {
			slog.Warn("history store unavailable, continuing without it",
				"err", err, "path", cfg.Storage.HistoryDSN)
		} else {
			history = h
			defer h.Close()
		}
	}

	vt := trader.New(balance, cfg.Trading.SharesPerTrade)
	notifier := notify.NewConsole(runTable)

	scanCfg := scanner.DefaultConfig()
	scanCfg.ScanInterval = cfg.ScanInterval()
	scanCfg.ExcludeKeywords = cfg.Scanner.ExcludeKeywords
	scanCfg.TradeAmount = cfg.Trading.TradeAmount
	scanCfg.Once = runOnce
	scanCfg.Filter = scanner.FilterConfig{
		MinProbability:   cfg.Trading.MinProbability,
		MaxProbability:   cfg.Trading.MaxProbability,
		MaxHoursUntilEnd: cfg.Trading.MaxHoursUntilEnd,
		MinVolume:        cfg.Trading.MinVolume,
		MaxFee:           cfg.Trading.MaxFee,
		MaxTradesPerRun:  cfg.Trading.MaxTradesPerRun,
	}

	s := scanner.New(scanCfg, client, store, history, notifier, vt)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Report.Cron != "" && !runOnce {
		runner := cron.New(ctx)
		if _, err := runner.Add(cfg.Report.Cron, func(context.Context) {
			led := storage.ReadLedger(cfg.Storage.TradesFile)
			fmt.Println(report.Render(led, report.Stats(led, balance)))
		}); err != nil {
			return fmt.Errorf("schedule report job: %w", err)
		}
		runner.Start()
		defer runner.Stop()
		slog.Info("report job scheduled", "cron", cfg.Report.Cron)
	}

	if err := s.Run(ctx); err != nil {
		return err
	}

	slog.Info("polypaper stopped cleanly")
	return nil
}
