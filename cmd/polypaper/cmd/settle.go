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
	"github.com/alejandrodnm/polypaper/internal/settlement"
	"github.com/spf13/cobra"
)

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Reconcile pending trades against market resolutions",
	Long: `Query the current state of every market that still has unsettled trades,
write resolutions back into the ledger and print the outcomes. Markets that
are still open (or whose status check fails) stay pending and are retried on
the next pass.`,
	Args: cobra.NoArgs,
	RunE: runSettle,
}

func init() {
	rootCmd.AddCommand(settleCmd)
}

func runSettle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := polymarket.NewClient(cfg.API.GammaBase, cfg.HTTPTimeout(), cfg.Scanner.FetchLimit)

	store, err := storage.OpenFileLedger(cfg.Storage.TradesFile)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	res := settlement.New(client).Reconcile(ctx, store.Ledger())
	if len(res.Resolved) == 0 {
		fmt.Printf("no newly settled trades (%d still pending)\n", len(res.Unresolved))
		return nil
	}

	if err := store.Save(); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	if cfg.Storage.HistoryDSN != "" {
		if h, err := storage.NewHistory(cfg.Storage.HistoryDSN); err != nil {
			slog.Warn("history store unavailable", "err", err)
		} else {
			for _, t := range res.Resolved {
				if err := h.SaveSettlement(ctx, t); err != nil {
					slog.Warn("history error", "err", err)
				}
			}
			h.Close()
		}
	}

	notifier := notify.NewConsole(false)
	if err := notifier.NotifySettlements(ctx, res.Resolved); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	fmt.Printf("%d settled, %d still pending\n", len(res.Resolved), len(res.Unresolved))
	return nil
}
