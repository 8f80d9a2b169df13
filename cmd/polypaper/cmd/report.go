package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alejandrodnm/polypaper/internal/adapters/storage"
	"github.com/alejandrodnm/polypaper/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a wallet and settlement digest from the ledger",
	Long: `Read the JSON ledger and print the wallet status: locked and refunded
costs, potential and realized profit, pending trades and recent settlements.
Works entirely offline, no API calls are made.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var reportJSON bool

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print raw stats as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	led := storage.ReadLedger(cfg.Storage.TradesFile)
	stats := report.Stats(led, cfg.Trading.StartingBalance)

	if reportJSON {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(report.Render(led, stats))
	return nil
}
