package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
// Con table activo imprime la tabla completa de trades; si no, una línea
// compacta por ciclo.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyRun imprime el resumen del ciclo en el modo configurado.
func (c *Console) NotifyRun(_ context.Context, rec domain.RunRecord) error {
	if len(rec.ExecutedTrades) == 0 {
		fmt.Fprintf(c.out, "[%s] run %s: no trades (api %d → parsed %d → non-crypto %d → picked %d) | balance $%.2f\n",
			timestamp(rec.Timestamp), rec.RunID,
			rec.ScanInfo.TotalAPI, rec.ScanInfo.TotalParsed,
			rec.ScanInfo.NonCrypto, rec.ScanInfo.Filtered,
			rec.Summary.BalanceAfter)
		return nil
	}

	if c.table {
		c.printFull(rec)
	} else {
		c.printCompact(rec)
	}
	return nil
}

// NotifySettlements imprime los trades recién resueltos con su desenlace.
func (c *Console) NotifySettlements(_ context.Context, resolved []domain.ExecutedTrade) error {
	if len(resolved) == 0 {
		return nil
	}

	fmt.Fprintf(c.out, "\n[%s] %d settlement(s):\n", time.Now().Format("15:04:05"), len(resolved))
	for _, t := range resolved {
		switch {
		case t.Won():
			fmt.Fprintf(c.out, "  WIN  %-45s %s @ %.2f → %s (payout $%.2f)\n",
				truncate(t.Question, 45), t.Outcome, t.Price, t.Resolution, t.Shares)
		case t.IsCancelled():
			fmt.Fprintf(c.out, "  VOID %-45s %s @ %.2f → %s\n",
				truncate(t.Question, 45), t.Outcome, t.Price, t.Resolution)
		default:
			fmt.Fprintf(c.out, "  LOSS %-45s %s @ %.2f → %s (lost $%.2f)\n",
				truncate(t.Question, 45), t.Outcome, t.Price, t.Resolution, t.Cost)
		}
	}
	fmt.Fprintln(c.out)
	return nil
}

// printCompact imprime lo esencial del ciclo en una línea.
func (c *Console) printCompact(rec domain.RunRecord) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] run %s: %d trade(s) $%.2f | balance $%.2f",
		timestamp(rec.Timestamp), rec.RunID,
		len(rec.ExecutedTrades), executedCost(rec), rec.Summary.BalanceAfter)
	fmt.Fprintf(&sb, " | %d mkts → %d picked",
		rec.ScanInfo.TotalParsed, rec.ScanInfo.Filtered)

	shown := 0
	for _, t := range rec.ExecutedTrades {
		if shown >= 3 {
			break
		}
		fmt.Fprintf(&sb, " | %s %s@%.2f", truncate(t.Question, 25), t.Outcome, t.Price)
		shown++
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la cabecera del ciclo y la tabla de trades.
func (c *Console) printFull(rec domain.RunRecord) {
	fmt.Fprintf(c.out, "\n[%s] run %s — balance $%.2f → $%.2f (api %d → parsed %d → non-crypto %d → picked %d)\n",
		timestamp(rec.Timestamp), rec.RunID,
		rec.BalanceBefore, rec.Summary.BalanceAfter,
		rec.ScanInfo.TotalAPI, rec.ScanInfo.TotalParsed,
		rec.ScanInfo.NonCrypto, rec.ScanInfo.Filtered)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "Side", "Price", "Shares", "Cost", "Ends")

	for i, t := range rec.ExecutedTrades {
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(t.Question, 42),
			t.Outcome,
			fmt.Sprintf("%.2f", t.Price),
			fmt.Sprintf("%.0f", t.Shares),
			fmt.Sprintf("$%.2f", t.Cost),
			endsLabel(t.EndDate),
		)
	}

	table.Render()

	fmt.Fprintf(c.out, "  invested $%.2f | potential payout $%.2f | profit if all win $%.2f\n",
		rec.Summary.TotalInvested, rec.Summary.PotentialPayout, rec.Summary.ProfitIfWin)
	if planned := len(rec.PlannedTrades); planned > len(rec.ExecutedTrades) {
		fmt.Fprintf(c.out, "  %d planned, %d executed (balance ran out)\n",
			planned, len(rec.ExecutedTrades))
	}
	fmt.Fprintln(c.out)
}

// --- helpers ---

func timestamp(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.Local().Format("15:04:05")
}

func endsLabel(end time.Time) string {
	if end.IsZero() {
		return "-"
	}
	return end.Format("01-02 15:04")
}

func executedCost(rec domain.RunRecord) float64 {
	total := 0.0
	for _, t := range rec.ExecutedTrades {
		total += t.Cost
	}
	return total
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
