package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

const maxListed = 3

// Render produces the text digest printed by the report command and the cron
// job: latest scan counts, wallet status, recent settlements and the oldest
// pending trades.
func Render(led *domain.Ledger, stats LedgerStats) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== polypaper report — %s ===\n", time.Now().Format("2006-01-02 15:04"))

	last, ok := led.LastRun()
	if !ok {
		sb.WriteString("no runs recorded yet\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "scan:    api %d → parsed %d → non-crypto %d → picked %d (run %s)\n",
		last.ScanInfo.TotalAPI, last.ScanInfo.TotalParsed,
		last.ScanInfo.NonCrypto, last.ScanInfo.Filtered, last.RunID)
	fmt.Fprintf(&sb, "wallet:  balance $%.2f | invested $%.2f | potential payout $%.2f\n",
		stats.Balance, stats.TotalInvested, stats.PotentialPayout)
	fmt.Fprintf(&sb, "ledger:  %d runs | %d trades | %d pending ($%.2f locked) | %d won / %d lost / %d void\n",
		stats.TotalRuns, stats.TotalTrades, stats.Pending, stats.PendingCost,
		stats.Wins, stats.Losses, stats.Cancelled)
	fmt.Fprintf(&sb, "profit:  potential $%.2f (roi %.1f%%) | realized $%.2f\n",
		stats.PotentialProfit, stats.ROI, stats.ActualProfit)

	if recent := recentSettled(led, maxListed); len(recent) > 0 {
		sb.WriteString("recent settlements:\n")
		for _, t := range recent {
			fmt.Fprintf(&sb, "  %s %s → %s  %s\n",
				settlementMark(t), t.Outcome, t.Resolution, truncate(t.Question, 40))
		}
	}

	if pending := oldestPending(led, maxListed); len(pending) > 0 {
		fmt.Fprintf(&sb, "pending (%d of %d):\n", len(pending), stats.Pending)
		for _, t := range pending {
			fmt.Fprintf(&sb, "  %s @ $%.2f  %s\n",
				t.Outcome, t.Price, truncate(t.Question, 40))
		}
	}

	return sb.String()
}

// --- helpers ---

func settlementMark(t domain.ExecutedTrade) string {
	switch {
	case t.IsCancelled():
		return "VOID"
	case t.Won():
		return "WIN "
	default:
		return "LOSS"
	}
}

// recentSettled walks the runs newest-first and returns up to n settled
// trades.
func recentSettled(led *domain.Ledger, n int) []domain.ExecutedTrade {
	var out []domain.ExecutedTrade
	for i := len(led.Runs) - 1; i >= 0 && len(out) < n; i-- {
		for _, t := range led.Runs[i].ExecutedTrades {
			if !t.Settled {
				continue
			}
			out = append(out, t)
			if len(out) >= n {
				break
			}
		}
	}
	return out
}

// oldestPending returns up to n unsettled trades in ledger order: the ones
// waiting longest come first.
func oldestPending(led *domain.Ledger, n int) []domain.ExecutedTrade {
	var out []domain.ExecutedTrade
	for _, run := range led.Runs {
		for _, t := range run.ExecutedTrades {
			if t.Settled {
				continue
			}
			out = append(out, t)
			if len(out) >= n {
				return out
			}
		}
	}
	return out
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
