// Package report derives wallet statistics and a plain-text digest from the
// run ledger. Everything here is ledger-only: no API calls, no writes.
package report

import (
	"github.com/alejandrodnm/polypaper/internal/domain"
)

// LedgerStats is the wallet view implied by a ledger. Served as JSON by the
// dashboard and rendered as text by the report command.
type LedgerStats struct {
	Balance         float64 `json:"balance"`
	TotalInvested   float64 `json:"total_invested"`
	PendingCost     float64 `json:"pending_cost"`
	CancelledCost   float64 `json:"cancelled_cost"`
	PotentialPayout float64 `json:"potential_payout"`
	PotentialProfit float64 `json:"potential_profit"`
	ActualProfit    float64 `json:"actual_profit"`
	TotalRuns       int     `json:"total_runs"`
	TotalTrades     int     `json:"total_trades"`
	Pending         int     `json:"pending"`
	Settled         int     `json:"settled"`
	Cancelled       int     `json:"cancelled"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	ROI             float64 `json:"roi"`
}

// Stats buckets every executed trade as pending, cancelled or settled and
// aggregates the wallet numbers. The balance subtracts only the cost still
// locked in pending trades: a cancelled market refunds its cost, and settled
// outcomes show up in ActualProfit instead.
func Stats(led *domain.Ledger, startingBalance float64) LedgerStats {
	s := LedgerStats{TotalRuns: len(led.Runs)}

	for _, run := range led.Runs {
		for _, t := range run.ExecutedTrades {
			s.TotalTrades++
			s.TotalInvested += t.Cost

			switch {
			case !t.Settled:
				s.Pending++
				s.PendingCost += t.Cost
				s.PotentialPayout += t.Shares
			case t.IsCancelled():
				s.Cancelled++
				s.CancelledCost += t.Cost
			default:
				s.Settled++
				if t.Won() {
					s.Wins++
					s.ActualProfit += t.Shares - t.Cost
				} else {
					s.Losses++
				}
			}
		}
	}

	s.Balance = startingBalance - s.PendingCost
	s.PotentialProfit = s.PotentialPayout - s.PendingCost
	if s.PendingCost > 0 {
		s.ROI = s.PotentialProfit / s.PendingCost * 100
	}
	return s
}
