package domain

import "time"

// ScanInfo counts the funnel stages of one scan cycle.
type ScanInfo struct {
	TotalAPI    int `json:"total_api"`    // raw records returned by the API
	TotalParsed int `json:"total_parsed"` // records that survived normalization
	NonCrypto   int `json:"non_crypto"`   // after keyword exclusion
	Filtered    int `json:"filtered"`     // after eligibility filtering
}

// RunSummary aggregates the trader state at record time.
type RunSummary struct {
	MarketsScanned  int     `json:"markets_scanned"`
	TradesPlanned   int     `json:"trades_planned"`
	TradesExecuted  int     `json:"trades_executed"`
	TotalInvested   float64 `json:"total_invested"`
	PotentialPayout float64 `json:"potential_payout"`
	ProfitIfWin     float64 `json:"profit_if_win"`
	BalanceAfter    float64 `json:"balance_after"`
}

// RunRecord is one scan cycle as persisted in the ledger. Immutable after
// append, except for executed trades gaining settlement fields in place.
type RunRecord struct {
	RunID          string          `json:"run_id"`
	Timestamp      time.Time       `json:"timestamp"`
	BalanceBefore  float64         `json:"balance_before"`
	ScanInfo       ScanInfo        `json:"scan_info"`
	PlannedTrades  []PlannedTrade  `json:"planned_trades"`
	ExecutedTrades []ExecutedTrade `json:"executed_trades"`
	Summary        RunSummary      `json:"summary"`
}

// Ledger is the persisted trade history plus lifetime aggregate counters.
// Cancelled trades count toward neither wins nor losses.
type Ledger struct {
	Runs          []RunRecord `json:"runs"`
	TotalInvested float64     `json:"total_invested"`
	TotalPayout   float64     `json:"total_payout"`
	WinCount      int         `json:"win_count"`
	LossCount     int         `json:"loss_count"`
}

// LastRun returns the most recent run record, or false when the ledger is empty.
func (l *Ledger) LastRun() (RunRecord, bool) {
	if len(l.Runs) == 0 {
		return RunRecord{}, false
	}
	return l.Runs[len(l.Runs)-1], true
}

// UnsettledTrades returns pointers to every executed trade still waiting for
// a resolution, in ledger order. The pointers alias the ledger's own slices
// so settlements can be written back in place.
func (l *Ledger) UnsettledTrades() []*ExecutedTrade {
	var out []*ExecutedTrade
	for i := range l.Runs {
		for j := range l.Runs[i].ExecutedTrades {
			if t := &l.Runs[i].ExecutedTrades[j]; !t.Settled {
				out = append(out, t)
			}
		}
	}
	return out
}

// ExecutedCount returns the lifetime number of executed trades.
func (l *Ledger) ExecutedCount() int {
	n := 0
	for i := range l.Runs {
		n += len(l.Runs[i].ExecutedTrades)
	}
	return n
}

// ApplySettlement writes the resolution into the trade and updates the
// aggregate counters. A winning trade pays out its share count.
func (l *Ledger) ApplySettlement(t *ExecutedTrade, resolution string) {
	t.Settled = true
	t.Resolution = resolution
	if t.IsCancelled() {
		return
	}
	if t.Won() {
		l.WinCount++
		l.TotalPayout += t.Shares
	} else {
		l.LossCount++
	}
}
