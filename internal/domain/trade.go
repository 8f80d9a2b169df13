package domain

import (
	"strings"
	"time"
)

// Outcome sides of a binary market.
const (
	OutcomeYes = "YES"
	OutcomeNo  = "NO"
)

const (
	// StatusSimulated marks trades executed against the virtual balance.
	// No real order ever leaves the system.
	StatusSimulated = "simulated"

	// ResolutionCancelled is the synthetic resolution assigned to markets
	// that closed without publishing an outcome.
	ResolutionCancelled = "CANCELLED"
)

// PlannedTrade is a trade the scanner intends to execute this cycle.
type PlannedTrade struct {
	MarketID string  `json:"market_id"`
	Question string  `json:"question"`
	Outcome  string  `json:"outcome"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
}

// ExecutedTrade is a simulated purchase as persisted in the ledger.
// Settled and Resolution are written back in place once the market resolves;
// everything else is immutable after execution.
type ExecutedTrade struct {
	MarketID   string    `json:"market_id"`
	Question   string    `json:"question"`
	Outcome    string    `json:"outcome"`
	Price      float64   `json:"price"`
	Shares     float64   `json:"shares"`
	Cost       float64   `json:"cost"`
	Timestamp  time.Time `json:"timestamp"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date,omitzero"`
	EndDate    time.Time `json:"end_date,omitzero"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	Settled    bool      `json:"settled"`
	Resolution string    `json:"resolution,omitempty"`
}

// IsCancelled reports whether the market closed without a real outcome.
func (t ExecutedTrade) IsCancelled() bool {
	return t.Resolution == ResolutionCancelled
}

// Won reports whether the settled resolution matches the side we bought.
// Gamma publishes resolutions as "Yes"/"No"; outcomes are stored upper-case,
// so the comparison is case-insensitive.
func (t ExecutedTrade) Won() bool {
	if !t.Settled || t.IsCancelled() {
		return false
	}
	return strings.EqualFold(t.Resolution, t.Outcome)
}

// Position is the trader's in-memory view of an executed trade.
// Never persisted; it lives for one process run.
type Position struct {
	MarketID        string
	Question        string
	Outcome         string
	Price           float64
	Shares          float64
	Cost            float64
	PotentialPayout float64 // winning shares redeem at $1 each
	ProfitIfWin     float64 // PotentialPayout - Cost
}
