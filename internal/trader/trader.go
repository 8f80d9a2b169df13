package trader

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// ErrInsufficientBalance is returned when a trade costs more than the
// remaining virtual balance. Callers skip the trade; it is never fatal.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Trader simulates buying the dominant side of markets against a virtual
// balance. It never touches a real order book. State lives for one process
// run; only the ledger crosses restarts.
type Trader struct {
	balance   float64
	shares    float64
	positions []domain.Position
}

// New creates a trader with the given starting balance and the fixed
// number of shares bought per trade.
func New(startingBalance, sharesPerTrade float64) *Trader {
	return &Trader{balance: startingBalance, shares: sharesPerTrade}
}

// Execute simulates buying the market's dominant side.
// Cost is price × shares: the share count is fixed, so a cheaper market
// costs less rather than buying more shares.
func (t *Trader) Execute(m domain.Market) (domain.ExecutedTrade, error) {
	outcome := m.DominantOutcome()
	price := m.DominantPrice()
	cost := price * t.shares

	if t.balance < cost {
		return domain.ExecutedTrade{}, fmt.Errorf("trader.Execute %s: need $%.2f, have $%.2f: %w",
			m.ID, cost, t.balance, ErrInsufficientBalance)
	}

	t.balance -= cost
	t.positions = append(t.positions, domain.Position{
		MarketID:        m.ID,
		Question:        m.Question,
		Outcome:         outcome,
		Price:           price,
		Shares:          t.shares,
		Cost:            cost,
		PotentialPayout: t.shares,
		ProfitIfWin:     t.shares - cost,
	})

	trade := domain.ExecutedTrade{
		MarketID:  m.ID,
		Question:  m.Question,
		Outcome:   outcome,
		Price:     price,
		Shares:    t.shares,
		Cost:      cost,
		Timestamp: time.Now().UTC(),
		Status:    domain.StatusSimulated,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
	}

	slog.Info("simulated trade",
		"market", m.ID,
		"outcome", outcome,
		"price", price,
		"cost", cost,
		"balance", t.balance,
	)
	return trade, nil
}

// Balance returns the remaining virtual balance.
func (t *Trader) Balance() float64 {
	return t.balance
}

// Positions returns a copy of the positions opened this process run.
func (t *Trader) Positions() []domain.Position {
	out := make([]domain.Position, len(t.positions))
	copy(out, t.positions)
	return out
}

// TotalInvested returns the cost sum across this run's positions.
func (t *Trader) TotalInvested() float64 {
	var sum float64
	for _, p := range t.positions {
		sum += p.Cost
	}
	return sum
}

// PotentialPayout returns what the positions redeem if every one wins.
func (t *Trader) PotentialPayout() float64 {
	var sum float64
	for _, p := range t.positions {
		sum += p.PotentialPayout
	}
	return sum
}

// ProfitIfWin returns the aggregate profit if every position wins.
func (t *Trader) ProfitIfWin() float64 {
	var sum float64
	for _, p := range t.positions {
		sum += p.ProfitIfWin
	}
	return sum
}
