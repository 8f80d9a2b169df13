package trader_test

import (
	"errors"
	"testing"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/trader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMarket(id string, yes, no float64) domain.Market {
	return domain.Market{
		ID:            id,
		Question:      "Will X happen?",
		OutcomePrices: []float64{yes, no},
	}
}

func TestExecute_CostIsPriceTimesShares(t *testing.T) {
	tr := trader.New(1000, 5)

	trade, err := tr.Execute(makeMarket("m1", 0.95, 0.05))
	require.NoError(t, err)

	// 0.95 × 5 shares = $4.75
	assert.Equal(t, domain.OutcomeYes, trade.Outcome)
	assert.InDelta(t, 0.95, trade.Price, 0.0001)
	assert.InDelta(t, 5.0, trade.Shares, 0.0001)
	assert.InDelta(t, 4.75, trade.Cost, 0.0001)
	assert.Equal(t, domain.StatusSimulated, trade.Status)
	assert.False(t, trade.Timestamp.IsZero())
	assert.InDelta(t, 995.25, tr.Balance(), 0.0001)
}

func TestExecute_BuysDominantSide(t *testing.T) {
	tr := trader.New(1000, 5)

	trade, err := tr.Execute(makeMarket("m1", 0.03, 0.97))
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeNo, trade.Outcome)
	assert.InDelta(t, 0.97, trade.Price, 0.0001)
	assert.InDelta(t, 4.85, trade.Cost, 0.0001)
}

func TestExecute_TieBuysYes(t *testing.T) {
	tr := trader.New(1000, 5)

	trade, err := tr.Execute(makeMarket("m1", 0.5, 0.5))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeYes, trade.Outcome)
}

func TestExecute_InsufficientBalance(t *testing.T) {
	// $10 starting balance, each trade at 0.97 costs $4.85
	tr := trader.New(10, 5)

	_, err := tr.Execute(makeMarket("m1", 0.97, 0.03))
	require.NoError(t, err)
	assert.InDelta(t, 5.15, tr.Balance(), 0.0001)

	_, err = tr.Execute(makeMarket("m2", 0.97, 0.03))
	require.NoError(t, err)
	assert.InDelta(t, 0.30, tr.Balance(), 0.0001)

	_, err = tr.Execute(makeMarket("m3", 0.97, 0.03))
	require.Error(t, err)
	assert.True(t, errors.Is(err, trader.ErrInsufficientBalance))

	// The failed trade must not touch balance or positions
	assert.InDelta(t, 0.30, tr.Balance(), 0.0001)
	assert.Len(t, tr.Positions(), 2)
}

func TestExecute_BalanceNeverNegative(t *testing.T) {
	tr := trader.New(12, 5)

	for i := 0; i < 10; i++ {
		tr.Execute(makeMarket("m", 0.95, 0.05))
		assert.GreaterOrEqual(t, tr.Balance(), 0.0)
	}
}

func TestAccessors_AggregatePositions(t *testing.T) {
	tr := trader.New(1000, 5)

	_, err := tr.Execute(makeMarket("m1", 0.95, 0.05)) // cost 4.75, profit 0.25
	require.NoError(t, err)
	_, err = tr.Execute(makeMarket("m2", 0.02, 0.92)) // cost 4.60, profit 0.40
	require.NoError(t, err)

	assert.InDelta(t, 9.35, tr.TotalInvested(), 0.0001)
	assert.InDelta(t, 10.0, tr.PotentialPayout(), 0.0001)
	assert.InDelta(t, 0.65, tr.ProfitIfWin(), 0.0001)
	assert.InDelta(t, 990.65, tr.Balance(), 0.0001)
}

func TestPositions_ReturnsCopy(t *testing.T) {
	tr := trader.New(1000, 5)
	_, err := tr.Execute(makeMarket("m1", 0.95, 0.05))
	require.NoError(t, err)

	positions := tr.Positions()
	positions[0].Cost = 999

	assert.InDelta(t, 4.75, tr.Positions()[0].Cost, 0.0001)
}
