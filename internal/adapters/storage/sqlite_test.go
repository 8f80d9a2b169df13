package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/polypaper/internal/adapters/storage"
	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHistoryRun(runID string, ts time.Time) domain.RunRecord {
	rec := makeRun("m-"+runID, 4.75)
	rec.RunID = runID
	rec.Timestamp = ts
	return rec
}

func TestHistory_SaveRunAndRecentRuns(t *testing.T) {
	h, err := storage.NewHistory(":memory:")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, h.SaveRun(ctx, makeHistoryRun("run00001", base.Add(-time.Hour))))
	require.NoError(t, h.SaveRun(ctx, makeHistoryRun("run00002", base)))

	rows, err := h.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// El más reciente primero
	assert.Equal(t, "run00002", rows[0].RunID)
	assert.Equal(t, "run00001", rows[1].RunID)
	assert.Equal(t, 10, rows[0].TotalAPI)
	assert.Equal(t, 1, rows[0].Executed)
	assert.InDelta(t, 4.75, rows[0].Invested, 0.0001)
	assert.InDelta(t, 995.25, rows[0].BalanceAfter, 0.0001)
	assert.Equal(t, base, rows[0].ScannedAt)
}

func TestHistory_RecentRunsLimit(t *testing.T) {
	h, err := storage.NewHistory(":memory:")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		rec := makeHistoryRun(string(rune('a'+i))+"1234567", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, h.SaveRun(ctx, rec))
	}

	rows, err := h.RecentRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestHistory_SaveSettlement_Upsert(t *testing.T) {
	h, err := storage.NewHistory(":memory:")
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	trade := domain.ExecutedTrade{
		MarketID:   "m1",
		Question:   "Will X happen?",
		Outcome:    domain.OutcomeYes,
		Shares:     5,
		Settled:    true,
		Resolution: "No",
	}
	require.NoError(t, h.SaveSettlement(ctx, trade))

	// Mismo mercado con desenlace corregido: debe colapsar en una fila
	trade.Resolution = "Yes"
	require.NoError(t, h.SaveSettlement(ctx, trade))

	rows, err := h.RecentSettlements(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1, "el upsert no debe duplicar el mercado")
	assert.Equal(t, "Yes", rows[0].Resolution)
	assert.True(t, rows[0].Won)
}

func TestHistory_RecentSettlements_Empty(t *testing.T) {
	h, err := storage.NewHistory(":memory:")
	require.NoError(t, err)
	defer h.Close()

	rows, err := h.RecentSettlements(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestHistory_CancelledSettlement(t *testing.T) {
	h, err := storage.NewHistory(":memory:")
	require.NoError(t, err)
	defer h.Close()

	trade := domain.ExecutedTrade{
		MarketID:   "m2",
		Outcome:    domain.OutcomeNo,
		Settled:    true,
		Resolution: domain.ResolutionCancelled,
	}
	require.NoError(t, h.SaveSettlement(context.Background(), trade))

	rows, err := h.RecentSettlements(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ResolutionCancelled, rows[0].Resolution)
	assert.False(t, rows[0].Won)
}
