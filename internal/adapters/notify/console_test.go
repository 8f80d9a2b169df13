package notify_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alejandrodnm/polypaper/internal/adapters/notify"
	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRun(trades ...domain.ExecutedTrade) domain.RunRecord {
	rec := domain.RunRecord{
		RunID:         "ab12cd34",
		Timestamp:     time.Date(2025, 11, 3, 18, 30, 0, 0, time.UTC),
		BalanceBefore: 1000,
		ScanInfo:      domain.ScanInfo{TotalAPI: 120, TotalParsed: 118, NonCrypto: 90, Filtered: len(trades)},
		PlannedTrades: make([]domain.PlannedTrade, len(trades)),
	}
	rec.ExecutedTrades = trades

	invested := 0.0
	for _, t := range trades {
		invested += t.Cost
	}
	rec.Summary = domain.RunSummary{
		MarketsScanned:  118,
		TradesPlanned:   len(trades),
		TradesExecuted:  len(trades),
		TotalInvested:   invested,
		PotentialPayout: float64(len(trades)) * 5,
		ProfitIfWin:     float64(len(trades))*5 - invested,
		BalanceAfter:    1000 - invested,
	}
	return rec
}

func makeTrade(question string, price float64) domain.ExecutedTrade {
	return domain.ExecutedTrade{
		MarketID: "m1",
		Question: question,
		Outcome:  domain.OutcomeYes,
		Price:    price,
		Shares:   5,
		Cost:     price * 5,
		Status:   domain.StatusSimulated,
		EndDate:  time.Date(2025, 11, 3, 23, 0, 0, 0, time.UTC),
	}
}

func TestConsole_NotifyRun_TableMode(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	rec := makeRun(
		makeTrade("Will the Lakers win tonight?", 0.95),
		makeTrade("Will it rain in NYC tomorrow?", 0.92),
	)

	err := n.NotifyRun(context.Background(), rec)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run ab12cd34")
	assert.Contains(t, out, "Will the Lakers win tonight?")
	assert.Contains(t, out, "Will it rain in NYC tomorrow?")
	assert.Contains(t, out, "0.95")
	assert.Contains(t, out, "$4.75")
	assert.Contains(t, out, "potential payout $10.00")
}

func TestConsole_NotifyRun_CompactMode(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	rec := makeRun(makeTrade("Will the Lakers win tonight?", 0.95))

	err := n.NotifyRun(context.Background(), rec)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run ab12cd34")
	assert.Contains(t, out, "1 trade(s) $4.75")
	assert.Contains(t, out, "118 mkts")
	// Una sola línea por ciclo en modo compacto.
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestConsole_NotifyRun_NoTrades(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	err := n.NotifyRun(context.Background(), makeRun())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "no trades")
	assert.Contains(t, out, "api 120")
}

func TestConsole_NotifyRun_LongQuestionTruncated(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	rec := makeRun(makeTrade(strings.Repeat("A", 80), 0.95))

	err := n.NotifyRun(context.Background(), rec)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "...")
}

func TestConsole_NotifySettlements(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	won := makeTrade("Will the Lakers win tonight?", 0.95)
	won.Settled = true
	won.Resolution = "Yes"

	lost := makeTrade("Will it snow today?", 0.93)
	lost.Settled = true
	lost.Resolution = "No"

	voided := makeTrade("Will the match be played?", 0.96)
	voided.Settled = true
	voided.Resolution = domain.ResolutionCancelled

	err := n.NotifySettlements(context.Background(), []domain.ExecutedTrade{won, lost, voided})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "3 settlement(s)")
	assert.Contains(t, out, "WIN")
	assert.Contains(t, out, "payout $5.00")
	assert.Contains(t, out, "LOSS")
	assert.Contains(t, out, "lost $4.65")
	assert.Contains(t, out, "VOID")
	assert.Contains(t, out, "CANCELLED")
}

func TestConsole_NotifySettlements_Empty(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	err := n.NotifySettlements(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
