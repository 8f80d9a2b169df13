package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alejandrodnm/polypaper/internal/adapters/storage"
	"github.com/alejandrodnm/polypaper/internal/dashboard"
	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trades.json")
	fl, err := storage.OpenFileLedger(path)
	require.NoError(t, err)

	_, err = fl.Append(domain.RunRecord{
		ScanInfo: domain.ScanInfo{TotalAPI: 120, TotalParsed: 118, NonCrypto: 90, Filtered: 1},
		PlannedTrades: []domain.PlannedTrade{{
			MarketID: "m1",
			Question: "Will the Lakers win tonight?",
			Outcome:  domain.OutcomeYes,
			Price:    0.95,
			Amount:   5,
			Reason:   "prob 95.0% | ends in 1.5h | volume $50000",
		}},
		ExecutedTrades: []domain.ExecutedTrade{{
			MarketID: "m1",
			Question: "Will the Lakers win tonight?",
			Outcome:  domain.OutcomeYes,
			Price:    0.95,
			Shares:   5,
			Cost:     4.75,
			Status:   domain.StatusSimulated,
		}},
		Summary: domain.RunSummary{BalanceAfter: 995.25, TradesExecuted: 1},
	})
	require.NoError(t, err)
	return path
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Healthz(t *testing.T) {
	s := dashboard.New(seedLedger(t), 1000)

	w := get(t, s.Handler(), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestServer_APIStats(t *testing.T) {
	s := dashboard.New(seedLedger(t), 1000)

	w := get(t, s.Handler(), "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats report.LedgerStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Pending)
	assert.InDelta(t, 995.25, stats.Balance, 0.001)
	assert.InDelta(t, 4.75, stats.PendingCost, 0.001)
}

func TestServer_APIRuns_LatestFirst(t *testing.T) {
	path := seedLedger(t)
	fl, err := storage.OpenFileLedger(path)
	require.NoError(t, err)
	_, err = fl.Append(domain.RunRecord{
		ExecutedTrades: []domain.ExecutedTrade{{MarketID: "m2", Question: "Second run?", Outcome: domain.OutcomeNo, Price: 0.93, Shares: 5, Cost: 4.65}},
	})
	require.NoError(t, err)

	s := dashboard.New(path, 1000)
	w := get(t, s.Handler(), "/api/runs")
	require.Equal(t, http.StatusOK, w.Code)

	var runs []domain.RunRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "m2", runs[0].ExecutedTrades[0].MarketID, "latest run must come first")
}

func TestServer_APIRuns_DateFilter(t *testing.T) {
	s := dashboard.New(seedLedger(t), 1000)

	today := time.Now().UTC().Format("2006-01-02")
	w := get(t, s.Handler(), "/api/runs?date="+today)
	require.Equal(t, http.StatusOK, w.Code)

	var runs []domain.RunRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	assert.Len(t, runs, 1)

	w = get(t, s.Handler(), "/api/runs?date=1999-01-01")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	assert.Empty(t, runs)
}

func TestServer_Index_RendersRuns(t *testing.T) {
	s := dashboard.New(seedLedger(t), 1000)

	w := get(t, s.Handler(), "/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Will the Lakers win tonight?")
	assert.Contains(t, body, "picked (1)")
	assert.Contains(t, body, "prob 95.0%")
	assert.Contains(t, body, "pending")
	assert.Contains(t, body, "$995.25")
}

func TestServer_Index_MissingLedger(t *testing.T) {
	s := dashboard.New(filepath.Join(t.TempDir(), "missing.json"), 1000)

	w := get(t, s.Handler(), "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No runs recorded yet")
}
