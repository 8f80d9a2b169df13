package storage

// sqlite.go — histórico derivado de ciclos y settlements.
//
// Estrategia:
//   - `runs`: una fila ligera por ciclo con los contadores del funnel.
//   - `settlements`: UNA fila por mercado resuelto (UPSERT).
//   - El ledger JSON es la fuente de verdad; esta DB existe para consultas
//     de tendencia sin re-decodificar el ledger completo en cada pregunta.
//   - Los writes son best-effort desde el loop: un fallo aquí se loguea
//     como warning y el ciclo sigue.
//   - Prune automático al arrancar: runs > 90d.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
	_ "modernc.org/sqlite"
)

const historySchema = `
-- Contadores del funnel por ciclo de scan
CREATE TABLE IF NOT EXISTS runs (
    run_id        TEXT PRIMARY KEY,
    scanned_at    TEXT NOT NULL,
    total_api     INTEGER NOT NULL DEFAULT 0,
    total_parsed  INTEGER NOT NULL DEFAULT 0,
    non_crypto    INTEGER NOT NULL DEFAULT 0,
    filtered      INTEGER NOT NULL DEFAULT 0,
    planned       INTEGER NOT NULL DEFAULT 0,
    executed      INTEGER NOT NULL DEFAULT 0,
    invested      REAL    NOT NULL DEFAULT 0,
    balance_after REAL    NOT NULL DEFAULT 0
);

-- Una fila por mercado resuelto, sin duplicados
CREATE TABLE IF NOT EXISTS settlements (
    market_id  TEXT PRIMARY KEY,
    question   TEXT,
    outcome    TEXT NOT NULL,
    resolution TEXT NOT NULL,
    won        INTEGER NOT NULL DEFAULT 0,
    settled_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_at        ON runs(scanned_at DESC);
CREATE INDEX IF NOT EXISTS idx_settlements_at ON settlements(settled_at DESC);
`

// retención del histórico de runs: 90 días
const retentionRuns = 90 * 24 * time.Hour

// History implementa ports.HistoryStore usando SQLite (pure Go, sin CGo).
type History struct {
	db *sql.DB
}

// CycleRow es el resumen de un ciclo tal como quedó en el histórico.
type CycleRow struct {
	RunID        string
	ScannedAt    time.Time
	TotalAPI     int
	Filtered     int
	Executed     int
	Invested     float64
	BalanceAfter float64
}

// SettlementRow es el desenlace de un mercado tal como quedó en el histórico.
type SettlementRow struct {
	MarketID   string
	Question   string
	Outcome    string
	Resolution string
	Won        bool
	SettledAt  time.Time
}

// NewHistory abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia runs antiguos.
func NewHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewHistory: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewHistory: apply schema: %w", err)
	}

	h := &History{db: db}
	h.pruneOld(context.Background())
	return h, nil
}

// SaveRun persiste los contadores de un ciclo. Una fila por run.
func (h *History) SaveRun(ctx context.Context, rec domain.RunRecord) error {
	if _, err := h.db.ExecContext(ctx, `
		INSERT INTO runs
			(run_id, scanned_at, total_api, total_parsed, non_crypto, filtered,
			 planned, executed, invested, balance_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.ScanInfo.TotalAPI,
		rec.ScanInfo.TotalParsed,
		rec.ScanInfo.NonCrypto,
		rec.ScanInfo.Filtered,
		len(rec.PlannedTrades),
		len(rec.ExecutedTrades),
		executedCost(rec),
		rec.Summary.BalanceAfter,
	); err != nil {
		return fmt.Errorf("storage.SaveRun: insert %s: %w", rec.RunID, err)
	}
	return nil
}

// SaveSettlement persiste (upsert) el desenlace de un mercado.
// Varios trades sobre el mismo mercado colapsan en una fila.
func (h *History) SaveSettlement(ctx context.Context, t domain.ExecutedTrade) error {
	won := 0
	if t.Won() {
		won = 1
	}
	if _, err := h.db.ExecContext(ctx, `
		INSERT INTO settlements (market_id, question, outcome, resolution, won, settled_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(market_id) DO UPDATE SET
			resolution = excluded.resolution,
			won        = excluded.won,
			settled_at = excluded.settled_at`,
		t.MarketID,
		t.Question,
		t.Outcome,
		t.Resolution,
		won,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("storage.SaveSettlement: upsert %s: %w", t.MarketID, err)
	}
	return nil
}

// RecentRuns devuelve los últimos n ciclos, el más reciente primero.
func (h *History) RecentRuns(ctx context.Context, n int) ([]CycleRow, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT run_id, scanned_at, total_api, filtered, executed, invested, balance_after
		FROM runs
		ORDER BY scanned_at DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentRuns: query: %w", err)
	}
	defer rows.Close()

	var out []CycleRow
	for rows.Next() {
		var row CycleRow
		var scannedAt string
		if err := rows.Scan(
			&row.RunID,
			&scannedAt,
			&row.TotalAPI,
			&row.Filtered,
			&row.Executed,
			&row.Invested,
			&row.BalanceAfter,
		); err != nil {
			return nil, fmt.Errorf("storage.RecentRuns: scan row: %w", err)
		}
		row.ScannedAt, _ = time.Parse(time.RFC3339, scannedAt)
		out = append(out, row)
	}
	return out, rows.Err()
}

// RecentSettlements devuelve los últimos n settlements, el más reciente primero.
func (h *History) RecentSettlements(ctx context.Context, n int) ([]SettlementRow, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT market_id, question, outcome, resolution, won, settled_at
		FROM settlements
		ORDER BY settled_at DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentSettlements: query: %w", err)
	}
	defer rows.Close()

	var out []SettlementRow
	for rows.Next() {
		var row SettlementRow
		var won int
		var settledAt string
		if err := rows.Scan(
			&row.MarketID,
			&row.Question,
			&row.Outcome,
			&row.Resolution,
			&won,
			&settledAt,
		); err != nil {
			return nil, fmt.Errorf("storage.RecentSettlements: scan row: %w", err)
		}
		row.Won = won == 1
		row.SettledAt, _ = time.Parse(time.RFC3339, settledAt)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (h *History) Close() error {
	return h.db.Close()
}

// --- helpers internos ---

// pruneOld elimina runs antiguos para mantener la DB ligera.
func (h *History) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	h.db.ExecContext(ctx, `DELETE FROM runs WHERE scanned_at < ?`, cutoff.Format(time.RFC3339))
}

// executedCost suma el coste de los trades ejecutados del run.
func executedCost(rec domain.RunRecord) float64 {
	var sum float64
	for _, t := range rec.ExecutedTrades {
		sum += t.Cost
	}
	return sum
}
