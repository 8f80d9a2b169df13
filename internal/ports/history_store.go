package ports

import (
	"context"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// HistoryStore registra cada ciclo y settlement en el histórico SQLite.
// Es un store derivado y best-effort: el ledger JSON sigue siendo la
// fuente de verdad, un fallo aquí nunca aborta el ciclo.
type HistoryStore interface {
	// SaveRun persiste los contadores de un ciclo.
	SaveRun(ctx context.Context, rec domain.RunRecord) error

	// SaveSettlement persiste (upsert) el desenlace de un mercado.
	SaveSettlement(ctx context.Context, trade domain.ExecutedTrade) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
