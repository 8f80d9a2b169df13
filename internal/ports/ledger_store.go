package ports

import "github.com/alejandrodnm/polypaper/internal/domain"

// LedgerStore persiste el ledger de runs en un archivo JSON duradero.
type LedgerStore interface {
	// Ledger devuelve el ledger en memoria cargado al abrir el store.
	// Los settlements se escriben in situ sobre este objeto.
	Ledger() *domain.Ledger

	// Append genera el run_id, sella el timestamp, acumula los agregados
	// y persiste el ledger completo de forma atómica.
	// Devuelve el run_id generado.
	Append(rec domain.RunRecord) (string, error)

	// Save re-persiste el ledger tras mutaciones in situ (settlements).
	Save() error
}
