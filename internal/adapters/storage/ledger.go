package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/google/uuid"
)

// FileLedger implementa ports.LedgerStore sobre un archivo JSON.
// Hay un único escritor (el loop de escaneo); los lectores (dashboard,
// report) releen el archivo completo con ReadLedger. Cada save escribe a
// un temp y renombra: se ve el estado anterior o el nuevo, nunca uno a medias.
type FileLedger struct {
	path   string
	ledger *domain.Ledger
}

// OpenFileLedger carga el ledger desde path, creando el directorio si hace falta.
// Un archivo inexistente o corrupto arranca un ledger vacío, no es error.
func OpenFileLedger(path string) (*FileLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage.OpenFileLedger: mkdir %q: %w", dir, err)
		}
	}
	return &FileLedger{path: path, ledger: ReadLedger(path)}, nil
}

// ReadLedger lee y decodifica el archivo del ledger.
// Devuelve un ledger vacío si el archivo no existe o no decodifica:
// el bot prefiere empezar de cero antes que negarse a arrancar.
func ReadLedger(path string) *domain.Ledger {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("ledger unreadable, starting fresh", "path", path, "err", err)
		}
		return &domain.Ledger{}
	}

	var l domain.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		slog.Warn("ledger corrupt, starting fresh", "path", path, "err", err)
		return &domain.Ledger{}
	}
	return &l
}

// Ledger devuelve el ledger en memoria cargado al abrir el store.
func (f *FileLedger) Ledger() *domain.Ledger {
	return f.ledger
}

// Append sella el run con un id corto y el timestamp, acumula el total
// invertido y persiste el ledger completo. Devuelve el run_id generado.
func (f *FileLedger) Append(rec domain.RunRecord) (string, error) {
	rec.RunID = newRunID()
	rec.Timestamp = time.Now().UTC()

	for _, t := range rec.ExecutedTrades {
		f.ledger.TotalInvested += t.Cost
	}
	f.ledger.Runs = append(f.ledger.Runs, rec)

	if err := f.Save(); err != nil {
		return "", fmt.Errorf("storage.Append: %w", err)
	}
	return rec.RunID, nil
}

// Save escribe el ledger completo de forma atómica (temp + rename).
func (f *FileLedger) Save() error {
	data, err := json.MarshalIndent(f.ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("storage.Save: marshal: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage.Save: write temp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("storage.Save: rename: %w", err)
	}
	return nil
}

// newRunID genera un id corto de run: los primeros 8 chars de un uuid v4.
func newRunID() string {
	return uuid.NewString()[:8]
}
