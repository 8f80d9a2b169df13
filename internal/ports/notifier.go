package ports

import (
	"context"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// Notifier presenta los resultados de cada ciclo al usuario.
type Notifier interface {
	// NotifyRun muestra el resumen del ciclo con sus trades.
	// En la implementación de consola, imprime una tabla formateada.
	NotifyRun(ctx context.Context, rec domain.RunRecord) error

	// NotifySettlements muestra los trades recién resueltos con su desenlace.
	NotifySettlements(ctx context.Context, resolved []domain.ExecutedTrade) error
}
