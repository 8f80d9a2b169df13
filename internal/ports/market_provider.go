package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// MarketProvider obtiene mercados normalizados desde la API Gamma.
type MarketProvider interface {
	// FetchOpenMarkets devuelve los mercados abiertos que terminan dentro
	// del horizonte dado. El segundo valor es cuántos records devolvió la
	// API antes de normalizar; los records malformados se saltan.
	FetchOpenMarkets(ctx context.Context, horizon time.Duration) ([]domain.Market, int, error)

	// FetchMarket devuelve el estado actual de un mercado por su ID.
	// Se usa para verificar resoluciones de trades pendientes.
	FetchMarket(ctx context.Context, id string) (domain.Market, error)
}
