package polymarket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// mapRawMarkets decodifica y convierte el batch de records de GET /markets.
// Un record malformado se salta con log, nunca aborta el batch completo.
func mapRawMarkets(records []json.RawMessage) []domain.Market {
	markets := make([]domain.Market, 0, len(records))
	for i, rec := range records {
		var raw rawMarket
		if err := json.Unmarshal(rec, &raw); err != nil {
			slog.Warn("skipping malformed market record", "index", i, "err", err)
			continue
		}
		markets = append(markets, mapMarket(raw))
	}
	return markets
}

// mapMarket convierte un rawMarket DTO a domain.Market.
func mapMarket(r rawMarket) domain.Market {
	return domain.Market{
		ID:              r.ID,
		Question:        r.Question,
		EndDate:         parseGammaDate(r.EndDate),
		StartDate:       parseGammaDate(r.StartDate),
		CreatedAt:       parseGammaDate(r.CreatedAt),
		OutcomePrices:   []float64(r.OutcomePrices),
		ClobTokenIDs:    []string(r.ClobTokenIDs),
		Volume:          float64(r.Volume),
		Liquidity:       float64(r.Liquidity),
		Fee:             float64(r.Fee),
		Closed:          bool(r.Closed),
		AcceptingOrders: r.AcceptingOrders == nil || bool(*r.AcceptingOrders),
		Resolution:      normalizeResolution(r.Resolution),
	}
}

// parseGammaDate parsea una fecha de Gamma, zero time si falla.
// Polymarket usa varios formatos; intentamos los más comunes.
func parseGammaDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// normalizeResolution trata el string literal "null" como sin resolver.
// Gamma lo devuelve así en mercados cerrados sin desenlace publicado.
func normalizeResolution(s string) string {
	if s == "null" {
		return ""
	}
	return s
}
