package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

const gammaMarketsPath = "/markets"

// FetchOpenMarkets obtiene los mercados abiertos que terminan dentro del
// horizonte dado. Devuelve los mercados normalizados y cuántos records
// devolvió la API; los records malformados se saltan.
func (c *Client) FetchOpenMarkets(ctx context.Context, horizon time.Duration) ([]domain.Market, int, error) {
	now := time.Now().UTC()
	u := fmt.Sprintf("%s%s?limit=%d&closed=false&end_date_min=%s&end_date_max=%s",
		c.gammaBase,
		gammaMarketsPath,
		c.fetchLimit,
		url.QueryEscape(now.Format(time.RFC3339)),
		url.QueryEscape(now.Add(horizon).Format(time.RFC3339)),
	)

	// Decodificar record a record: un mercado corrupto no tira el batch.
	var records []json.RawMessage
	if err := c.get(ctx, c.gammaLimiter, u, &records); err != nil {
		return nil, 0, fmt.Errorf("gamma.FetchOpenMarkets: %w", err)
	}

	markets := mapRawMarkets(records)
	slog.Debug("gamma markets fetched",
		"raw", len(records),
		"parsed", len(markets),
		"horizon", horizon,
	)
	return markets, len(records), nil
}

// FetchMarket obtiene el estado actual de un mercado por su ID.
func (c *Client) FetchMarket(ctx context.Context, id string) (domain.Market, error) {
	u := fmt.Sprintf("%s%s/%s", c.gammaBase, gammaMarketsPath, url.PathEscape(id))

	var raw rawMarket
	if err := c.get(ctx, c.gammaLimiter, u, &raw); err != nil {
		return domain.Market{}, fmt.Errorf("gamma.FetchMarket %s: %w", id, err)
	}
	return mapMarket(raw), nil
}
