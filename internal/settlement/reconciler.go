// Package settlement reconciles open paper positions against the current
// state of their markets. A trade stays pending until its market closes with
// a published outcome; a market that closes without one is treated as
// cancelled and excluded from the win/loss tally.
package settlement

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/ports"
)

// Result of one reconciliation pass. Resolved holds the trades settled by
// this pass, after write-back; Unresolved the trades still waiting for an
// outcome (market open, or the status check failed).
type Result struct {
	Resolved   []domain.ExecutedTrade
	Unresolved []domain.ExecutedTrade
}

// Reconciler checks unsettled ledger trades against live market state and
// writes resolutions back into the ledger in place.
type Reconciler struct {
	markets ports.MarketProvider
}

// New creates a Reconciler backed by the given market provider.
func New(markets ports.MarketProvider) *Reconciler {
	return &Reconciler{markets: markets}
}

// Reconcile queries each distinct market that still has unsettled trades and
// applies the outcome to every trade riding on it. Failed status checks are
// never terminal: the affected trades simply stay unresolved and are retried
// on the next pass. A fully settled ledger performs zero API calls. The
// caller is responsible for persisting the mutated ledger.
func (r *Reconciler) Reconcile(ctx context.Context, ledger *domain.Ledger) Result {
	unsettled := ledger.UnsettledTrades()
	if len(unsettled) == 0 {
		return Result{}
	}

	// One status query per market, however many trades ride on it.
	byMarket := make(map[string][]*domain.ExecutedTrade, len(unsettled))
	order := make([]string, 0, len(unsettled))
	for _, t := range unsettled {
		if _, seen := byMarket[t.MarketID]; !seen {
			order = append(order, t.MarketID)
		}
		byMarket[t.MarketID] = append(byMarket[t.MarketID], t)
	}

	slog.Info("checking settlements",
		"pending_markets", len(order),
		"pending_trades", len(unsettled),
	)

	var res Result
	for _, id := range order {
		trades := byMarket[id]

		m, err := r.markets.FetchMarket(ctx, id)
		if err != nil {
			slog.Warn("settlement check failed, will retry next cycle", "market", id, "err", err)
			res.Unresolved = append(res.Unresolved, deref(trades)...)
			continue
		}

		switch {
		case m.Closed && m.IsResolved():
			for _, t := range trades {
				ledger.ApplySettlement(t, m.Resolution)
				res.Resolved = append(res.Resolved, *t)
			}
		case m.Closed:
			// Closed without a published outcome: the market was voided.
			for _, t := range trades {
				ledger.ApplySettlement(t, domain.ResolutionCancelled)
				res.Resolved = append(res.Resolved, *t)
			}
		default:
			res.Unresolved = append(res.Unresolved, deref(trades)...)
		}
	}

	if len(res.Resolved) > 0 {
		slog.Info("settlements resolved", "count", len(res.Resolved))
	}
	return res
}

func deref(trades []*domain.ExecutedTrade) []domain.ExecutedTrade {
	out := make([]domain.ExecutedTrade, 0, len(trades))
	for _, t := range trades {
		out = append(out, *t)
	}
	return out
}
