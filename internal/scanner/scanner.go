package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/ports"
	"github.com/alejandrodnm/polypaper/internal/settlement"
	"github.com/alejandrodnm/polypaper/internal/trader"
)

// Config contiene la configuración del scanner.
type Config struct {
	ScanInterval    time.Duration
	Filter          FilterConfig
	ExcludeKeywords []string
	TradeAmount     float64
	Once            bool
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		ScanInterval: time.Hour,
		Filter:       DefaultFilterConfig(),
		TradeAmount:  5,
	}
}

// Scanner es el orquestador principal del loop de paper trading:
// reconcilia settlements pendientes, escanea mercados, simula trades y
// deja constancia de cada ciclo en el ledger.
type Scanner struct {
	cfg        Config
	markets    ports.MarketProvider
	store      ports.LedgerStore
	history    ports.HistoryStore
	notifier   ports.Notifier
	trader     *trader.Trader
	reconciler *settlement.Reconciler
	filter     *Filter
}

// New crea un Scanner con todas las dependencias inyectadas.
// history puede ser nil si el histórico SQLite está deshabilitado.
func New(
	cfg Config,
	markets ports.MarketProvider,
	store ports.LedgerStore,
	history ports.HistoryStore,
	notifier ports.Notifier,
	vt *trader.Trader,
) *Scanner {
	return &Scanner{
		cfg:        cfg,
		markets:    markets,
		store:      store,
		history:    history,
		notifier:   notifier,
		trader:     vt,
		reconciler: settlement.New(markets),
		filter:     NewFilter(cfg.Filter),
	}
}

// Run ejecuta el loop de escaneo hasta que el contexto se cancele.
// Si cfg.Once está activo, solo ejecuta un ciclo.
func (s *Scanner) Run(ctx context.Context) error {
	slog.Info("scanner starting",
		"interval", s.cfg.ScanInterval,
		"once", s.cfg.Once,
		"balance", s.trader.Balance(),
	)

	if err := s.runCycle(ctx); err != nil {
		slog.Error("scan cycle failed", "err", err)
		if s.cfg.Once {
			return err
		}
	}

	if s.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				slog.Error("scan cycle failed", "err", err)
			}
		}
	}
}

// runCycle ejecuta un ciclo completo: reconcilia settlements, escanea,
// ejecuta y persiste el RunRecord resultante. Un pánico dentro del ciclo
// no tumba el proceso: se convierte en error y el loop sigue con el
// siguiente tick.
func (s *Scanner) runCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scanner.runCycle: panic: %v", r)
		}
	}()

	start := time.Now()

	s.reconcile(ctx)

	rec := s.cycle(ctx)

	if _, err := s.store.Append(rec); err != nil {
		return fmt.Errorf("scanner.runCycle: append run: %w", err)
	}
	stored, _ := s.store.Ledger().LastRun()

	if s.history != nil {
		if err := s.history.SaveRun(ctx, stored); err != nil {
			slog.Warn("history error", "err", err)
		}
	}

	if err := s.notifier.NotifyRun(ctx, stored); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	slog.Info("scan cycle complete",
		"run_id", stored.RunID,
		"executed", len(stored.ExecutedTrades),
		"balance", s.trader.Balance(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// reconcile comprueba los trades pendientes contra el estado actual de sus
// mercados y persiste/notifica los recién resueltos.
func (s *Scanner) reconcile(ctx context.Context) {
	res := s.reconciler.Reconcile(ctx, s.store.Ledger())
	if len(res.Resolved) == 0 {
		return
	}

	// Best-effort: si este Save falla, el Append del ciclo persiste el
	// ledger completo igualmente.
	if err := s.store.Save(); err != nil {
		slog.Warn("ledger save after settlements failed", "err", err)
	}

	if s.history != nil {
		for _, t := range res.Resolved {
			if err := s.history.SaveSettlement(ctx, t); err != nil {
				slog.Warn("history error", "err", err)
			}
		}
	}

	if err := s.notifier.NotifySettlements(ctx, res.Resolved); err != nil {
		slog.Warn("notifier error", "err", err)
	}
}

// cycle hace fetch → exclude → filter → plan → execute y construye el
// RunRecord del ciclo. Un fetch fallido no tumba el ciclo: se registra una
// pasada vacía para dejar constancia en el ledger.
func (s *Scanner) cycle(ctx context.Context) domain.RunRecord {
	balanceBefore := s.trader.Balance()

	horizon := time.Duration(s.cfg.Filter.MaxHoursUntilEnd * float64(time.Hour))
	markets, totalAPI, err := s.markets.FetchOpenMarkets(ctx, horizon)
	if err != nil {
		slog.Warn("fetch markets failed, recording empty cycle", "err", err)
		markets, totalAPI = nil, 0
	}

	nonCrypto := ExcludeByKeyword(markets, s.cfg.ExcludeKeywords)
	candidates := s.filter.Apply(nonCrypto)

	scanInfo := domain.ScanInfo{
		TotalAPI:    totalAPI,
		TotalParsed: len(markets),
		NonCrypto:   len(nonCrypto),
		Filtered:    len(candidates),
	}

	planned := make([]domain.PlannedTrade, 0, len(candidates))
	for _, m := range candidates {
		planned = append(planned, domain.PlannedTrade{
			MarketID: m.ID,
			Question: m.Question,
			Outcome:  m.DominantOutcome(),
			Price:    m.DominantPrice(),
			Amount:   s.cfg.TradeAmount,
			Reason:   planReason(m),
		})
	}

	executed := make([]domain.ExecutedTrade, 0, len(candidates))
	for _, m := range candidates {
		// El balance solo baja: por debajo de la reserva no se intenta más.
		if s.trader.Balance() < s.cfg.TradeAmount {
			slog.Warn("balance below trade amount, stopping executions",
				"balance", s.trader.Balance(),
				"trade_amount", s.cfg.TradeAmount,
			)
			break
		}
		t, err := s.trader.Execute(m)
		if err != nil {
			slog.Warn("trade skipped", "market", m.Question, "err", err)
			continue
		}
		executed = append(executed, t)
	}

	return domain.RunRecord{
		BalanceBefore:  balanceBefore,
		ScanInfo:       scanInfo,
		PlannedTrades:  planned,
		ExecutedTrades: executed,
		Summary: domain.RunSummary{
			MarketsScanned:  len(markets),
			TradesPlanned:   len(planned),
			TradesExecuted:  len(executed),
			TotalInvested:   s.trader.TotalInvested(),
			PotentialPayout: s.trader.PotentialPayout(),
			ProfitIfWin:     s.trader.ProfitIfWin(),
			BalanceAfter:    s.trader.Balance(),
		},
	}
}

// planReason resume por qué el mercado calificó, para el registro del run.
func planReason(m domain.Market) string {
	return fmt.Sprintf("prob %.1f%% | ends in %.1fh | volume $%.0f",
		m.MaxProbability()*100, m.HoursUntilEnd(), m.Volume)
}
