// Package dashboard serves a read-only web view of the paper trading ledger:
// an HTML status page plus a small JSON API. It reads the ledger file fresh
// on every request and never writes, so it can run next to the scan loop (or
// on its own) without any coordination.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alejandrodnm/polypaper/internal/adapters/storage"
	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/report"
	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout = 10 * time.Second
	maxDateNav      = 10
)

// Server renders the ledger at a listen address.
type Server struct {
	ledgerPath      string
	startingBalance float64
	engine          *gin.Engine
}

// New creates a dashboard Server reading the ledger at ledgerPath.
func New(ledgerPath string, startingBalance float64) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(template.Must(template.New("index").Parse(indexHTML)))

	s := &Server{
		ledgerPath:      ledgerPath,
		startingBalance: startingBalance,
		engine:          engine,
	}

	engine.GET("/", s.index)
	engine.GET("/api/stats", s.stats)
	engine.GET("/api/runs", s.runs)
	engine.GET("/healthz", s.health)

	return s
}

// Handler exposes the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("dashboard shutting down")
	case err := <-errCh:
		return fmt.Errorf("dashboard.Run: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type indexData struct {
	Stats   report.LedgerStats
	Runs    []domain.RunRecord
	Dates   []string
	Date    string
	Updated string
}

func (s *Server) index(c *gin.Context) {
	led := storage.ReadLedger(s.ledgerPath)
	date := c.Query("date")

	c.HTML(http.StatusOK, "index", indexData{
		Stats:   report.Stats(led, s.startingBalance),
		Runs:    latestFirst(filterByDate(led.Runs, date)),
		Dates:   distinctDates(led.Runs, maxDateNav),
		Date:    date,
		Updated: time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (s *Server) stats(c *gin.Context) {
	led := storage.ReadLedger(s.ledgerPath)
	c.JSON(http.StatusOK, report.Stats(led, s.startingBalance))
}

func (s *Server) runs(c *gin.Context) {
	led := storage.ReadLedger(s.ledgerPath)
	c.JSON(http.StatusOK, latestFirst(filterByDate(led.Runs, c.Query("date"))))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- helpers ---

// filterByDate keeps runs whose timestamp starts with the given prefix
// (YYYY-MM-DD, or a shorter prefix for month/year views).
func filterByDate(runs []domain.RunRecord, date string) []domain.RunRecord {
	if date == "" {
		return runs
	}
	out := make([]domain.RunRecord, 0, len(runs))
	for _, r := range runs {
		if strings.HasPrefix(r.Timestamp.UTC().Format(time.RFC3339), date) {
			out = append(out, r)
		}
	}
	return out
}

func latestFirst(runs []domain.RunRecord) []domain.RunRecord {
	out := make([]domain.RunRecord, len(runs))
	for i, r := range runs {
		out[len(runs)-1-i] = r
	}
	return out
}

// distinctDates returns the n most recent distinct run dates, newest first.
func distinctDates(runs []domain.RunRecord, n int) []string {
	seen := make(map[string]bool, n)
	var out []string
	for i := len(runs) - 1; i >= 0 && len(out) < n; i-- {
		d := runs[i].Timestamp.UTC().Format("2006-01-02")
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
