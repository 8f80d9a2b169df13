// Package cron schedules background jobs alongside the scan loop. It wraps
// robfig/cron with context plumbing so jobs wind down with the process.
package cron

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Runner schedules jobs with second-granularity cron expressions.
type Runner struct {
	cron    *cron.Cron
	baseCtx context.Context
}

// New creates a Runner whose jobs receive baseCtx when fired.
func New(baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds()),
		baseCtx: baseCtx,
	}
}

// Add registers a job under a six-field cron spec (seconds included).
func (r *Runner) Add(spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		job(r.baseCtx)
	})
}

// Start launches the scheduler in its own goroutine.
func (r *Runner) Start() {
	slog.Info("cron started")
	r.cron.Start()
}

// Stop halts the scheduler and waits for in-flight jobs to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	slog.Info("cron stopped")
}
