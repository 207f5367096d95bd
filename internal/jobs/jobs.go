// Package jobs runs the optional cron-driven maintenance tasks: refreshing
// the cached poster and resetting the plan after the weekend.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	appLog "weekendly/internal/log"
	"weekendly/internal/schedule"
)

// PosterFile is the cached poster written by the refresh job.
const PosterFile = "poster.png"

// Planner is what the jobs need from the plan owner.
type Planner interface {
	Snapshot() schedule.Snapshot
	Clear()
}

// Renderer produces a poster PNG for a snapshot.
type Renderer interface {
	Render(ctx context.Context, snap schedule.Snapshot) ([]byte, error)
}

// Config selects which jobs run. Empty specs disable a job.
type Config struct {
	PosterRefresh string
	ResetCron     string
	DataDir       string
	RenderTimeout time.Duration
}

// Runner owns the cron scheduler.
type Runner struct {
	c        *cron.Cron
	planner  Planner
	renderer Renderer
	cfg      Config
	ctx      context.Context
}

// New validates the specs and registers the jobs without starting them.
func New(ctx context.Context, cfg Config, p Planner, r Renderer) (*Runner, error) {
	run := &Runner{
		c:        cron.New(),
		planner:  p,
		renderer: r,
		cfg:      cfg,
		ctx:      ctx,
	}

	if cfg.PosterRefresh != "" {
		if _, err := run.c.AddFunc(cfg.PosterRefresh, func() {
			if err := run.RefreshPoster(); err != nil {
				appLog.Error("jobs: poster refresh failed", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("jobs: invalid poster refresh spec %q: %w", cfg.PosterRefresh, err)
		}
	}
	if cfg.ResetCron != "" {
		if _, err := run.c.AddFunc(cfg.ResetCron, run.Reset); err != nil {
			return nil, fmt.Errorf("jobs: invalid reset spec %q: %w", cfg.ResetCron, err)
		}
	}
	return run, nil
}

// Len is the number of registered jobs.
func (r *Runner) Len() int {
	return len(r.c.Entries())
}

// Start runs the scheduler in the background until Stop.
func (r *Runner) Start() {
	if r.Len() == 0 {
		return
	}
	appLog.Info("jobs: scheduler started", "jobs", r.Len())
	r.c.Start()
}

// Stop waits for running jobs to finish.
func (r *Runner) Stop() {
	<-r.c.Stop().Done()
}

// RefreshPoster renders the current plan into DataDir/poster.png.
func (r *Runner) RefreshPoster() error {
	timeout := r.cfg.RenderTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(r.ctx, timeout)
	defer cancel()

	png, err := r.renderer.Render(ctx, r.planner.Snapshot())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.cfg.DataDir, 0o700); err != nil {
		return err
	}

	// Write to a temp file first so /poster.png never serves a partial image.
	path := filepath.Join(r.cfg.DataDir, PosterFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, png, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	appLog.Info("jobs: poster refreshed", "path", path, "bytes", len(png))
	return nil
}

// Reset clears the plan.
func (r *Runner) Reset() {
	n := r.planner.Snapshot().Len()
	r.planner.Clear()
	appLog.Info("jobs: plan reset", "removed", n)
}
