// Package stats periodically refreshes the inventory gauges.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/easydev/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

type Collector struct {
	repo     repository.StatsRepository
	gauge    *prometheus.GaugeVec
	duration prometheus.Observer
	logger   *slog.Logger
	cron     *cron.Cron
	schedule cron.Schedule
}

// NewCollector validates schedule (standard cron or a descriptor such as "@every 1m").
// gauge must carry a single "kind" label.
func NewCollector(repo repository.StatsRepository, gauge *prometheus.GaugeVec, duration prometheus.Observer, schedule string, logger *slog.Logger) (*Collector, error) {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return nil, fmt.Errorf("parse stats schedule %q: %w", schedule, err)
	}
	return &Collector{
		repo:     repo,
		gauge:    gauge,
		duration: duration,
		logger:   logger.With("component", "stats"),
		cron:     cron.New(),
		schedule: sched,
	}, nil
}

// Start collects once, then on every tick until Stop.
func (c *Collector) Start(ctx context.Context) {
	c.run(ctx)
	c.cron.Schedule(c.schedule, cron.FuncJob(func() { c.run(ctx) }))
	c.cron.Start()
	c.logger.Info("stats collector started")
}

// Stop waits for a running collection to finish.
func (c *Collector) Stop() {
	<-c.cron.Stop().Done()
	c.logger.Info("stats collector stopped")
}

// Collect reads the inventory once and updates the gauges.
func (c *Collector) Collect(ctx context.Context) error {
	start := time.Now()
	inv, err := c.repo.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("collect inventory: %w", err)
	}
	if c.duration != nil {
		c.duration.Observe(time.Since(start).Seconds())
	}

	c.gauge.WithLabelValues("users").Set(float64(inv.Users))
	c.gauge.WithLabelValues("notes").Set(float64(inv.Notes))
	c.gauge.WithLabelValues("drafts").Set(float64(inv.Drafts))
	c.gauge.WithLabelValues("snippets").Set(float64(inv.Snippets))
	return nil
}

func (c *Collector) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := c.Collect(ctx); err != nil {
		c.logger.Warn("stats collection failed", "error", err)
	}
}
