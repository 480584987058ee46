package stats_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/easydev/internal/domain"
	"github.com/ErlanBelekov/easydev/internal/infrastructure/memory"
	"github.com/ErlanBelekov/easydev/internal/repository"
	"github.com/ErlanBelekov/easydev/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGauge() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "test_inventory_items"}, []string{"kind"})
}

func TestCollector_SetsGauges(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	_, err := store.Notes().Create(ctx, &domain.Note{UserID: "u", Title: "a", IsDraft: true})
	require.NoError(t, err)
	_, err = store.Notes().Create(ctx, &domain.Note{UserID: "u", Title: "b"})
	require.NoError(t, err)
	_, err = store.Snippets().Create(ctx, &domain.Snippet{UserID: "u", Title: "s", Description: "d", Code: "c", Language: "go"})
	require.NoError(t, err)

	gauge := newGauge()
	c, err := stats.NewCollector(store.Stats(), gauge, nil, "@every 1m", slog.Default())
	require.NoError(t, err)

	require.NoError(t, c.Collect(ctx))

	assert.Equal(t, 2.0, testutil.ToFloat64(gauge.WithLabelValues("notes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(gauge.WithLabelValues("drafts")))
	assert.Equal(t, 1.0, testutil.ToFloat64(gauge.WithLabelValues("snippets")))
	assert.Equal(t, 0.0, testutil.ToFloat64(gauge.WithLabelValues("users")))
}

type failingStats struct{}

func (failingStats) Inventory(context.Context) (repository.Inventory, error) {
	return repository.Inventory{}, errors.New("db down")
}

func TestCollector_PropagatesError(t *testing.T) {
	c, err := stats.NewCollector(failingStats{}, newGauge(), nil, "@every 1m", slog.Default())
	require.NoError(t, err)

	assert.Error(t, c.Collect(context.Background()))
}

func TestNewCollector_InvalidSchedule(t *testing.T) {
	_, err := stats.NewCollector(failingStats{}, newGauge(), nil, "not a schedule", slog.Default())
	assert.Error(t, err)
}

func TestCollector_StartStop(t *testing.T) {
	gauge := newGauge()
	store := memory.NewStore()
	c, err := stats.NewCollector(store.Stats(), gauge, nil, "@every 1h", slog.Default())
	require.NoError(t, err)

	c.Start(context.Background())
	c.Stop()

	assert.Equal(t, 0.0, testutil.ToFloat64(gauge.WithLabelValues("notes")))
}
