package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/cache"
)

func TestMemoryAdjustmentStore_TakeConsumeElToken(t *testing.T) {
	ctx := context.Background()
	s := cache.NewMemoryAdjustmentStore()
	adj := ports.PendingAdjustment{ArticleID: "art-1", Stock: decimal.NewFromInt(5)}

	require.NoError(t, s.Save(ctx, "tok", adj, time.Minute))

	got, err := s.Take(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "art-1", got.ArticleID)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(5)))

	again, err := s.Take(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, again, "un token solo se usa una vez")
}

func TestMemoryAdjustmentStore_TokenVencido(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := cache.NewMemoryAdjustmentStore().WithClock(func() time.Time { return now })

	require.NoError(t, s.Save(ctx, "tok", ports.PendingAdjustment{ArticleID: "art-1"}, time.Minute))
	now = now.Add(2 * time.Minute)

	got, err := s.Take(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryAdjustmentStore_TokenInexistente(t *testing.T) {
	got, err := cache.NewMemoryAdjustmentStore().Take(context.Background(), "nada")
	require.NoError(t, err)
	assert.Nil(t, got)
}
