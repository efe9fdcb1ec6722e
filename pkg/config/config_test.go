package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Minute, cfg.Replenishment.ConfirmationTTL)
	assert.Equal(t, 365, cfg.Replenishment.DaysPerYear)
	assert.False(t, cfg.Replenishment.AutoOrderOnSale)
	assert.False(t, cfg.JWT.Enabled())
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "postgres://postgres:@localhost:5432/reposicion?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("HTTP_BASE_PATH", "/api/")
	v.Set("REPLENISHMENT_CONFIRMATION_TTL", "90")
	v.Set("REPLENISHMENT_DAYS_PER_YEAR", "300")
	v.Set("REPLENISHMENT_AUTO_ORDER_ON_SALE", "true")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "/api", cfg.HTTP.BasePath)
	assert.Equal(t, 90*time.Second, cfg.Replenishment.ConfirmationTTL)
	assert.Equal(t, 300, cfg.Replenishment.DaysPerYear)
	assert.True(t, cfg.Replenishment.AutoOrderOnSale)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_DuracionInvalida(t *testing.T) {
	v := viper.New()
	v.Set("REPLENISHMENT_CONFIRMATION_TTL", "pronto")

	_, err := fromViper(v)

	assert.Error(t, err)
}

func TestFromViper_DiasPorAnioInvalido(t *testing.T) {
	v := viper.New()
	v.Set("REPLENISHMENT_DAYS_PER_YEAR", "0")

	_, err := fromViper(v)

	assert.Error(t, err)
}
