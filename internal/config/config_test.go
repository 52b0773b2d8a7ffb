package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10*time.Minute, cfg.Sweeper.FrequentInterval)
	assert.Equal(t, 24*time.Hour, cfg.Sweeper.FullInterval)
	assert.Equal(t, int64(3000), cfg.Tariff.Small)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 90, cfg.MaxReservationDays)
	assert.Equal(t, 5, cfg.Kafka.PublishMaxAttempts)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SWEEP_INTERVAL", "90s")
	t.Setenv("LOCATION", "Asia/Seoul")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6432, cfg.DB.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 90*time.Second, cfg.Sweeper.FrequentInterval)
	assert.Equal(t, "Asia/Seoul", cfg.Location.String())
	assert.Contains(t, cfg.DB.DSN(), "host=db.internal port=6432")
}

func TestLoad_EmptyBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad location", func(t *testing.T) {
		t.Setenv("LOCATION", "Nowhere/Land")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("SWEEP_WORKERS", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unparsable falls back to default", func(t *testing.T) {
		t.Setenv("DB_PORT", "five")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5432, cfg.DB.Port)
	})
}

func TestLoad_TokenSecret(t *testing.T) {
	t.Run("required outside development", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("PICKUP_TOKEN_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PICKUP_TOKEN_SECRET")
	})

	t.Run("explicit secret is kept", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("PICKUP_TOKEN_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.TokenSecret)
	})

	t.Run("development gets a random secret", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", EnvDevelopment)
		t.Setenv("PICKUP_TOKEN_SECRET", "")

		first, err := Load()
		require.NoError(t, err)
		second, err := Load()
		require.NoError(t, err)

		assert.Len(t, first.TokenSecret, 64)
		assert.NotEqual(t, first.TokenSecret, second.TokenSecret)
		assert.NotContains(t, first.TokenSecret, "change-me")
	})
}

func TestLoad_MaxReservationDays(t *testing.T) {
	t.Setenv("MAX_RESERVATION_DAYS", "14")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.MaxReservationDays)

	t.Setenv("MAX_RESERVATION_DAYS", "-1")
	_, err = Load()
	assert.Error(t, err)
}
