package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ROOMS_APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "rooms", cfg.DBConfig.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWTConfig.AccessTTL)
	assert.NotEmpty(t, cfg.JWTConfig.Secret)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, 10, cfg.AuthRateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ROOMS_APP_ENV", "production")
	t.Setenv("ROOMS_JWT_SECRET", "s3cret")
	t.Setenv("ROOMS_SERVICE_PORT", "9000")
	t.Setenv("ROOMS_DB_NAME", "rooms_prod")
	t.Setenv("ROOMS_KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "rooms_prod", cfg.DBConfig.DBName)
	assert.Equal(t, "s3cret", cfg.JWTConfig.Secret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
}

func TestLoad_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("ROOMS_APP_ENV", "production")
	t.Setenv("ROOMS_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}
