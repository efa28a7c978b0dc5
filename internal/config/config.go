package config

import (
	"github.com/roomfinder/service-rooms/internal/platform/config"
)

// ServiceConfig holds all configuration for the rooms service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	DBConfig      config.DatabaseConfig
	JWTConfig     config.JWTConfig
	KafkaConfig   config.KafkaConfig
	CORSOrigins   string
	AuthRateLimit float64
	AuthRateBurst int
	MigrationsDir string
}

// Load reads configuration from ROOMS_* environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("ROOMS")
	if err != nil {
		return nil, err
	}

	v.SetDefault("DB_NAME", "rooms")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("AUTH_RATE_LIMIT", 5)
	v.SetDefault("AUTH_RATE_BURST", 10)
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	return &ServiceConfig{
		Port:          config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:        config.GetAppEnv(v),
		DBConfig:      config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:     config.LoadJWTConfig(v),
		KafkaConfig:   config.LoadKafkaConfig(v),
		CORSOrigins:   v.GetString("CORS_ALLOWED_ORIGINS"),
		AuthRateLimit: v.GetFloat64("AUTH_RATE_LIMIT"),
		AuthRateBurst: v.GetInt("AUTH_RATE_BURST"),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
	}, nil
}
