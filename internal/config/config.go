package config

import (
	"github.com/acacia-hms/service-frontdesk/internal/platform/config"
)

// ServiceConfig holds all configuration for the front-desk service.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	TaxRate     float64
	DBConfig    config.DatabaseConfig
	JWTConfig   config.JWTConfig
	KafkaConfig config.KafkaConfig
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("FRONTDESK")
	if err != nil {
		return nil, err
	}

	v.SetDefault("TAX_RATE", 0.16)

	return &ServiceConfig{
		Port:        config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:      config.GetAppEnv(v),
		TaxRate:     v.GetFloat64("TAX_RATE"),
		DBConfig:    config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:   config.LoadJWTConfig(v),
		KafkaConfig: config.LoadKafkaConfig(v),
	}, nil
}
