package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string
}

// KafkaConfig holds broker addresses and the consumer group prefix.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// Load builds a viper instance reading environment variables with the given
// prefix (e.g. prefix "FRONTDESK" maps FRONTDESK_DB_HOST to "db_host").
func Load(prefix string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", "development")
	v.SetDefault("service_port", "8080")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_group_prefix", "")

	if v.GetString("jwt_secret") == "" && v.GetString("app_env") != "development" {
		return nil, fmt.Errorf("%s_JWT_SECRET is required outside development", prefix)
	}

	return v, nil
}

// GetAppEnv returns the application environment (development, staging, production).
func GetAppEnv(v *viper.Viper) string {
	return v.GetString("app_env")
}

// GetServicePort returns the listen address for the service, normalized to
// the ":port" form the HTTP server expects.
func GetServicePort(v *viper.Viper, key string) string {
	port := v.GetString(strings.ToLower(key))
	if port == "" {
		port = v.GetString("service_port")
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return port
}

// LoadDatabaseConfig reads the database settings. dbNameKey names the env key
// holding the database name so services can share the other settings.
func LoadDatabaseConfig(v *viper.Viper, dbNameKey string) DatabaseConfig {
	return DatabaseConfig{
		Host:     v.GetString("db_host"),
		Port:     v.GetInt("db_port"),
		User:     v.GetString("db_user"),
		Password: v.GetString("db_password"),
		DBName:   v.GetString(strings.ToLower(dbNameKey)),
		SSLMode:  v.GetString("db_sslmode"),
	}
}

// LoadJWTConfig reads the token signing settings.
func LoadJWTConfig(v *viper.Viper) JWTConfig {
	secret := v.GetString("jwt_secret")
	if secret == "" {
		secret = "dev-only-secret"
	}
	return JWTConfig{Secret: secret}
}

// LoadKafkaConfig reads the broker list (comma-separated) and group prefix.
func LoadKafkaConfig(v *viper.Viper) KafkaConfig {
	brokers := strings.Split(v.GetString("kafka_brokers"), ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return KafkaConfig{
		Brokers:     brokers,
		GroupPrefix: v.GetString("kafka_group_prefix"),
	}
}
