// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig                   `mapstructure:"app"`
	Server   ServerConfig                `mapstructure:"server"`
	Engine   EngineConfig                `mapstructure:"engine"`
	Carriers map[string]CarrierAPIConfig `mapstructure:"carriers"`
	Database DatabaseConfig              `mapstructure:"database"`
	Store    StoreConfig                 `mapstructure:"store"`
	Logging  LoggingConfig               `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port        int `mapstructure:"port"`
	MetricsPort int `mapstructure:"metrics_port"`
}

// EngineConfig holds the fan-out settings.
type EngineConfig struct {
	CarrierTimeout int `mapstructure:"carrier_timeout"` // milliseconds, per adapter call
	RecordTTL      int `mapstructure:"record_ttl"`      // seconds, async record retention
}

// CarrierAPIConfig holds the endpoints for one carrier integration. Customer
// credentials live in the carrier config store, not here.
type CarrierAPIConfig struct {
	AuthURL  string `mapstructure:"auth_url"`
	QuoteURL string `mapstructure:"quote_url"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig selects the backends for the carrier-config and quote-request
// stores. Valid values: "memory", "redis", "postgres" (configs only).
type StoreConfig struct {
	CarrierConfigs string `mapstructure:"carrier_configs"`
	QuoteRequests  string `mapstructure:"quote_requests"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
