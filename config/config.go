package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	PinAuth  PinAuthConfig  `mapstructure:"pinauth"`
	Provider ProviderConfig `mapstructure:"provider"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`      // empty = publishing disabled (no-op publisher)
	Exchange string `mapstructure:"exchange"` // durable topic exchange for ledger events
}

type PinAuthConfig struct {
	BaseURL string        `mapstructure:"base_url"` // empty = bundled argon2 verifier
	Timeout time.Duration `mapstructure:"timeout"`
}

type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"` // empty = no provider linkage
	Timeout time.Duration `mapstructure:"timeout"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LedgerConfig struct {
	IntentTTL           time.Duration `mapstructure:"intent_ttl"`            // PENDING intent lifetime
	QrSweepInterval     time.Duration `mapstructure:"qr_sweep_interval"`     // expired QR token sweep cadence
	IntentSweepInterval time.Duration `mapstructure:"intent_sweep_interval"` // expired intent sweep cadence
	RetryAfterHint      time.Duration `mapstructure:"retry_after_hint"`      // hint returned with 202 in-progress
	PinMaxFailures      int           `mapstructure:"pin_max_failures"`
	PinLockoutWindow    time.Duration `mapstructure:"pin_lockout_window"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PPL (Prepaid Point Ledger).
// Nested keys use underscore: PPL_DATABASE_HOST, PPL_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "point_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "ledger_events")
	v.SetDefault("pinauth.base_url", "")
	v.SetDefault("pinauth.timeout", "5s")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.timeout", "5s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "prepaid-point-ledger")
	v.SetDefault("ledger.intent_ttl", "5m")
	v.SetDefault("ledger.qr_sweep_interval", "30s")
	v.SetDefault("ledger.intent_sweep_interval", "30s")
	v.SetDefault("ledger.retry_after_hint", "2s")
	v.SetDefault("ledger.pin_max_failures", 5)
	v.SetDefault("ledger.pin_lockout_window", "15m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PPL_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PPL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
