package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
)

// Бэкенды хранилища сессии
const (
	SessionBackendSQLite   = "sqlite"
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	FleetAPI FleetAPIConfig `toml:"fleet_api"`
	Session  SessionConfig  `toml:"session"`
	Store    StoreConfig    `toml:"store"`
	Pricing  PricingConfig  `toml:"pricing"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// CORSOrigins origin браузерного клиента, пустой список разрешает любой
	CORSOrigins []string `toml:"cors_origins"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// FleetAPIConfig настройки удаленного REST API
type FleetAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// SessionConfig настройки хранилища токена
type SessionConfig struct {
	Backend  string         `toml:"backend"` // sqlite | postgres | redis
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
}

// SQLiteConfig файловая база для хранения сессии
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig подключение к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// StoreConfig настройки клиентского хранилища
type StoreConfig struct {
	AdminRefreshInterval int `toml:"admin_refresh_interval"` // секунды
	ImportPollInterval   int `toml:"import_poll_interval"`   // секунды
	ImportWaitTimeout    int `toml:"import_wait_timeout"`    // секунды
}

// PricingConfig настройки расчета цен
type PricingConfig struct {
	VATRate float64 `toml:"vat_rate"`
}

// Load загружает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_fleetdesk",
		},
		FleetAPI: FleetAPIConfig{
			Timeout: 10,
		},
		Session: SessionConfig{
			Backend: SessionBackendSQLite,
			SQLite:  SQLiteConfig{Path: "fleetdesk.db"},
			Database: DatabaseConfig{
				Port:            5432,
				SSLMode:         "disable",
				MaxOpenConns:    5,
				MaxIdleConns:    2,
				ConnMaxLifetime: 300,
			},
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "fleetdesk:session",
			},
		},
		Store: StoreConfig{
			AdminRefreshInterval: 30,
			ImportPollInterval:   2,
			ImportWaitTimeout:    300,
		},
		Pricing: PricingConfig{
			VATRate: 0.20,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.FleetAPI.URL == "" {
		return fmt.Errorf("%w: fleet_api.url is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.FleetAPI.URL); err != nil {
		return fmt.Errorf("%w: fleet_api.url: %v", ErrInvalidConfig, err)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}

	switch c.Session.Backend {
	case SessionBackendSQLite:
		if c.Session.SQLite.Path == "" {
			return fmt.Errorf("%w: session.sqlite.path is required", ErrInvalidConfig)
		}
	case SessionBackendPostgres:
		if c.Session.Database.Host == "" || c.Session.Database.DBName == "" {
			return fmt.Errorf("%w: session.database host and dbname are required", ErrInvalidConfig)
		}
	case SessionBackendRedis:
		if c.Session.Redis.Addr == "" {
			return fmt.Errorf("%w: session.redis.addr is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session.backend %q", ErrInvalidConfig, c.Session.Backend)
	}

	if c.Store.AdminRefreshInterval <= 0 {
		return fmt.Errorf("%w: store.admin_refresh_interval must be positive", ErrInvalidConfig)
	}
	if c.Store.ImportPollInterval <= 0 {
		return fmt.Errorf("%w: store.import_poll_interval must be positive", ErrInvalidConfig)
	}
	if c.Store.ImportWaitTimeout < c.Store.ImportPollInterval {
		return fmt.Errorf("%w: store.import_wait_timeout must not be less than import_poll_interval", ErrInvalidConfig)
	}
	if c.Pricing.VATRate < 0 || c.Pricing.VATRate >= 1 {
		return fmt.Errorf("%w: pricing.vat_rate must be in [0, 1)", ErrInvalidConfig)
	}

	return nil
}

// FleetAPITimeout таймаут запросов к fleet API
func (c *Config) FleetAPITimeout() time.Duration {
	return time.Duration(c.FleetAPI.Timeout) * time.Second
}

// AdminRefreshInterval период обновления админских коллекций
func (c *Config) AdminRefreshInterval() time.Duration {
	return time.Duration(c.Store.AdminRefreshInterval) * time.Second
}

// ImportPollInterval период опроса статуса импорта запчастей
func (c *Config) ImportPollInterval() time.Duration {
	return time.Duration(c.Store.ImportPollInterval) * time.Second
}

// ImportWaitTimeout максимальное время ожидания завершения импорта
func (c *Config) ImportWaitTimeout() time.Duration {
	return time.Duration(c.Store.ImportWaitTimeout) * time.Second
}
