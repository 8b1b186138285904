package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml.
// Секреты (пароль БД, JWT secret) можно переопределить переменными окружения.
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Auth           AuthConfig           `toml:"auth"`
	Events         EventsConfig         `toml:"events"`
	Jobs           JobsConfig           `toml:"jobs"`
	PrisonRegister PrisonRegisterConfig `toml:"prison_register"`
}

// ServerConfig настройки HTTP-сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки проверки bearer-токенов
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	ReadRole  string `toml:"read_role"`
	AdminRole string `toml:"admin_role"`
}

// EventsConfig настройки публикации доменных событий через redis
type EventsConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Channel       string `toml:"channel"`
}

// JobsConfig настройки фоновых задач
type JobsConfig struct {
	Enabled        bool   `toml:"enabled"`
	ExpirySchedule string `toml:"expiry_schedule"` // cron spec
}

// PrisonRegisterConfig настройки клиента prison-register
type PrisonRegisterConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// Load читает конфигурацию из TOML файла и применяет переопределения
// из переменных окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides переопределяет секреты из окружения
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OVS_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("OVS_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("OVS_REDIS_PASSWORD"); v != "" {
		cfg.Events.RedisPassword = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "visit-scheduler"
	}
	if cfg.Auth.ReadRole == "" {
		cfg.Auth.ReadRole = "visits:read"
	}
	if cfg.Auth.AdminRole == "" {
		cfg.Auth.AdminRole = "visits:admin"
	}
	if cfg.Events.Channel == "" {
		cfg.Events.Channel = "official-visits.events"
	}
	if cfg.Jobs.ExpirySchedule == "" {
		cfg.Jobs.ExpirySchedule = "*/15 * * * *"
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required (or OVS_JWT_SECRET)")
	}
	if c.Events.Enabled && c.Events.RedisAddr == "" {
		return fmt.Errorf("config: events.redis_addr is required when events are enabled")
	}
	return nil
}
