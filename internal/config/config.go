package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
// Секреты (пароль БД, PIN администратора) можно переопределить через
// переменные окружения - см. applyEnvOverrides
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Realtime  RealtimeConfig  `toml:"realtime"`
	Admin     AdminConfig     `toml:"admin"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды; 0 = без таймаута, иначе SSE соединения будут обрываться
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
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
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis (rate limiting)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RealtimeConfig настройки LISTEN/NOTIFY канала
type RealtimeConfig struct {
	Channel              string `toml:"channel"`
	MinReconnectInterval int    `toml:"min_reconnect_interval"` // секунды
	MaxReconnectInterval int    `toml:"max_reconnect_interval"` // секунды
	RefreshInterval      int    `toml:"refresh_interval"`       // секунды, период пересчета статуса
}

// AdminConfig настройки доступа к админским эндпоинтам
type AdminConfig struct {
	Pin string `toml:"pin"`
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

// RateLimitConfig настройки token-bucket rate limiter'а
type RateLimitConfig struct {
	Enabled        bool   `toml:"enabled"`
	Capacity       int    `toml:"capacity"`        // размер корзины
	RefillTokens   int    `toml:"refill_tokens"`   // токенов за интервал
	RefillInterval int    `toml:"refill_interval"` // секунды
	TTL            int    `toml:"ttl"`             // секунды жизни ключа
	Prefix         string `toml:"prefix"`
}

// Load читает конфигурацию из TOML файла и применяет env-переопределения
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    0,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Realtime: RealtimeConfig{
			Channel:              "orders_insert",
			MinReconnectInterval: 10,
			MaxReconnectInterval: 60,
			RefreshInterval:      60,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "labiga-orderservice",
		},
		RateLimit: RateLimitConfig{
			Capacity:       30,
			RefillTokens:   1,
			RefillInterval: 2,
			TTL:            600,
			Prefix:         "rl",
		},
	}
}

// applyEnvOverrides переопределяет секреты из переменных окружения
// (загружаются из .env через godotenv в main)
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LABIGA_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("LABIGA_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("LABIGA_ADMIN_PIN"); v != "" {
		c.Admin.Pin = v
	}
}

func (c *Config) validate() error {
	if c.Admin.Pin == "" {
		return fmt.Errorf("config: admin.pin is required")
	}
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.user and database.dbname are required")
	}
	if c.Realtime.Channel == "" {
		return fmt.Errorf("config: realtime.channel is required")
	}
	return nil
}
