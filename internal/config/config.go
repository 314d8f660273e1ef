package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Storage StorageConfig `toml:"storage"`
	Backend BackendConfig `toml:"backend"`
	Intents IntentsConfig `toml:"intents"`
	Auth    AuthConfig    `toml:"auth"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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

// StorageConfig настройки хранилища журнала "осиротевших" ресурсов
// Driver: postgres или sqlite
type StorageConfig struct {
	Driver          string `toml:"driver"`
	SQLitePath      string `toml:"sqlite_path"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// BackendConfig настройки REST бэкенда переговорных
type BackendConfig struct {
	URL      string `toml:"url"`
	Timeout  int    `toml:"timeout"`   // секунды
	TimeZone string `toml:"time_zone"` // зона, в которой бэкенд интерпретирует локальное время

	// Повторы для шагов создания комнаты и привязки физической комнаты
	MaxRetries             int `toml:"max_retries"`
	RetryInitialIntervalMs int `toml:"retry_initial_interval_ms"`
	RetryMaxIntervalMs     int `toml:"retry_max_interval_ms"`
}

// IntentsConfig настройки хранилища незавершенных бронирований
type IntentsConfig struct {
	MaxSize    int `toml:"max_size"`
	TTLMinutes int `toml:"ttl_minutes"`
}

// AuthConfig проверка bearer токенов
// JWTSecret общий с бэкендом ключ HS256; лучше задавать через JWT_SECRET
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// DSN строка подключения к БД для выбранного драйвера
func (c StorageConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Location часовой пояс бэкенда
func (c BackendConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

// StepsTimeout верхняя граница для всех шагов бронирования одного запроса
// Каждый шаг: все попытки с таймаутом клиента плюс паузы между ними
func (c BackendConfig) StepsTimeout() time.Duration {
	attempts := time.Duration(c.MaxRetries + 1)
	perStep := attempts*time.Duration(c.Timeout)*time.Second +
		time.Duration(c.MaxRetries)*time.Duration(c.RetryMaxIntervalMs)*time.Millisecond
	return 3 * perStep
}

// Load загружает конфигурацию из TOML файла
// Перед этим подгружает .env (если есть), переменные окружения перекрывают значения из файла
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки TOML (без .env и окружения)
func Parse(data string) (*Config, error) {
	cfg := defaults()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "meeting-booking",
		},
		Storage: StorageConfig{
			Driver:          "sqlite",
			SQLitePath:      "orphans.db",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Backend: BackendConfig{
			Timeout:                10,
			TimeZone:               "Asia/Ho_Chi_Minh",
			MaxRetries:             3,
			RetryInitialIntervalMs: 200,
			RetryMaxIntervalMs:     2000,
		},
		Intents: IntentsConfig{
			MaxSize:    1024,
			TTLMinutes: 60,
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("MEETING_BACKEND_URL")); v != "" {
		cfg.Backend.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("MEETING_BACKEND_TIME_ZONE")); v != "" {
		cfg.Backend.TimeZone = v
	}
	if v := strings.TrimSpace(os.Getenv("STORAGE_DRIVER")); v != "" {
		cfg.Storage.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_HOST")); v != "" {
		cfg.Storage.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Storage.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT must be a number", ErrInvalidConfig)
		}
		cfg.Server.HTTPPort = port
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Logs.Level = v
	}
	return nil
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("%w: backend.url is required", ErrInvalidConfig)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("%w: backend.timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.Backend.Location(); err != nil {
		return fmt.Errorf("%w: backend.time_zone: %v", ErrInvalidConfig, err)
	}
	if c.Backend.MaxRetries < 0 {
		return fmt.Errorf("%w: backend.max_retries must not be negative", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("%w: storage.sqlite_path is required for sqlite", ErrInvalidConfig)
		}
	case "postgres":
		if c.Storage.Host == "" || c.Storage.DBName == "" {
			return fmt.Errorf("%w: storage.host and storage.dbname are required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Intents.MaxSize <= 0 || c.Intents.TTLMinutes <= 0 {
		return fmt.Errorf("%w: intents.max_size and intents.ttl_minutes must be positive", ErrInvalidConfig)
	}
	return nil
}
