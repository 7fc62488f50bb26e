package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AuthModeHTTP = "http"
	AuthModeJWT  = "jwt"

	SyncModeRow   = "row"
	SyncModeBatch = "batch"
)

// ErrInvalidConfig возвращается Validate при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	SheetSync SheetSyncConfig `toml:"sheet_sync"`
	Booking   BookingConfig   `toml:"booking"`
	Worker    WorkerConfig    `toml:"worker"`
	Notifier  NotifierConfig  `toml:"notifier"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	Mode               string `toml:"mode"`
	URL                string `toml:"url"`
	ServiceKey         string `toml:"service_key"`
	JWTSecret          string `toml:"jwt_secret"`
	Timeout            int    `toml:"timeout"`
	AllowedEmailSuffix string `toml:"allowed_email_suffix"`
}

type SheetSyncConfig struct {
	URL              string `toml:"url"`
	Timeout          int    `toml:"timeout"`
	MaxAttempts      int    `toml:"max_attempts"`
	BackoffMs        int    `toml:"backoff_ms"`
	AfterInsertSweep int    `toml:"after_insert_sweep"`
	CronBatchSize    int    `toml:"cron_batch_size"`
	CronSecret       string `toml:"cron_secret"`
	Mode             string `toml:"mode"`
	Concurrency      int    `toml:"concurrency"`
}

// Backoff фиксированная пауза между попытками синхронизации
func (c SheetSyncConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffMs) * time.Millisecond
}

type BookingConfig struct {
	RescheduleWindowHours int `toml:"reschedule_window_hours"`
}

// RescheduleWindow длительность окна отмены/переноса
func (c BookingConfig) RescheduleWindow() time.Duration {
	return time.Duration(c.RescheduleWindowHours) * time.Hour
}

type WorkerConfig struct {
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

type NotifierConfig struct {
	Enabled    bool   `toml:"enabled"`
	RabbitURL  string `toml:"rabbit_url"`
	Exchange   string `toml:"exchange"`
	RoutingKey string `toml:"routing_key"`
	From       string `toml:"from"`
}

type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

// secrets значения, которые переопределяются из окружения
type secrets struct {
	DBPassword     string `envconfig:"DB_PASSWORD"`
	AuthJWTSecret  string `envconfig:"AUTH_JWT_SECRET"`
	AuthServiceKey string `envconfig:"AUTH_SERVICE_KEY"`
	SheetSyncURL   string `envconfig:"SHEET_SYNC_URL"`
	CronSecret     string `envconfig:"CRON_SECRET"`
	RabbitURL      string `envconfig:"RABBIT_URL"`
}

// Load читает TOML файл, подмешивает .env и переменные окружения, проставляет
// значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	var s secrets
	if err := envconfig.Process("", &s); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&c.Database.Password, s.DBPassword)
	override(&c.Auth.JWTSecret, s.AuthJWTSecret)
	override(&c.Auth.ServiceKey, s.AuthServiceKey)
	override(&c.SheetSync.URL, s.SheetSyncURL)
	override(&c.SheetSync.CronSecret, s.CronSecret)
	override(&c.Notifier.RabbitURL, s.RabbitURL)
	return nil
}

func (c *Config) setDefaults() {
	setInt := func(dst *int, v int) {
		if *dst <= 0 {
			*dst = v
		}
	}
	setStr := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}

	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 10)
	setInt(&c.Server.WriteTimeout, 10)
	setInt(&c.Server.ShutdownTimeout, 15)

	setStr(&c.Database.SSLMode, "disable")
	setStr(&c.Database.MigrationsDir, "migrations")

	setStr(&c.Logs.Level, "info")
	setStr(&c.Metrics.Path, "/metrics")
	setStr(&c.Metrics.ServiceName, "gradshoot")

	setStr(&c.Auth.Mode, AuthModeHTTP)
	setInt(&c.Auth.Timeout, 5)
	setStr(&c.Auth.AllowedEmailSuffix, "@up.edu.ph")

	setInt(&c.SheetSync.Timeout, 10)
	setInt(&c.SheetSync.MaxAttempts, 3)
	setInt(&c.SheetSync.BackoffMs, 500)
	setInt(&c.SheetSync.AfterInsertSweep, 5)
	setInt(&c.SheetSync.CronBatchSize, 20)
	setInt(&c.SheetSync.Concurrency, 5)
	setStr(&c.SheetSync.Mode, SyncModeRow)

	setInt(&c.Booking.RescheduleWindowHours, 24)

	setInt(&c.Worker.Workers, 4)
	setInt(&c.Worker.QueueSize, 256)

	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = 2
	}
	setInt(&c.RateLimit.Burst, 5)
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}

	switch c.Auth.Mode {
	case AuthModeHTTP:
		if c.Auth.URL == "" {
			problems = append(problems, "auth.url is required in http mode")
		}
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			problems = append(problems, "auth.jwt_secret (AUTH_JWT_SECRET) is required in jwt mode")
		}
	default:
		problems = append(problems, fmt.Sprintf("auth.mode must be %q or %q, got %q", AuthModeHTTP, AuthModeJWT, c.Auth.Mode))
	}

	if !strings.HasPrefix(c.Auth.AllowedEmailSuffix, "@") {
		problems = append(problems, "auth.allowed_email_suffix must start with @")
	}

	if c.SheetSync.Mode != SyncModeRow && c.SheetSync.Mode != SyncModeBatch {
		problems = append(problems, fmt.Sprintf("sheet_sync.mode must be %q or %q", SyncModeRow, SyncModeBatch))
	}

	if c.Notifier.Enabled && c.Notifier.RabbitURL == "" {
		problems = append(problems, "notifier.rabbit_url (RABBIT_URL) is required when notifier is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
