package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Server  ServerConfig  `toml:"server"`
	Expiry  ExpiryConfig  `toml:"expiry"`
	Booking BookingConfig `toml:"booking"`
	Catalog CatalogConfig `toml:"catalog"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
	Path        string `toml:"path" validate:"omitempty,startswith=/"`
}

// ServerConfig настройки служебного HTTP сервера (/health, /metrics)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"gte=0"`  // секунды
	WriteTimeout    int `toml:"write_timeout" validate:"gte=0"` // секунды
	IdleTimeout     int `toml:"idle_timeout" validate:"gte=0"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"gte=0"`
}

// ExpiryConfig настройки периодической проверки просроченных бронирований
type ExpiryConfig struct {
	Enabled       bool `toml:"enabled"`
	SweepInterval int  `toml:"sweep_interval" validate:"min=1"` // секунды
}

// Interval возвращает период проверки
func (c ExpiryConfig) Interval() time.Duration {
	return time.Duration(c.SweepInterval) * time.Second
}

// BookingConfig ограничения на создание бронирований
type BookingConfig struct {
	MaxPartySize int `toml:"max_party_size" validate:"min=1"`
}

// CatalogConfig начальный каталог предложений
type CatalogConfig struct {
	Experiences []ExperienceConfig `toml:"experiences" validate:"dive"`
}

// ExperienceConfig описание предложения в каталоге
type ExperienceConfig struct {
	ID                 string           `toml:"id"`
	Kind               string           `toml:"kind" validate:"required,oneof=guided_excursion adventure_package"`
	Name               string           `toml:"name" validate:"required"`
	Description        string           `toml:"description"`
	Price              float64          `toml:"price" validate:"gte=0"`
	DiscountThreshold  int              `toml:"discount_threshold" validate:"gte=0"`
	DiscountPercentage float64          `toml:"discount_percentage" validate:"gte=0,lte=100"`
	Date               string           `toml:"date" validate:"required,datetime=2006-01-02"`
	DurationMinutes    int              `toml:"duration_minutes" validate:"gte=0"`
	MaxCapacity        int              `toml:"max_capacity" validate:"gte=0"`
	Guide              *GuideConfig     `toml:"guide" validate:"omitempty"`
	Activities         []ActivityConfig `toml:"activities" validate:"dive"`
}

// ParseDate возвращает дату проведения в UTC
func (e ExperienceConfig) ParseDate() (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, e.Date, time.UTC)
}

// Duration возвращает продолжительность экскурсии
func (e ExperienceConfig) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// GuideConfig гид экскурсии
type GuideConfig struct {
	Name     string `toml:"name" validate:"required"`
	Surname  string `toml:"surname"`
	Language string `toml:"language" validate:"required"`
}

// ActivityConfig активность приключенческого пакета
type ActivityConfig struct {
	Name            string `toml:"name" validate:"required"`
	Description     string `toml:"description"`
	DurationMinutes int    `toml:"duration_minutes" validate:"gte=0"`
	MaxCapacity     int    `toml:"max_capacity" validate:"min=1"`
}

// Duration возвращает продолжительность активности
func (a ActivityConfig) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

// defaults значения, которые используются, если параметр не задан в файле
func defaults() Config {
	return Config{
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "experience_service",
			Path:        "/metrics",
		},
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Expiry: ExpiryConfig{
			Enabled:       true,
			SweepInterval: 60,
		},
		Booking: BookingConfig{MaxPartySize: 50},
	}
}

// Load читает конфигурацию из TOML файла, применяет переменные окружения
// (включая .env в рабочей директории) и валидирует результат
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// applyEnv переопределяет параметры из переменных окружения
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("LOGS_LEVEL"); ok {
		cfg.Logs.Level = v
	}
	if v, ok := os.LookupEnv("LOGS_FILE"); ok {
		cfg.Logs.File = v
	}
	if err := envBool("METRICS_ENABLED", &cfg.Metrics.Enabled); err != nil {
		return err
	}
	if err := envInt("SERVER_HTTP_PORT", &cfg.Server.HTTPPort); err != nil {
		return err
	}
	if err := envBool("EXPIRY_ENABLED", &cfg.Expiry.Enabled); err != nil {
		return err
	}
	if err := envInt("EXPIRY_SWEEP_INTERVAL", &cfg.Expiry.SweepInterval); err != nil {
		return err
	}
	if err := envInt("BOOKING_MAX_PARTY_SIZE", &cfg.Booking.MaxPartySize); err != nil {
		return err
	}
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, v)
	}
	*dst = b
	return nil
}
