package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	RabbitMQ       RabbitMQConfig       `toml:"rabbitmq"`
	CompanyService IntegrationConfig    `toml:"company_service"`
	StaffService   IntegrationConfig    `toml:"staff_service"`
	Booking        BookingConfig        `toml:"booking"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
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
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis для live-ленты read-model обновлений
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RabbitMQConfig настройки RabbitMQ для push-уведомлений
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// IntegrationConfig настройки HTTP клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig глобальные дефолты бизнес-политики бронирования
// Компании могут переопределять их через scheduling policy в БД
type BookingConfig struct {
	SlotStepMinutes            int     `toml:"slot_step_minutes"`
	MinLeadMinutes             int     `toml:"min_lead_minutes"`
	FreeCancelThresholdMinutes int     `toml:"free_cancel_threshold_minutes"`
	LateCancelFeePercent       int     `toml:"late_cancel_fee_percent"`
	NoShowGraceMinutes         int     `toml:"no_show_grace_minutes"`
	CheckinCodeTTLMinutes      int     `toml:"checkin_code_ttl_minutes"`
	MaxCustomerReschedules     int     `toml:"max_customer_reschedules"`
	NotifyRatePerSecond        float64 `toml:"notify_rate_per_second"`
	NotifyBurst                int     `toml:"notify_burst"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.CompanyService.URL == "" {
		return fmt.Errorf("config: company_service.url is required")
	}
	if c.StaffService.URL == "" {
		return fmt.Errorf("config: staff_service.url is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("config: rabbitmq.url is required when rabbitmq is enabled")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Booking.SlotStepMinutes == 0 {
		c.Booking.SlotStepMinutes = 15
	}
	if c.Booking.MinLeadMinutes == 0 {
		c.Booking.MinLeadMinutes = 60
	}
	if c.Booking.FreeCancelThresholdMinutes == 0 {
		c.Booking.FreeCancelThresholdMinutes = 1440
	}
	if c.Booking.LateCancelFeePercent == 0 {
		c.Booking.LateCancelFeePercent = 15
	}
	if c.Booking.NoShowGraceMinutes == 0 {
		c.Booking.NoShowGraceMinutes = 20
	}
	if c.Booking.CheckinCodeTTLMinutes == 0 {
		c.Booking.CheckinCodeTTLMinutes = 15
	}
	if c.Booking.MaxCustomerReschedules == 0 {
		c.Booking.MaxCustomerReschedules = 1
	}
	if c.Booking.NotifyRatePerSecond == 0 {
		c.Booking.NotifyRatePerSecond = 20
	}
	if c.Booking.NotifyBurst == 0 {
		c.Booking.NotifyBurst = 40
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "gls-scheduling-service"
	}
	if c.Logs.File == "" {
		c.Logs.File = "logs/service.log"
	}
}
