package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Logs            LogsConfig        `toml:"logs"`
	Database        DatabaseConfig    `toml:"database"`
	Metrics         MetricsConfig     `toml:"metrics"`
	Availability    IntegrationConfig `toml:"availability_service"`
	RoomInventory   IntegrationConfig `toml:"room_inventory_service"`
	ClientDirectory IntegrationConfig `toml:"client_directory_service"`
	Workflow        WorkflowConfig    `toml:"workflow"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// WorkflowConfig настройки workflow подбора вариантов
type WorkflowConfig struct {
	DebounceMS         int `toml:"debounce_ms"`          // окно debounce перед отправкой поиска
	TransferDisplayCap int `toml:"transfer_display_cap"` // максимум transfer-вариантов в выдаче
	SessionTTLMinutes  int `toml:"session_ttl_minutes"`  // время жизни неактивной сессии
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "phm-booking-workflow"
	}
	if cfg.Workflow.DebounceMS == 0 {
		cfg.Workflow.DebounceMS = 400
	}
	if cfg.Workflow.TransferDisplayCap == 0 {
		cfg.Workflow.TransferDisplayCap = 2
	}
	if cfg.Workflow.SessionTTLMinutes == 0 {
		cfg.Workflow.SessionTTLMinutes = 120
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Availability.URL == "" {
		return fmt.Errorf("config: availability_service.url is required")
	}
	if cfg.RoomInventory.URL == "" {
		return fmt.Errorf("config: room_inventory_service.url is required")
	}
	if cfg.ClientDirectory.URL == "" {
		return fmt.Errorf("config: client_directory_service.url is required")
	}
	return nil
}
