package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// WhatsAppConfig holds WhatsApp Cloud API settings.
type WhatsAppConfig struct {
	Token        string `yaml:"token" envconfig:"WA_TOKEN"`
	PhoneID      string `yaml:"phone_id" envconfig:"WA_PHONE_ID"`
	VerifyToken  string `yaml:"verify_token" envconfig:"WA_VERIFY_TOKEN"`
	OwnerPhone   string `yaml:"owner_phone" envconfig:"WA_OWNER_PHONE"`
	GraphBaseURL string `yaml:"graph_base_url" envconfig:"WA_GRAPH_BASE_URL"`
}

// HTTPConfig specifies the inbound webhook listener.
type HTTPConfig struct {
	Listen string `yaml:"listen" envconfig:"HTTP_LISTEN"`
	Port   int    `yaml:"port" envconfig:"HTTP_PORT"`
}

// RedisConfig holds connection and retention settings for the session backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
	// SessionTTL is the sliding expiry applied on every session save.
	SessionTTL time.Duration `yaml:"session_ttl" envconfig:"REDIS_SESSION_TTL"`
	// DedupTTL bounds how long delivery ids are remembered for retry suppression.
	DedupTTL time.Duration `yaml:"dedup_ttl" envconfig:"REDIS_DEDUP_TTL"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// DatabaseConfig holds Postgres connection settings for the listing archive.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Config aggregates the service configuration.
type Config struct {
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

const (
	// DefaultGraphBaseURL targets the Cloud API version the payloads are built against.
	DefaultGraphBaseURL = "https://graph.facebook.com/v19.0"
	// DefaultSessionTTL is the sliding retention window for conversation sessions.
	DefaultSessionTTL = 48 * time.Hour
	// DefaultDedupTTL is the retention window for delivery-id dedup records.
	DefaultDedupTTL = time.Hour
)

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.WhatsApp.Token) == "" {
		return fmt.Errorf("whatsapp.token is required")
	}
	if strings.TrimSpace(cfg.WhatsApp.PhoneID) == "" {
		return fmt.Errorf("whatsapp.phone_id is required")
	}
	if strings.TrimSpace(cfg.WhatsApp.VerifyToken) == "" {
		return fmt.Errorf("whatsapp.verify_token is required")
	}
	base := strings.TrimSpace(cfg.WhatsApp.GraphBaseURL)
	if base == "" {
		base = DefaultGraphBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return fmt.Errorf("invalid whatsapp.graph_base_url %q: %w", base, err)
	}
	cfg.WhatsApp.GraphBaseURL = strings.TrimRight(base, "/")

	if strings.TrimSpace(cfg.HTTP.Listen) == "" {
		cfg.HTTP.Listen = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.HTTP.Port < 0 {
		return fmt.Errorf("http.port must be > 0")
	}

	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return fmt.Errorf("redis.addr is required")
	}
	if cfg.Redis.SessionTTL == 0 {
		cfg.Redis.SessionTTL = DefaultSessionTTL
	}
	if cfg.Redis.SessionTTL < 0 {
		return fmt.Errorf("redis.session_ttl must be >= 0")
	}
	if cfg.Redis.DedupTTL == 0 {
		cfg.Redis.DedupTTL = DefaultDedupTTL
	}
	if cfg.Redis.DedupTTL < 0 {
		return fmt.Errorf("redis.dedup_ttl must be >= 0")
	}

	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 4
	}
	if strings.TrimSpace(cfg.Database.SSLMode) == "" {
		cfg.Database.SSLMode = "disable"
	}

	return nil
}
