// Package config loads runtime settings from IR_* environment variables,
// optionally overlaid by a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable, e.g. IR_SERVER_ADDR.
const EnvPrefix = "IR"

// Config is the complete application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server" envconfig:"SERVER"`
	Source        SourceConfig        `yaml:"source" envconfig:"SOURCE"`
	Cache         CacheConfig         `yaml:"cache" envconfig:"CACHE"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Normalization NormalizationConfig `yaml:"normalization" envconfig:"NORMALIZATION"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" envconfig:"ADDR" default:":8080" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

// SourceConfig says where the table page comes from. File, when set,
// replaces the HTTP fetch with a local HTML page.
type SourceConfig struct {
	BaseURL   string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://www.gov.br/receitafederal/pt-br/assuntos/meu-imposto-de-renda/tabelas" validate:"required,url"`
	Year      int           `yaml:"year" envconfig:"YEAR" validate:"omitempty,min=2000,max=2100"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"10s" validate:"gt=0"`
	UserAgent string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"ir-tributacao/1.0"`
	File      string        `yaml:"file" envconfig:"FILE"`
}

// CacheConfig controls the page cache.
type CacheConfig struct {
	Backend   string        `yaml:"backend" envconfig:"BACKEND" default:"none" validate:"oneof=none memory redis"`
	TTL       time.Duration `yaml:"ttl" envconfig:"TTL" default:"6h" validate:"gte=0"`
	RedisAddr string        `yaml:"redis_addr" envconfig:"REDIS_ADDR" default:"localhost:6379" validate:"required_if=Backend redis"`
}

// RateLimitConfig contains per-client rate limiting settings. Clients are
// keyed on the TCP peer; forwarded headers count only when the peer is in
// TrustedProxies (addresses or CIDRs).
type RateLimitConfig struct {
	Enabled        bool     `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS            float64  `yaml:"rps" envconfig:"RPS" default:"1" validate:"gt=0"`
	Burst          int      `yaml:"burst" envconfig:"BURST" default:"5" validate:"min=1"`
	TrustedProxies []string `yaml:"trusted_proxies" envconfig:"TRUSTED_PROXIES" validate:"dive,cidr|ip"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// NormalizationConfig selects the thousands-separator handling per column.
type NormalizationConfig struct {
	RangeThousands     string `yaml:"range_thousands" envconfig:"RANGE_THOUSANDS" default:"first" validate:"oneof=first all none"`
	DeductionThousands string `yaml:"deduction_thousands" envconfig:"DEDUCTION_THOUSANDS" default:"none" validate:"oneof=first all none"`
}

// Load reads the environment, then overlays the YAML file at path if
// path is non-empty. Keys present in the file win over the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints. The page fetch must finish before
// the server write deadline, or /ir/tributacao could not answer in time.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Source.File == "" && c.Source.Timeout >= c.Server.WriteTimeout {
		return fmt.Errorf("source timeout %s must be shorter than server write timeout %s",
			c.Source.Timeout, c.Server.WriteTimeout)
	}
	return nil
}
