package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`
	LogMode string `env:"LOG_MODE" envDefault:"dev"`

	// CatalogPath selects the catalog source. Empty means the embedded catalog.
	CatalogPath string `env:"CATALOG_PATH"`
	ImagesDir   string `env:"IMAGES_DIR"`

	AnalyticsEnabled   bool          `env:"ANALYTICS_ENABLED" envDefault:"true"`
	AnalyticsDB        string        `env:"ANALYTICS_DB" envDefault:"portfolio.db"`
	AnalyticsRetention time.Duration `env:"ANALYTICS_RETENTION" envDefault:"8760h"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	TracingEnabled bool   `env:"OTEL_ENABLED"`
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"portfolio-guide"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given key/value environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if c.Port == "" {
		c.Port = "8080"
	}
	switch mode := strings.ToLower(strings.TrimSpace(c.GinMode)); mode {
	case "debug", "release", "test":
		c.GinMode = mode
	default:
		c.GinMode = "debug"
	}
	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Release reports whether gin runs in release mode.
func (c Config) Release() bool {
	return strings.EqualFold(strings.TrimSpace(c.GinMode), "release")
}
