package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port               int      `mapstructure:"port"`
	Environment        string   `mapstructure:"environment"`          // "production" | "staging" | "development"
	PlatformDomain     string   `mapstructure:"platform_domain"`      // apex domain, e.g. fundlane.com
	AppURL             string   `mapstructure:"app_url"`              // canonical application URL
	UpstreamURL        string   `mapstructure:"upstream_url"`         // next hop for allowed requests
	SessionCookieName  string   `mapstructure:"session_cookie_name"`
	SessionSecret      string   `mapstructure:"session_secret"`       // HS256 session-signing secret
	CronSecret         string   `mapstructure:"cron_secret"`          // shared secret for scheduled jobs; empty = cron routes fail closed
	RedisAddr          string   `mapstructure:"redis_addr"`           // rate-limit counter store
	RateLimitPerWindow int      `mapstructure:"rate_limit_per_window"`
	RateLimitWindowSec int      `mapstructure:"rate_limit_window_sec"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`      // extra CSRF/CORS origins beyond the platform domain
	MaxBodyBytes       int      `mapstructure:"max_body_bytes"`       // cap on mutating API request bodies
	OTLPEndpoint       string   `mapstructure:"otlp_endpoint"`        // empty = tracing disabled
	LogLevel           string   `mapstructure:"log_level"`
	RequestTimeoutSec  int      `mapstructure:"request_timeout_sec"`
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec"`
}

// IsProduction reports whether the relaxed dev-host CSRF allowances are off.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/fundlane/")
	viper.AddConfigPath("$HOME/.fundlane")
	viper.AddConfigPath(".")

	// Defaults; secrets have none on purpose.
	viper.SetDefault("port", 8080)
	viper.SetDefault("environment", "development")
	viper.SetDefault("platform_domain", "fundlane.com")
	viper.SetDefault("app_url", "https://app.fundlane.com")
	viper.SetDefault("upstream_url", "http://127.0.0.1:3000")
	viper.SetDefault("session_cookie_name", "fundlane-session")
	// Empty defaults register the secret keys with viper so AutomaticEnv can
	// fill them; an empty secret still means the category fails closed.
	viper.SetDefault("session_secret", "")
	viper.SetDefault("cron_secret", "")
	viper.SetDefault("redis_addr", "127.0.0.1:6379")
	viper.SetDefault("rate_limit_per_window", 120)
	viper.SetDefault("rate_limit_window_sec", 60)
	viper.SetDefault("allowed_origins", []string{})
	viper.SetDefault("max_body_bytes", 1024*1024) // 1MB cap on mutating API bodies
	viper.SetDefault("otlp_endpoint", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("shutdown_timeout_sec", 15)

	// Environment variables
	viper.SetEnvPrefix("FUNDLANE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
