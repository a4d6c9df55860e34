package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig       `mapstructure:"server"`
	Conceal     UpstreamConfig     `mapstructure:"conceal"`
	BracketWrap UpstreamConfig     `mapstructure:"bracketwrap"`
	Session     SessionConfig      `mapstructure:"session"`
	Redis       RedisConfig        `mapstructure:"redis"`
	Watcher     WatcherConfig      `mapstructure:"watcher"`
	SMTP        SMTPConfig         `mapstructure:"smtp"`
	RateLimit   RateLimitConfig    `mapstructure:"rate_limit"`
	Subscribers []SubscriberConfig `mapstructure:"subscribers"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	CacheMaxAge    time.Duration `mapstructure:"cache_max_age"`
}

type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	TokenFile string `mapstructure:"token_file"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type WatcherConfig struct {
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type SubscriberConfig struct {
	Email     string   `mapstructure:"email"`
	Days      []string `mapstructure:"days"`
	StartDate string   `mapstructure:"start_date"`
	EndDate   string   `mapstructure:"end_date"`
	StartTime string   `mapstructure:"start_time"`
	EndTime   string   `mapstructure:"end_time"`
}

// envOverrides carries the settings that normally come from the
// environment rather than the config file: endpoints and credentials.
type envOverrides struct {
	ConcealURL     string `envconfig:"CONCEAL_API_URL"`
	BracketWrapURL string `envconfig:"BRACKETWRAP_API_URL"`
	RedisURL       string `envconfig:"REDIS_URL"`
	SMTPHost       string `envconfig:"SMTP_HOST"`
	SMTPUsername   string `envconfig:"SMTP_USERNAME"`
	SMTPPassword   string `envconfig:"SMTP_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("webgate", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if env.ConcealURL != "" {
		config.Conceal.BaseURL = env.ConcealURL
	}
	if env.BracketWrapURL != "" {
		config.BracketWrap.BaseURL = env.BracketWrapURL
	}
	if env.RedisURL != "" {
		config.Redis.URL = env.RedisURL
	}
	if env.SMTPHost != "" {
		config.SMTP.Host = env.SMTPHost
	}
	if env.SMTPUsername != "" {
		config.SMTP.Username = env.SMTPUsername
	}
	if env.SMTPPassword != "" {
		config.SMTP.Password = env.SMTPPassword
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = 30
	}
	if c.Session.TokenFile == "" {
		c.Session.TokenFile = ".webgate/tokens.json"
	}
	if c.Watcher.PollInterval == 0 {
		c.Watcher.PollInterval = time.Minute
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 50
		c.RateLimit.Burst = 100
	}
}
