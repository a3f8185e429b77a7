package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Cron   CronConfig   `mapstructure:"cron"`
	Feed   FeedConfig   `mapstructure:"feed"`
	Game   GameConfig   `mapstructure:"game"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	// Disabled skips bearer verification and takes the identity from the
	// X-Player header instead. Local development only.
	Disabled bool `mapstructure:"disabled"`
}

type CronConfig struct {
	PricePoll string `mapstructure:"price_poll"`
	GuessPoll string `mapstructure:"guess_poll"`
}

type FeedConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	APIKey  string        `mapstructure:"api_key"`
}

type GameConfig struct {
	// ResolutionWindow is how long a guess must age before the poller may
	// settle it; ResolutionBuffer keeps the poller from racing the manual
	// resolve path inside the natural window.
	ResolutionWindow time.Duration `mapstructure:"resolution_window"`
	ResolutionBuffer time.Duration `mapstructure:"resolution_buffer"`
	// StaleThreshold bounds how old the latest price sample may be at
	// resolution time, and doubles as the guess expiry horizon.
	StaleThreshold  time.Duration `mapstructure:"stale_threshold"`
	PollerBatchSize int           `mapstructure:"poller_batch_size"`
	ChartMinutes    int           `mapstructure:"chart_minutes"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.disabled", false)
	v.SetDefault("cron.price_poll", "@every 10s")
	v.SetDefault("cron.guess_poll", "@every 15s")
	v.SetDefault("feed.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("feed.timeout", "15s")
	v.SetDefault("feed.api_key", "")
	v.SetDefault("game.resolution_window", "60s")
	v.SetDefault("game.resolution_buffer", "5s")
	v.SetDefault("game.stale_threshold", "2m")
	v.SetDefault("game.poller_batch_size", 100)
	v.SetDefault("game.chart_minutes", 15)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
