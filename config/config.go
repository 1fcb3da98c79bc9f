package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log      Logger         `mapstructure:"logger"`
	DB       Database       `mapstructure:"database"`
	API      API            `mapstructure:"api"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	CoinCap  CoinCap        `mapstructure:"coincap"`
	Notifier Notifier       `mapstructure:"notifier"`
	News     News           `mapstructure:"news"`
	Cache    Cache          `mapstructure:"cache"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type TelegramConfig struct {
	BotToken                  string        `mapstructure:"bot_token"`
	WebhookURL                string        `mapstructure:"webhook_url"`
	TimeoutDuration           time.Duration `mapstructure:"timeout_duration"`
	MaxGlobalRequestPerSecond int           `mapstructure:"max_global_request_per_second"`
	MaxUserRequestPerSecond   int           `mapstructure:"max_user_request_per_second"`
	RatelimitExpireDuration   time.Duration `mapstructure:"ratelimit_expire_duration"`
	RateLimitCleanupDuration  time.Duration `mapstructure:"rate_limit_cleanup_duration"`
}

type CoinCap struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
	ChartLookback    time.Duration `mapstructure:"chart_lookback"`
}

// Notifier controls the background subscription checker. ChangeWindow is the
// trailing window the price-change metric is computed over; Cooldown is the
// minimum gap between two alerts for the same subscription.
type Notifier struct {
	CheckInterval  time.Duration `mapstructure:"check_interval"`
	ChangeWindow   time.Duration `mapstructure:"change_window"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
}

type News struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CronSchedule string        `mapstructure:"cron_schedule"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
}

type Cache struct {
	DefaultExpiration  time.Duration `mapstructure:"default_expiration"`
	CleanupInterval    time.Duration `mapstructure:"cleanup_interval"`
	SessionExpDuration time.Duration `mapstructure:"session_exp_duration"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("telegram.timeout_duration", "30s")
	viper.SetDefault("telegram.max_global_request_per_second", 30)
	viper.SetDefault("telegram.max_user_request_per_second", 1)
	viper.SetDefault("telegram.ratelimit_expire_duration", "10m")
	viper.SetDefault("telegram.rate_limit_cleanup_duration", "5m")

	viper.SetDefault("coincap.base_url", "https://api.coincap.io/v2")
	viper.SetDefault("coincap.timeout", "15s")
	viper.SetDefault("coincap.max_request_per_min", 60)
	viper.SetDefault("coincap.chart_lookback", "2160h") // 90 days

	viper.SetDefault("notifier.check_interval", "30s")
	viper.SetDefault("notifier.change_window", "5m")
	viper.SetDefault("notifier.cooldown", "5m")
	viper.SetDefault("notifier.max_concurrency", 5)

	viper.SetDefault("news.base_url", "https://www.alphavantage.co")
	viper.SetDefault("news.timeout", "20s")
	viper.SetDefault("news.cron_schedule", "@every 1h")
	viper.SetDefault("news.gemini_model", "gemini-2.0-flash")

	viper.SetDefault("cache.default_expiration", "5m")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.session_exp_duration", "10m")
}
