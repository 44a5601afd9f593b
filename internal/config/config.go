package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyToken = errors.New("error getting WR_TELEGRAM_TOKEN: variable not specified or contains an empty string")

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	StoragePath string // StoragePath is the sqlite database file path.
	HTTPAddr    string // HTTPAddr is the listen address of the API server.
	Tg          Telegram
	Card        CardAPI
	Compare     Compare
}

type Telegram struct {
	Token   string        // Token is an unique telgram bot token.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

type CardAPI struct {
	BaseURL string        // BaseURL is the card API endpoint.
	Timeout time.Duration // Timeout is a per-request timeout.
	RPS     float64       // RPS caps outgoing card API requests per second.
}

type Compare struct {
	TTL              time.Duration // TTL is the snapshot age below which it is reused.
	FetchConcurrency int           // FetchConcurrency caps concurrent fetches per request.
	RefreshSchedule  string        // RefreshSchedule is a cron spec; empty disables the job.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("WR")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("STORAGE_PATH", "wb-radar.sqlite")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("CARD_API_URL", "https://card.wb.ru")
	viper.SetDefault("CARD_TIMEOUT", "10s")
	viper.SetDefault("CARD_RPS", 3.0)
	viper.SetDefault("COMPARE_TTL", "6h")
	viper.SetDefault("FETCH_CONCURRENCY", 4)
	viper.SetDefault("REFRESH_SCHEDULE", "")

	if viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		HTTPAddr:    viper.GetString("HTTP_ADDR"),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
		Card: CardAPI{
			BaseURL: viper.GetString("CARD_API_URL"),
			Timeout: viper.GetDuration("CARD_TIMEOUT"),
			RPS:     viper.GetFloat64("CARD_RPS"),
		},
		Compare: Compare{
			TTL:              viper.GetDuration("COMPARE_TTL"),
			FetchConcurrency: viper.GetInt("FETCH_CONCURRENCY"),
			RefreshSchedule:  viper.GetString("REFRESH_SCHEDULE"),
		},
	}
}
