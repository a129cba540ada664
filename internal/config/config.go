package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var ErrMissingCredential = errors.New("missing credential")

type Config struct {
	BotToken  string `env:"BOT_TOKEN"`
	ChannelID string `env:"CHANNEL_ID"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`

	TickInterval time.Duration `env:"TICK_INTERVAL" env-default:"1m"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`

	CrossRateURL        string `env:"CROSS_RATE_URL" env-default:"https://api.btcturk.com/api/v2/ticker?pairSymbol=USDT_TRY"`
	TelegramAPIEndpoint string `env:"TELEGRAM_API_ENDPOINT" env-default:"https://api.telegram.org/bot%s/%s"`

	// ParallelFetch fans the market-data requests out within a tick.
	ParallelFetch bool `env:"PARALLEL_FETCH" env-default:"false"`
	// AppendChannelID adds the channel identifier as the last message line.
	AppendChannelID bool `env:"APPEND_CHANNEL_ID" env-default:"true"`

	MetricsAddr string `env:"METRICS_ADDR"`
}

// Load merges the given dotenv files (".env" when none are named) into the
// process environment and reads the result. Variables already set win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Missing files are fine.
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.BotToken = strings.TrimSpace(c.BotToken)
	c.ChannelID = strings.TrimSpace(c.ChannelID)
	if c.BotToken == "" {
		return fmt.Errorf("%w: BOT_TOKEN env var not set", ErrMissingCredential)
	}
	if c.ChannelID == "" {
		return fmt.Errorf("%w: CHANNEL_ID env var not set", ErrMissingCredential)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("invalid TICK_INTERVAL %s", c.TickInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT %s", c.HTTPTimeout)
	}
	return nil
}
