package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"` // "dev" or "prod"
	Bybit       BybitConfig    `mapstructure:"bybit"`
	Telegram    TelegramConfig `mapstructure:"telegram"`
	Log         LogConfig      `mapstructure:"log"`
}

type BybitConfig struct {
	WS WSConfig `mapstructure:"ws"`
}

// WSConfig drives the streaming session: where to connect, what to
// subscribe to, and the heartbeat cadence that doubles as the liveness
// bound on an otherwise silent connection.
type WSConfig struct {
	URL               string        `mapstructure:"url"`
	Topics            []string      `mapstructure:"topics"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	HandshakeTimeout  time.Duration `mapstructure:"handshake_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level      string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format     string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile string `mapstructure:"output_file"` // file path to store logs (optional)
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in ascending priority. The file path comes from
// SHIPREKT_CONFIG or falls back to ./config.yaml when present; environment
// variables use the SHIPREKT prefix with dots replaced by underscores,
// e.g. SHIPREKT_BYBIT_WS_URL.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults double as key registration: AutomaticEnv only surfaces keys
	// viper already knows about.
	v.SetDefault("environment", "dev")
	v.SetDefault("bybit.ws.url", "wss://stream.bybit.com/realtime")
	v.SetDefault("bybit.ws.topics", []string{"liquidation"})
	v.SetDefault("bybit.ws.heartbeat_interval", 30*time.Second)
	v.SetDefault("bybit.ws.handshake_timeout", 10*time.Second)
	v.SetDefault("bybit.ws.write_timeout", 5*time.Second)
	v.SetDefault("telegram.base_url", "")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.timeout", 10*time.Second)
	v.SetDefault("telegram.token_parameter", "")
	v.SetDefault("telegram.chat_id_parameter", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")

	v.SetEnvPrefix("SHIPREKT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := os.Getenv("SHIPREKT_CONFIG")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Bybit.WS.URL == "" {
		return errors.New("config: bybit.ws.url is required")
	}
	if len(c.Bybit.WS.Topics) == 0 {
		return errors.New("config: bybit.ws.topics must not be empty")
	}
	if c.Bybit.WS.HeartbeatInterval <= 0 {
		return errors.New("config: bybit.ws.heartbeat_interval must be positive")
	}
	return nil
}
