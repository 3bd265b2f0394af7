package config

import (
	"context"
	"errors"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// TelegramConfig carries the notifier credentials. In dev they come straight
// from the environment (SHIPREKT_TELEGRAM_BOT_TOKEN and
// SHIPREKT_TELEGRAM_CHAT_ID); in prod they may instead be named SSM
// parameters so the secrets never live in plain env files.
type TelegramConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	BotToken string        `mapstructure:"bot_token"`
	ChatID   string        `mapstructure:"chat_id"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// SSM Parameter Store names, consulted only when environment is "prod".
	TokenParameter  string `mapstructure:"token_parameter"`
	ChatIDParameter string `mapstructure:"chat_id_parameter"`
}

// ResolveCredentials fills BotToken and ChatID from Parameter Store when
// running in prod with parameter names configured, then verifies both are
// present. Missing credentials are fatal to process startup.
func (cfg *TelegramConfig) ResolveCredentials(env string) error {
	if env == "prod" {
		if cfg.TokenParameter != "" {
			cfg.BotToken = getParameterStoreValue(cfg.TokenParameter, true)
		}
		if cfg.ChatIDParameter != "" {
			cfg.ChatID = getParameterStoreValue(cfg.ChatIDParameter, true)
		}
	}

	if cfg.BotToken == "" {
		return errors.New("config: telegram bot token is not set")
	}
	if cfg.ChatID == "" {
		return errors.New("config: telegram chat id is not set")
	}
	return nil
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctx, input)
	if err != nil {
		return ""
	}
	if result.Parameter == nil || result.Parameter.Value == nil {
		return ""
	}
	return *result.Parameter.Value
}
