package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"shiprekt/config"
	"shiprekt/internal/bybit/session"
	"shiprekt/logger"
	"shiprekt/pkg/telegram"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments use the process environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// zap logger
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if err := cfg.Telegram.ResolveCredentials(cfg.Environment); err != nil {
		zlog.Fatal("telegram credentials missing", zap.Error(err))
	}

	notifier := telegram.NewClient(
		cfg.Telegram.BaseURL,
		cfg.Telegram.BotToken,
		cfg.Telegram.ChatID,
		cfg.Telegram.Timeout,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, notifier, zlog); err != nil {
		zlog.Fatal("watcher terminated", zap.Error(err))
	}
	zlog.Info("shut down cleanly")
}

// run supervises the streaming session. The first connect failure is fatal
// to the process; a session dying mid-stream is destroyed and rebuilt from
// scratch with exponential backoff until the context is cancelled.
func run(ctx context.Context, cfg *config.Config, notifier session.Notifier, zlog *zap.Logger) error {
	sess, err := session.Connect(ctx, cfg.Bybit.WS, notifier, zlog)
	if err != nil {
		return err
	}

	for {
		err := sess.Run(ctx)
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil
		}
		zlog.Warn("session torn down, reconnecting", zap.Error(err))

		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = time.Second
		bo.MaxInterval = time.Minute
		bo.MaxElapsedTime = 0 // retry until cancelled

		err = backoff.Retry(func() error {
			var cerr error
			sess, cerr = session.Connect(ctx, cfg.Bybit.WS, notifier, zlog)
			if cerr != nil {
				zlog.Warn("reconnect attempt failed", zap.Error(cerr))
			}
			return cerr
		}, backoff.WithContext(bo, ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}
