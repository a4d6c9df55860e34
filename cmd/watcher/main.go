package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/concealdc/webgate/internal/config"
	"github.com/concealdc/webgate/internal/email"
	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/internal/upstream"
	"github.com/concealdc/webgate/internal/watcher"
	"github.com/concealdc/webgate/pkg/logger"
	"github.com/concealdc/webgate/pkg/messaging/redis"
	"github.com/concealdc/webgate/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.NewLogger(nil)
	m := metrics.NewMetrics("webgate", "watcher")

	conceal := upstream.NewConcealClient(upstream.Config{
		BaseURL: cfg.Conceal.BaseURL,
		Timeout: cfg.Conceal.Timeout,
	}, m)

	zl := lg.Zerolog()
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	poller := watcher.NewPoller(conceal, broker, watcher.PollerConfig{
		PollInterval:  cfg.Watcher.PollInterval,
		RetryAttempts: cfg.Watcher.RetryAttempts,
		RetryDelay:    cfg.Watcher.RetryDelay,
	}, lg.WithComponent("poller"), m)

	subscribers := make(watcher.StaticSource, 0, len(cfg.Subscribers))
	for _, s := range cfg.Subscribers {
		subscribers = append(subscribers, watcher.Subscriber{
			Email: s.Email,
			Preference: model.NotificationPreference{
				Days:      s.Days,
				StartDate: s.StartDate,
				EndDate:   s.EndDate,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
			},
		})
	}

	mailer := email.NewService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	notifier := watcher.NewNotifier(broker, subscribers, mailer, lg.WithComponent("notifier"), m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go poller.Start(ctx)
	go func() {
		if err := notifier.Start(ctx); err != nil && ctx.Err() == nil {
			log.Fatal().Err(err).Msg("notifier stopped")
		}
	}()
	log.Info().Dur("poll_interval", cfg.Watcher.PollInterval).Msg("watcher started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down watcher...")
	cancel()

	log.Info().Msg("watcher exited properly")
}
