package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/concealdc/webgate/internal/config"
	appointmentHandler "github.com/concealdc/webgate/internal/handler/appointment"
	authHandler "github.com/concealdc/webgate/internal/handler/auth"
	bracketHandler "github.com/concealdc/webgate/internal/handler/bracket"
	healthHandler "github.com/concealdc/webgate/internal/handler/health"
	notificationHandler "github.com/concealdc/webgate/internal/handler/notification"
	scheduleHandler "github.com/concealdc/webgate/internal/handler/schedule"
	"github.com/concealdc/webgate/internal/middleware"
	"github.com/concealdc/webgate/internal/router"
	"github.com/concealdc/webgate/internal/session"
	"github.com/concealdc/webgate/internal/upstream"
	"github.com/concealdc/webgate/pkg/metrics"
	"github.com/concealdc/webgate/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	m := metrics.NewMetrics("webgate", "api")

	conceal := upstream.NewConcealClient(upstream.Config{
		BaseURL: cfg.Conceal.BaseURL,
		Timeout: cfg.Conceal.Timeout,
	}, m)
	bracket := upstream.NewBracketClient(upstream.Config{
		BaseURL: cfg.BracketWrap.BaseURL,
		Timeout: cfg.BracketWrap.Timeout,
	}, m)

	sess := session.New(session.NewFileStore(cfg.Session.TokenFile), conceal, m)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	}

	r := router.NewRouter(
		healthHandler.NewHandler(),
		authHandler.NewHandler(conceal, sess),
		scheduleHandler.NewHandler(conceal),
		appointmentHandler.NewHandler(conceal),
		bracketHandler.NewHandler(bracket),
		notificationHandler.NewHandler(conceal),
		middleware.SessionGate(sess),
		router.Config{
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RequestsPerSecond,
				Burst: cfg.RateLimit.Burst,
			},
			CORSConfig:    corsCfg,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			MetricsPrefix: "webgate",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
