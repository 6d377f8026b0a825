package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dizzycheck/platform/pkg/common/config"
	"github.com/dizzycheck/platform/pkg/common/database"
	"github.com/dizzycheck/platform/pkg/common/kafka"
	"github.com/dizzycheck/platform/pkg/common/logger"
	"github.com/dizzycheck/platform/pkg/conditions"
	"github.com/dizzycheck/platform/pkg/gateway/middleware"
	"github.com/dizzycheck/platform/pkg/gateway/routes"
	"github.com/dizzycheck/platform/pkg/modelcard"
	"github.com/dizzycheck/platform/pkg/observability/metrics"
	"github.com/dizzycheck/platform/pkg/observability/tracking"
	"github.com/dizzycheck/platform/pkg/screening"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	sentryEnabled, err := tracking.Init(cfg.SentryDSN, cfg.AppEnv, cfg.AppVersion)
	if err != nil {
		logger.Log.WithError(err).Warn("Error tracking disabled")
	}
	defer tracking.Flush()

	loaded, err := loadArtifacts(cfg.ScalerPath, cfg.ModelPath, cfg.AllowUnscaledFallback)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load model artifacts")
	}

	catalog, err := conditions.Load(cfg.ConditionCatalogPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load condition catalog")
	}
	card, err := modelcard.Load(cfg.ModelCardPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load model card")
	}

	recorder := metrics.New(prometheus.DefaultRegisterer)
	observer := screening.Observers{recorder}
	if sentryEnabled {
		observer = append(observer, tracking.NewReporter(nil))
	}

	var publisher screening.Publisher
	if cfg.KafkaEnabled() {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.ScreeningEventsTopic)
		defer producer.Close()
		publisher = producer
	} else {
		logger.Log.Warn("KAFKA_BROKERS not set, screening outcomes will not be published")
	}

	pipeline := screening.NewPipeline(
		screening.NewNormalizer(loaded.transformer(), observer),
		screening.NewPredictor(loaded.model),
		observer,
	)
	service := screening.NewService(pipeline, publisher, observer, loaded.model.Version)

	var limiter middleware.Limiter = middleware.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	if redisClient := database.GetRedis(cfg); redisClient != nil {
		defer database.CloseRedis()
		limit := cfg.RateLimitRPS * int(cfg.RateLimitWindow/time.Second)
		if limit < cfg.RateLimitBurst {
			limit = cfg.RateLimitBurst
		}
		limiter = middleware.NewWindowLimiter(middleware.NewRedisCounter(redisClient), limit, cfg.RateLimitWindow)
	}

	router := newRouter(routerDeps{
		service:  service,
		info:     routes.NewInfoHandler(catalog, card, loaded.info()),
		recorder: recorder,
		limiter:  limiter,
		maxBody:  cfg.MaxRequestBody,
	})

	var handler http.Handler = router
	if sentryEnabled {
		handler = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(router)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host":          cfg.ServerHost,
			"port":          cfg.ServerPort,
			"model_version": loaded.model.Version,
			"scaled":        loaded.scaler != nil,
		}).Info("Screening Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Screening Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}

	logger.Log.Info("Screening Service stopped")
}
