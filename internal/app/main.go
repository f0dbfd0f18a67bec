package app

import (
	"os"
	"os/signal"
	"syscall"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	kafkabroker "github.com/antonkor/logboard/internal/broker/kafka"
	"github.com/antonkor/logboard/internal/config"
	v1 "github.com/antonkor/logboard/internal/controller/http/v1"
	"github.com/antonkor/logboard/internal/metrics"
	"github.com/antonkor/logboard/internal/repo"
	"github.com/antonkor/logboard/internal/service"
	errorsUtils "github.com/antonkor/logboard/pkg/errors"
	"github.com/antonkor/logboard/pkg/hasher"
	"github.com/antonkor/logboard/pkg/httpserver"
	"github.com/antonkor/logboard/pkg/logger"
	"github.com/antonkor/logboard/pkg/postgres"
)

func Run() {
	// Config

	cfg, err := config.New()
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}

	// Logger
	logger.SetupLogger(cfg.Log.Level)
	log.Info("Logger has been set up")

	// Migrations
	Migrate(cfg.PG.URL)

	// DB connecting
	log.Info("Connecting to DB")
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.MaxPoolSize))
	if err != nil {
		log.Fatal(errorsUtils.WrapPathErr(err))
	}
	defer pg.Close()
	log.Info("Connected to DB")

	// Repos
	repositories := repo.NewRepositories(pg)

	// Metrics counters
	counters := metrics.New()

	// Optional Kafka fan-out
	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		log.Infof("Kafka fan-out enabled, topic: %s", cfg.Kafka.Topic)
		producer := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		publisher = producer
	}

	// Services
	deps := service.ServicesDependencies{
		Repos:     repositories,
		TxManager: manager.Must(trmpgx.NewDefaultFactory(pg.Pool)),
		Hasher:    hasher.NewBcryptHasher(0),
		Counters:  counters,
		Publisher: publisher,
		SignKey:   cfg.JWT.SignKey,
		TokenTTL:  cfg.JWT.TokenTTL,
		LogDirs:   cfg.Files.LogDirs,
		DemoMode:  cfg.Files.DemoMode,

		ExportMaxRows: cfg.Export.MaxRows,
	}
	services := service.NewServices(deps)

	// API server
	log.Infof("Starting API server...")
	log.Debugf("Server port: %s", cfg.HTTP.Port)
	apiHandler := echo.New()
	v1.ConfigureRouter(apiHandler, services)
	apiServer := httpserver.New(apiHandler,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
	)

	// Prometheus server
	log.Infof("Starting metrics server...")
	log.Debugf("Server port: %s", cfg.Prometheus.Port)
	metricsHandler := echo.New()
	metrics.ConfigureRouter(metricsHandler)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(cfg.Prometheus.Port))

	// Waiting signal
	log.Info("Configuring graceful shutdown")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app - Run - signal: " + s.String())
	case err := <-apiServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	case err := <-metricsServer.Notify():
		log.Info(errorsUtils.WrapPathErr(err))
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	if err := apiServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
	if err := metricsServer.Shutdown(); err != nil {
		log.Error(errorsUtils.WrapPathErr(err))
	}
}
