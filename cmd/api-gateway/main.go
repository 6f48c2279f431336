package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/clearlakemutual/claimvault-backend/internal/clock"
	"github.com/clearlakemutual/claimvault-backend/internal/metrics"
	"github.com/clearlakemutual/claimvault-backend/internal/notify"
	"github.com/clearlakemutual/claimvault-backend/internal/repository/clickhouse"
	"github.com/clearlakemutual/claimvault-backend/internal/repository/memory"
	"github.com/clearlakemutual/claimvault-backend/internal/service"
	"github.com/clearlakemutual/claimvault-backend/internal/transport"
	"github.com/clearlakemutual/claimvault-backend/pkg/batcher"
)

var config struct {
	Addr               string        `long:"addr" env:"API_GATEWAY_ADDR" description:"listen addr" default:":8001"`
	ClickhouseDSN      string        `long:"clickhouse-dsn" env:"API_GATEWAY_CLICKHOUSE_DSN" description:"ClickHouse DSN; empty runs on the in-memory store" default:""`
	Owner              string        `long:"owner" env:"API_GATEWAY_OWNER" description:"registry owner identity" required:"true"`
	RequestRPS         int           `long:"request-rps" env:"API_GATEWAY_REQUEST_RPS" description:"request rate limit" default:"100"`
	AuditFlushSize     int           `long:"audit-flush-size" env:"API_GATEWAY_AUDIT_FLUSH_SIZE" description:"audit event batch size" default:"100"`
	AuditFlushInterval time.Duration `long:"audit-flush-interval" env:"API_GATEWAY_AUDIT_FLUSH_INTERVAL" description:"audit event flush interval" default:"1s"`
	PingRetries        int           `long:"ping-retries" env:"API_GATEWAY_PING_RETRIES" description:"ClickHouse readiness ping attempts" default:"10"`
	PingInterval       time.Duration `long:"ping-interval" env:"API_GATEWAY_PING_INTERVAL" description:"delay between readiness pings" default:"2s"`
}

type claimStorage interface {
	service.ClaimStore
	notify.EventStore
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	store, err := openStore(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to open claim store", zap.Error(err))
	}

	audit := notify.NewAuditNotifier(logger, store, batcher.Config{
		FlushSize:     config.AuditFlushSize,
		FlushInterval: config.AuditFlushInterval,
	})
	audit.Start(ctx)
	defer audit.Stop()

	registry, err := service.New(
		ctx,
		store,
		notify.NewMulti(notify.NewLogNotifier(logger), audit),
		metrics.NewRegistry(),
		logger,
		config.Owner,
	)
	if err != nil {
		logger.Fatal("Failed to initialize claim registry", zap.Error(err))
	}

	mux := http.NewServeMux()
	transport.NewClaimsHandler(registry, logger).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	handler := transport.Chain(
		mux,
		transport.WithRequestLogging(logger),
		transport.WithRateLimit(config.RequestRPS),
	)

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(handler),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

func openStore(ctx context.Context, logger *zap.Logger) (claimStorage, error) {
	if config.ClickhouseDSN == "" {
		logger.Warn("No ClickHouse DSN configured, claims will not survive restarts")
		return memory.NewStore(), nil
	}

	repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClaimRepository())
	if err != nil {
		return nil, fmt.Errorf("clickhouse.NewRepository error: %w", err)
	}
	if err := waitForClickhouse(ctx, logger, repo); err != nil {
		return nil, err
	}
	return repo, nil
}

func waitForClickhouse(ctx context.Context, logger *zap.Logger, repo *clickhouse.Repository) error {
	var err error
	for attempt := 1; attempt <= config.PingRetries; attempt++ {
		if err = repo.Ping(ctx); err == nil {
			return nil
		}
		logger.Info("ClickHouse not ready",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if sleepErr := clock.SleepWithContext(ctx, config.PingInterval); sleepErr != nil {
			return sleepErr
		}
	}
	return fmt.Errorf("clickhouse is unreachable after %d pings: %w", config.PingRetries, err)
}
