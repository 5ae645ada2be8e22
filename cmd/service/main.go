package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	application "easygo/internal/app"
	"easygo/internal/handlers/rest/courier_apply_post"
	"easygo/internal/handlers/rest/courier_decision_post"
	"easygo/internal/handlers/rest/courier_get"
	"easygo/internal/handlers/rest/courier_stats_get"
	"easygo/internal/handlers/rest/couriers_get"
	"easygo/internal/handlers/rest/healthcheck_head"
	"easygo/internal/handlers/rest/order_bad_address_post"
	"easygo/internal/handlers/rest/order_cancel_post"
	"easygo/internal/handlers/rest/order_claim_post"
	"easygo/internal/handlers/rest/order_create_post"
	"easygo/internal/handlers/rest/order_depart_post"
	"easygo/internal/handlers/rest/order_done_post"
	"easygo/internal/handlers/rest/order_get"
	"easygo/internal/handlers/rest/order_pickup_post"
	"easygo/internal/handlers/rest/order_problem_delete"
	"easygo/internal/handlers/rest/order_proof_post"
	"easygo/internal/handlers/rest/orders_get"
	"easygo/internal/handlers/rest/ping_get"
	"easygo/internal/pkg/config"
	"easygo/internal/pkg/dotenv"
	"easygo/internal/pkg/kafka"
	metrics_system "easygo/internal/pkg/metrics"
	"easygo/internal/pkg/middlewares/graceful_shutdown"
	"easygo/internal/pkg/middlewares/metrics"
	"easygo/internal/pkg/middlewares/rate_limiter"
	"easygo/internal/pkg/middlewares/timeout"
	"easygo/internal/pkg/postgres"
	"easygo/pkg/logger"
	"easygo/pkg/logger/zap_adapter"
	"easygo/pkg/token_bucket"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting easygo dispatch service")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // наследуюсь от context.Background() в рамках graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	if err := postgres.Migrate(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	brokers := strings.Split(cfg.Kafka.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka, brokers)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close Kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	fanoutErr := make(chan error, 1)
	go func() {
		defer close(fanoutErr)
		if err := businessApp.Fanout.Run(ongoingCtx); err != nil && !errors.Is(err, context.Canceled) {
			fanoutErr <- err
		}
	}()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-fanoutErr:
		return fmt.Errorf("notification fanout: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(ongoingCtx context.Context, log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/orders", order_create_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders", orders_get.New(log, app.ServiceDispatch)).Methods("GET")
	router.Handle("/orders/{id}", order_get.New(log, app.ServiceDispatch)).Methods("GET")
	router.Handle("/orders/{id}/claim", order_claim_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders/{id}/bad-address", order_bad_address_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders/{id}/depart", order_depart_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders/{id}/pickup", order_pickup_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders/{id}/done", order_done_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders/{id}/proof", order_proof_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders/{id}/cancel", order_cancel_post.New(log, app.ServiceDispatch)).Methods("POST")
	router.Handle("/orders/{id}/problem", order_problem_delete.New(log, app.ServiceDispatch)).Methods("DELETE")

	router.Handle("/couriers", courier_apply_post.New(log, app.ServiceCourier)).Methods("POST")
	router.Handle("/couriers", couriers_get.New(log, app.ServiceCourier)).Methods("GET")
	router.Handle("/couriers/{id}", courier_get.New(log, app.ServiceCourier)).Methods("GET")
	router.Handle("/couriers/{id}/decision", courier_decision_post.New(log, app.ServiceCourier)).Methods("POST")
	router.Handle("/couriers/{id}/stats", courier_stats_get.New(log, app.ServiceDispatch)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
