package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/consolevik/TerraLend/internal/application/usecase"
	"github.com/consolevik/TerraLend/internal/domain/port"
	"github.com/consolevik/TerraLend/internal/domain/service"
	"github.com/consolevik/TerraLend/internal/infrastructure/adapter"
	"github.com/consolevik/TerraLend/internal/infrastructure/audit"
	"github.com/consolevik/TerraLend/internal/infrastructure/config"
	"github.com/consolevik/TerraLend/internal/infrastructure/kafka"
	pgRepo "github.com/consolevik/TerraLend/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/consolevik/TerraLend/internal/presentation/grpc"
	"github.com/consolevik/TerraLend/internal/presentation/rest"
	"github.com/consolevik/TerraLend/pkg/auth"
	pkgkafka "github.com/consolevik/TerraLend/pkg/kafka"
	"github.com/consolevik/TerraLend/pkg/observability"
	pkgpostgres "github.com/consolevik/TerraLend/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  "info",
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting terralend-verification",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	migDSN := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if migErr := pkgpostgres.RunMigrations(migDSN, "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Audit trail.
	auditLog, err := audit.NewHashChainLog(cfg.AuditLogPath)
	if err != nil {
		logger.Error("failed to open audit log", "error", err)
		os.Exit(1)
	}
	if err := auditLog.Verify(); err != nil {
		logger.Error("audit chain verification failed", "error", err)
		os.Exit(1)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewGreenLoanRepo(pool)
	verificationRepo := pgRepo.NewVerificationRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()

	// Events go out either directly or through a transactional outbox with a
	// relay worker, depending on configuration.
	var publisher port.EventPublisher
	var outboxRelay *kafka.OutboxRelay
	if cfg.Kafka.Outbox {
		outboxRepo := pgRepo.NewOutboxRepo(pool)
		publisher = kafka.NewOutboxEventPublisher(outboxRepo)
		outboxRelay = kafka.NewOutboxRelay(outboxRepo, kafkaProducer, cfg.Kafka.Topic, 2*time.Second, logger)
	} else {
		publisher = kafka.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	}
	geocoder := adapter.NewStaticGeocoder()

	// Domain services.
	extractor := service.NewClaimExtractor()
	scorer := service.NewConfidenceScorer()
	engine := service.NewGreenScoreEngine()
	greenwashing := service.NewGreenwashingChecker()

	// Wire use cases.
	submitUC := usecase.NewSubmitLoanUseCase(loanRepo, publisher, geocoder)
	verifyUC := usecase.NewVerifyLoanUseCase(
		loanRepo, verificationRepo, publisher, auditLog,
		extractor, scorer, engine, greenwashing,
	)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	getVerificationUC := usecase.NewGetVerificationUseCase(verificationRepo)
	analyzeUC := usecase.NewAnalyzeDescriptionUseCase(extractor, scorer)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "terralend-gateway",
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			jwtSecret = "test-e2e-secret" // Match gateway default for E2E tests
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewVerificationHandler(
		submitUC, verifyUC, getLoanUC, getVerificationUC, analyzeUC,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Event-driven verification: consume loan submissions from Kafka and
	// verify them as they arrive.
	var loanConsumer *kafka.LoanEventConsumer
	if cfg.Kafka.AutoVerify {
		loanConsumer = kafka.NewLoanEventConsumer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ConsumerGroup: cfg.Kafka.ConsumerGroup,
		}, cfg.Kafka.Topic, verifyUC, logger)
		defer loanConsumer.Close() //nolint:errcheck // best-effort reader close
	}

	// Start servers.
	errCh := make(chan error, 3)

	if outboxRelay != nil {
		go outboxRelay.Run(ctx)
	}

	if loanConsumer != nil {
		go func() {
			if err := loanConsumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("loan event consumer error: %w", err)
			}
		}()
	}

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("terralend-verification stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
