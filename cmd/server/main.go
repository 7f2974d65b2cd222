/**
 * @description
 * This is the main entry point for the membership API server.
 * It initializes and wires together all the components of the application:
 * configuration, database connection, repository, document generators, the
 * payment gateway adapter, the RabbitMQ producer and consumer, the service
 * layer and the HTTP router. Finally, it starts the HTTP server to listen
 * for incoming requests.
 */
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amang06/aim-backend/internal/api"
	"github.com/amang06/aim-backend/internal/app"
	"github.com/amang06/aim-backend/internal/config"
	"github.com/amang06/aim-backend/internal/domain"
	"github.com/amang06/aim-backend/internal/pdf"
	"github.com/amang06/aim-backend/internal/store"
	"github.com/amang06/aim-backend/pkg/gatewayclient"
	"github.com/amang06/aim-backend/pkg/mailclient"
	"github.com/amang06/aim-backend/pkg/rabbitmq"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load application configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Establish connection to the PostgreSQL database with connection pool configuration
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = 25
	poolCfg.MinConns = 5
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Use simple protocol so the pool works behind transaction-pooling proxies
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	logger.Info("database connection established")

	// Initialize application layers
	repository := store.NewRepository(dbpool)
	gateway := gatewayclient.NewClient(cfg.GatewayBaseURL, cfg.GatewayMerchantID, cfg.GatewayCallbackURL, cfg.GatewaySecret)
	mailer := mailclient.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	issuer := pdf.Issuer{
		Name:    pdf.OrganizationName,
		Address: cfg.OrgAddress,
		GSTIN:   cfg.OrgGSTIN,
		Email:   cfg.OrgEmail,
		Phone:   cfg.OrgPhone,
	}
	certGen := pdf.NewCertificateGenerator(cfg.CertLogoPath, logger)
	invoiceGen := pdf.NewInvoiceGenerator(issuer, cfg.CertLogoPath, logger)

	service := app.NewService(repository, gateway, invoiceGen, certGen, logger)
	dispatcher := app.NewCertificateDispatcher(repository, certGen, mailer, logger)

	// Payment events: webhook publishes, the consumer applies transitions.
	producer, err := rabbitmq.NewProducer(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("unable to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("unable to create RabbitMQ consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	eventConsumer := app.NewPaymentEventConsumer(service)
	go func() {
		err := consumer.Consume(
			domain.PaymentEventsExchange,
			domain.PaymentEventsQueue,
			domain.PaymentEventsBindingKey,
			eventConsumer.HandlePaymentEvent,
		)
		if err != nil {
			log.Printf("payment event consumer stopped: %v", err)
		}
	}()
	logger.Info("payment event consumer started")

	handler := api.NewHandler(service, gateway, producer)
	admin := api.NewAdminHandler(service, dispatcher, cfg.JobTriggerToken, cfg.CertBatchSizeManual, cfg.IsProduction())
	router := api.NewRouter(handler, admin, cfg.AdminJWTSecret)

	// Configure and start the HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an OS signal
	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
