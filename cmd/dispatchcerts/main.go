/**
 * @description
 * Manual one-shot runner for the certificate dispatch job. Useful for
 * re-driving delivery after a mail outage without waiting for the next
 * scheduled run. Prints the run summary to stdout.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amang06/aim-backend/internal/app"
	"github.com/amang06/aim-backend/internal/config"
	"github.com/amang06/aim-backend/internal/pdf"
	"github.com/amang06/aim-backend/internal/store"
	"github.com/amang06/aim-backend/pkg/mailclient"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error("unable to parse database URL", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = 5
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	repository := store.NewRepository(dbpool)
	mailer := mailclient.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	certGen := pdf.NewCertificateGenerator(cfg.CertLogoPath, logger)
	dispatcher := app.NewCertificateDispatcher(repository, certGen, mailer, logger)

	result, err := dispatcher.Run(ctx, cfg.CertBatchSizeManual)
	if err != nil {
		logger.Error("certificate dispatch failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("processed:  %d\n", result.Processed)
	fmt.Printf("successful: %d\n", result.Successful)
	fmt.Printf("failed:     %d\n", result.Failed)
	for _, msg := range result.Errors {
		fmt.Printf("error: %s\n", msg)
	}
	if result.Failed > 0 {
		os.Exit(1)
	}
}
