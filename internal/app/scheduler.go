/**
 * @description
 * Cron scheduler setup for the certificate dispatch job.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/amang06/aim-backend/internal/config"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher *CertificateDispatcher
	logger     *slog.Logger
	config     config.Config
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(dispatcher *CertificateDispatcher, logger *slog.Logger, cfg config.Config) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:       c,
		dispatcher: dispatcher,
		logger:     logger,
		config:     cfg,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.config.CertDispatchSchedule, s.runCertificateDispatch); err != nil {
		s.logger.Error("failed to schedule certificate dispatch job", "error", err)
	} else {
		s.logger.Info("scheduled certificate dispatch job", "schedule", s.config.CertDispatchSchedule)
	}

	s.cron.Start()
}

// runCertificateDispatch executes one scheduled batch. Scheduled runs use
// the smaller batch bound; manual triggers use the larger one.
func (s *Scheduler) runCertificateDispatch() {
	s.logger.Info("starting certificate dispatch job")
	ctx := context.Background()

	result, err := s.dispatcher.Run(ctx, s.config.CertBatchSizeScheduled)
	if err != nil {
		s.logger.Error("certificate dispatch job failed", "error", err)
		return
	}

	s.logger.Info("certificate dispatch job finished",
		"processed", result.Processed, "successful", result.Successful, "failed", result.Failed)
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
