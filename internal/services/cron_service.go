package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron         *cron.Cron
	rateLimitSvc *RateLimitService
	logger       *logrus.Logger
}

// NewCronService creates a new CronService
func NewCronService(rateLimitSvc *RateLimitService, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:         cron.New(),
		rateLimitSvc: rateLimitSvc,
		logger:       logger,
	}
}

// Start schedules all jobs and starts the scheduler
func (s *CronService) Start() error {
	// Prune stale login-attempt rows daily at 03:00.
	_, err := s.cron.AddFunc("0 3 * * *", s.pruneLoginAttemptsJob)
	if err != nil {
		return fmt.Errorf("failed to schedule login attempt pruning: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// RunPruneNow triggers the pruning job immediately (admin endpoint)
func (s *CronService) RunPruneNow() {
	s.pruneLoginAttemptsJob()
}

func (s *CronService) pruneLoginAttemptsJob() {
	pruned, err := s.rateLimitSvc.PruneOldAttempts(24 * time.Hour)
	if err != nil {
		s.logger.WithError(err).Error("Login attempt pruning failed")
		return
	}
	s.logger.WithField("pruned", pruned).Info("Pruned stale login attempts")
}
