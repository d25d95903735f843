package ingestion

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"casemail/internal/config"
	"casemail/internal/logger"
	"casemail/pkg/leaselock"
	"casemail/pkg/metrics"
)

// Scheduler drives ingestion runs on a cron expression. Each tick takes a
// cluster-wide lease before running, so only one member polls the mailboxes
// at a time; a tick that cannot get the lease is skipped, not queued. The
// lease TTL bounds concurrent runs, it does not preempt a slow one.
type Scheduler struct {
	cron    *cron.Cron
	locker  *leaselock.Locker
	service *Service
	probe   *Probe
	reports *ReportStore
	cfg     config.IngestionConfig
	logger  logger.Logger
}

// NewScheduler wires the cron driver. reports may be nil when run archiving
// is disabled.
func NewScheduler(
	locker *leaselock.Locker,
	service *Service,
	probe *Probe,
	reports *ReportStore,
	cfg config.IngestionConfig,
	log logger.Logger,
) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		locker:  locker,
		service: service,
		probe:   probe,
		reports: reports,
		cfg:     cfg,
		logger:  log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.tick); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Infow("Ingestion scheduler started",
		"schedule", s.cfg.Schedule,
		"lock_name", s.cfg.LockName,
	)
	return nil
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Infow("Ingestion scheduler stopped")
}

func (s *Scheduler) tick() {
	ctx := context.Background()
	ttl := s.cfg.LockMaxHoldSecs * time.Second

	lease, acquired, err := s.locker.TryAcquire(ctx, s.cfg.LockName, ttl)
	if err != nil {
		s.logger.Errorw("Failed to acquire ingestion lease", "error", err)
		metrics.LeaseAcquireTotal.WithLabelValues(s.cfg.LockName, "error").Inc()
		metrics.SchedulerRunsTotal.WithLabelValues("lock_error").Inc()
		return
	}
	if !acquired {
		s.logger.Debugw("Ingestion lease held elsewhere, skipping tick",
			"lock_name", s.cfg.LockName)
		metrics.LeaseAcquireTotal.WithLabelValues(s.cfg.LockName, "held").Inc()
		metrics.SchedulerRunsTotal.WithLabelValues("skipped").Inc()
		return
	}
	metrics.LeaseAcquireTotal.WithLabelValues(s.cfg.LockName, "acquired").Inc()
	defer func() {
		if err := lease.Release(ctx); err != nil {
			s.logger.Warnw("Failed to release ingestion lease", "error", err)
		}
	}()

	s.RunOnce(ctx)
}

// RunOnce executes a single ingestion run without the lease dance. Also the
// entry point for the run-once CLI command.
func (s *Scheduler) RunOnce(ctx context.Context) *RunReport {
	start := time.Now()
	s.probe.ResetForNewRun()

	report := s.service.Run(ctx)

	result := "success"
	if report.Failed == 0 && !s.probe.HasErrors() {
		s.probe.SetHealthy()
	} else {
		result = "failed"
	}
	metrics.SchedulerRunsTotal.WithLabelValues(result).Inc()
	metrics.ObserveSchedulerRunDuration(time.Since(start))

	s.logger.InfowCtx(ctx, "Ingestion run finished",
		"tenants", report.Tenants,
		"processed", report.Processed,
		"failed", report.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if s.reports != nil {
		if err := s.reports.Archive(ctx, report); err != nil {
			s.logger.WarnwCtx(ctx, "Failed to archive run report", "error", err)
		}
	}

	return report
}
