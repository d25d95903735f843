package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"casemail/internal/config"
	"casemail/internal/logger"
	"casemail/internal/mailbox"
)

func newTestScheduler(p *testPipeline) *Scheduler {
	cfg := config.IngestionConfig{
		Schedule:        "0/2 * * * *",
		LockName:        "ingestion:poll",
		LockMaxHoldSecs: 120,
	}
	return NewScheduler(nil, p.service, p.probe, nil, cfg, logger.NopLogger())
}

func TestRunOnceHealsProbeAfterCleanRun(t *testing.T) {
	cfg := *tenantConfig()
	p := newTestPipeline(cfg)
	s := newTestScheduler(p)

	// A failing run restricts the probe.
	p.mail.listErr = errors.New("mailbox unreachable")
	report := s.RunOnce(context.Background())
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, StatusRestricted, p.probe.Observe())

	// The next clean run heals it.
	p.mail.listErr = nil
	p.addEmail(&cfg, mailbox.InboundEmail{ID: "mail-1", Subject: "hello"})
	report = s.RunOnce(context.Background())
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, StatusUp, p.probe.Observe())
}

func TestRunOnceStaysRestrictedWhileRunsFail(t *testing.T) {
	cfg := *tenantConfig()
	p := newTestPipeline(cfg)
	s := newTestScheduler(p)

	p.mail.listErr = errors.New("mailbox unreachable")

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, StatusRestricted, p.probe.Observe())
}

func TestRunOnceEmptyRunIsHealthy(t *testing.T) {
	p := newTestPipeline()
	s := newTestScheduler(p)

	report := s.RunOnce(context.Background())

	assert.Equal(t, 0, report.Tenants)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, StatusUp, p.probe.Observe())
}
