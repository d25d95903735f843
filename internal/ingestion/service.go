package ingestion

import (
	"context"
	"time"

	"casemail/internal/broker"
	"casemail/internal/emailconf"
	"casemail/internal/errand"
	"casemail/internal/logger"
	"casemail/internal/mailbox"
	"casemail/internal/messaging"
	"casemail/pkg/logging"
	"casemail/pkg/metrics"
	"casemail/pkg/models"
)

// RunReport is the outcome of one full ingestion run across all tenants.
type RunReport struct {
	StartedAt  time.Time    `bson:"started_at" json:"startedAt"`
	FinishedAt time.Time    `bson:"finished_at" json:"finishedAt"`
	Tenants    int          `bson:"tenants" json:"tenants"`
	Processed  int          `bson:"processed" json:"processed"`
	Failed     int          `bson:"failed" json:"failed"`
	Failures   []RunFailure `bson:"failures,omitempty" json:"failures,omitempty"`
}

// RunFailure records one failed email or tenant batch. EmailID is empty for
// tenant-level failures.
type RunFailure struct {
	Namespace      string `bson:"namespace" json:"namespace"`
	MunicipalityID string `bson:"municipality_id" json:"municipalityId"`
	EmailID        string `bson:"email_id,omitempty" json:"emailId,omitempty"`
	Error          string `bson:"error" json:"error"`
}

func (r *RunReport) recordFailure(namespace, municipalityID, emailID string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, RunFailure{
		Namespace:      namespace,
		MunicipalityID: municipalityID,
		EmailID:        emailID,
		Error:          err.Error(),
	})
}

// Service runs one ingestion pass: enumerate enabled tenants, poll each
// mailbox, and fold every email through match, lifecycle policy, persist and
// delete. Tenants and emails are processed sequentially; a failed email is
// recorded and left in the mailbox, and the batch moves on.
type Service struct {
	configs   emailconf.Service
	mail      mailbox.Client
	messaging messaging.Client
	matcher   *Matcher
	errands   errand.Repository
	persister *Persister
	producer  broker.Producer
	topic     string
	probe     *Probe
	logger    logger.Logger
	now       func() time.Time
}

func NewService(
	configs emailconf.Service,
	mail mailbox.Client,
	msg messaging.Client,
	matcher *Matcher,
	errands errand.Repository,
	persister *Persister,
	producer broker.Producer,
	topic string,
	probe *Probe,
	log logger.Logger,
) *Service {
	return &Service{
		configs:   configs,
		mail:      mail,
		messaging: msg,
		matcher:   matcher,
		errands:   errands,
		persister: persister,
		producer:  producer,
		topic:     topic,
		probe:     probe,
		logger:    log,
		now:       time.Now,
	}
}

func (s *Service) Run(ctx context.Context) *RunReport {
	report := &RunReport{StartedAt: s.now()}
	defer func() { report.FinishedAt = s.now() }()

	tenants, err := s.configs.ListEnabled(ctx)
	if err != nil {
		s.logger.ErrorwCtx(ctx, "Failed to list enabled tenants", "error", err)
		s.probe.SetUnhealthy()
		report.recordFailure("", "", "", err)
		return report
	}
	report.Tenants = len(tenants)

	for i := range tenants {
		s.runTenant(ctx, &tenants[i], report)
	}

	return report
}

// runTenant polls one tenant mailbox and processes its emails in the order
// the mailbox returned them. A connectivity error listing the mailbox aborts
// this tenant only.
func (s *Service) runTenant(ctx context.Context, cfg *emailconf.TenantEmailConfig, report *RunReport) {
	ctx = logging.WithTenant(ctx, cfg.Namespace, cfg.MunicipalityID)
	start := s.now()

	emails, err := s.mail.ListEmails(ctx, cfg.Namespace, cfg.MunicipalityID)
	if err != nil {
		s.logger.ErrorwCtx(ctx, "Failed to list mailbox, skipping tenant", "error", err)
		s.probe.SetUnhealthy()
		report.recordFailure(cfg.Namespace, cfg.MunicipalityID, "", err)
		return
	}

	for i := range emails {
		email := &emails[i]
		emailCtx := logging.WithEmailID(ctx, email.ID)
		emailStart := s.now()

		if err := s.processEmail(emailCtx, cfg, email); err != nil {
			s.logger.ErrorwCtx(emailCtx, "Failed to process email", "error", err)
			s.probe.SetUnhealthy()
			report.recordFailure(cfg.Namespace, cfg.MunicipalityID, email.ID, err)
			metrics.EmailsProcessedTotal.WithLabelValues(cfg.Namespace, cfg.MunicipalityID, "failed").Inc()
			metrics.ObserveEmailProcessingDuration(s.now().Sub(emailStart), "failed")
			continue
		}

		report.Processed++
		metrics.EmailsProcessedTotal.WithLabelValues(cfg.Namespace, cfg.MunicipalityID, "success").Inc()
		metrics.ObserveEmailProcessingDuration(s.now().Sub(emailStart), "success")
	}

	metrics.ObserveTenantBatchDuration(cfg.Namespace, cfg.MunicipalityID, s.now().Sub(start))
}

// processEmail handles a single inbound email end to end. The email is
// deleted from the mailbox only after every other step has succeeded, so a
// partial failure is retried on the next run.
func (s *Service) processEmail(ctx context.Context, cfg *emailconf.TenantEmailConfig, email *mailbox.InboundEmail) error {
	e, created, err := s.matcher.Resolve(ctx, cfg, email)
	if err != nil {
		return err
	}
	if created {
		s.publish(ctx, models.NewEvent(models.EventTypeErrandCreated, cfg.Namespace, cfg.MunicipalityID,
			map[string]interface{}{"errand_number": e.ErrandNumber, "email_id": email.ID}))
	}

	switch Decide(cfg, e, s.now()) {
	case ActionReject:
		reply := ComposeAutoReply(email, cfg)
		if err := s.messaging.SendEmail(ctx, reply); err != nil {
			return err
		}
		metrics.AutoRepliesTotal.WithLabelValues("rejection").Inc()
		s.logger.InfowCtx(ctx, "Sent closing auto-reply",
			"errand_number", e.ErrandNumber, "recipient", reply.Recipient)
		s.publish(ctx, models.NewEvent(models.EventTypeAutoReplySent, cfg.Namespace, cfg.MunicipalityID,
			map[string]interface{}{"errand_number": e.ErrandNumber, "recipient": reply.Recipient}))

	case ActionTransition:
		if err := s.errands.UpdateStatus(ctx, e.ID, *cfg.StatusChangeTo); err != nil {
			return err
		}
		metrics.StatusTransitionsTotal.WithLabelValues(e.Status, *cfg.StatusChangeTo).Inc()
		s.logger.InfowCtx(ctx, "Transitioned errand status",
			"errand_number", e.ErrandNumber, "from", e.Status, "to", *cfg.StatusChangeTo)
		s.publish(ctx, models.NewEvent(models.EventTypeErrandStatusChanged, cfg.Namespace, cfg.MunicipalityID,
			map[string]interface{}{"errand_number": e.ErrandNumber, "from": e.Status, "to": *cfg.StatusChangeTo}))
	}

	if err := s.persister.Persist(ctx, cfg, email, e.ErrandNumber); err != nil {
		return err
	}

	if err := s.mail.DeleteEmail(ctx, cfg.MunicipalityID, email.ID); err != nil {
		return err
	}

	s.publish(ctx, models.NewEvent(models.EventTypeEmailProcessed, cfg.Namespace, cfg.MunicipalityID,
		map[string]interface{}{"errand_number": e.ErrandNumber, "email_id": email.ID}))

	return nil
}

// publish is best effort: a broker failure never fails the email.
func (s *Service) publish(ctx context.Context, event models.Event) {
	if err := s.producer.Publish(ctx, s.topic, event); err != nil {
		s.logger.WarnwCtx(ctx, "Failed to publish event",
			"event_type", event.Type, "error", err)
	}
}
