package ingestion

import (
	"context"
	"strings"

	"casemail/internal/constants"
	"casemail/internal/emailconf"
	"casemail/internal/errand"
	"casemail/internal/logger"
	"casemail/internal/mailbox"
	pkgerrors "casemail/pkg/errors"
	"casemail/pkg/metrics"
)

// Matcher resolves an inbound email to an errand, creating one when the
// subject carries no token or the token matches nothing in the tenant.
type Matcher struct {
	errands errand.Repository
	logger  logger.Logger
}

func NewMatcher(errands errand.Repository, log logger.Logger) *Matcher {
	return &Matcher{
		errands: errands,
		logger:  log,
	}
}

// Resolve returns the errand the email belongs to and whether it was newly
// created. A token that resolves to no errand is not an error.
func (m *Matcher) Resolve(ctx context.Context, cfg *emailconf.TenantEmailConfig, email *mailbox.InboundEmail) (*errand.Errand, bool, error) {
	if token, ok := ParseSubject(email.Subject); ok {
		existing, err := m.errands.FindByNumber(ctx, cfg.Namespace, cfg.MunicipalityID, token)
		if err == nil {
			return existing, false, nil
		}
		if !pkgerrors.IsNotFound(err) {
			return nil, false, err
		}
		m.logger.DebugwCtx(ctx, "Subject token matched no errand, creating new",
			"token", token)
	}

	created, err := m.createFromEmail(ctx, cfg, email)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (m *Matcher) createFromEmail(ctx context.Context, cfg *emailconf.TenantEmailConfig, email *mailbox.InboundEmail) (*errand.Errand, error) {
	e := &errand.Errand{
		Namespace:      cfg.Namespace,
		MunicipalityID: cfg.MunicipalityID,
		Title:          email.Subject,
		Description:    email.Message,
		Status:         cfg.StatusForNew,
		Priority:       constants.DefaultErrandPriority,
		Channel:        cfg.ErrandChannel,
		Classification: errand.Classification{
			Category: email.Metadata[constants.MetadataKeyClassificationCategory],
			Type:     email.Metadata[constants.MetadataKeyClassificationType],
		},
	}

	if labels := email.Metadata[constants.MetadataKeyLabels]; labels != "" {
		e.Labels = strings.Split(labels, constants.LabelSeparator)
	}

	if cfg.AddSenderAsStakeholder {
		e.Stakeholders = []errand.Stakeholder{{
			Role: cfg.StakeholderRole,
			ContactChannels: []errand.ContactChannel{{
				Type:  errand.ContactChannelEmail,
				Value: email.Sender,
			}},
		}}
	}

	if err := m.errands.Create(ctx, e); err != nil {
		return nil, err
	}

	metrics.ErrandsCreatedTotal.WithLabelValues(cfg.Namespace, cfg.MunicipalityID).Inc()
	m.logger.InfowCtx(ctx, "Created errand from inbound email",
		"errand_number", e.ErrandNumber,
		"email_id", email.ID,
	)

	return e, nil
}
