package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casemail/internal/emailconf"
	"casemail/internal/errand"
	"casemail/internal/logger"
	"casemail/internal/mailbox"
)

func tenantConfig() *emailconf.TenantEmailConfig {
	return &emailconf.TenantEmailConfig{
		Namespace:      "KC",
		MunicipalityID: "2281",
		Enabled:        true,
		StatusForNew:   "NEW",
		ErrandChannel:  "EMAIL",
	}
}

func TestResolveMatchesExistingErrand(t *testing.T) {
	repo := newFakeErrandRepo()
	existing := &errand.Errand{ID: "e1", ErrandNumber: "KC-2026-000001", Status: "ONGOING"}
	repo.errands[existing.ErrandNumber] = existing

	m := NewMatcher(repo, logger.NopLogger())
	email := &mailbox.InboundEmail{Subject: "Re: #KC-2026-000001 question"}

	e, created, err := m.Resolve(context.Background(), tenantConfig(), email)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, e)
	assert.Empty(t, repo.created)
}

func TestResolveCreatesWhenTokenUnknown(t *testing.T) {
	repo := newFakeErrandRepo()
	m := NewMatcher(repo, logger.NopLogger())
	email := &mailbox.InboundEmail{Subject: "Re: #KC-1999-000009 old case"}

	e, created, err := m.Resolve(context.Background(), tenantConfig(), email)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, repo.created, 1)
	assert.NotEqual(t, "KC-1999-000009", e.ErrandNumber)
}

func TestResolveCreatesWhenNoToken(t *testing.T) {
	repo := newFakeErrandRepo()
	m := NewMatcher(repo, logger.NopLogger())
	email := &mailbox.InboundEmail{
		Subject:    "Broken street light",
		Sender:     "citizen@example.com",
		Message:    "The light outside my house is broken.",
		ReceivedAt: time.Now(),
		Metadata: map[string]string{
			"classification.category": "INFRASTRUCTURE",
			"classification.type":     "LIGHTING",
			"labels":                  "a;b",
		},
	}

	e, created, err := m.Resolve(context.Background(), tenantConfig(), email)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Broken street light", e.Title)
	assert.Equal(t, "The light outside my house is broken.", e.Description)
	assert.Equal(t, "NEW", e.Status)
	assert.Equal(t, errand.PriorityMedium, e.Priority)
	assert.Equal(t, "EMAIL", e.Channel)
	assert.Equal(t, "INFRASTRUCTURE", e.Classification.Category)
	assert.Equal(t, "LIGHTING", e.Classification.Type)
	assert.Equal(t, []string{"a", "b"}, e.Labels)
	assert.Empty(t, e.Stakeholders)
}

func TestResolveAddsSenderAsStakeholder(t *testing.T) {
	repo := newFakeErrandRepo()
	m := NewMatcher(repo, logger.NopLogger())

	cfg := tenantConfig()
	cfg.AddSenderAsStakeholder = true
	cfg.StakeholderRole = "APPLICANT"

	email := &mailbox.InboundEmail{
		Subject: "New case",
		Sender:  "citizen@example.com",
	}

	e, _, err := m.Resolve(context.Background(), cfg, email)
	require.NoError(t, err)
	require.Len(t, e.Stakeholders, 1)
	assert.Equal(t, "APPLICANT", e.Stakeholders[0].Role)
	require.Len(t, e.Stakeholders[0].ContactChannels, 1)
	assert.Equal(t, errand.ContactChannelEmail, e.Stakeholders[0].ContactChannels[0].Type)
	assert.Equal(t, "citizen@example.com", e.Stakeholders[0].ContactChannels[0].Value)
}

func TestResolvePropagatesLookupError(t *testing.T) {
	repo := newFakeErrandRepo()
	repo.findErr = errors.New("connection refused")

	m := NewMatcher(repo, logger.NopLogger())
	email := &mailbox.InboundEmail{Subject: "Re: #KC-2026-000001"}

	_, _, err := m.Resolve(context.Background(), tenantConfig(), email)
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}
