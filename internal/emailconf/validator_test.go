package emailconf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "casemail/pkg/errors"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validConfig() TenantEmailConfig {
	return TenantEmailConfig{
		Namespace:                 "KC",
		MunicipalityID:            "2281",
		Enabled:                   true,
		StatusForNew:              "NEW",
		ErrandClosedEmailSender:   "noreply@municipality.se",
		ErrandClosedEmailTemplate: "This errand is closed.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*TenantEmailConfig)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(cfg *TenantEmailConfig) {},
			wantError: false,
		},
		{
			name:      "missing namespace",
			mutate:    func(cfg *TenantEmailConfig) { cfg.Namespace = "" },
			wantError: true,
		},
		{
			name:      "missing municipality",
			mutate:    func(cfg *TenantEmailConfig) { cfg.MunicipalityID = "" },
			wantError: true,
		},
		{
			name:      "missing status for new",
			mutate:    func(cfg *TenantEmailConfig) { cfg.StatusForNew = "" },
			wantError: true,
		},
		{
			name: "trigger without target status",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.TriggerStatusChangeOn = strPtr("SOLVED")
			},
			wantError: true,
		},
		{
			name: "trigger with target status",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.TriggerStatusChangeOn = strPtr("SOLVED")
				cfg.StatusChangeTo = strPtr("ONGOING")
			},
			wantError: false,
		},
		{
			name: "negative days",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.DaysOfInactivityBeforeReject = intPtr(-1)
			},
			wantError: true,
		},
		{
			name: "empty inactive status",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.InactiveStatus = strPtr("")
			},
			wantError: true,
		},
		{
			name: "enabled without sender",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.ErrandClosedEmailSender = ""
			},
			wantError: true,
		},
		{
			name: "disabled without sender",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.Enabled = false
				cfg.ErrandClosedEmailSender = ""
				cfg.ErrandClosedEmailTemplate = ""
			},
			wantError: false,
		},
		{
			name: "stakeholder without role",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.AddSenderAsStakeholder = true
			},
			wantError: true,
		},
		{
			name: "stakeholder with role",
			mutate: func(cfg *TenantEmailConfig) {
				cfg.AddSenderAsStakeholder = true
				cfg.StakeholderRole = "APPLICANT"
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.wantError {
				assert.Error(t, err)
				assert.True(t, pkgerrors.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
