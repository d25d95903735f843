package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"casemail/internal/emailconf"
	"casemail/internal/errand"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestDecide(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  emailconf.TenantEmailConfig
		e    errand.Errand
		want Action
	}{
		{
			name: "reject when errand inactive past threshold",
			cfg: emailconf.TenantEmailConfig{
				InactiveStatus:               strPtr("SOLVED"),
				DaysOfInactivityBeforeReject: intPtr(5),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now.AddDate(0, 0, -6)},
			want: ActionReject,
		},
		{
			name: "no reject when touched recently",
			cfg: emailconf.TenantEmailConfig{
				InactiveStatus:               strPtr("SOLVED"),
				DaysOfInactivityBeforeReject: intPtr(5),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now.AddDate(0, 0, -4)},
			want: ActionNone,
		},
		{
			name: "transition on trigger status",
			cfg: emailconf.TenantEmailConfig{
				TriggerStatusChangeOn: strPtr("SOLVED"),
				StatusChangeTo:        strPtr("ONGOING"),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now},
			want: ActionTransition,
		},
		{
			name: "rejection wins over transition",
			cfg: emailconf.TenantEmailConfig{
				InactiveStatus:               strPtr("SOLVED"),
				DaysOfInactivityBeforeReject: intPtr(5),
				TriggerStatusChangeOn:        strPtr("SOLVED"),
				StatusChangeTo:               strPtr("ONGOING"),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now.AddDate(0, 0, -10)},
			want: ActionReject,
		},
		{
			name: "transition fires when not old enough to reject",
			cfg: emailconf.TenantEmailConfig{
				InactiveStatus:               strPtr("SOLVED"),
				DaysOfInactivityBeforeReject: intPtr(5),
				TriggerStatusChangeOn:        strPtr("SOLVED"),
				StatusChangeTo:               strPtr("ONGOING"),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now.AddDate(0, 0, -1)},
			want: ActionTransition,
		},
		{
			name: "status mismatch means no action",
			cfg: emailconf.TenantEmailConfig{
				InactiveStatus:               strPtr("SOLVED"),
				DaysOfInactivityBeforeReject: intPtr(5),
				TriggerStatusChangeOn:        strPtr("SOLVED"),
				StatusChangeTo:               strPtr("ONGOING"),
			},
			e:    errand.Errand{Status: "ONGOING", Touched: now.AddDate(0, 0, -10)},
			want: ActionNone,
		},
		{
			name: "nil inactive status disables rejection",
			cfg: emailconf.TenantEmailConfig{
				DaysOfInactivityBeforeReject: intPtr(5),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now.AddDate(0, 0, -10)},
			want: ActionNone,
		},
		{
			name: "nil days disables rejection",
			cfg: emailconf.TenantEmailConfig{
				InactiveStatus: strPtr("SOLVED"),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now.AddDate(0, 0, -10)},
			want: ActionNone,
		},
		{
			name: "trigger without target never matches",
			cfg: emailconf.TenantEmailConfig{
				TriggerStatusChangeOn: strPtr("SOLVED"),
			},
			e:    errand.Errand{Status: "SOLVED", Touched: now},
			want: ActionNone,
		},
		{
			name: "empty config means no action",
			cfg:  emailconf.TenantEmailConfig{},
			e:    errand.Errand{Status: "NEW", Touched: now},
			want: ActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(&tt.cfg, &tt.e, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
