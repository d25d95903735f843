package ingestion

import (
	"time"

	"casemail/internal/emailconf"
	"casemail/internal/errand"
)

// Action is the single lifecycle action fired for an errand receiving email.
type Action int

const (
	ActionNone Action = iota
	// ActionReject sends the closing auto-reply; errand status is untouched.
	ActionReject
	// ActionTransition moves the errand to the configured follow-up status.
	ActionTransition
)

// Decide evaluates the tenant lifecycle rules against an errand. Rejection is
// checked first and wins when both rules match; at most one action fires. A
// config with triggerStatusChangeOn but no statusChangeTo never matches.
func Decide(cfg *emailconf.TenantEmailConfig, e *errand.Errand, now time.Time) Action {
	if cfg.InactiveStatus != nil && e.Status == *cfg.InactiveStatus &&
		cfg.DaysOfInactivityBeforeReject != nil {
		cutoff := now.AddDate(0, 0, -*cfg.DaysOfInactivityBeforeReject)
		if e.Touched.Before(cutoff) {
			return ActionReject
		}
	}

	if cfg.TriggerStatusChangeOn != nil && cfg.StatusChangeTo != nil &&
		e.Status == *cfg.TriggerStatusChangeOn {
		return ActionTransition
	}

	return ActionNone
}
