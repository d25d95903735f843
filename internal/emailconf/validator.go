package emailconf

import (
	"fmt"

	pkgerrors "casemail/pkg/errors"
)

// Validate enforces the write-time invariants of a tenant email config. The
// pipeline itself tolerates inconsistent rows (a half-set transition rule
// simply never matches), so this is the only place the invariants are
// enforced.
func Validate(cfg *TenantEmailConfig) error {
	if cfg.Namespace == "" {
		return validationError("namespace is required")
	}
	if cfg.MunicipalityID == "" {
		return validationError("municipalityId is required")
	}
	if cfg.StatusForNew == "" {
		return validationError("statusForNew is required")
	}

	if cfg.TriggerStatusChangeOn != nil && cfg.StatusChangeTo == nil {
		return validationError("statusChangeTo is required when triggerStatusChangeOn is set")
	}

	if cfg.DaysOfInactivityBeforeReject != nil && *cfg.DaysOfInactivityBeforeReject < 0 {
		return validationError(fmt.Sprintf("daysOfInactivityBeforeReject must be non-negative, got %d",
			*cfg.DaysOfInactivityBeforeReject))
	}

	if cfg.InactiveStatus != nil && *cfg.InactiveStatus == "" {
		return validationError("inactiveStatus must be non-empty when set")
	}

	if cfg.Enabled {
		if cfg.ErrandClosedEmailSender == "" {
			return validationError("errandClosedEmailSender is required when enabled")
		}
		if cfg.ErrandClosedEmailTemplate == "" {
			return validationError("errandClosedEmailTemplate is required when enabled")
		}
	}

	if cfg.AddSenderAsStakeholder && cfg.StakeholderRole == "" {
		return validationError("stakeholderRole is required when addSenderAsStakeholder is set")
	}

	return nil
}

func validationError(msg string) error {
	return pkgerrors.ErrValidation.WithDetail("message", msg)
}
