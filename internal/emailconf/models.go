package emailconf

import "time"

// TenantEmailConfig is the per-tenant integration configuration. One row per
// (namespace, municipality id) pair.
type TenantEmailConfig struct {
	ID                           string    `json:"id"`
	Namespace                    string    `json:"namespace"`
	MunicipalityID               string    `json:"municipalityId"`
	Enabled                      bool      `json:"enabled"`
	StatusForNew                 string    `json:"statusForNew"`
	InactiveStatus               *string   `json:"inactiveStatus,omitempty"`
	DaysOfInactivityBeforeReject *int      `json:"daysOfInactivityBeforeReject,omitempty"`
	TriggerStatusChangeOn        *string   `json:"triggerStatusChangeOn,omitempty"`
	StatusChangeTo               *string   `json:"statusChangeTo,omitempty"`
	ErrandClosedEmailSender      string    `json:"errandClosedEmailSender"`
	ErrandClosedEmailSubject     string    `json:"errandClosedEmailSubject"`
	ErrandClosedEmailTemplate    string    `json:"errandClosedEmailTemplate"`
	AddSenderAsStakeholder       bool      `json:"addSenderAsStakeholder"`
	StakeholderRole              string    `json:"stakeholderRole"`
	ErrandChannel                string    `json:"errandChannel"`
	CreatedAt                    time.Time `json:"createdAt"`
	UpdatedAt                    time.Time `json:"updatedAt"`
}
