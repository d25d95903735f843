package errand

import "time"

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

const ContactChannelEmail = "EMAIL"

// Errand is a case record. The ingestion pipeline creates errands and mutates
// status/touched; everything else belongs to the case-management CRUD.
type Errand struct {
	ID             string         `json:"id"`
	Namespace      string         `json:"namespace"`
	MunicipalityID string         `json:"municipalityId"`
	ErrandNumber   string         `json:"errandNumber"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Status         string         `json:"status"`
	Priority       string         `json:"priority"`
	Channel        string         `json:"channel"`
	Classification Classification `json:"classification"`
	Labels         []string       `json:"labels,omitempty"`
	Stakeholders   []Stakeholder  `json:"stakeholders,omitempty"`
	Touched        time.Time      `json:"touched"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type Classification struct {
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
}

type Stakeholder struct {
	ID              string           `json:"id"`
	Role            string           `json:"role"`
	ContactChannels []ContactChannel `json:"contactChannels,omitempty"`
}

type ContactChannel struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
