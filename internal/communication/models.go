package communication

import (
	"time"

	"casemail/internal/mailbox"
)

type Direction string

const (
	DirectionInbound  Direction = "INBOUND"
	DirectionOutbound Direction = "OUTBOUND"
)

const TypeEmail = "EMAIL"

// Communication is the immutable record of one message tied to an errand.
// Rows are append-only; nothing updates a communication after creation.
type Communication struct {
	ID             string                      `json:"id"`
	Namespace      string                      `json:"namespace"`
	MunicipalityID string                      `json:"municipalityId"`
	ErrandNumber   string                      `json:"errandNumber"`
	Direction      Direction                   `json:"direction"`
	Type           string                      `json:"type"`
	Sender         string                      `json:"sender"`
	Target         string                      `json:"target,omitempty"`
	Subject        string                      `json:"subject"`
	Body           string                      `json:"body"`
	Sent           time.Time                   `json:"sent"`
	Headers        map[mailbox.Header][]string `json:"headers,omitempty"`
	Attachments    []Attachment                `json:"attachments,omitempty"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

// Attachment references an email attachment. ForeignID points back at the
// mailbox attachment it came from; BlobKey addresses the payload in the
// blob store.
type Attachment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	ForeignID   string `json:"foreignId"`
	BlobKey     string `json:"-"`
}
