package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope for ingestion domain events published to Kafka.
type Event struct {
	ID             string                 `json:"id"`
	Type           string                 `json:"type"`
	Namespace      string                 `json:"namespace"`
	MunicipalityID string                 `json:"municipality_id"`
	Timestamp      time.Time              `json:"timestamp"`
	Payload        map[string]interface{} `json:"payload"`
}

const (
	EventTypeErrandCreated       = "errand.created"
	EventTypeErrandStatusChanged = "errand.status_changed"
	EventTypeAutoReplySent       = "autoreply.sent"
	EventTypeEmailProcessed      = "email.processed"
)

func NewEvent(eventType, namespace, municipalityID string, payload map[string]interface{}) Event {
	return Event{
		ID:             uuid.New().String(),
		Type:           eventType,
		Namespace:      namespace,
		MunicipalityID: municipalityID,
		Timestamp:      time.Now().UTC(),
		Payload:        payload,
	}
}
