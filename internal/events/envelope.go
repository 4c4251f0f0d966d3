// Package events publishes change notifications for orders, reservations and
// contact messages, and consumes them on the other side of the topic.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated          = "OrderCreated"
	EventOrderUpdated          = "OrderUpdated"
	EventOrderDeleted          = "OrderDeleted"
	EventReservationCreated    = "ReservationCreated"
	EventReservationUpdated    = "ReservationUpdated"
	EventReservationDeleted    = "ReservationDeleted"
	EventContactMessageCreated = "ContactMessageCreated"
)

const (
	Version = 1

	HeaderEventType    = "x-event-type"
	HeaderEventVersion = "x-event-version"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // entity id
	Payload       json.RawMessage `json:"payload"`
}

// DeletedPayload is the payload of *Deleted events.
type DeletedPayload struct {
	ID string `json:"id"`
}

func newEnvelope(eventType, producer, traceID, entityID string, payload []byte) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  Version,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: entityID,
		Payload:       payload,
	}
}
