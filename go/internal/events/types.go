// Package events publishes committed roster mutations to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Event types.
const (
	AthleteAdded     = "athlete.added"
	AthleteEdited    = "athlete.edited"
	AthleteDeleted   = "athlete.deleted"
	TeamFormed       = "team.formed"
	TeamDisbanded    = "team.disbanded"
	TeamUpdated      = "team.updated"
	SessionScheduled = "session.scheduled"
	SessionCancelled = "session.cancelled"
)

// Event is a committed roster mutation.
type Event struct {
	ID        uuid.UUID
	Type      string
	Team      string // team name, empty for athlete events
	Payload   []byte
	CreatedAt time.Time
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// New builds an event with a fresh ID and the clock's current time.
func New(clock clockwork.Clock, eventType, team string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Team:      team,
		Payload:   data,
		CreatedAt: clock.Now().UTC(),
	}, nil
}

// envelope is the wire form shared by every publisher.
type envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Team      string          `json:"team,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

func marshalEnvelope(event Event) ([]byte, error) {
	data, err := json.Marshal(envelope{
		EventID:   event.ID.String(),
		EventType: event.Type,
		Team:      event.Team,
		Timestamp: event.CreatedAt,
		Payload:   json.RawMessage(event.Payload),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
