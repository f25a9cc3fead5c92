package models

import (
	"fmt"
	"time"
)

// EventType enumerates the kinds of facts the history ledger records.
type EventType string

const (
	EventBirth        EventType = "birth"
	EventSale         EventType = "sale"
	EventMedical      EventType = "medical"
	EventReproduction EventType = "reproduction"
	EventFeeding      EventType = "feeding"
	EventOther        EventType = "other"
)

// ParseEventType validates a raw event kind tag.
func ParseEventType(raw string) (EventType, error) {
	switch EventType(raw) {
	case EventBirth, EventSale, EventMedical, EventReproduction, EventFeeding, EventOther:
		return EventType(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, raw)
	}
}

// HistoryEvent is one immutable entry in the herd's event ledger. Entries are
// never updated; the only removal path is the cascade tied to deleting the
// subject animal.
type HistoryEvent struct {
	ID          string            `bson:"id" json:"id"`
	AnimalID    string            `bson:"animal_id,omitempty" json:"animal_id,omitempty"`
	EventType   EventType         `bson:"event_type" json:"event_type"`
	Title       string            `bson:"title" json:"title"`
	Description string            `bson:"description" json:"description"`
	Date        time.Time         `bson:"date" json:"date"`
	Cost        float64           `bson:"cost,omitempty" json:"cost,omitempty"`
	Metadata    map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt   time.Time         `bson:"created_at" json:"created_at"`
}
