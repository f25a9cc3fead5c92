// Package ledger owns the append-only history of domain events. Every
// state-changing action writes exactly one entry here; entries are never
// revised, and the only removal path is the cascade tied to deleting the
// subject animal.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
)

// Ledger records and serves history events.
type Ledger struct {
	store  repository.Store
	logger *zap.Logger
}

// New wires a ledger over the provided store.
func New(store repository.Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: store, logger: logger}
}

// Append assigns an id and creation timestamp when absent, stores the entry
// and returns it.
func (l *Ledger) Append(ctx context.Context, event models.HistoryEvent) (models.HistoryEvent, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Date.IsZero() {
		event.Date = time.Now().UTC()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := l.store.InsertHistoryEvent(ctx, event); err != nil {
		return models.HistoryEvent{}, fmt.Errorf("append history event: %w", err)
	}

	l.logger.Debug("history event appended",
		zap.String("event_id", event.ID),
		zap.String("animal_id", event.AnimalID),
		zap.String("event_type", string(event.EventType)))

	return event, nil
}

// List returns events ordered by event date descending, insertion order as
// tiebreak. An empty animal id yields the herd-wide feed; a non-empty id must
// reference an existing animal.
func (l *Ledger) List(ctx context.Context, animalID string) ([]models.HistoryEvent, error) {
	if animalID != "" {
		if _, err := l.store.GetAnimal(ctx, animalID); err != nil {
			return nil, err
		}
	}
	return l.store.ListHistoryEvents(ctx, repository.HistoryFilter{AnimalID: animalID})
}

// DeleteByAnimal removes all entries about the given animal. Used only by the
// animal deletion cascade.
func (l *Ledger) DeleteByAnimal(ctx context.Context, animalID string) error {
	return l.store.DeleteHistoryEventsByAnimal(ctx, animalID)
}
