package models

import (
	"fmt"
	"time"
)

// ReproductionEventType enumerates kinds of reproduction events.
type ReproductionEventType string

const (
	ReproEventMating       ReproductionEventType = "mating"
	ReproEventInsemination ReproductionEventType = "insemination"
	ReproEventBirth        ReproductionEventType = "birth"
	ReproEventWeaning      ReproductionEventType = "weaning"
)

// ParseReproductionEventType validates a raw reproduction event tag.
func ParseReproductionEventType(raw string) (ReproductionEventType, error) {
	switch ReproductionEventType(raw) {
	case ReproEventMating, ReproEventInsemination, ReproEventBirth, ReproEventWeaning:
		return ReproductionEventType(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown reproduction event type %q", ErrInvalidInput, raw)
	}
}

// ReproductionRecord tracks a breeding event on a female animal and, once the
// birth is recorded, its outcome.
type ReproductionRecord struct {
	ID                string                `bson:"id" json:"id"`
	FemaleID          string                `bson:"female_id" json:"female_id"`
	MaleID            string                `bson:"male_id,omitempty" json:"male_id,omitempty"`
	EventType         ReproductionEventType `bson:"event_type" json:"event_type"`
	EventDate         time.Time             `bson:"event_date" json:"event_date"`
	ExpectedBirthDate time.Time             `bson:"expected_birth_date,omitempty" json:"expected_birth_date,omitempty"`
	ActualBirthDate   time.Time             `bson:"actual_birth_date,omitempty" json:"actual_birth_date,omitempty"`
	LiveOffspring     int                   `bson:"live_offspring,omitempty" json:"live_offspring,omitempty"`
	DeadOffspring     int                   `bson:"dead_offspring,omitempty" json:"dead_offspring,omitempty"`
	AvgOffspringKg    float64               `bson:"avg_offspring_kg,omitempty" json:"avg_offspring_kg,omitempty"`
	Notes             string                `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time             `bson:"created_at" json:"created_at"`
}

// Open reports whether the breeding record still awaits a birth outcome.
func (r ReproductionRecord) Open() bool {
	return r.ActualBirthDate.IsZero()
}

// BreedingCreate carries the caller-supplied fields for a new breeding event.
type BreedingCreate struct {
	FemaleID          string    `json:"female_id" binding:"required"`
	MaleID            string    `json:"male_id"`
	EventType         string    `json:"event_type"`
	EventDate         time.Time `json:"event_date" binding:"required"`
	ExpectedBirthDate time.Time `json:"expected_birth_date"`
	Notes             string    `json:"notes"`
}

// BirthOutcome carries the caller-supplied outcome of an open breeding record.
type BirthOutcome struct {
	Date           time.Time `json:"date"`
	LiveOffspring  int       `json:"live_offspring"`
	DeadOffspring  int       `json:"dead_offspring"`
	AvgOffspringKg float64   `json:"avg_offspring_kg"`
}
