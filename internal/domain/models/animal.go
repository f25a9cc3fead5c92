package models

import (
	"fmt"
	"time"
)

// Species enumerates the kinds of livestock the farm keeps.
type Species string

const (
	SpeciesPoultry Species = "poultry"
	SpeciesSwine   Species = "swine"
)

// ParseSpecies validates a raw species tag.
func ParseSpecies(raw string) (Species, error) {
	switch Species(raw) {
	case SpeciesPoultry, SpeciesSwine:
		return Species(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown species %q", ErrInvalidInput, raw)
	}
}

// Sex enumerates animal sexes.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex validates a raw sex tag.
func ParseSex(raw string) (Sex, error) {
	switch Sex(raw) {
	case SexMale, SexFemale:
		return Sex(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, raw)
	}
}

// AnimalStatus tracks where an animal stands in its lifecycle. Active is the
// only state with outgoing transitions; all others are terminal.
type AnimalStatus string

const (
	StatusActive      AnimalStatus = "active"
	StatusSold        AnimalStatus = "sold"
	StatusDead        AnimalStatus = "dead"
	StatusSlaughtered AnimalStatus = "slaughtered"
)

// ParseAnimalStatus validates a raw status tag.
func ParseAnimalStatus(raw string) (AnimalStatus, error) {
	switch AnimalStatus(raw) {
	case StatusActive, StatusSold, StatusDead, StatusSlaughtered:
		return AnimalStatus(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
	}
}

// Terminal reports whether the status admits no further lifecycle transitions.
func (s AnimalStatus) Terminal() bool {
	return s == StatusSold || s == StatusDead || s == StatusSlaughtered
}

// ReproductionStatus tracks an animal's position in the reproduction cycle.
// The cycle has no terminal state.
type ReproductionStatus string

const (
	ReproAvailable ReproductionStatus = "available"
	ReproBreeding  ReproductionStatus = "breeding"
	ReproPregnant  ReproductionStatus = "pregnant"
	ReproLactating ReproductionStatus = "lactating"
	ReproResting   ReproductionStatus = "resting"
)

// ParseReproductionStatus validates a raw reproduction status tag.
func ParseReproductionStatus(raw string) (ReproductionStatus, error) {
	switch ReproductionStatus(raw) {
	case ReproAvailable, ReproBreeding, ReproPregnant, ReproLactating, ReproResting:
		return ReproductionStatus(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown reproduction status %q", ErrInvalidInput, raw)
	}
}

// Animal is a single head of livestock tracked by the farm.
type Animal struct {
	ID                 string             `bson:"id" json:"id"`
	Name               string             `bson:"name,omitempty" json:"name,omitempty"`
	Species            Species            `bson:"species" json:"species"`
	Breed              string             `bson:"breed" json:"breed"`
	Sex                Sex                `bson:"sex" json:"sex"`
	BirthDate          time.Time          `bson:"birth_date" json:"birth_date"`
	WeightKg           float64            `bson:"weight_kg" json:"weight_kg"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status             AnimalStatus       `bson:"status" json:"status"`
	ReproductionStatus ReproductionStatus `bson:"reproduction_status" json:"reproduction_status"`
	SaleDate           time.Time          `bson:"sale_date,omitempty" json:"sale_date,omitempty"`
	SalePrice          float64            `bson:"sale_price,omitempty" json:"sale_price,omitempty"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}

// DisplayName returns the animal's name, falling back to a species-plus-id-suffix
// label for unnamed animals.
func (a Animal) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	suffix := a.ID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return fmt.Sprintf("%s #%s", a.Species, suffix)
}

// AnimalCreate carries the caller-supplied fields for a new intake.
type AnimalCreate struct {
	Name      string    `json:"name"`
	Species   string    `json:"species" binding:"required"`
	Breed     string    `json:"breed"`
	Sex       string    `json:"sex" binding:"required"`
	BirthDate time.Time `json:"birth_date"`
	WeightKg  float64   `json:"weight_kg"`
	Notes     string    `json:"notes"`
}

// AnimalUpdate carries a partial edit of non-lifecycle fields. Status is
// accepted only when it matches the stored value; lifecycle transitions go
// through recorded actions.
type AnimalUpdate struct {
	Name     *string  `json:"name"`
	Breed    *string  `json:"breed"`
	WeightKg *float64 `json:"weight_kg"`
	Notes    *string  `json:"notes"`
	Status   *string  `json:"status"`
}
