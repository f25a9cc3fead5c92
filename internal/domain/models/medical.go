package models

import (
	"fmt"
	"time"
)

// MedicalType enumerates kinds of veterinary interventions.
type MedicalType string

const (
	MedicalVaccination MedicalType = "vaccination"
	MedicalTreatment   MedicalType = "treatment"
	MedicalCheckup     MedicalType = "checkup"
	MedicalSurgery     MedicalType = "surgery"
	MedicalOther       MedicalType = "other"
)

// ParseMedicalType validates a raw intervention type tag.
func ParseMedicalType(raw string) (MedicalType, error) {
	switch MedicalType(raw) {
	case MedicalVaccination, MedicalTreatment, MedicalCheckup, MedicalSurgery, MedicalOther:
		return MedicalType(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown medical type %q", ErrInvalidInput, raw)
	}
}

// MedicalRecord captures a single veterinary intervention on an animal.
// Immutable once created apart from administrative correction.
type MedicalRecord struct {
	ID            string      `bson:"id" json:"id"`
	AnimalID      string      `bson:"animal_id" json:"animal_id"`
	Type          MedicalType `bson:"type" json:"type"`
	Description   string      `bson:"description" json:"description"`
	Veterinarian  string      `bson:"veterinarian,omitempty" json:"veterinarian,omitempty"`
	Cost          float64     `bson:"cost,omitempty" json:"cost,omitempty"`
	Date          time.Time   `bson:"date" json:"date"`
	NextVisitDate time.Time   `bson:"next_visit_date,omitempty" json:"next_visit_date,omitempty"`
	Notes         string      `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
}

// MedicalCreate carries the caller-supplied fields for a new intervention.
type MedicalCreate struct {
	AnimalID      string    `json:"animal_id" binding:"required"`
	Type          string    `json:"type" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	Veterinarian  string    `json:"veterinarian"`
	Cost          float64   `json:"cost"`
	Date          time.Time `json:"date"`
	NextVisitDate time.Time `json:"next_visit_date"`
	Notes         string    `json:"notes"`
}
