package models

import "time"

// SpeciesCount breaks a species population down by sex.
type SpeciesCount struct {
	Count   int `json:"count"`
	Males   int `json:"males"`
	Females int `json:"females"`
}

// PopulationStats summarizes the herd at a point in time. Counts cover active
// animals only, except the explicitly labelled sold and total fields.
type PopulationStats struct {
	TotalActive  int                      `bson:"total_active" json:"total_active"`
	TotalAnimals int                      `bson:"total_animals" json:"total_animals"`
	Males        int                      `bson:"males" json:"males"`
	Females      int                      `bson:"females" json:"females"`
	BySpecies    map[Species]SpeciesCount `bson:"by_species" json:"by_species"`
	Breeding     int                      `bson:"breeding" json:"breeding"`
	Pregnant     int                      `bson:"pregnant" json:"pregnant"`
	Sold         int                      `bson:"sold" json:"sold"`
	GeneratedAt  time.Time                `bson:"generated_at" json:"generated_at"`
}

// FinancialSummary aggregates transactions over an inclusive date range.
type FinancialSummary struct {
	Start        time.Time                     `bson:"start" json:"start"`
	End          time.Time                     `bson:"end" json:"end"`
	TotalRevenue float64                       `bson:"total_revenue" json:"total_revenue"`
	TotalExpense float64                       `bson:"total_expense" json:"total_expense"`
	Net          float64                       `bson:"net" json:"net"`
	ByKind       map[TransactionKind]float64   `bson:"by_kind" json:"by_kind"`
	ByCategory   map[FinancialCategory]float64 `bson:"by_category" json:"by_category"`
	Entries      int                           `bson:"entries" json:"entries"`
}

// ReminderKind distinguishes reminder sources.
type ReminderKind string

const (
	ReminderMedical       ReminderKind = "medical"
	ReminderExpectedBirth ReminderKind = "expected_birth"
)

// Reminder is one due-soon item surfaced by the reminder window query,
// enriched with a denormalized summary of its subject animal.
type Reminder struct {
	Kind        ReminderKind `json:"kind"`
	RecordID    string       `json:"record_id"`
	AnimalID    string       `json:"animal_id"`
	AnimalName  string       `json:"animal_name"`
	AnimalBreed string       `json:"animal_breed"`
	DueDate     time.Time    `json:"due_date"`
	Description string       `json:"description"`
}

// HerdSnapshot is the scheduled daily roll-up persisted for trend tracking.
type HerdSnapshot struct {
	Date       time.Time        `bson:"date" json:"date"`
	Population PopulationStats  `bson:"population" json:"population"`
	Finances   FinancialSummary `bson:"finances" json:"finances"`
	CreatedAt  time.Time        `bson:"created_at" json:"created_at"`
}
