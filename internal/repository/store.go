package repository

import (
	"context"
	"time"

	"github.com/laprovidence/livestock/internal/domain/models"
)

// AnimalFilter narrows animal listings. Zero values match everything.
type AnimalFilter struct {
	Status  models.AnimalStatus
	Species models.Species
	Sex     models.Sex
}

// MedicalFilter narrows medical record listings.
type MedicalFilter struct {
	AnimalID     string
	ReminderFrom time.Time
	ReminderTo   time.Time
}

// ReproductionFilter narrows reproduction record listings.
type ReproductionFilter struct {
	AnimalID     string
	ExpectedFrom time.Time
	ExpectedTo   time.Time
	OpenOnly     bool
}

// FinancialFilter narrows financial record listings. From and To are
// inclusive day bounds.
type FinancialFilter struct {
	From time.Time
	To   time.Time
}

// HistoryFilter narrows ledger listings.
type HistoryFilter struct {
	AnimalID string
}

// Store is the entity-store boundary: one flat record collection per entity
// type, each record addressable by its unique id. Implementations return
// *models.NotFoundError for point lookups that miss.
type Store interface {
	InsertAnimal(ctx context.Context, animal models.Animal) error
	GetAnimal(ctx context.Context, id string) (models.Animal, error)
	ListAnimals(ctx context.Context, filter AnimalFilter) ([]models.Animal, error)
	ReplaceAnimal(ctx context.Context, animal models.Animal) error
	DeleteAnimal(ctx context.Context, id string) error
	CountAnimals(ctx context.Context) (int64, error)

	InsertMedicalRecord(ctx context.Context, record models.MedicalRecord) error
	ListMedicalRecords(ctx context.Context, filter MedicalFilter) ([]models.MedicalRecord, error)
	DeleteMedicalRecordsByAnimal(ctx context.Context, animalID string) error

	InsertReproductionRecord(ctx context.Context, record models.ReproductionRecord) error
	GetReproductionRecord(ctx context.Context, id string) (models.ReproductionRecord, error)
	ListReproductionRecords(ctx context.Context, filter ReproductionFilter) ([]models.ReproductionRecord, error)
	ReplaceReproductionRecord(ctx context.Context, record models.ReproductionRecord) error
	DeleteReproductionRecordsByAnimal(ctx context.Context, animalID string) error

	InsertSaleRecord(ctx context.Context, record models.SaleRecord) error
	ListSaleRecords(ctx context.Context) ([]models.SaleRecord, error)
	DeleteSaleRecordsByAnimal(ctx context.Context, animalID string) error

	InsertFinancialRecord(ctx context.Context, record models.FinancialRecord) error
	ListFinancialRecords(ctx context.Context, filter FinancialFilter) ([]models.FinancialRecord, error)
	DeleteFinancialRecordsByAnimal(ctx context.Context, animalID string) error

	InsertHistoryEvent(ctx context.Context, event models.HistoryEvent) error
	ListHistoryEvents(ctx context.Context, filter HistoryFilter) ([]models.HistoryEvent, error)
	DeleteHistoryEventsByAnimal(ctx context.Context, animalID string) error

	InsertHerdSnapshot(ctx context.Context, snapshot models.HerdSnapshot) error
}
