// Package livestock implements the herd lifecycle: animal intake and edits,
// and the recorded actions (sale, medical, breeding, birth) that drive status
// and reproduction-status transitions. It is the only writer of those fields.
package livestock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
	"github.com/laprovidence/livestock/internal/service/ledger"
)

// Service applies lifecycle transitions. Each transition runs inside a
// per-animal critical section so the read-modify-write-then-ledger sequence
// is atomic relative to other transitions on the same animal.
type Service struct {
	store            repository.Store
	ledger           *ledger.Ledger
	locks            keyedLocks
	cascadeFinancial bool
	logger           *zap.Logger
}

// NewService wires a new lifecycle service. When cascadeFinancial is set,
// deleting an animal also removes financial records that reference it.
func NewService(store repository.Store, ledg *ledger.Ledger, cascadeFinancial bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:            store,
		ledger:           ledg,
		cascadeFinancial: cascadeFinancial,
		logger:           logger,
	}
}

// CreateAnimal registers a new intake with the initial lifecycle states.
func (s *Service) CreateAnimal(ctx context.Context, input models.AnimalCreate) (models.Animal, error) {
	species, err := models.ParseSpecies(input.Species)
	if err != nil {
		return models.Animal{}, err
	}
	sex, err := models.ParseSex(input.Sex)
	if err != nil {
		return models.Animal{}, err
	}

	animal := models.Animal{
		ID:                 uuid.NewString(),
		Name:               input.Name,
		Species:            species,
		Breed:              input.Breed,
		Sex:                sex,
		BirthDate:          input.BirthDate,
		WeightKg:           input.WeightKg,
		Notes:              input.Notes,
		Status:             models.StatusActive,
		ReproductionStatus: models.ReproAvailable,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.store.InsertAnimal(ctx, animal); err != nil {
		return models.Animal{}, fmt.Errorf("create animal: %w", err)
	}

	s.logger.Info("animal registered",
		zap.String("animal_id", animal.ID),
		zap.String("species", string(animal.Species)))

	return animal, nil
}

// GetAnimal returns a single animal by id.
func (s *Service) GetAnimal(ctx context.Context, id string) (models.Animal, error) {
	return s.store.GetAnimal(ctx, id)
}

// ListAnimals returns animals matching the filter.
func (s *Service) ListAnimals(ctx context.Context, filter repository.AnimalFilter) ([]models.Animal, error) {
	return s.store.ListAnimals(ctx, filter)
}

// UpdateAnimal applies a partial edit of non-lifecycle fields. A status value
// different from the stored one is rejected: status only changes through
// recorded actions, so the ledger stays consistent.
func (s *Service) UpdateAnimal(ctx context.Context, id string, update models.AnimalUpdate) (models.Animal, error) {
	unlock := s.locks.acquire(id)
	defer unlock()

	animal, err := s.store.GetAnimal(ctx, id)
	if err != nil {
		return models.Animal{}, err
	}

	if update.Status != nil {
		status, err := models.ParseAnimalStatus(*update.Status)
		if err != nil {
			return models.Animal{}, err
		}
		if status != animal.Status {
			return models.Animal{}, &models.InvalidStateError{
				AnimalID: id,
				Status:   animal.Status,
				Action:   "manually change status of",
			}
		}
	}

	if update.Name != nil {
		animal.Name = *update.Name
	}
	if update.Breed != nil {
		animal.Breed = *update.Breed
	}
	if update.WeightKg != nil {
		animal.WeightKg = *update.WeightKg
	}
	if update.Notes != nil {
		animal.Notes = *update.Notes
	}

	if err := s.store.ReplaceAnimal(ctx, animal); err != nil {
		return models.Animal{}, fmt.Errorf("update animal %s: %w", id, err)
	}
	return animal, nil
}

// DeleteAnimal permanently removes an animal and cascades to its dependent
// records so no orphans survive. Financial records cascade only when the
// service is configured to do so.
func (s *Service) DeleteAnimal(ctx context.Context, id string) error {
	unlock := s.locks.acquire(id)
	defer unlock()

	if _, err := s.store.GetAnimal(ctx, id); err != nil {
		return err
	}

	if err := s.store.DeleteMedicalRecordsByAnimal(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteReproductionRecordsByAnimal(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteSaleRecordsByAnimal(ctx, id); err != nil {
		return err
	}
	if s.cascadeFinancial {
		if err := s.store.DeleteFinancialRecordsByAnimal(ctx, id); err != nil {
			return err
		}
	}
	if err := s.ledger.DeleteByAnimal(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteAnimal(ctx, id); err != nil {
		return err
	}

	s.logger.Info("animal deleted with cascade", zap.String("animal_id", id))
	return nil
}

// RecordSale sells an active animal: stamps sale date and price, moves the
// status to sold and appends the sale to the ledger.
func (s *Service) RecordSale(ctx context.Context, input models.SaleCreate) (models.SaleRecord, error) {
	unlock := s.locks.acquire(input.AnimalID)
	defer unlock()

	animal, err := s.store.GetAnimal(ctx, input.AnimalID)
	if err != nil {
		return models.SaleRecord{}, err
	}
	if animal.Status != models.StatusActive {
		return models.SaleRecord{}, &models.InvalidStateError{
			AnimalID: animal.ID,
			Status:   animal.Status,
			Action:   "sell",
		}
	}

	saleDate := input.Date
	if saleDate.IsZero() {
		saleDate = time.Now().UTC()
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	sale := models.SaleRecord{
		ID:            uuid.NewString(),
		AnimalID:      animal.ID,
		Price:         input.Price,
		Quantity:      quantity,
		Buyer:         input.Buyer,
		BuyerContact:  input.BuyerContact,
		PaymentMethod: input.PaymentMethod,
		Date:          saleDate,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.InsertSaleRecord(ctx, sale); err != nil {
		return models.SaleRecord{}, fmt.Errorf("record sale: %w", err)
	}

	animal.Status = models.StatusSold
	animal.SaleDate = saleDate
	animal.SalePrice = input.Price
	if err := s.store.ReplaceAnimal(ctx, animal); err != nil {
		return models.SaleRecord{}, fmt.Errorf("mark animal %s sold: %w", animal.ID, err)
	}

	if _, err := s.ledger.Append(ctx, models.HistoryEvent{
		AnimalID:    animal.ID,
		EventType:   models.EventSale,
		Title:       "Animal sold",
		Description: fmt.Sprintf("%s sold to %s", animal.DisplayName(), buyerLabel(input.Buyer)),
		Date:        saleDate,
		Cost:        input.Price,
		Metadata:    map[string]string{"sale_id": sale.ID},
	}); err != nil {
		return models.SaleRecord{}, &models.LedgerInconsistencyError{AnimalID: animal.ID, Action: "sale", Err: err}
	}

	s.logger.Info("sale recorded",
		zap.String("animal_id", animal.ID),
		zap.String("sale_id", sale.ID),
		zap.Float64("price", input.Price))

	return sale, nil
}

// RecordMedical stores a veterinary intervention and appends it to the
// ledger. The animal may be in any status; neither lifecycle field changes.
func (s *Service) RecordMedical(ctx context.Context, input models.MedicalCreate) (models.MedicalRecord, error) {
	medicalType, err := models.ParseMedicalType(input.Type)
	if err != nil {
		return models.MedicalRecord{}, err
	}

	animal, err := s.store.GetAnimal(ctx, input.AnimalID)
	if err != nil {
		return models.MedicalRecord{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	record := models.MedicalRecord{
		ID:            uuid.NewString(),
		AnimalID:      animal.ID,
		Type:          medicalType,
		Description:   input.Description,
		Veterinarian:  input.Veterinarian,
		Cost:          input.Cost,
		Date:          date,
		NextVisitDate: input.NextVisitDate,
		Notes:         input.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.InsertMedicalRecord(ctx, record); err != nil {
		return models.MedicalRecord{}, fmt.Errorf("record medical intervention: %w", err)
	}

	if _, err := s.ledger.Append(ctx, models.HistoryEvent{
		AnimalID:    animal.ID,
		EventType:   models.EventMedical,
		Title:       fmt.Sprintf("Medical: %s", medicalType),
		Description: input.Description,
		Date:        date,
		Cost:        input.Cost,
		Metadata:    map[string]string{"medical_record_id": record.ID},
	}); err != nil {
		return models.MedicalRecord{}, &models.LedgerInconsistencyError{AnimalID: animal.ID, Action: "medical intervention", Err: err}
	}

	return record, nil
}

// RecordBreeding registers a mating or insemination event on a female animal,
// moves her reproduction status to breeding and projects the expected birth
// date from her species' gestation period unless one is supplied.
func (s *Service) RecordBreeding(ctx context.Context, input models.BreedingCreate) (models.ReproductionRecord, error) {
	eventType := models.ReproEventMating
	if input.EventType != "" {
		parsed, err := models.ParseReproductionEventType(input.EventType)
		if err != nil {
			return models.ReproductionRecord{}, err
		}
		if parsed != models.ReproEventMating && parsed != models.ReproEventInsemination {
			return models.ReproductionRecord{}, fmt.Errorf("%w: %s is not a breeding event", models.ErrInvalidInput, parsed)
		}
		eventType = parsed
	}

	if input.EventDate.IsZero() {
		return models.ReproductionRecord{}, &models.InvalidDateError{Field: "event date", Reason: "date is missing or malformed"}
	}

	unlock := s.locks.acquire(input.FemaleID)
	defer unlock()

	female, err := s.store.GetAnimal(ctx, input.FemaleID)
	if err != nil {
		return models.ReproductionRecord{}, err
	}
	if female.Sex != models.SexFemale {
		return models.ReproductionRecord{}, &models.InvalidSexError{AnimalID: female.ID, Sex: female.Sex}
	}
	if female.Status != models.StatusActive {
		return models.ReproductionRecord{}, &models.InvalidStateError{
			AnimalID: female.ID,
			Status:   female.Status,
			Action:   "breed",
		}
	}

	if input.MaleID != "" {
		if _, err := s.store.GetAnimal(ctx, input.MaleID); err != nil {
			return models.ReproductionRecord{}, &models.InvalidReferenceError{Field: "male_id", ID: input.MaleID}
		}
	}

	expected := input.ExpectedBirthDate
	if expected.IsZero() {
		expected, err = models.ProjectBirthDate(input.EventDate, female.Species)
		if err != nil {
			return models.ReproductionRecord{}, err
		}
	}

	record := models.ReproductionRecord{
		ID:                uuid.NewString(),
		FemaleID:          female.ID,
		MaleID:            input.MaleID,
		EventType:         eventType,
		EventDate:         input.EventDate,
		ExpectedBirthDate: expected,
		Notes:             input.Notes,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.store.InsertReproductionRecord(ctx, record); err != nil {
		return models.ReproductionRecord{}, fmt.Errorf("record breeding: %w", err)
	}

	female.ReproductionStatus = models.ReproBreeding
	if err := s.store.ReplaceAnimal(ctx, female); err != nil {
		return models.ReproductionRecord{}, fmt.Errorf("mark animal %s breeding: %w", female.ID, err)
	}

	if _, err := s.ledger.Append(ctx, models.HistoryEvent{
		AnimalID:    female.ID,
		EventType:   models.EventReproduction,
		Title:       fmt.Sprintf("Breeding: %s", eventType),
		Description: fmt.Sprintf("%s expected to give birth on %s", female.DisplayName(), expected.Format("2006-01-02")),
		Date:        input.EventDate,
		Metadata:    map[string]string{"reproduction_record_id": record.ID},
	}); err != nil {
		return models.ReproductionRecord{}, &models.LedgerInconsistencyError{AnimalID: female.ID, Action: "breeding", Err: err}
	}

	return record, nil
}

// RecordBirth closes an open breeding record with its outcome and moves the
// mother's reproduction status to lactating.
func (s *Service) RecordBirth(ctx context.Context, breedingID string, outcome models.BirthOutcome) (models.ReproductionRecord, error) {
	// The lock is keyed by the mother, so her id has to be resolved first.
	record, err := s.store.GetReproductionRecord(ctx, breedingID)
	if err != nil {
		return models.ReproductionRecord{}, err
	}

	unlock := s.locks.acquire(record.FemaleID)
	defer unlock()

	// Re-read under the lock: a concurrent birth may have closed the record
	// between the lookup and entering the critical section.
	record, err = s.store.GetReproductionRecord(ctx, breedingID)
	if err != nil {
		return models.ReproductionRecord{}, err
	}

	mother, err := s.store.GetAnimal(ctx, record.FemaleID)
	if err != nil {
		return models.ReproductionRecord{}, err
	}

	if !record.Open() {
		return models.ReproductionRecord{}, &models.InvalidStateError{
			AnimalID: record.FemaleID,
			Status:   mother.Status,
			Action:   "record a second birth for",
		}
	}

	birthDate := outcome.Date
	if birthDate.IsZero() {
		birthDate = time.Now().UTC()
	}
	if birthDate.Before(record.EventDate) {
		return models.ReproductionRecord{}, &models.InvalidDateError{
			Field:  "birth date",
			Reason: fmt.Sprintf("precedes breeding date %s", record.EventDate.Format("2006-01-02")),
		}
	}

	record.ActualBirthDate = birthDate
	record.LiveOffspring = outcome.LiveOffspring
	record.DeadOffspring = outcome.DeadOffspring
	record.AvgOffspringKg = outcome.AvgOffspringKg
	if err := s.store.ReplaceReproductionRecord(ctx, record); err != nil {
		return models.ReproductionRecord{}, fmt.Errorf("close breeding record %s: %w", breedingID, err)
	}

	mother.ReproductionStatus = models.ReproLactating
	if err := s.store.ReplaceAnimal(ctx, mother); err != nil {
		return models.ReproductionRecord{}, fmt.Errorf("mark animal %s lactating: %w", mother.ID, err)
	}

	if _, err := s.ledger.Append(ctx, models.HistoryEvent{
		AnimalID:    record.FemaleID,
		EventType:   models.EventBirth,
		Title:       "Birth recorded",
		Description: fmt.Sprintf("%d live, %d dead offspring", outcome.LiveOffspring, outcome.DeadOffspring),
		Date:        birthDate,
		Metadata:    map[string]string{"reproduction_record_id": record.ID},
	}); err != nil {
		return models.ReproductionRecord{}, &models.LedgerInconsistencyError{AnimalID: record.FemaleID, Action: "birth", Err: err}
	}

	return record, nil
}

// RecordFinancial stores an expense or revenue entry. A linked animal id, when
// present, must resolve.
func (s *Service) RecordFinancial(ctx context.Context, input models.FinancialCreate) (models.FinancialRecord, error) {
	kind, err := models.ParseTransactionKind(input.Kind)
	if err != nil {
		return models.FinancialRecord{}, err
	}
	category, err := models.ParseFinancialCategory(input.Category)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	if input.AnimalID != "" {
		if _, err := s.store.GetAnimal(ctx, input.AnimalID); err != nil {
			return models.FinancialRecord{}, &models.InvalidReferenceError{Field: "animal_id", ID: input.AnimalID}
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	record := models.FinancialRecord{
		ID:          uuid.NewString(),
		Kind:        kind,
		Category:    category,
		Amount:      input.Amount,
		Date:        date,
		AnimalID:    input.AnimalID,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.InsertFinancialRecord(ctx, record); err != nil {
		return models.FinancialRecord{}, fmt.Errorf("record financial entry: %w", err)
	}
	return record, nil
}

// ListSales returns every recorded sale.
func (s *Service) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	return s.store.ListSaleRecords(ctx)
}

// ListHistory returns the ledger feed, herd-wide or scoped to one animal.
func (s *Service) ListHistory(ctx context.Context, animalID string) ([]models.HistoryEvent, error) {
	return s.ledger.List(ctx, animalID)
}

// ListMedicalRecords returns the medical history of one animal.
func (s *Service) ListMedicalRecords(ctx context.Context, animalID string) ([]models.MedicalRecord, error) {
	if _, err := s.store.GetAnimal(ctx, animalID); err != nil {
		return nil, err
	}
	return s.store.ListMedicalRecords(ctx, repository.MedicalFilter{AnimalID: animalID})
}

// ListReproductionRecords returns the breeding history of one animal.
func (s *Service) ListReproductionRecords(ctx context.Context, animalID string) ([]models.ReproductionRecord, error) {
	if _, err := s.store.GetAnimal(ctx, animalID); err != nil {
		return nil, err
	}
	return s.store.ListReproductionRecords(ctx, repository.ReproductionFilter{AnimalID: animalID})
}

func buyerLabel(buyer string) string {
	if buyer == "" {
		return "an unnamed buyer"
	}
	return buyer
}
