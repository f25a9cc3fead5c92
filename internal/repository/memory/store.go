// Package memory provides an in-memory repository.Store used by tests and by
// database-less development runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
)

// Store keeps every collection in process memory. Slices preserve insertion
// order, which doubles as the ledger ordering tiebreak.
type Store struct {
	mu           sync.RWMutex
	animals      []models.Animal
	medical      []models.MedicalRecord
	reproduction []models.ReproductionRecord
	sales        []models.SaleRecord
	financial    []models.FinancialRecord
	history      []models.HistoryEvent
	snapshots    []models.HerdSnapshot
}

var _ repository.Store = (*Store)(nil)

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) InsertAnimal(_ context.Context, animal models.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animals = append(s.animals, animal)
	return nil
}

func (s *Store) GetAnimal(_ context.Context, id string) (models.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.animals {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Animal{}, &models.NotFoundError{Entity: "animal", ID: id}
}

func (s *Store) ListAnimals(_ context.Context, filter repository.AnimalFilter) ([]models.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Animal{}
	for _, a := range s.animals {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Species != "" && a.Species != filter.Species {
			continue
		}
		if filter.Sex != "" && a.Sex != filter.Sex {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) ReplaceAnimal(_ context.Context, animal models.Animal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.animals {
		if a.ID == animal.ID {
			s.animals[i] = animal
			return nil
		}
	}
	return &models.NotFoundError{Entity: "animal", ID: animal.ID}
}

func (s *Store) DeleteAnimal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.animals {
		if a.ID == id {
			s.animals = append(s.animals[:i], s.animals[i+1:]...)
			return nil
		}
	}
	return &models.NotFoundError{Entity: "animal", ID: id}
}

func (s *Store) CountAnimals(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.animals)), nil
}

func (s *Store) InsertMedicalRecord(_ context.Context, record models.MedicalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medical = append(s.medical, record)
	return nil
}

func (s *Store) ListMedicalRecords(_ context.Context, filter repository.MedicalFilter) ([]models.MedicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.MedicalRecord{}
	for _, r := range s.medical {
		if filter.AnimalID != "" && r.AnimalID != filter.AnimalID {
			continue
		}
		if !filter.ReminderFrom.IsZero() && r.NextVisitDate.Before(filter.ReminderFrom) {
			continue
		}
		if !filter.ReminderTo.IsZero() && r.NextVisitDate.After(filter.ReminderTo) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) DeleteMedicalRecordsByAnimal(_ context.Context, animalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.medical[:0]
	for _, r := range s.medical {
		if r.AnimalID != animalID {
			kept = append(kept, r)
		}
	}
	s.medical = kept
	return nil
}

func (s *Store) InsertReproductionRecord(_ context.Context, record models.ReproductionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reproduction = append(s.reproduction, record)
	return nil
}

func (s *Store) GetReproductionRecord(_ context.Context, id string) (models.ReproductionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reproduction {
		if r.ID == id {
			return r, nil
		}
	}
	return models.ReproductionRecord{}, &models.NotFoundError{Entity: "reproduction record", ID: id}
}

func (s *Store) ListReproductionRecords(_ context.Context, filter repository.ReproductionFilter) ([]models.ReproductionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.ReproductionRecord{}
	for _, r := range s.reproduction {
		if filter.AnimalID != "" && r.FemaleID != filter.AnimalID && r.MaleID != filter.AnimalID {
			continue
		}
		if !filter.ExpectedFrom.IsZero() && r.ExpectedBirthDate.Before(filter.ExpectedFrom) {
			continue
		}
		if !filter.ExpectedTo.IsZero() && r.ExpectedBirthDate.After(filter.ExpectedTo) {
			continue
		}
		if filter.OpenOnly && !r.Open() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) ReplaceReproductionRecord(_ context.Context, record models.ReproductionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reproduction {
		if r.ID == record.ID {
			s.reproduction[i] = record
			return nil
		}
	}
	return &models.NotFoundError{Entity: "reproduction record", ID: record.ID}
}

func (s *Store) DeleteReproductionRecordsByAnimal(_ context.Context, animalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.reproduction[:0]
	for _, r := range s.reproduction {
		if r.FemaleID != animalID && r.MaleID != animalID {
			kept = append(kept, r)
		}
	}
	s.reproduction = kept
	return nil
}

func (s *Store) InsertSaleRecord(_ context.Context, record models.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, record)
	return nil
}

func (s *Store) ListSaleRecords(_ context.Context) ([]models.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SaleRecord, len(s.sales))
	copy(out, s.sales)
	return out, nil
}

func (s *Store) DeleteSaleRecordsByAnimal(_ context.Context, animalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.sales[:0]
	for _, r := range s.sales {
		if r.AnimalID != animalID {
			kept = append(kept, r)
		}
	}
	s.sales = kept
	return nil
}

func (s *Store) InsertFinancialRecord(_ context.Context, record models.FinancialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.financial = append(s.financial, record)
	return nil
}

func (s *Store) ListFinancialRecords(_ context.Context, filter repository.FinancialFilter) ([]models.FinancialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.FinancialRecord{}
	for _, r := range s.financial {
		if !filter.From.IsZero() && r.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && r.Date.After(filter.To) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) DeleteFinancialRecordsByAnimal(_ context.Context, animalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.financial[:0]
	for _, r := range s.financial {
		if r.AnimalID != animalID {
			kept = append(kept, r)
		}
	}
	s.financial = kept
	return nil
}

func (s *Store) InsertHistoryEvent(_ context.Context, event models.HistoryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, event)
	return nil
}

// ListHistoryEvents returns entries by event date descending; the stable sort
// keeps insertion order for equal dates.
func (s *Store) ListHistoryEvents(_ context.Context, filter repository.HistoryFilter) ([]models.HistoryEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.HistoryEvent{}
	for _, e := range s.history {
		if filter.AnimalID != "" && e.AnimalID != filter.AnimalID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Store) DeleteHistoryEventsByAnimal(_ context.Context, animalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.history[:0]
	for _, e := range s.history {
		if e.AnimalID != animalID {
			kept = append(kept, e)
		}
	}
	s.history = kept
	return nil
}

func (s *Store) InsertHerdSnapshot(_ context.Context, snapshot models.HerdSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}
