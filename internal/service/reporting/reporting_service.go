// Package reporting is the read side of the herd: population statistics,
// financial summaries over date ranges and forward-looking reminder windows.
// Collections are scanned and reduced in memory; inventories are small and
// this is not designed for large-scale data.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
)

// DefaultReminderWindowDays is the forward window used when the caller does
// not specify one.
const DefaultReminderWindowDays = 30

// Service computes aggregates over the entity store.
type Service struct {
	store  repository.Store
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(store repository.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// PopulationStats counts the herd: active animals by species and sex,
// breeding and pregnant females, and sold animals. Empty collections yield
// zero-valued aggregates.
func (s *Service) PopulationStats(ctx context.Context) (models.PopulationStats, error) {
	animals, err := s.store.ListAnimals(ctx, repository.AnimalFilter{})
	if err != nil {
		return models.PopulationStats{}, fmt.Errorf("load animals: %w", err)
	}

	stats := models.PopulationStats{
		BySpecies:   map[models.Species]models.SpeciesCount{},
		GeneratedAt: time.Now().UTC(),
	}

	for _, a := range animals {
		stats.TotalAnimals++
		if a.Status == models.StatusSold {
			stats.Sold++
		}
		if a.Status != models.StatusActive {
			continue
		}

		stats.TotalActive++
		count := stats.BySpecies[a.Species]
		count.Count++
		switch a.Sex {
		case models.SexMale:
			stats.Males++
			count.Males++
		case models.SexFemale:
			stats.Females++
			count.Females++
		}
		stats.BySpecies[a.Species] = count

		switch a.ReproductionStatus {
		case models.ReproBreeding:
			stats.Breeding++
		case models.ReproPregnant:
			stats.Pregnant++
		}
	}

	return stats, nil
}

// FinancialSummary sums transactions whose date falls in the inclusive
// [start, end] range, grouped by kind and by category. A fully unspecified
// range defaults to the current calendar month.
func (s *Service) FinancialSummary(ctx context.Context, start, end time.Time) (models.FinancialSummary, error) {
	if start.IsZero() && end.IsZero() {
		now := time.Now().UTC()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	} else if !end.IsZero() {
		end = endOfDay(end)
	}

	records, err := s.store.ListFinancialRecords(ctx, repository.FinancialFilter{From: start, To: end})
	if err != nil {
		return models.FinancialSummary{}, fmt.Errorf("load financial records: %w", err)
	}

	summary := models.FinancialSummary{
		Start:      start,
		End:        end,
		ByKind:     map[models.TransactionKind]float64{},
		ByCategory: map[models.FinancialCategory]float64{},
	}

	for _, r := range records {
		summary.Entries++
		summary.ByKind[r.Kind] += r.Amount
		summary.ByCategory[r.Category] += r.Amount
		switch r.Kind {
		case models.TransactionRevenue:
			summary.TotalRevenue += r.Amount
		case models.TransactionExpense:
			summary.TotalExpense += r.Amount
		}
	}
	summary.Net = summary.TotalRevenue - summary.TotalExpense

	return summary, nil
}

// UpcomingReminders returns medical follow-ups and expected births falling in
// [today, today + windowDays], each enriched with a summary of its subject
// animal, ordered ascending by due date.
func (s *Service) UpcomingReminders(ctx context.Context, windowDays int) ([]models.Reminder, error) {
	if windowDays <= 0 {
		windowDays = DefaultReminderWindowDays
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := endOfDay(from.AddDate(0, 0, windowDays))

	reminders := []models.Reminder{}

	medical, err := s.store.ListMedicalRecords(ctx, repository.MedicalFilter{ReminderFrom: from, ReminderTo: to})
	if err != nil {
		return nil, fmt.Errorf("load medical reminders: %w", err)
	}
	for _, r := range medical {
		animal, err := s.store.GetAnimal(ctx, r.AnimalID)
		if err != nil {
			s.logger.Debug("skip reminder for missing animal", zap.String("animal_id", r.AnimalID), zap.Error(err))
			continue
		}
		reminders = append(reminders, models.Reminder{
			Kind:        models.ReminderMedical,
			RecordID:    r.ID,
			AnimalID:    animal.ID,
			AnimalName:  animal.DisplayName(),
			AnimalBreed: animal.Breed,
			DueDate:     r.NextVisitDate,
			Description: fmt.Sprintf("%s follow-up: %s", r.Type, r.Description),
		})
	}

	breedings, err := s.store.ListReproductionRecords(ctx, repository.ReproductionFilter{
		ExpectedFrom: from,
		ExpectedTo:   to,
		OpenOnly:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("load expected births: %w", err)
	}
	for _, r := range breedings {
		animal, err := s.store.GetAnimal(ctx, r.FemaleID)
		if err != nil {
			s.logger.Debug("skip reminder for missing animal", zap.String("animal_id", r.FemaleID), zap.Error(err))
			continue
		}
		reminders = append(reminders, models.Reminder{
			Kind:        models.ReminderExpectedBirth,
			RecordID:    r.ID,
			AnimalID:    animal.ID,
			AnimalName:  animal.DisplayName(),
			AnimalBreed: animal.Breed,
			DueDate:     r.ExpectedBirthDate,
			Description: fmt.Sprintf("expected birth from %s on %s", r.EventType, r.EventDate.Format("2006-01-02")),
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DueDate.Before(reminders[j].DueDate)
	})

	return reminders, nil
}

// Snapshot rolls population stats and the month-to-date financial summary
// into one record for the scheduled daily export.
func (s *Service) Snapshot(ctx context.Context) (models.HerdSnapshot, error) {
	stats, err := s.PopulationStats(ctx)
	if err != nil {
		return models.HerdSnapshot{}, err
	}
	finances, err := s.FinancialSummary(ctx, time.Time{}, time.Time{})
	if err != nil {
		return models.HerdSnapshot{}, err
	}

	now := time.Now().UTC()
	return models.HerdSnapshot{
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Population: stats,
		Finances:   finances,
		CreatedAt:  now,
	}, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, 1).Add(-time.Nanosecond)
}
