// Package seed populates an empty herd with a handful of sample animals so a
// fresh deployment has something to show.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
)

// Run inserts sample animals when the animal collection is empty.
func Run(ctx context.Context, store repository.Store, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	count, err := store.CountAnimals(ctx)
	if err != nil {
		return fmt.Errorf("count animals: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	samples := []models.Animal{
		{Species: models.SpeciesPoultry, Breed: "Plymouth Rock", Sex: models.SexMale, BirthDate: now.AddDate(0, 0, -27), WeightKg: 1.0},
		{Species: models.SpeciesPoultry, Breed: "Sussex", Sex: models.SexFemale, BirthDate: now.AddDate(0, 0, -27), WeightKg: 1.5},
		{Name: "Ok", Species: models.SpeciesPoultry, Breed: "Sussex", Sex: models.SexFemale, BirthDate: now.AddDate(0, 0, -28), WeightKg: 3.0},
		{Name: "Petit 1 de 2", Species: models.SpeciesSwine, Breed: "Large White", Sex: models.SexFemale, BirthDate: now.AddDate(0, -1, 0), WeightKg: 0.2},
		{Name: "Petit 2 de 2", Species: models.SpeciesSwine, Breed: "Large White", Sex: models.SexMale, BirthDate: now.AddDate(0, -1, 0), WeightKg: 0.2},
	}

	for _, animal := range samples {
		animal.ID = uuid.NewString()
		animal.Status = models.StatusActive
		animal.ReproductionStatus = models.ReproAvailable
		animal.CreatedAt = now
		if err := store.InsertAnimal(ctx, animal); err != nil {
			return fmt.Errorf("insert sample animal: %w", err)
		}
	}

	logger.Info("sample herd seeded", zap.Int("animals", len(samples)))
	return nil
}
