package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository/memory"
	"github.com/laprovidence/livestock/internal/service/reporting"
)

func insertAnimal(t *testing.T, store *memory.Store, animal models.Animal) models.Animal {
	t.Helper()
	if animal.Status == "" {
		animal.Status = models.StatusActive
	}
	if animal.ReproductionStatus == "" {
		animal.ReproductionStatus = models.ReproAvailable
	}
	require.NoError(t, store.InsertAnimal(context.Background(), animal))
	return animal
}

func TestPopulationStats_CountsActiveOnly(t *testing.T) {
	store := memory.NewStore()
	svc := reporting.NewService(store, nil)
	ctx := context.Background()

	insertAnimal(t, store, models.Animal{ID: "p1", Species: models.SpeciesPoultry, Sex: models.SexMale})
	insertAnimal(t, store, models.Animal{ID: "p2", Species: models.SpeciesPoultry, Sex: models.SexFemale, ReproductionStatus: models.ReproBreeding})
	insertAnimal(t, store, models.Animal{ID: "s1", Species: models.SpeciesSwine, Sex: models.SexFemale, ReproductionStatus: models.ReproPregnant})
	insertAnimal(t, store, models.Animal{ID: "s2", Species: models.SpeciesSwine, Sex: models.SexMale, Status: models.StatusSold})
	insertAnimal(t, store, models.Animal{ID: "s3", Species: models.SpeciesSwine, Sex: models.SexMale, Status: models.StatusDead})

	stats, err := svc.PopulationStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalActive)
	assert.Equal(t, 5, stats.TotalAnimals)
	assert.Equal(t, 1, stats.Males)
	assert.Equal(t, 2, stats.Females)
	assert.Equal(t, 1, stats.Sold)
	assert.Equal(t, 1, stats.Breeding)
	assert.Equal(t, 1, stats.Pregnant)
	assert.Equal(t, models.SpeciesCount{Count: 2, Males: 1, Females: 1}, stats.BySpecies[models.SpeciesPoultry])
	assert.Equal(t, models.SpeciesCount{Count: 1, Males: 0, Females: 1}, stats.BySpecies[models.SpeciesSwine])
}

func TestPopulationStats_EmptyHerd(t *testing.T) {
	svc := reporting.NewService(memory.NewStore(), nil)

	stats, err := svc.PopulationStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalActive)
	assert.Empty(t, stats.BySpecies)
}

func TestFinancialSummary_InclusiveRangeAndNet(t *testing.T) {
	store := memory.NewStore()
	svc := reporting.NewService(store, nil)
	ctx := context.Background()

	insert := func(kind models.TransactionKind, category models.FinancialCategory, amount float64, date time.Time) {
		require.NoError(t, store.InsertFinancialRecord(ctx, models.FinancialRecord{
			ID: date.Format("20060102") + string(category), Kind: kind, Category: category, Amount: amount, Date: date,
		}))
	}

	insert(models.TransactionRevenue, models.CategorySale, 500, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	insert(models.TransactionExpense, models.CategoryFeed, 120, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	// End day is inclusive even for timestamps late in the day.
	insert(models.TransactionExpense, models.CategoryCare, 80, time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC))
	insert(models.TransactionRevenue, models.CategorySale, 999, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	summary, err := svc.FinancialSummary(ctx,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Entries)
	assert.Equal(t, 500.0, summary.TotalRevenue)
	assert.Equal(t, 200.0, summary.TotalExpense)
	assert.Equal(t, 300.0, summary.Net)
	assert.Equal(t, 500.0, summary.ByKind[models.TransactionRevenue])
	assert.Equal(t, 200.0, summary.ByKind[models.TransactionExpense])
	assert.Equal(t, 120.0, summary.ByCategory[models.CategoryFeed])
	assert.Equal(t, 80.0, summary.ByCategory[models.CategoryCare])
	assert.Equal(t, 500.0, summary.ByCategory[models.CategorySale])
}

func TestFinancialSummary_EmptyCollection(t *testing.T) {
	svc := reporting.NewService(memory.NewStore(), nil)

	summary, err := svc.FinancialSummary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.Net)
	assert.Equal(t, 0, summary.Entries)
}

func TestUpcomingReminders_WindowAndOrdering(t *testing.T) {
	store := memory.NewStore()
	svc := reporting.NewService(store, nil)
	ctx := context.Background()

	hen := insertAnimal(t, store, models.Animal{ID: "hen-1", Name: "Ok", Species: models.SpeciesPoultry, Breed: "Sussex", Sex: models.SexFemale})
	sow := insertAnimal(t, store, models.Animal{ID: "sow-12345678", Species: models.SpeciesSwine, Breed: "Large White", Sex: models.SexFemale})

	now := time.Now().UTC()

	require.NoError(t, store.InsertMedicalRecord(ctx, models.MedicalRecord{
		ID: "med-due", AnimalID: hen.ID, Type: models.MedicalVaccination,
		Description: "booster", Date: now.AddDate(0, 0, -10), NextVisitDate: now.AddDate(0, 0, 15),
	}))
	require.NoError(t, store.InsertMedicalRecord(ctx, models.MedicalRecord{
		ID: "med-far", AnimalID: hen.ID, Type: models.MedicalCheckup,
		Description: "annual", Date: now.AddDate(0, 0, -10), NextVisitDate: now.AddDate(0, 0, 45),
	}))
	require.NoError(t, store.InsertReproductionRecord(ctx, models.ReproductionRecord{
		ID: "rep-due", FemaleID: sow.ID, EventType: models.ReproEventMating,
		EventDate: now.AddDate(0, 0, -104), ExpectedBirthDate: now.AddDate(0, 0, 10),
	}))
	require.NoError(t, store.InsertReproductionRecord(ctx, models.ReproductionRecord{
		ID: "rep-closed", FemaleID: sow.ID, EventType: models.ReproEventMating,
		EventDate: now.AddDate(0, 0, -120), ExpectedBirthDate: now.AddDate(0, 0, 5),
		ActualBirthDate: now.AddDate(0, 0, -6),
	}))

	reminders, err := svc.UpcomingReminders(ctx, 30)
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	assert.Equal(t, models.ReminderExpectedBirth, reminders[0].Kind)
	assert.Equal(t, "rep-due", reminders[0].RecordID)
	assert.Equal(t, "swine #5678", reminders[0].AnimalName)
	assert.Equal(t, "Large White", reminders[0].AnimalBreed)

	assert.Equal(t, models.ReminderMedical, reminders[1].Kind)
	assert.Equal(t, "med-due", reminders[1].RecordID)
	assert.Equal(t, "Ok", reminders[1].AnimalName)
}

func TestUpcomingReminders_EmptyCollections(t *testing.T) {
	svc := reporting.NewService(memory.NewStore(), nil)

	reminders, err := svc.UpcomingReminders(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestSnapshot_RollsUpPopulationAndFinances(t *testing.T) {
	store := memory.NewStore()
	svc := reporting.NewService(store, nil)
	ctx := context.Background()

	insertAnimal(t, store, models.Animal{ID: "p1", Species: models.SpeciesPoultry, Sex: models.SexFemale})
	require.NoError(t, store.InsertFinancialRecord(ctx, models.FinancialRecord{
		ID: "f1", Kind: models.TransactionRevenue, Category: models.CategorySale, Amount: 50, Date: time.Now().UTC(),
	}))

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Population.TotalActive)
	assert.Equal(t, 50.0, snapshot.Finances.TotalRevenue)
	assert.False(t, snapshot.Date.IsZero())
}
