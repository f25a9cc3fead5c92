package livestock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
	"github.com/laprovidence/livestock/internal/repository/memory"
	"github.com/laprovidence/livestock/internal/service/ledger"
	"github.com/laprovidence/livestock/internal/service/livestock"
)

func newTestService(t *testing.T) (*livestock.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ldg := ledger.New(store, nil)
	return livestock.NewService(store, ldg, false, nil), store
}

func createAnimal(t *testing.T, svc *livestock.Service, input models.AnimalCreate) models.Animal {
	t.Helper()
	animal, err := svc.CreateAnimal(context.Background(), input)
	require.NoError(t, err)
	return animal
}

func TestCreateAnimal_InitialStates(t *testing.T) {
	svc, _ := newTestService(t)

	animal := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "female", Breed: "Sussex"})

	assert.NotEmpty(t, animal.ID)
	assert.Equal(t, models.StatusActive, animal.Status)
	assert.Equal(t, models.ReproAvailable, animal.ReproductionStatus)
}

func TestCreateAnimal_RejectsUnknownSpecies(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateAnimal(context.Background(), models.AnimalCreate{Species: "goat", Sex: "female"})
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestRecordSale_TransitionsAndLedgers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	animal := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "male", Breed: "Large White"})
	saleDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sale, err := svc.RecordSale(ctx, models.SaleCreate{AnimalID: animal.ID, Price: 250, Buyer: "Diallo", Date: saleDate})
	require.NoError(t, err)
	assert.Equal(t, animal.ID, sale.AnimalID)
	assert.Equal(t, 1, sale.Quantity)

	sold, err := svc.GetAnimal(ctx, animal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, sold.Status)
	assert.Equal(t, saleDate, sold.SaleDate)
	assert.Equal(t, 250.0, sold.SalePrice)

	events, err := svc.ListHistory(ctx, animal.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventSale, events[0].EventType)
}

func TestRecordSale_SecondSaleRejectedWithoutLedgerEntry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	animal := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "male"})

	_, err := svc.RecordSale(ctx, models.SaleCreate{AnimalID: animal.ID, Price: 100})
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, models.SaleCreate{AnimalID: animal.ID, Price: 100})
	var stateErr *models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	events, err := svc.ListHistory(ctx, animal.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecordSale_UnknownAnimal(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordSale(context.Background(), models.SaleCreate{AnimalID: "ghost", Price: 10})

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRecordMedical_DoesNotChangeLifecycleFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	animal := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "female"})

	_, err := svc.RecordMedical(ctx, models.MedicalCreate{
		AnimalID:    animal.ID,
		Type:        "vaccination",
		Description: "Newcastle vaccine",
	})
	require.NoError(t, err)

	after, err := svc.GetAnimal(ctx, animal.ID)
	require.NoError(t, err)
	assert.Equal(t, animal.Status, after.Status)
	assert.Equal(t, animal.ReproductionStatus, after.ReproductionStatus)

	events, err := svc.ListHistory(ctx, animal.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventMedical, events[0].EventType)
}

func TestRecordMedical_UnknownAnimal(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordMedical(context.Background(), models.MedicalCreate{
		AnimalID:    "ghost",
		Type:        "checkup",
		Description: "routine",
	})

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRecordBreeding_ProjectsExpectedDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	female := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "female"})
	matingDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	record, err := svc.RecordBreeding(ctx, models.BreedingCreate{FemaleID: female.ID, EventDate: matingDate})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), record.ExpectedBirthDate)
	assert.Equal(t, models.ReproEventMating, record.EventType)

	after, err := svc.GetAnimal(ctx, female.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReproBreeding, after.ReproductionStatus)
}

func TestRecordBreeding_ExplicitExpectedDateWins(t *testing.T) {
	svc, _ := newTestService(t)

	female := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "female"})
	override := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	record, err := svc.RecordBreeding(context.Background(), models.BreedingCreate{
		FemaleID:          female.ID,
		EventDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpectedBirthDate: override,
	})
	require.NoError(t, err)
	assert.Equal(t, override, record.ExpectedBirthDate)
}

func TestRecordBreeding_MalePrimaryRejected(t *testing.T) {
	svc, _ := newTestService(t)

	male := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "male"})

	_, err := svc.RecordBreeding(context.Background(), models.BreedingCreate{
		FemaleID:  male.ID,
		EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	var sexErr *models.InvalidSexError
	require.ErrorAs(t, err, &sexErr)
}

func TestRecordBreeding_UnknownPartnerRejected(t *testing.T) {
	svc, _ := newTestService(t)

	female := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "female"})

	_, err := svc.RecordBreeding(context.Background(), models.BreedingCreate{
		FemaleID:  female.ID,
		MaleID:    "ghost",
		EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	var refErr *models.InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
}

func TestRecordBirth_EndToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	female := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "female"})

	breeding, err := svc.RecordBreeding(ctx, models.BreedingCreate{
		FemaleID:  female.ID,
		EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), breeding.ExpectedBirthDate)

	closed, err := svc.RecordBirth(ctx, breeding.ID, models.BirthOutcome{
		Date:           time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		LiveOffspring:  5,
		DeadOffspring:  1,
		AvgOffspringKg: 0.05,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, closed.LiveOffspring)
	assert.Equal(t, 1, closed.DeadOffspring)
	assert.False(t, closed.Open())

	mother, err := svc.GetAnimal(ctx, female.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReproLactating, mother.ReproductionStatus)

	// Feed is date-descending, so ascending order within the pair is
	// [breeding, birth].
	events, err := svc.ListHistory(ctx, female.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventBirth, events[0].EventType)
	assert.Equal(t, models.EventReproduction, events[1].EventType)
}

func TestRecordBirth_UnknownRecord(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordBirth(context.Background(), "ghost", models.BirthOutcome{LiveOffspring: 1})

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRecordBirth_ClosedRecordRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	female := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "female"})
	breeding, err := svc.RecordBreeding(ctx, models.BreedingCreate{
		FemaleID:  female.ID,
		EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.RecordBirth(ctx, breeding.ID, models.BirthOutcome{Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	// Selling the mother between births shows her real status in the error.
	_, err = svc.RecordSale(ctx, models.SaleCreate{AnimalID: female.ID, Price: 60})
	require.NoError(t, err)

	_, err = svc.RecordBirth(ctx, breeding.ID, models.BirthOutcome{Date: time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)})
	var stateErr *models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, models.StatusSold, stateErr.Status)
}

// rendezvousStore holds the first two breeding-record reads until both have
// arrived, so two callers always observe the record before either writes.
type rendezvousStore struct {
	repository.Store
	mu    sync.Mutex
	reads int
	both  chan struct{}
}

func (s *rendezvousStore) GetReproductionRecord(ctx context.Context, id string) (models.ReproductionRecord, error) {
	s.mu.Lock()
	s.reads++
	n := s.reads
	s.mu.Unlock()

	if n == 2 {
		close(s.both)
	}
	if n <= 2 {
		<-s.both
	}
	return s.Store.GetReproductionRecord(ctx, id)
}

func TestRecordBirth_ConcurrentClosesRejectedOnce(t *testing.T) {
	store := &rendezvousStore{Store: memory.NewStore(), both: make(chan struct{})}
	ldg := ledger.New(store, nil)
	svc := livestock.NewService(store, ldg, false, nil)
	ctx := context.Background()

	female := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "female"})
	breeding, err := svc.RecordBreeding(ctx, models.BreedingCreate{
		FemaleID:  female.ID,
		EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	outcome := models.BirthOutcome{Date: time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), LiveOffspring: 4}
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.RecordBirth(ctx, breeding.ID, outcome)
			errs <- err
		}()
	}

	var successes, rejections int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			var stateErr *models.InvalidStateError
			require.ErrorAs(t, err, &stateErr)
			rejections++
		} else {
			successes++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, rejections)

	// Exactly one birth reached the ledger.
	events, err := svc.ListHistory(ctx, female.ID)
	require.NoError(t, err)
	births := 0
	for _, event := range events {
		if event.EventType == models.EventBirth {
			births++
		}
	}
	assert.Equal(t, 1, births)
}

func TestRecordBirth_BeforeMatingRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	female := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "female"})
	breeding, err := svc.RecordBreeding(ctx, models.BreedingCreate{
		FemaleID:  female.ID,
		EventDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.RecordBirth(ctx, breeding.ID, models.BirthOutcome{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	var dateErr *models.InvalidDateError
	require.ErrorAs(t, err, &dateErr)
}

func TestUpdateAnimal_StatusBypassRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	animal := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "male"})

	sold := "sold"
	_, err := svc.UpdateAnimal(ctx, animal.ID, models.AnimalUpdate{Status: &sold})
	var stateErr *models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	// Matching status and plain field edits pass.
	active := "active"
	name := "Coco"
	updated, err := svc.UpdateAnimal(ctx, animal.ID, models.AnimalUpdate{Status: &active, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Coco", updated.Name)
	assert.Equal(t, models.StatusActive, updated.Status)
}

func TestDeleteAnimal_CascadesDependents(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	female := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "female"})

	_, err := svc.RecordMedical(ctx, models.MedicalCreate{AnimalID: female.ID, Type: "treatment", Description: "deworming"})
	require.NoError(t, err)
	_, err = svc.RecordBreeding(ctx, models.BreedingCreate{FemaleID: female.ID, EventDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAnimal(ctx, female.ID))

	_, err = svc.GetAnimal(ctx, female.ID)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)

	_, err = svc.ListMedicalRecords(ctx, female.ID)
	require.ErrorAs(t, err, &notFound)

	_, err = svc.ListHistory(ctx, female.ID)
	require.ErrorAs(t, err, &notFound)

	// No orphans survive in the underlying collections.
	medical, err := store.ListMedicalRecords(ctx, repository.MedicalFilter{AnimalID: female.ID})
	require.NoError(t, err)
	assert.Empty(t, medical)

	breedings, err := store.ListReproductionRecords(ctx, repository.ReproductionFilter{AnimalID: female.ID})
	require.NoError(t, err)
	assert.Empty(t, breedings)

	events, err := store.ListHistoryEvents(ctx, repository.HistoryFilter{AnimalID: female.ID})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDeleteAnimal_FinancialCascadeIsConfigurable(t *testing.T) {
	store := memory.NewStore()
	ldg := ledger.New(store, nil)
	svc := livestock.NewService(store, ldg, true, nil)
	ctx := context.Background()

	animal, err := svc.CreateAnimal(ctx, models.AnimalCreate{Species: "poultry", Sex: "male"})
	require.NoError(t, err)

	_, err = svc.RecordFinancial(ctx, models.FinancialCreate{
		Kind:     "expense",
		Category: "care",
		Amount:   40,
		AnimalID: animal.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAnimal(ctx, animal.ID))

	records, err := store.ListFinancialRecords(ctx, repository.FinancialFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListSales_ReturnsRecordedSales(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	boar := createAnimal(t, svc, models.AnimalCreate{Species: "swine", Sex: "male"})
	hen := createAnimal(t, svc, models.AnimalCreate{Species: "poultry", Sex: "female"})

	_, err := svc.RecordSale(ctx, models.SaleCreate{AnimalID: boar.ID, Price: 250, Buyer: "Diallo"})
	require.NoError(t, err)
	_, err = svc.RecordSale(ctx, models.SaleCreate{AnimalID: hen.ID, Price: 40})
	require.NoError(t, err)

	sales, err := svc.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	ids := []string{sales[0].AnimalID, sales[1].AnimalID}
	assert.Contains(t, ids, boar.ID)
	assert.Contains(t, ids, hen.ID)
}

func TestRecordFinancial_UnknownAnimalReference(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordFinancial(context.Background(), models.FinancialCreate{
		Kind:     "expense",
		Category: "feed",
		Amount:   10,
		AnimalID: "ghost",
	})

	var refErr *models.InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
}

// ledgerFailingStore makes every history append fail, simulating the partial
// failure after a successful entity write.
type ledgerFailingStore struct {
	repository.Store
}

func (s *ledgerFailingStore) InsertHistoryEvent(context.Context, models.HistoryEvent) error {
	return errors.New("history collection unavailable")
}

func TestRecordSale_SurfacesLedgerInconsistency(t *testing.T) {
	base := memory.NewStore()
	failing := &ledgerFailingStore{Store: base}
	ldg := ledger.New(failing, nil)
	svc := livestock.NewService(failing, ldg, false, nil)
	ctx := context.Background()

	animal, err := svc.CreateAnimal(ctx, models.AnimalCreate{Species: "swine", Sex: "male"})
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, models.SaleCreate{AnimalID: animal.ID, Price: 300})

	var ledgerErr *models.LedgerInconsistencyError
	require.ErrorAs(t, err, &ledgerErr)

	// The entity write went through; the error exists so an operator can
	// reconcile, not to roll back silently.
	after, err := svc.GetAnimal(ctx, animal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, after.Status)
}
