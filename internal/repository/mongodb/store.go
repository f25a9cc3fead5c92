package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/laprovidence/livestock/internal/domain/models"
	"github.com/laprovidence/livestock/internal/repository"
)

const (
	collAnimals      = "animals"
	collMedical      = "medical_records"
	collReproduction = "reproduction_records"
	collSales        = "sale_records"
	collFinancial    = "financial_records"
	collHistory      = "history_events"
	collSnapshots    = "herd_snapshots"
)

// Store implements repository.Store on top of MongoDB, one collection per
// entity type, every record keyed by its "id" field.
type Store struct {
	client *mongo.Client
	dbName string
}

var _ repository.Store = (*Store)(nil)

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

func (s *Store) InsertAnimal(ctx context.Context, animal models.Animal) error {
	if _, err := s.coll(collAnimals).InsertOne(ctx, animal); err != nil {
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

func (s *Store) GetAnimal(ctx context.Context, id string) (models.Animal, error) {
	var animal models.Animal
	err := s.coll(collAnimals).FindOne(ctx, bson.M{"id": id}).Decode(&animal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Animal{}, &models.NotFoundError{Entity: "animal", ID: id}
	}
	if err != nil {
		return models.Animal{}, fmt.Errorf("find animal %s: %w", id, err)
	}
	return animal, nil
}

func (s *Store) ListAnimals(ctx context.Context, filter repository.AnimalFilter) ([]models.Animal, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Species != "" {
		query["species"] = filter.Species
	}
	if filter.Sex != "" {
		query["sex"] = filter.Sex
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.coll(collAnimals).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}

	animals := []models.Animal{}
	if err := cursor.All(ctx, &animals); err != nil {
		return nil, fmt.Errorf("decode animals: %w", err)
	}
	return animals, nil
}

func (s *Store) ReplaceAnimal(ctx context.Context, animal models.Animal) error {
	result, err := s.coll(collAnimals).ReplaceOne(ctx, bson.M{"id": animal.ID}, animal)
	if err != nil {
		return fmt.Errorf("replace animal %s: %w", animal.ID, err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "animal", ID: animal.ID}
	}
	return nil
}

func (s *Store) DeleteAnimal(ctx context.Context, id string) error {
	result, err := s.coll(collAnimals).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete animal %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &models.NotFoundError{Entity: "animal", ID: id}
	}
	return nil
}

func (s *Store) CountAnimals(ctx context.Context) (int64, error) {
	count, err := s.coll(collAnimals).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count animals: %w", err)
	}
	return count, nil
}

func (s *Store) InsertMedicalRecord(ctx context.Context, record models.MedicalRecord) error {
	if _, err := s.coll(collMedical).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert medical record: %w", err)
	}
	return nil
}

func (s *Store) ListMedicalRecords(ctx context.Context, filter repository.MedicalFilter) ([]models.MedicalRecord, error) {
	query := bson.M{}
	if filter.AnimalID != "" {
		query["animal_id"] = filter.AnimalID
	}
	if !filter.ReminderFrom.IsZero() || !filter.ReminderTo.IsZero() {
		window := bson.M{}
		if !filter.ReminderFrom.IsZero() {
			window["$gte"] = filter.ReminderFrom
		}
		if !filter.ReminderTo.IsZero() {
			window["$lte"] = filter.ReminderTo
		}
		query["next_visit_date"] = window
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll(collMedical).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list medical records: %w", err)
	}

	records := []models.MedicalRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode medical records: %w", err)
	}
	return records, nil
}

func (s *Store) DeleteMedicalRecordsByAnimal(ctx context.Context, animalID string) error {
	if _, err := s.coll(collMedical).DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return fmt.Errorf("delete medical records for animal %s: %w", animalID, err)
	}
	return nil
}

func (s *Store) InsertReproductionRecord(ctx context.Context, record models.ReproductionRecord) error {
	if _, err := s.coll(collReproduction).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert reproduction record: %w", err)
	}
	return nil
}

func (s *Store) GetReproductionRecord(ctx context.Context, id string) (models.ReproductionRecord, error) {
	var record models.ReproductionRecord
	err := s.coll(collReproduction).FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ReproductionRecord{}, &models.NotFoundError{Entity: "reproduction record", ID: id}
	}
	if err != nil {
		return models.ReproductionRecord{}, fmt.Errorf("find reproduction record %s: %w", id, err)
	}
	return record, nil
}

func (s *Store) ListReproductionRecords(ctx context.Context, filter repository.ReproductionFilter) ([]models.ReproductionRecord, error) {
	query := bson.M{}
	if filter.AnimalID != "" {
		query["$or"] = bson.A{
			bson.M{"female_id": filter.AnimalID},
			bson.M{"male_id": filter.AnimalID},
		}
	}
	if !filter.ExpectedFrom.IsZero() || !filter.ExpectedTo.IsZero() {
		window := bson.M{}
		if !filter.ExpectedFrom.IsZero() {
			window["$gte"] = filter.ExpectedFrom
		}
		if !filter.ExpectedTo.IsZero() {
			window["$lte"] = filter.ExpectedTo
		}
		query["expected_birth_date"] = window
	}
	if filter.OpenOnly {
		query["actual_birth_date"] = bson.M{"$exists": false}
	}

	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: -1}})
	cursor, err := s.coll(collReproduction).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list reproduction records: %w", err)
	}

	records := []models.ReproductionRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode reproduction records: %w", err)
	}
	return records, nil
}

func (s *Store) ReplaceReproductionRecord(ctx context.Context, record models.ReproductionRecord) error {
	result, err := s.coll(collReproduction).ReplaceOne(ctx, bson.M{"id": record.ID}, record)
	if err != nil {
		return fmt.Errorf("replace reproduction record %s: %w", record.ID, err)
	}
	if result.MatchedCount == 0 {
		return &models.NotFoundError{Entity: "reproduction record", ID: record.ID}
	}
	return nil
}

func (s *Store) DeleteReproductionRecordsByAnimal(ctx context.Context, animalID string) error {
	query := bson.M{"$or": bson.A{
		bson.M{"female_id": animalID},
		bson.M{"male_id": animalID},
	}}
	if _, err := s.coll(collReproduction).DeleteMany(ctx, query); err != nil {
		return fmt.Errorf("delete reproduction records for animal %s: %w", animalID, err)
	}
	return nil
}

func (s *Store) InsertSaleRecord(ctx context.Context, record models.SaleRecord) error {
	if _, err := s.coll(collSales).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert sale record: %w", err)
	}
	return nil
}

func (s *Store) ListSaleRecords(ctx context.Context) ([]models.SaleRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll(collSales).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sale records: %w", err)
	}

	records := []models.SaleRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode sale records: %w", err)
	}
	return records, nil
}

func (s *Store) DeleteSaleRecordsByAnimal(ctx context.Context, animalID string) error {
	if _, err := s.coll(collSales).DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return fmt.Errorf("delete sale records for animal %s: %w", animalID, err)
	}
	return nil
}

func (s *Store) InsertFinancialRecord(ctx context.Context, record models.FinancialRecord) error {
	if _, err := s.coll(collFinancial).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert financial record: %w", err)
	}
	return nil
}

func (s *Store) ListFinancialRecords(ctx context.Context, filter repository.FinancialFilter) ([]models.FinancialRecord, error) {
	query := bson.M{}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		window := bson.M{}
		if !filter.From.IsZero() {
			window["$gte"] = filter.From
		}
		if !filter.To.IsZero() {
			window["$lte"] = filter.To
		}
		query["date"] = window
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll(collFinancial).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list financial records: %w", err)
	}

	records := []models.FinancialRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode financial records: %w", err)
	}
	return records, nil
}

func (s *Store) DeleteFinancialRecordsByAnimal(ctx context.Context, animalID string) error {
	if _, err := s.coll(collFinancial).DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return fmt.Errorf("delete financial records for animal %s: %w", animalID, err)
	}
	return nil
}

func (s *Store) InsertHistoryEvent(ctx context.Context, event models.HistoryEvent) error {
	if _, err := s.coll(collHistory).InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert history event: %w", err)
	}
	return nil
}

// ListHistoryEvents returns ledger entries ordered by event date descending,
// insertion order as tiebreak.
func (s *Store) ListHistoryEvents(ctx context.Context, filter repository.HistoryFilter) ([]models.HistoryEvent, error) {
	query := bson.M{}
	if filter.AnimalID != "" {
		query["animal_id"] = filter.AnimalID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: 1}})
	cursor, err := s.coll(collHistory).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list history events: %w", err)
	}

	events := []models.HistoryEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode history events: %w", err)
	}
	return events, nil
}

func (s *Store) DeleteHistoryEventsByAnimal(ctx context.Context, animalID string) error {
	if _, err := s.coll(collHistory).DeleteMany(ctx, bson.M{"animal_id": animalID}); err != nil {
		return fmt.Errorf("delete history events for animal %s: %w", animalID, err)
	}
	return nil
}

func (s *Store) InsertHerdSnapshot(ctx context.Context, snapshot models.HerdSnapshot) error {
	if _, err := s.coll(collSnapshots).InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("insert herd snapshot: %w", err)
	}
	return nil
}
