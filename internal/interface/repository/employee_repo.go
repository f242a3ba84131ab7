package repository

import (
	"context"
	"fmt"
	"time"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"
	"crewduty-service/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmployeeRepository implements EmployeeRepository
type MongoEmployeeRepository struct {
	collection *mongo.Collection
}

// employeeDocument is the stored form of an employee. Roster dates are kept
// as YYYY-MM-DD strings.
type employeeDocument struct {
	ID                         string           `bson:"_id,omitempty"`
	Name                       string           `bson:"name"`
	HomeAirport                string           `bson:"homeAirport"`
	Skills                     []string         `bson:"skills"`
	AircraftTypeQualifications []string         `bson:"aircraftTypeQualifications,omitempty"`
	SpecialQualifications      []string         `bson:"specialQualifications,omitempty"`
	Roster                     []rosterDocument `bson:"roster,omitempty"`
	CreatedAt                  time.Time        `bson:"createdAt"`
	UpdatedAt                  time.Time        `bson:"updatedAt"`
}

type rosterDocument struct {
	Date  string    `bson:"date"`
	Codes []string  `bson:"codes"`
	Start time.Time `bson:"start,omitempty"`
	End   time.Time `bson:"end,omitempty"`
}

// NewMongoEmployeeRepository creates a new employee repository
func NewMongoEmployeeRepository(db *mongo.Database) repository.EmployeeRepository {
	collection := db.Collection("employees")

	// Create unique index on name
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"name": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoEmployeeRepository{
		collection: collection,
	}
}

// ListEmployees returns every employee ordered by name
func (r *MongoEmployeeRepository) ListEmployees(ctx context.Context) ([]entity.EmployeeRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, &options.FindOptions{
		Sort: bson.D{{Key: "name", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entity.EmployeeRecord
	for cursor.Next(ctx) {
		var doc employeeDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		record, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert creates or updates an employee by name
func (r *MongoEmployeeRepository) Upsert(ctx context.Context, record *entity.EmployeeRecord) error {
	doc := newEmployeeDocument(record)
	now := time.Now()

	id := record.ID
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}

	updateDoc := bson.M{
		"name":                       doc.Name,
		"homeAirport":                doc.HomeAirport,
		"skills":                     doc.Skills,
		"aircraftTypeQualifications": doc.AircraftTypeQualifications,
		"specialQualifications":      doc.SpecialQualifications,
		"roster":                     doc.Roster,
		"updatedAt":                  now,
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"name": doc.Name},
		bson.M{
			"$set":         updateDoc,
			"$setOnInsert": bson.M{"_id": id, "createdAt": now},
		},
		opts,
	)
	if err != nil {
		return err
	}

	if result.UpsertedCount > 0 {
		record.ID = id
	}
	return nil
}

func newEmployeeDocument(record *entity.EmployeeRecord) employeeDocument {
	doc := employeeDocument{
		ID:                         record.ID,
		Name:                       record.Name,
		HomeAirport:                record.HomeAirport,
		Skills:                     record.Skills,
		AircraftTypeQualifications: record.AircraftTypeQualifications,
		SpecialQualifications:      record.SpecialQualifications,
	}
	for _, entry := range record.Roster {
		doc.Roster = append(doc.Roster, rosterDocument{
			Date:  entry.Date.String(),
			Codes: entry.Codes,
			Start: entry.Start,
			End:   entry.End,
		})
	}
	return doc
}

func (doc employeeDocument) toEntity() (entity.EmployeeRecord, error) {
	record := entity.EmployeeRecord{
		ID:                         doc.ID,
		Name:                       doc.Name,
		HomeAirport:                doc.HomeAirport,
		Skills:                     doc.Skills,
		AircraftTypeQualifications: doc.AircraftTypeQualifications,
		SpecialQualifications:      doc.SpecialQualifications,
	}
	for _, entry := range doc.Roster {
		date, err := utils.ParseDate(entry.Date)
		if err != nil {
			return entity.EmployeeRecord{}, fmt.Errorf("employee %s roster: %w", doc.Name, err)
		}
		record.Roster = append(record.Roster, entity.RosterEntry{
			Date:  date,
			Codes: entry.Codes,
			Start: entry.Start,
			End:   entry.End,
		})
	}
	return record, nil
}
