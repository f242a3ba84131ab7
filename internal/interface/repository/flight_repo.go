package repository

import (
	"context"
	"time"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new flight repository
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("flights")

	// Create unique index on flightKey
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"flightKey": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Create index on departureUtc for horizon queries
	departureIndex := mongo.IndexModel{
		Keys: bson.M{"departureUtc": 1},
	}
	collection.Indexes().CreateOne(ctx, departureIndex)

	return &MongoFlightRepository{
		collection: collection,
	}
}

// FlightKey returns the unique key of a flight record
func FlightKey(record *entity.FlightRecord) string {
	return record.FlightNumber + "@" + record.DepartureUTC.UTC().Format("2006-01-02")
}

// ListFlights returns the flights departing in [from, to), by departure
func (r *MongoFlightRepository) ListFlights(ctx context.Context, from, to time.Time) ([]entity.FlightRecord, error) {
	filter := bson.M{
		"departureUtc": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}

	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Sort: bson.D{
			{Key: "departureUtc", Value: 1},
			{Key: "flightNumber", Value: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entity.FlightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert creates or updates a flight record
func (r *MongoFlightRepository) Upsert(ctx context.Context, record *entity.FlightRecord) error {
	record.UpdatedAt = time.Now()
	record.FlightKey = FlightKey(record)

	// For new records
	id := record.ID
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}

	// Create a copy without ID for the update
	updateDoc := bson.M{
		"flightKey":            record.FlightKey,
		"flightNumber":         record.FlightNumber,
		"departureAirport":     record.DepartureAirport,
		"arrivalAirport":       record.ArrivalAirport,
		"departureUtc":         record.DepartureUTC,
		"arrivalUtc":           record.ArrivalUTC,
		"aircraftType":         record.AircraftType,
		"aircraftRegistration": record.AircraftRegistration,
		"requiredSkills":       record.RequiredSkills,
		"updatedAt":            record.UpdatedAt,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"flightKey": record.FlightKey}

	result, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{
			"$set":         updateDoc,
			"$setOnInsert": bson.M{"_id": id, "createdAt": record.UpdatedAt},
		},
		opts,
	)
	if err != nil {
		return err
	}

	if result.UpsertedCount > 0 {
		record.ID = id
		record.CreatedAt = record.UpdatedAt
	}
	return nil
}
