package repository

import (
	"context"
	"time"

	"crewduty-service/internal/domain/entity"
	"crewduty-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDutySnapshotRepository implements DutySnapshotRepository
type MongoDutySnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoDutySnapshotRepository creates a new duty snapshot repository
func NewMongoDutySnapshotRepository(db *mongo.Database) repository.DutySnapshotRepository {
	collection := db.Collection("duty_snapshots")

	ctx := context.Background()

	dutyKeyIndex := mongo.IndexModel{
		Keys:    bson.M{"dutyKey": 1},
		Options: options.Index().SetUnique(true),
	}

	// Compound index for the employee history
	employeeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "employeeName", Value: 1},
			{Key: "date", Value: 1},
		},
	}

	runIndex := mongo.IndexModel{
		Keys: bson.M{"runId": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		dutyKeyIndex,
		employeeIndex,
		runIndex,
	})

	return &MongoDutySnapshotRepository{
		collection: collection,
	}
}

// SaveSnapshots upserts the snapshots by duty key in one bulk write
func (r *MongoDutySnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []entity.DutySnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	now := time.Now()
	models := make([]mongo.WriteModel, 0, len(snapshots))
	for i := range snapshots {
		s := &snapshots[i]
		s.UpdatedAt = now

		updateDoc := bson.M{
			"dutyKey":               s.DutyKey,
			"runId":                 s.RunID,
			"employeeName":          s.EmployeeName,
			"date":                  s.Date,
			"code":                  s.Code,
			"start":                 s.Start,
			"end":                   s.End,
			"flightNumbers":         s.FlightNumbers,
			"flightDutyMinutes":     s.FlightDutyMinutes,
			"overMaxFdp":            s.OverMaxFDP,
			"restLack":              s.RestLack,
			"homeBaseInconvenience": s.HomeBaseInconvenience,
			"groundOverlap":         s.GroundOverlap,
			"dayOffEncroachment":    s.DayOffEncroachment,
			"lateArrival":           s.LateArrival,
			"nightDuty":             s.NightDuty,
			"noLocalNight":          s.NoLocalNight,
			"dayAfterGroundOrOff":   s.DayAfterGroundOrOff,
			"dayBeforeGroundOrOff":  s.DayBeforeGroundOrOff,
			"updatedAt":             s.UpdatedAt,
		}

		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"dutyKey": s.DutyKey}).
			SetUpdate(bson.M{
				"$set":         updateDoc,
				"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": now},
			}).
			SetUpsert(true))
	}

	_, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

// FindByKey finds a snapshot by duty key
func (r *MongoDutySnapshotRepository) FindByKey(ctx context.Context, dutyKey string) (*entity.DutySnapshot, error) {
	var snapshot entity.DutySnapshot
	err := r.collection.FindOne(ctx, bson.M{"dutyKey": dutyKey}).Decode(&snapshot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &snapshot, nil
}

// FindByEmployee returns the snapshots of an employee by date
func (r *MongoDutySnapshotRepository) FindByEmployee(ctx context.Context, employeeName string) ([]entity.DutySnapshot, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"employeeName": employeeName}, &options.FindOptions{
		Sort: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snapshots []entity.DutySnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
