package repository

import (
	"context"
	"fmt"
	"time"

	"ridehail/pkg/metrics"
	"ridehail/rating-service/internal/app/rating/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const windowsCollection = "rating_windows"

type windowRepository struct {
	collection *mongo.Collection
}

func NewWindowRepository(db *mongo.Database) WindowRepository {
	return &windowRepository{
		collection: db.Collection(windowsCollection),
	}
}

func (r *windowRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ride_id", Value: 1}},
			Options: options.Index().SetName("ride_id_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "passenger_id", Value: 1}, {Key: "closed", Value: 1}},
			Options: options.Index().SetName("passenger_open_idx"),
		},
		{
			Keys:    bson.D{{Key: "closed", Value: 1}, {Key: "opened_at", Value: 1}},
			Options: options.Index().SetName("closed_opened_at_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create rating window indexes: %w", err)
	}
	return nil
}

func (r *windowRepository) Open(ctx context.Context, window *entity.RatingWindow) (_ bool, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, windowsCollection)
	defer func() { timer.ObserveDuration(err) }()

	if window.OpenedAt.IsZero() {
		window.OpenedAt = time.Now().UTC()
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"ride_id":      window.RideID,
			"driver_id":    window.DriverID,
			"passenger_id": window.PassengerID,
			"completed_at": window.CompletedAt,
			"opened_at":    window.OpenedAt,
			"rated":        false,
			"closed":       false,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"ride_id": window.RideID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to open rating window: %w", err)
	}

	return result.UpsertedCount > 0, nil
}

// MarkRated closes the window of a rated ride. Rides without a window are
// ignored.
func (r *windowRepository) MarkRated(ctx context.Context, rideID string) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, windowsCollection)
	defer func() { timer.ObserveDuration(err) }()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"rated":     true,
			"closed":    true,
			"closed_at": now,
		},
	}

	if _, err = r.collection.UpdateOne(ctx, bson.M{"ride_id": rideID, "closed": false}, update); err != nil {
		return fmt.Errorf("failed to mark rating window rated: %w", err)
	}
	return nil
}

func (r *windowRepository) ListOpen(ctx context.Context, passengerID string) (_ []entity.RatingWindow, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, windowsCollection)
	defer func() { timer.ObserveDuration(err) }()

	query := bson.M{"closed": false}
	if passengerID != "" {
		query["passenger_id"] = passengerID
	}
	opts := options.Find().SetSort(bson.D{{Key: "opened_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rating windows: %w", err)
	}
	defer cursor.Close(ctx)

	windows := []entity.RatingWindow{}
	if err = cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode rating windows: %w", err)
	}

	return windows, nil
}

func (r *windowRepository) CloseExpired(ctx context.Context, openedBefore time.Time) (_ int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, windowsCollection)
	defer func() { timer.ObserveDuration(err) }()

	query := bson.M{
		"closed":    false,
		"opened_at": bson.M{"$lt": openedBefore},
	}
	update := bson.M{
		"$set": bson.M{
			"closed":    true,
			"closed_at": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateMany(ctx, query, update)
	if err != nil {
		return 0, fmt.Errorf("failed to close expired rating windows: %w", err)
	}

	return result.ModifiedCount, nil
}
