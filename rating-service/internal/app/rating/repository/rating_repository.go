package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"
	"ridehail/rating-service/internal/app/rating/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ratingsCollection = "ratings"

type ratingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) RatingRepository {
	return &ratingRepository{
		collection: db.Collection(ratingsCollection),
	}
}

// EnsureIndexes creates the lookup indexes used by the list filters and the
// driver average aggregation.
func (r *ratingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "driver_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("driver_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "passenger_id", Value: 1}},
			Options: options.Index().SetName("passenger_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "ride_id", Value: 1}},
			Options: options.Index().SetName("ride_id_idx").SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create rating indexes: %w", err)
	}
	return nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, ratingsCollection)
	defer func() { timer.ObserveDuration(err) }()

	now := time.Now().UTC()
	rating.CreatedAt = now
	rating.UpdatedAt = now
	if rating.ID.IsZero() {
		rating.ID = primitive.NewObjectID()
	}

	if _, err = r.collection.InsertOne(ctx, rating); err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id string) (_ *entity.Rating, err error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, ratingsCollection)
	defer func() { timer.ObserveDuration(err) }()

	var rating entity.Rating
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&rating)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return &rating, nil
}

func (r *ratingRepository) FindAll(ctx context.Context, filter entity.RatingFilter, page pagination.Params) (_ []entity.Rating, _ int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, ratingsCollection)
	defer func() { timer.ObserveDuration(err) }()

	query := ratingQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Size))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	ratings := []entity.Rating{}
	if err = cursor.All(ctx, &ratings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode ratings: %w", err)
	}

	return ratings, total, nil
}

func (r *ratingRepository) Update(ctx context.Context, rating *entity.Rating) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, ratingsCollection)
	defer func() { timer.ObserveDuration(err) }()

	rating.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"driver_rating":    rating.DriverRating,
			"passenger_rating": rating.PassengerRating,
			"comment":          rating.Comment,
			"updated_at":       rating.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": rating.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRatingNotFound
	}

	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id string) (err error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, ratingsCollection)
	defer func() { timer.ObserveDuration(err) }()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrRatingNotFound
	}

	return nil
}

func (r *ratingRepository) AverageDriverRating(ctx context.Context, driverID string) (_ *float64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, ratingsCollection)
	defer func() { timer.ObserveDuration(err) }()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"driver_id": driverID}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average", Value: bson.M{"$avg": "$driver_rating"}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate driver rating: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Average *float64 `bson:"average"`
	}
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode driver rating: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	return result[0].Average, nil
}

func ratingQuery(filter entity.RatingFilter) bson.M {
	query := bson.M{}
	if filter.DriverID != "" {
		query["driver_id"] = filter.DriverID
	}
	if filter.PassengerID != "" {
		query["passenger_id"] = filter.PassengerID
	}
	if filter.DriverRating != 0 {
		query["driver_rating"] = filter.DriverRating
	}
	return query
}
