package repository

import (
	"context"
	"errors"
	"time"

	"ridehail/pkg/pagination"
	"ridehail/rating-service/internal/app/rating/entity"
)

const serviceName = "rating-service"

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrInvalidID      = errors.New("invalid rating id")
)

type RatingRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, rating *entity.Rating) error
	GetByID(ctx context.Context, id string) (*entity.Rating, error)
	FindAll(ctx context.Context, filter entity.RatingFilter, page pagination.Params) ([]entity.Rating, int64, error)
	Update(ctx context.Context, rating *entity.Rating) error
	Delete(ctx context.Context, id string) error
	// AverageDriverRating returns nil when the driver has no ratings.
	AverageDriverRating(ctx context.Context, driverID string) (*float64, error)
}

// WindowRepository stores the rating windows opened by ride completions.
type WindowRepository interface {
	EnsureIndexes(ctx context.Context) error
	// Open inserts the window unless one already exists for the ride and
	// reports whether it was created.
	Open(ctx context.Context, window *entity.RatingWindow) (bool, error)
	MarkRated(ctx context.Context, rideID string) error
	ListOpen(ctx context.Context, passengerID string) ([]entity.RatingWindow, error)
	CloseExpired(ctx context.Context, openedBefore time.Time) (int64, error)
}

// AverageCache keeps computed driver averages per cache version. A cached nil
// average means the driver has no ratings. Readers fetch the version before
// computing and store under it; Invalidate starts a new version.
type AverageCache interface {
	Version(ctx context.Context, driverID string) (int64, error)
	Get(ctx context.Context, driverID string, version int64) (avg *float64, found bool, err error)
	Set(ctx context.Context, driverID string, version int64, avg *float64) error
	Invalidate(ctx context.Context, driverID string) error
}
