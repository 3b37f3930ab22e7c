package service

import (
	"context"
	"time"

	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"
	"ridehail/rating-service/internal/app/rating/entity"
)

// Validator decides whether the caller may rate a ride between a driver and
// a passenger.
type Validator interface {
	ValidateAccess(ctx context.Context, driverID, passengerID, token string) error
}

type RatingServiceInterface interface {
	SaveRating(ctx context.Context, req *entity.CreateRatingRequest, caller auth.Principal) (*entity.Rating, error)
	GetRating(ctx context.Context, id string) (*entity.Rating, error)
	ListRatings(ctx context.Context, filter entity.RatingFilter, page pagination.Params) (pagination.Page[entity.Rating], error)
	UpdateRating(ctx context.Context, id string, req *entity.UpdateRatingRequest, caller auth.Principal) (*entity.Rating, error)
	DeleteRating(ctx context.Context, id string) error
	GetAverageRating(ctx context.Context, driverID string) (*float64, error)
	ListOpenWindows(ctx context.Context, passengerID string, caller auth.Principal) ([]entity.RatingWindow, error)
}

// RideEventHandler is the consumer side of the ride completed topic.
type RideEventHandler interface {
	HandleRideCompleted(ctx context.Context, event *entity.RideCompletedEvent) error
}

type WindowExpirer interface {
	ExpireWindows(ctx context.Context, ttl time.Duration) (int64, error)
}
