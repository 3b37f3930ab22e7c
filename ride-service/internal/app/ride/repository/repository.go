package repository

import (
	"context"
	"errors"

	"ridehail/pkg/pagination"
	"ridehail/ride-service/internal/app/ride/entity"

	"github.com/google/uuid"
)

var ErrRideNotFound = errors.New("ride not found")

type RideRepository interface {
	Create(ctx context.Context, ride *entity.Ride) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ride, error)
	FindAll(ctx context.Context, filter entity.RideFilter, page pagination.Params) ([]entity.Ride, int64, error)
	Update(ctx context.Context, ride *entity.Ride) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RideStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
