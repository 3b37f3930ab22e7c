package service

import (
	"context"

	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"
	"ridehail/ride-service/internal/app/ride/entity"

	"github.com/google/uuid"
)

type RideServiceInterface interface {
	CreateRide(ctx context.Context, req *entity.CreateRideRequest, caller auth.Principal) (*entity.Ride, error)
	GetRide(ctx context.Context, id uuid.UUID, caller auth.Principal) (*entity.Ride, error)
	ListRides(ctx context.Context, filter entity.RideFilter, page pagination.Params, caller auth.Principal) (pagination.Page[entity.Ride], error)
	UpdateRide(ctx context.Context, id uuid.UUID, req *entity.UpdateRideRequest) (*entity.Ride, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RideStatus, caller auth.Principal) (*entity.Ride, error)
	DeleteRide(ctx context.Context, id uuid.UUID) error
}
