package service

import (
	"context"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
)

type PassengerServiceInterface interface {
	CreatePassenger(ctx context.Context, req *entity.CreatePassengerRequest) (*entity.Passenger, error)
	GetPassenger(ctx context.Context, id uuid.UUID, caller auth.Principal) (*entity.Passenger, error)
	ListPassengers(ctx context.Context, page pagination.Params) (pagination.Page[entity.Passenger], error)
	UpdatePassenger(ctx context.Context, id uuid.UUID, req *entity.UpdatePassengerRequest, caller auth.Principal) (*entity.Passenger, error)
	DeletePassenger(ctx context.Context, id uuid.UUID, caller auth.Principal) error
}
