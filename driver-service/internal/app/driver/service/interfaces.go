package service

import (
	"context"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
)

type DriverServiceInterface interface {
	CreateDriver(ctx context.Context, req *entity.CreateDriverRequest) (*entity.Driver, error)
	GetDriver(ctx context.Context, id uuid.UUID, caller auth.Principal) (*entity.Driver, error)
	ListDrivers(ctx context.Context, page pagination.Params) (pagination.Page[entity.Driver], error)
	UpdateDriver(ctx context.Context, id uuid.UUID, req *entity.UpdateDriverRequest, caller auth.Principal) (*entity.Driver, error)
	DeleteDriver(ctx context.Context, id uuid.UUID) error
}
