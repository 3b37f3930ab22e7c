package repository

import (
	"context"
	"errors"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

type DriverRepository interface {
	Create(ctx context.Context, driver *entity.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	List(ctx context.Context, page pagination.Params) ([]entity.Driver, int64, error)
	// Update persists the scalar fields; when replaceCars is set the stored
	// cars are swapped for driver.Cars in the same transaction.
	Update(ctx context.Context, driver *entity.Driver, replaceCars bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DriverCache is the lookup cache in front of GetByID.
type DriverCache interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	Set(ctx context.Context, driver *entity.Driver) error
	Delete(ctx context.Context, id uuid.UUID) error
}
