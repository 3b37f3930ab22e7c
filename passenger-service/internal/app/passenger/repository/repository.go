package repository

import (
	"context"
	"errors"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrDuplicateKey      = errors.New("duplicate key")
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PassengerRepository interface {
	Create(ctx context.Context, passenger *entity.Passenger) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Passenger, error)
	List(ctx context.Context, page pagination.Params) ([]entity.Passenger, int64, error)
	Update(ctx context.Context, passenger *entity.Passenger) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
