package mocks

import (
	"context"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) Create(ctx context.Context, passenger *entity.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) List(ctx context.Context, page pagination.Params) ([]entity.Passenger, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Passenger), args.Get(1).(int64), args.Error(2)
}

func (m *MockPassengerRepository) Update(ctx context.Context, passenger *entity.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *MockPassengerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
