package mocks

import (
	"context"

	"ridehail/pkg/pagination"
	"ridehail/ride-service/internal/app/ride/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRideRepository struct {
	mock.Mock
}

func (m *MockRideRepository) Create(ctx context.Context, ride *entity.Ride) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockRideRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ride), args.Error(1)
}

func (m *MockRideRepository) FindAll(ctx context.Context, filter entity.RideFilter, page pagination.Params) ([]entity.Ride, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Ride), args.Get(1).(int64), args.Error(2)
}

func (m *MockRideRepository) Update(ctx context.Context, ride *entity.Ride) error {
	args := m.Called(ctx, ride)
	return args.Error(0)
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RideStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher records published messages.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
