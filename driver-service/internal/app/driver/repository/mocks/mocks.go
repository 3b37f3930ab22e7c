package mocks

import (
	"context"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *entity.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Driver), args.Error(1)
}

func (m *MockDriverRepository) List(ctx context.Context, page pagination.Params) ([]entity.Driver, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Driver), args.Get(1).(int64), args.Error(2)
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *entity.Driver, replaceCars bool) error {
	args := m.Called(ctx, driver, replaceCars)
	return args.Error(0)
}

func (m *MockDriverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDriverCache struct {
	mock.Mock
}

func (m *MockDriverCache) Get(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Driver), args.Error(1)
}

func (m *MockDriverCache) Set(ctx context.Context, driver *entity.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

func (m *MockDriverCache) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
