package mocks

import (
	"context"
	"time"

	"ridehail/pkg/pagination"
	"ridehail/rating-service/internal/app/rating/entity"

	"github.com/stretchr/testify/mock"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id string) (*entity.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindAll(ctx context.Context, filter entity.RatingFilter, page pagination.Params) ([]entity.Rating, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRatingRepository) AverageDriverRating(ctx context.Context, driverID string) (*float64, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

type MockWindowRepository struct {
	mock.Mock
}

func (m *MockWindowRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockWindowRepository) Open(ctx context.Context, window *entity.RatingWindow) (bool, error) {
	args := m.Called(ctx, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockWindowRepository) MarkRated(ctx context.Context, rideID string) error {
	args := m.Called(ctx, rideID)
	return args.Error(0)
}

func (m *MockWindowRepository) ListOpen(ctx context.Context, passengerID string) ([]entity.RatingWindow, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RatingWindow), args.Error(1)
}

func (m *MockWindowRepository) CloseExpired(ctx context.Context, openedBefore time.Time) (int64, error) {
	args := m.Called(ctx, openedBefore)
	return args.Get(0).(int64), args.Error(1)
}

type MockAverageCache struct {
	mock.Mock
}

func (m *MockAverageCache) Version(ctx context.Context, driverID string) (int64, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAverageCache) Get(ctx context.Context, driverID string, version int64) (*float64, bool, error) {
	args := m.Called(ctx, driverID, version)
	var avg *float64
	if v := args.Get(0); v != nil {
		avg = v.(*float64)
	}
	return avg, args.Bool(1), args.Error(2)
}

func (m *MockAverageCache) Set(ctx context.Context, driverID string, version int64, avg *float64) error {
	args := m.Called(ctx, driverID, version, avg)
	return args.Error(0)
}

func (m *MockAverageCache) Invalidate(ctx context.Context, driverID string) error {
	args := m.Called(ctx, driverID)
	return args.Error(0)
}

// MockAccessValidator stands in for the directory backed access check.
type MockAccessValidator struct {
	mock.Mock
}

func (m *MockAccessValidator) ValidateAccess(ctx context.Context, driverID, passengerID, token string) error {
	args := m.Called(ctx, driverID, passengerID, token)
	return args.Error(0)
}
