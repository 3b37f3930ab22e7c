package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ridehail/rating-service/internal/app/rating/entity"
	"ridehail/rating-service/internal/app/rating/repository"
	"ridehail/rating-service/internal/app/rating/repository/mocks"
)

// A rating saved while another request is computing the average must not let
// the older mean end up in the cache.
func TestGetAverageRating_WriteDuringComputeIsNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ratings := new(mocks.MockRatingRepository)
	windows := new(mocks.MockWindowRepository)
	validator := new(mocks.MockAccessValidator)
	svc := NewRatingService(ratings, windows, repository.NewAverageCache(client, 5*time.Minute), validator)

	ctx := context.Background()
	before, after := 3.0, 4.0

	validator.On("ValidateAccess", ctx, driverID, passengerID, "passenger-token").Return(nil)
	ratings.On("Create", ctx, mock.AnythingOfType("*entity.Rating")).Return(nil)
	ratings.On("AverageDriverRating", ctx, driverID).
		Run(func(mock.Arguments) {
			req := &entity.CreateRatingRequest{DriverID: driverID, PassengerID: passengerID, DriverRating: 5, PassengerRating: 5}
			_, err := svc.SaveRating(ctx, req, passenger())
			require.NoError(t, err)
		}).
		Return(&before, nil).Once()
	ratings.On("AverageDriverRating", ctx, driverID).Return(&after, nil).Once()

	stale, err := svc.GetAverageRating(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, *stale)

	fresh, err := svc.GetAverageRating(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, *fresh)

	cached, err := svc.GetAverageRating(ctx, driverID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, *cached)

	ratings.AssertExpectations(t)
}
