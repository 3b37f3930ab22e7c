package service

import (
	"context"
	"errors"
	"testing"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/passenger-service/internal/app/passenger/repository"
	"ridehail/passenger-service/internal/app/passenger/repository/mocks"
	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPassenger() *entity.Passenger {
	return &entity.Passenger{
		ID:        uuid.New(),
		FirstName: "Maria",
		LastName:  "Ivanova",
		Email:     "maria@example.com",
		Phone:     "+79990003344",
	}
}

func TestCreatePassenger_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)

	repo.On("Create", ctx, mock.AnythingOfType("*entity.Passenger")).Return(nil)

	passenger, err := svc.CreatePassenger(ctx, &entity.CreatePassengerRequest{
		FirstName: "Maria",
		LastName:  "Ivanova",
		Email:     "maria@example.com",
		Phone:     "+79990003344",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, passenger.ID)
	assert.False(t, passenger.IsDeleted)
	assert.False(t, passenger.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreatePassenger_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)

	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.CreatePassenger(ctx, &entity.CreatePassengerRequest{})

	assert.ErrorIs(t, err, ErrDuplicatePassenger)
}

func TestGetPassenger_OwnRecord(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	expected := newTestPassenger()

	repo.On("GetByID", ctx, expected.ID).Return(expected, nil)

	passenger, err := svc.GetPassenger(ctx, expected.ID, auth.Principal{UserID: expected.ID.String(), Role: auth.RolePassenger})

	require.NoError(t, err)
	assert.Equal(t, expected, passenger)
}

func TestGetPassenger_DriverIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	id := uuid.New()

	_, err := svc.GetPassenger(ctx, id, auth.Principal{UserID: uuid.NewString(), Role: auth.RoleDriver})

	assert.ErrorIs(t, err, ErrAccessDenied)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetPassenger_DeletedIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	id := uuid.New()

	repo.On("GetByID", ctx, id).Return(nil, repository.ErrPassengerNotFound)

	_, err := svc.GetPassenger(ctx, id, auth.Principal{UserID: "svc", Role: auth.RoleService})

	assert.ErrorIs(t, err, ErrPassengerNotFound)
}

func TestListPassengers(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	params := pagination.New(1, 10)

	repo.On("List", ctx, params).Return([]entity.Passenger{*newTestPassenger()}, int64(1), nil)

	page, err := svc.ListPassengers(ctx, params)

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListPassengers_RepoError(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	params := pagination.New(1, 10)

	repo.On("List", ctx, params).Return(nil, int64(0), errors.New("db down"))

	_, err := svc.ListPassengers(ctx, params)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list passengers")
}

func TestUpdatePassenger_MergesFields(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	existing := newTestPassenger()

	repo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	passenger, err := svc.UpdatePassenger(ctx, existing.ID, &entity.UpdatePassengerRequest{LastName: "Petrova"},
		auth.Principal{UserID: "admin", Role: auth.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, "Maria", passenger.FirstName)
	assert.Equal(t, "Petrova", passenger.LastName)
	assert.False(t, passenger.UpdatedAt.IsZero())
}

func TestDeletePassenger_SoftDeletes(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	id := uuid.New()

	repo.On("SoftDelete", ctx, id).Return(nil)

	err := svc.DeletePassenger(ctx, id, auth.Principal{UserID: id.String(), Role: auth.RolePassenger})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeletePassenger_AlreadyDeleted(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockPassengerRepository)
	svc := NewPassengerService(repo)
	id := uuid.New()

	repo.On("SoftDelete", ctx, id).Return(repository.ErrPassengerNotFound)

	err := svc.DeletePassenger(ctx, id, auth.Principal{UserID: "admin", Role: auth.RoleAdmin})

	assert.ErrorIs(t, err, ErrPassengerNotFound)
}
