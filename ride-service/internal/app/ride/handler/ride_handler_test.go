package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ridehail/pkg/apierror"
	"ridehail/pkg/auth"
	"ridehail/pkg/health"
	"ridehail/pkg/pagination"
	"ridehail/ride-service/internal/app/ride/entity"
	"ridehail/ride-service/internal/app/ride/repository"
	"ridehail/ride-service/internal/app/ride/repository/mocks"
	"ridehail/ride-service/internal/app/ride/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router    *gin.Engine
	repo      *mocks.MockRideRepository
	publisher *mocks.MockEventPublisher
	tokens    *auth.TokenManager
}

func setup(policy service.TransitionPolicy) *testEnv {
	repo := new(mocks.MockRideRepository)
	publisher := new(mocks.MockEventPublisher)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	h := NewRideHandler(service.NewRideService(repo, publisher, policy))
	router := SetupRoutes(h, auth.NewMiddleware(tokens), health.NewHandler("ride-service"))
	return &testEnv{router: router, repo: repo, publisher: publisher, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, userID string, role auth.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := e.tokens.Issue(userID, role)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateRide_Created(t *testing.T) {
	env := setup(nil)
	env.repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Ride")).Return(nil)
	passengerID := uuid.NewString()

	w := env.do(t, http.MethodPost, "/rides", map[string]interface{}{
		"driver_id":           uuid.NewString(),
		"passenger_id":        passengerID,
		"pickup_address":      "Lenina 1",
		"destination_address": "Mira 5",
		"price":               "12.30",
	}, passengerID, auth.RolePassenger)

	require.Equal(t, http.StatusCreated, w.Code)

	var ride entity.Ride
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ride))
	assert.Equal(t, entity.RideStatusCreated, ride.Status)
	assert.True(t, decimal.RequireFromString("12.3").Equal(ride.Price))
}

func TestCreateRide_NegativePrice(t *testing.T) {
	env := setup(nil)

	w := env.do(t, http.MethodPost, "/rides", map[string]interface{}{
		"driver_id":           uuid.NewString(),
		"passenger_id":        uuid.NewString(),
		"pickup_address":      "Lenina 1",
		"destination_address": "Mira 5",
		"price":               "-3",
	}, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "price")
}

func TestCreateRide_MissingFields(t *testing.T) {
	env := setup(nil)

	w := env.do(t, http.MethodPost, "/rides", map[string]interface{}{
		"driver_id": "not-a-uuid",
	}, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields, 4)
	assert.Equal(t, "must be a valid UUID", resp.Fields["driver_id"])
}

func TestGetRide_NotFound(t *testing.T) {
	env := setup(nil)
	id := uuid.New()
	env.repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrRideNotFound)

	w := env.do(t, http.MethodGet, "/rides/"+id.String(), nil, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRides_FilterFromQuery(t *testing.T) {
	env := setup(nil)
	minPrice := decimal.RequireFromString("10.00")

	env.repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f entity.RideFilter) bool {
		return f.Status == entity.RideStatusCompleted && f.MinPrice != nil && f.MinPrice.Equal(minPrice) && f.MaxPrice == nil
	}), pagination.New(1, 10)).Return([]entity.Ride{}, int64(0), nil)

	w := env.do(t, http.MethodGet, "/rides?status=COMPLETED&min_price=10.00", nil, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusOK, w.Code)
	env.repo.AssertExpectations(t)
}

func TestListRides_InvalidStatus(t *testing.T) {
	env := setup(nil)

	w := env.do(t, http.MethodGet, "/rides?status=FLYING", nil, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatus_StrictConflict(t *testing.T) {
	env := setup(service.StrictPolicy{})
	ride := &entity.Ride{ID: uuid.New(), DriverID: uuid.New(), PassengerID: uuid.New(), Status: entity.RideStatusCompleted}
	env.repo.On("GetByID", mock.Anything, ride.ID).Return(ride, nil)

	w := env.do(t, http.MethodPatch, "/rides/"+ride.ID.String()+"/status",
		entity.UpdateStatusRequest{Status: entity.RideStatusAccepted}, ride.DriverID.String(), auth.RoleDriver)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatus_CompletesRide(t *testing.T) {
	env := setup(nil)
	ride := &entity.Ride{ID: uuid.New(), DriverID: uuid.New(), PassengerID: uuid.New(), Status: entity.RideStatusEnRouteToDestination}
	env.repo.On("GetByID", mock.Anything, ride.ID).Return(ride, nil)
	env.repo.On("UpdateStatus", mock.Anything, ride.ID, entity.RideStatusCompleted).Return(nil)
	env.publisher.On("PublishMessage", mock.Anything, ride.ID.String(), mock.Anything).Return(nil)

	w := env.do(t, http.MethodPatch, "/rides/"+ride.ID.String()+"/status",
		entity.UpdateStatusRequest{Status: entity.RideStatusCompleted}, ride.DriverID.String(), auth.RoleDriver)

	assert.Equal(t, http.StatusOK, w.Code)
	env.publisher.AssertExpectations(t)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	env := setup(nil)

	w := env.do(t, http.MethodPatch, "/rides/"+uuid.NewString()+"/status",
		map[string]string{"status": "TELEPORTED"}, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRide_AdminOnly(t *testing.T) {
	env := setup(nil)

	w := env.do(t, http.MethodDelete, "/rides/"+uuid.NewString(), nil, uuid.NewString(), auth.RoleDriver)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
