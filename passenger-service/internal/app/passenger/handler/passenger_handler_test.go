package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/passenger-service/internal/app/passenger/repository"
	"ridehail/passenger-service/internal/app/passenger/repository/mocks"
	"ridehail/passenger-service/internal/app/passenger/service"
	"ridehail/pkg/apierror"
	"ridehail/pkg/auth"
	"ridehail/pkg/health"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter() (*gin.Engine, *mocks.MockPassengerRepository, *auth.TokenManager) {
	repo := new(mocks.MockPassengerRepository)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	h := NewPassengerHandler(service.NewPassengerService(repo))
	router := SetupRoutes(h, auth.NewMiddleware(tokens), health.NewHandler("passenger-service"))
	return router, repo, tokens
}

func request(t *testing.T, router *gin.Engine, tokens *auth.TokenManager, method, path string, body interface{}, userID string, role auth.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, err := tokens.Issue(userID, role)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePassenger_Created(t *testing.T) {
	router, repo, tokens := setupRouter()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Passenger")).Return(nil)

	w := request(t, router, tokens, http.MethodPost, "/passengers", entity.CreatePassengerRequest{
		FirstName: "Maria",
		LastName:  "Ivanova",
		Email:     "maria@example.com",
		Phone:     "+79990003344",
	}, "svc", auth.RoleService)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "is_deleted")
}

func TestCreatePassenger_InvalidEmail(t *testing.T) {
	router, _, tokens := setupRouter()

	w := request(t, router, tokens, http.MethodPost, "/passengers", entity.CreatePassengerRequest{
		FirstName: "Maria",
		LastName:  "Ivanova",
		Email:     "maria",
		Phone:     "+79990003344",
	}, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]string{"email": "must be a valid email"}, resp.Fields)
}

func TestCreatePassenger_Conflict(t *testing.T) {
	router, repo, tokens := setupRouter()
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	w := request(t, router, tokens, http.MethodPost, "/passengers", entity.CreatePassengerRequest{
		FirstName: "Maria",
		LastName:  "Ivanova",
		Email:     "maria@example.com",
		Phone:     "+79990003344",
	}, "admin", auth.RoleAdmin)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetPassenger_Forbidden(t *testing.T) {
	router, _, tokens := setupRouter()

	w := request(t, router, tokens, http.MethodGet, "/passengers/"+uuid.NewString(), nil, uuid.NewString(), auth.RolePassenger)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeletePassenger_ThenNotFound(t *testing.T) {
	router, repo, tokens := setupRouter()
	id := uuid.New()

	repo.On("SoftDelete", mock.Anything, id).Return(nil).Once()
	repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrPassengerNotFound)

	w := request(t, router, tokens, http.MethodDelete, "/passengers/"+id.String(), nil, id.String(), auth.RolePassenger)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, router, tokens, http.MethodGet, "/passengers/"+id.String(), nil, id.String(), auth.RolePassenger)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
