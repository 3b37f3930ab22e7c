package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/driver-service/internal/app/driver/repository"
	"ridehail/driver-service/internal/app/driver/repository/mocks"
	"ridehail/driver-service/internal/app/driver/service"
	"ridehail/pkg/apierror"
	"ridehail/pkg/auth"
	"ridehail/pkg/health"
	"ridehail/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	tokens *auth.TokenManager
	repo   *mocks.MockDriverRepository
	cache  *mocks.MockDriverCache
}

func setupTestEnv() *testEnv {
	repo := new(mocks.MockDriverRepository)
	cache := new(mocks.MockDriverCache)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	driverHandler := NewDriverHandler(service.NewDriverService(repo, cache))
	router := SetupRoutes(driverHandler, auth.NewMiddleware(tokens), health.NewHandler("driver-service"))

	return &testEnv{router: router, tokens: tokens, repo: repo, cache: cache}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, userID string, role auth.Role) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := e.tokens.Issue(userID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateDriver_Success(t *testing.T) {
	env := setupTestEnv()
	env.repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Driver")).Return(nil)

	w := env.do(t, http.MethodPost, "/drivers", entity.CreateDriverRequest{
		Name:  "Ivan Petrov",
		Phone: "+79990001122",
		Email: "ivan@example.com",
		Sex:   entity.SexMale,
		Cars:  []entity.CarRequest{{Number: "A123BC77", Brand: "Skoda", Color: "white", Year: 2021}},
	}, "admin-1", auth.RoleAdmin)

	assert.Equal(t, http.StatusCreated, w.Code)

	var driver entity.Driver
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &driver))
	assert.Equal(t, "Ivan Petrov", driver.Name)
	assert.Len(t, driver.Cars, 1)
}

func TestCreateDriver_ValidationListsEveryField(t *testing.T) {
	env := setupTestEnv()

	w := env.do(t, http.MethodPost, "/drivers", map[string]interface{}{
		"name":  "I",
		"email": "not-an-email",
		"sex":   "OTHER",
	}, "admin-1", auth.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "phone")
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "sex")
	env.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDriver_RequiresAdminOrService(t *testing.T) {
	env := setupTestEnv()

	w := env.do(t, http.MethodPost, "/drivers", entity.CreateDriverRequest{}, uuid.NewString(), auth.RoleDriver)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateDriver_Unauthenticated(t *testing.T) {
	env := setupTestEnv()

	w := env.do(t, http.MethodPost, "/drivers", entity.CreateDriverRequest{}, "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetDriver_OwnRecord(t *testing.T) {
	env := setupTestEnv()
	id := uuid.New()
	env.cache.On("Get", mock.Anything, id).Return(&entity.Driver{ID: id, Name: "Ivan"}, nil)

	w := env.do(t, http.MethodGet, "/drivers/"+id.String(), nil, id.String(), auth.RoleDriver)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ivan"`)
}

func TestGetDriver_ForeignRecordForbidden(t *testing.T) {
	env := setupTestEnv()
	id := uuid.New()

	w := env.do(t, http.MethodGet, "/drivers/"+id.String(), nil, uuid.NewString(), auth.RolePassenger)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetDriver_NotFound(t *testing.T) {
	env := setupTestEnv()
	id := uuid.New()
	env.cache.On("Get", mock.Anything, id).Return(nil, nil)
	env.repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrDriverNotFound)

	w := env.do(t, http.MethodGet, "/drivers/"+id.String(), nil, "svc", auth.RoleService)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp apierror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Driver not found", resp.Error)
}

func TestGetDriver_InvalidID(t *testing.T) {
	env := setupTestEnv()

	w := env.do(t, http.MethodGet, "/drivers/not-a-uuid", nil, "admin-1", auth.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDrivers_Paginated(t *testing.T) {
	env := setupTestEnv()
	env.repo.On("List", mock.Anything, pagination.Params{Page: 2, Size: 5}).
		Return([]entity.Driver{{ID: uuid.New(), Name: "Anna"}}, int64(6), nil)

	w := env.do(t, http.MethodGet, "/drivers?page=2&size=5", nil, "admin-1", auth.RoleAdmin)

	assert.Equal(t, http.StatusOK, w.Code)

	var page pagination.Page[entity.Driver]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(6), page.TotalItems)
	assert.Len(t, page.Items, 1)
}

func TestDeleteDriver_AdminOnly(t *testing.T) {
	env := setupTestEnv()
	id := uuid.New()

	w := env.do(t, http.MethodDelete, "/drivers/"+id.String(), nil, "svc", auth.RoleService)
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.repo.On("Delete", mock.Anything, id).Return(nil)
	env.cache.On("Delete", mock.Anything, id).Return(nil)

	w = env.do(t, http.MethodDelete, "/drivers/"+id.String(), nil, "admin-1", auth.RoleAdmin)
	assert.Equal(t, http.StatusOK, w.Code)
}
