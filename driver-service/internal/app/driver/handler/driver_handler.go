package handler

import (
	"errors"
	"net/http"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/driver-service/internal/app/driver/service"
	"ridehail/pkg/apierror"
	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type DriverHandler struct {
	driverService service.DriverServiceInterface
	validator     *validator.Validate
}

func NewDriverHandler(driverService service.DriverServiceInterface) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		validator:     apierror.NewValidator(),
	}
}

// CreateDriver handles POST /drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req entity.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondValidation(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		apierror.RespondValidation(c, err)
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), &req)
	if err != nil {
		h.respondServiceError(c, err, "Failed to create driver")
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// GetDriver handles GET /drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	driver, err := h.driverService.GetDriver(c.Request.Context(), id, caller)
	if err != nil {
		h.respondServiceError(c, err, "Failed to get driver")
		return
	}

	c.JSON(http.StatusOK, driver)
}

// ListDrivers handles GET /drivers?page=&size=
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	page, err := h.driverService.ListDrivers(c.Request.Context(), pagination.FromQuery(c))
	if err != nil {
		apierror.Respond(c, http.StatusInternalServerError, "Failed to list drivers")
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdateDriver handles PUT /drivers/:id
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req entity.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.RespondValidation(c, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		apierror.RespondValidation(c, err)
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	driver, err := h.driverService.UpdateDriver(c.Request.Context(), id, &req, caller)
	if err != nil {
		h.respondServiceError(c, err, "Failed to update driver")
		return
	}

	c.JSON(http.StatusOK, driver)
}

// DeleteDriver handles DELETE /drivers/:id
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.driverService.DeleteDriver(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, err, "Failed to delete driver")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Driver deleted successfully"})
}

func (h *DriverHandler) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrDriverNotFound):
		apierror.Respond(c, http.StatusNotFound, "Driver not found")
	case errors.Is(err, service.ErrAccessDenied):
		apierror.Respond(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrDuplicateDriver):
		apierror.Respond(c, http.StatusConflict, err.Error())
	default:
		apierror.Respond(c, http.StatusInternalServerError, fallback)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.Respond(c, http.StatusBadRequest, "Invalid driver ID")
		return uuid.Nil, false
	}
	return id, true
}
