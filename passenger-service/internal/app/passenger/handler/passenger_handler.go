package handler

import (
	"errors"
	"net/http"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/passenger-service/internal/app/passenger/service"
	"ridehail/pkg/apierror"
	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PassengerHandler struct {
	passengerService service.PassengerServiceInterface
	validator        *validator.Validate
}

func NewPassengerHandler(passengerService service.PassengerServiceInterface) *PassengerHandler {
	return &PassengerHandler{
		passengerService: passengerService,
		validator:        apierror.NewValidator(),
	}
}

func (h *PassengerHandler) CreatePassenger(c *gin.Context) {
	var req entity.CreatePassengerRequest
	if !h.bind(c, &req) {
		return
	}

	passenger, err := h.passengerService.CreatePassenger(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create passenger")
		return
	}

	c.JSON(http.StatusCreated, passenger)
}

func (h *PassengerHandler) GetPassenger(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	passenger, err := h.passengerService.GetPassenger(c.Request.Context(), id, caller)
	if err != nil {
		respondServiceError(c, err, "Failed to get passenger")
		return
	}

	c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHandler) ListPassengers(c *gin.Context) {
	page, err := h.passengerService.ListPassengers(c.Request.Context(), pagination.FromQuery(c))
	if err != nil {
		apierror.Respond(c, http.StatusInternalServerError, "Failed to list passengers")
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *PassengerHandler) UpdatePassenger(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req entity.UpdatePassengerRequest
	if !h.bind(c, &req) {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	passenger, err := h.passengerService.UpdatePassenger(c.Request.Context(), id, &req, caller)
	if err != nil {
		respondServiceError(c, err, "Failed to update passenger")
		return
	}

	c.JSON(http.StatusOK, passenger)
}

func (h *PassengerHandler) DeletePassenger(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	if err := h.passengerService.DeletePassenger(c.Request.Context(), id, caller); err != nil {
		respondServiceError(c, err, "Failed to delete passenger")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Passenger deleted successfully"})
}

func (h *PassengerHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierror.RespondValidation(c, err)
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		apierror.RespondValidation(c, err)
		return false
	}
	return true
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPassengerNotFound):
		apierror.Respond(c, http.StatusNotFound, "Passenger not found")
	case errors.Is(err, service.ErrAccessDenied):
		apierror.Respond(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrDuplicatePassenger):
		apierror.Respond(c, http.StatusConflict, err.Error())
	default:
		apierror.Respond(c, http.StatusInternalServerError, fallback)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.Respond(c, http.StatusBadRequest, "Invalid passenger ID")
		return uuid.Nil, false
	}
	return id, true
}
