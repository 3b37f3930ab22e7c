package handler

import (
	"errors"
	"net/http"

	"ridehail/pkg/apierror"
	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"
	"ridehail/ride-service/internal/app/ride/entity"
	"ridehail/ride-service/internal/app/ride/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RideHandler struct {
	rideService service.RideServiceInterface
	validator   *validator.Validate
}

func NewRideHandler(rideService service.RideServiceInterface) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		validator:   apierror.NewValidator(),
	}
}

// CreateRide handles POST /rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req entity.CreateRideRequest
	if !h.bind(c, &req) {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	ride, err := h.rideService.CreateRide(c.Request.Context(), &req, caller)
	if err != nil {
		respondServiceError(c, err, "Failed to create ride")
		return
	}

	c.JSON(http.StatusCreated, ride)
}

// GetRide handles GET /rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	ride, err := h.rideService.GetRide(c.Request.Context(), id, caller)
	if err != nil {
		respondServiceError(c, err, "Failed to get ride")
		return
	}

	c.JSON(http.StatusOK, ride)
}

// ListRides handles GET /rides with the filter in the query string.
func (h *RideHandler) ListRides(c *gin.Context) {
	var query entity.RideFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierror.RespondValidation(c, err)
		return
	}
	if err := h.validator.Struct(query); err != nil {
		apierror.RespondValidation(c, err)
		return
	}

	filter, err := toFilter(query)
	if err != nil {
		apierror.Respond(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	page, err := h.rideService.ListRides(c.Request.Context(), filter, pagination.FromQuery(c), caller)
	if err != nil {
		respondServiceError(c, err, "Failed to list rides")
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdateRide handles PUT /rides/:id
func (h *RideHandler) UpdateRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req entity.UpdateRideRequest
	if !h.bind(c, &req) {
		return
	}

	ride, err := h.rideService.UpdateRide(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update ride")
		return
	}

	c.JSON(http.StatusOK, ride)
}

// UpdateStatus handles PATCH /rides/:id/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req entity.UpdateStatusRequest
	if !h.bind(c, &req) {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	ride, err := h.rideService.UpdateStatus(c.Request.Context(), id, req.Status, caller)
	if err != nil {
		respondServiceError(c, err, "Failed to update ride status")
		return
	}

	c.JSON(http.StatusOK, ride)
}

// DeleteRide handles DELETE /rides/:id
func (h *RideHandler) DeleteRide(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.rideService.DeleteRide(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete ride")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Ride deleted successfully"})
}

func (h *RideHandler) bind(c *gin.Context, req interface{}) bool {
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

func toFilter(q entity.RideFilterQuery) (entity.RideFilter, error) {
	filter := entity.RideFilter{
		PickupAddress:      q.PickupAddress,
		DestinationAddress: q.DestinationAddress,
		Status:             entity.RideStatus(q.Status),
	}

	if q.DriverID != "" {
		id, err := uuid.Parse(q.DriverID)
		if err != nil {
			return filter, errors.New("invalid driver_id")
		}
		filter.DriverID = &id
	}
	if q.PassengerID != "" {
		id, err := uuid.Parse(q.PassengerID)
		if err != nil {
			return filter, errors.New("invalid passenger_id")
		}
		filter.PassengerID = &id
	}
	if q.MinPrice != "" {
		price, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return filter, errors.New("invalid min_price")
		}
		filter.MinPrice = &price
	}
	if q.MaxPrice != "" {
		price, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return filter, errors.New("invalid max_price")
		}
		filter.MaxPrice = &price
	}

	return filter, nil
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrRideNotFound):
		apierror.Respond(c, http.StatusNotFound, "Ride not found")
	case errors.Is(err, service.ErrAccessDenied):
		apierror.Respond(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrInvalidStatusTransition):
		apierror.Respond(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNegativePrice):
		apierror.RespondFields(c, map[string]string{"price": "must be greater than or equal to 0"})
	default:
		apierror.Respond(c, http.StatusInternalServerError, fallback)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.Respond(c, http.StatusBadRequest, "Invalid ride ID")
		return uuid.Nil, false
	}
	return id, true
}
