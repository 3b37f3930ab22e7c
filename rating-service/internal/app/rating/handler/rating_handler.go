package handler

import (
	"errors"
	"net/http"

	"ridehail/pkg/apierror"
	"ridehail/pkg/auth"
	"ridehail/pkg/pagination"
	"ridehail/rating-service/internal/app/rating/entity"
	"ridehail/rating-service/internal/app/rating/infrastructure/directory"
	"ridehail/rating-service/internal/app/rating/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RatingHandler struct {
	ratingService service.RatingServiceInterface
	validator     *validator.Validate
}

func NewRatingHandler(ratingService service.RatingServiceInterface) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     apierror.NewValidator(),
	}
}

// CreateRating handles POST /ratings
func (h *RatingHandler) CreateRating(c *gin.Context) {
	var req entity.CreateRatingRequest
	if !h.bind(c, &req) {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	rating, err := h.ratingService.SaveRating(c.Request.Context(), &req, caller)
	if err != nil {
		respondServiceError(c, err, "Failed to create rating")
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// GetRating handles GET /ratings/:id
func (h *RatingHandler) GetRating(c *gin.Context) {
	rating, err := h.ratingService.GetRating(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to get rating")
		return
	}

	c.JSON(http.StatusOK, rating)
}

// ListRatings handles GET /ratings?driver_id=&passenger_id=&driver_rating=
func (h *RatingHandler) ListRatings(c *gin.Context) {
	var query entity.RatingFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apierror.RespondValidation(c, err)
		return
	}
	if err := h.validator.Struct(query); err != nil {
		apierror.RespondValidation(c, err)
		return
	}

	filter := entity.RatingFilter{
		DriverID:     query.DriverID,
		PassengerID:  query.PassengerID,
		DriverRating: query.DriverRating,
	}

	page, err := h.ratingService.ListRatings(c.Request.Context(), filter, pagination.FromQuery(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list ratings")
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdateRating handles PUT /ratings/:id
func (h *RatingHandler) UpdateRating(c *gin.Context) {
	var req entity.UpdateRatingRequest
	if !h.bind(c, &req) {
		return
	}

	caller, _ := auth.PrincipalFrom(c)
	rating, err := h.ratingService.UpdateRating(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		respondServiceError(c, err, "Failed to update rating")
		return
	}

	c.JSON(http.StatusOK, rating)
}

// DeleteRating handles DELETE /ratings/:id
func (h *RatingHandler) DeleteRating(c *gin.Context) {
	if err := h.ratingService.DeleteRating(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete rating")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Rating deleted successfully"})
}

// GetAverageRating handles GET /ratings/drivers/:driver_id/average
func (h *RatingHandler) GetAverageRating(c *gin.Context) {
	driverID := c.Param("driver_id")
	if err := h.validator.Var(driverID, "uuid"); err != nil {
		apierror.RespondFields(c, map[string]string{"driver_id": "must be a valid UUID"})
		return
	}

	avg, err := h.ratingService.GetAverageRating(c.Request.Context(), driverID)
	if err != nil {
		respondServiceError(c, err, "Failed to get average rating")
		return
	}

	c.JSON(http.StatusOK, entity.AverageRatingResponse{DriverID: driverID, AverageRating: avg})
}

// ListOpenWindows handles GET /ratings/windows?passenger_id=
func (h *RatingHandler) ListOpenWindows(c *gin.Context) {
	caller, _ := auth.PrincipalFrom(c)
	windows, err := h.ratingService.ListOpenWindows(c.Request.Context(), c.Query("passenger_id"), caller)
	if err != nil {
		respondServiceError(c, err, "Failed to list rating windows")
		return
	}

	c.JSON(http.StatusOK, windows)
}

func (h *RatingHandler) bind(c *gin.Context, req interface{}) bool {
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
	var notFound *directory.NotFoundError
	var transportErr *directory.TransportError

	switch {
	case errors.Is(err, service.ErrRatingNotFound):
		apierror.Respond(c, http.StatusNotFound, "Rating not found")
	case errors.Is(err, service.ErrInvalidRatingID):
		apierror.Respond(c, http.StatusBadRequest, "Invalid rating ID")
	case errors.Is(err, service.ErrAccessDenied):
		apierror.Respond(c, http.StatusForbidden, "Access denied: caller is not a participant of this ride")
	case errors.As(err, &notFound):
		apierror.Respond(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &transportErr):
		apierror.Respond(c, http.StatusBadGateway, "Directory service unavailable")
	default:
		apierror.Respond(c, http.StatusInternalServerError, fallback)
	}
}
