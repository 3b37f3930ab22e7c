package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridehail/pkg/auth"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"
	"ridehail/rating-service/internal/app/rating/entity"
	"ridehail/rating-service/internal/app/rating/repository"
)

// RatingService is the rating ledger. Every write is checked against the
// driver and passenger directories with the caller's own token.
type RatingService struct {
	ratingRepo repository.RatingRepository
	windowRepo repository.WindowRepository
	cache      repository.AverageCache
	validator  Validator
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	windowRepo repository.WindowRepository,
	cache repository.AverageCache,
	validator Validator,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		windowRepo: windowRepo,
		cache:      cache,
		validator:  validator,
	}
}

// SaveRating stores a new rating once the caller is confirmed as a participant.
// The check and the insert are not atomic: a participant removed in between
// still gets the rating stored.
func (s *RatingService) SaveRating(ctx context.Context, req *entity.CreateRatingRequest, caller auth.Principal) (*entity.Rating, error) {
	if err := s.validator.ValidateAccess(ctx, req.DriverID, req.PassengerID, caller.Token); err != nil {
		return nil, err
	}

	rating := &entity.Rating{
		DriverID:        req.DriverID,
		PassengerID:     req.PassengerID,
		RideID:          req.RideID,
		DriverRating:    req.DriverRating,
		PassengerRating: req.PassengerRating,
		Comment:         req.Comment,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	metrics.RatingsCreated.Inc()
	metrics.RatingsScore.WithLabelValues("driver").Observe(float64(rating.DriverRating))
	metrics.RatingsScore.WithLabelValues("passenger").Observe(float64(rating.PassengerRating))

	s.invalidateAverage(ctx, rating.DriverID)

	if rating.RideID != "" {
		if err := s.windowRepo.MarkRated(ctx, rating.RideID); err != nil {
			logger.Warn().
				Err(err).
				Str("ride_id", rating.RideID).
				Msg("Failed to close rating window")
		}
	}

	logger.Info().
		Str("rating_id", rating.ID.Hex()).
		Str("driver_id", rating.DriverID).
		Str("passenger_id", rating.PassengerID).
		Str("caller", caller.UserID).
		Msg("Rating saved")

	return rating, nil
}

func (s *RatingService) GetRating(ctx context.Context, id string) (*entity.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return rating, nil
}

func (s *RatingService) ListRatings(ctx context.Context, filter entity.RatingFilter, page pagination.Params) (pagination.Page[entity.Rating], error) {
	ratings, total, err := s.ratingRepo.FindAll(ctx, filter, page)
	if err != nil {
		return pagination.Page[entity.Rating]{}, fmt.Errorf("failed to list ratings: %w", err)
	}
	return pagination.NewPage(ratings, page, total), nil
}

// UpdateRating re-checks access against the stored participants and merges
// the fields present in the request.
func (s *RatingService) UpdateRating(ctx context.Context, id string, req *entity.UpdateRatingRequest, caller auth.Principal) (*entity.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if err := s.validator.ValidateAccess(ctx, rating.DriverID, rating.PassengerID, caller.Token); err != nil {
		return nil, err
	}

	if req.DriverRating != nil {
		rating.DriverRating = *req.DriverRating
	}
	if req.PassengerRating != nil {
		rating.PassengerRating = *req.PassengerRating
	}
	if req.Comment != "" {
		rating.Comment = req.Comment
	}

	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, mapRepoError(err)
	}

	s.invalidateAverage(ctx, rating.DriverID)

	return rating, nil
}

func (s *RatingService) DeleteRating(ctx context.Context, id string) error {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}

	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}

	s.invalidateAverage(ctx, rating.DriverID)

	logger.Info().Str("rating_id", id).Msg("Rating deleted")
	return nil
}

// GetAverageRating returns the mean driver score, or nil for a driver nobody
// has rated yet. Results are cached until the next write for that driver; a
// mean computed concurrently with a write is stored under the old version and
// never served.
func (s *RatingService) GetAverageRating(ctx context.Context, driverID string) (*float64, error) {
	version, err := s.cache.Version(ctx, driverID)
	if err != nil {
		logger.Warn().Err(err).Str("driver_id", driverID).Msg("Average cache version read failed")
		return s.computeAverage(ctx, driverID)
	}

	avg, found, err := s.cache.Get(ctx, driverID, version)
	if err != nil {
		logger.Warn().Err(err).Str("driver_id", driverID).Msg("Average cache read failed")
	}
	if found {
		return avg, nil
	}

	avg, err = s.computeAverage(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, driverID, version, avg); err != nil {
		logger.Warn().Err(err).Str("driver_id", driverID).Msg("Average cache write failed")
	}

	return avg, nil
}

func (s *RatingService) computeAverage(ctx context.Context, driverID string) (*float64, error) {
	avg, err := s.ratingRepo.AverageDriverRating(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}

// ListOpenWindows lists the rides still waiting for a rating. Passengers only
// see their own.
func (s *RatingService) ListOpenWindows(ctx context.Context, passengerID string, caller auth.Principal) ([]entity.RatingWindow, error) {
	if caller.Role == auth.RolePassenger {
		passengerID = caller.UserID
	}

	windows, err := s.windowRepo.ListOpen(ctx, passengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating windows: %w", err)
	}
	return windows, nil
}

// HandleRideCompleted opens a rating window for the ride. Redelivered events
// find the window already open and change nothing.
func (s *RatingService) HandleRideCompleted(ctx context.Context, event *entity.RideCompletedEvent) error {
	window := &entity.RatingWindow{
		RideID:      event.RideID,
		DriverID:    event.DriverID,
		PassengerID: event.PassengerID,
		CompletedAt: event.CompletedAt,
	}

	created, err := s.windowRepo.Open(ctx, window)
	if err != nil {
		return fmt.Errorf("failed to open rating window: %w", err)
	}

	if created {
		metrics.RatingWindowsOpened.Inc()
		logger.Info().
			Str("ride_id", event.RideID).
			Str("passenger_id", event.PassengerID).
			Msg("Rating window opened")
	} else {
		logger.Debug().Str("ride_id", event.RideID).Msg("Rating window already open")
	}

	return nil
}

func (s *RatingService) ExpireWindows(ctx context.Context, ttl time.Duration) (int64, error) {
	closed, err := s.windowRepo.CloseExpired(ctx, time.Now().UTC().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to expire rating windows: %w", err)
	}

	if closed > 0 {
		metrics.RatingWindowsExpired.Add(float64(closed))
	}
	return closed, nil
}

func (s *RatingService) invalidateAverage(ctx context.Context, driverID string) {
	if err := s.cache.Invalidate(ctx, driverID); err != nil {
		logger.Warn().Err(err).Str("driver_id", driverID).Msg("Failed to invalidate average cache")
	}
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrRatingNotFound):
		return ErrRatingNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return ErrInvalidRatingID
	default:
		return err
	}
}
