package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ridehail/pkg/auth"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"
	"ridehail/ride-service/internal/app/ride/entity"
	"ridehail/ride-service/internal/app/ride/infrastructure"
	"ridehail/ride-service/internal/app/ride/repository"

	"github.com/google/uuid"
)

// RideService owns the ride lifecycle and announces completed rides on the
// event relay.
type RideService struct {
	rideRepo  repository.RideRepository
	publisher infrastructure.MessagePublisher
	policy    TransitionPolicy
}

func NewRideService(rideRepo repository.RideRepository, publisher infrastructure.MessagePublisher, policy TransitionPolicy) *RideService {
	if policy == nil {
		policy = PermissivePolicy{}
	}
	return &RideService{
		rideRepo:  rideRepo,
		publisher: publisher,
		policy:    policy,
	}
}

// CreateRide stores a new ride in CREATED. A passenger may only order rides
// for themselves.
func (s *RideService) CreateRide(ctx context.Context, req *entity.CreateRideRequest, caller auth.Principal) (*entity.Ride, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return nil, fmt.Errorf("invalid driver id: %w", err)
	}
	passengerID, err := uuid.Parse(req.PassengerID)
	if err != nil {
		return nil, fmt.Errorf("invalid passenger id: %w", err)
	}

	if caller.Role == auth.RolePassenger && caller.UserID != passengerID.String() {
		return nil, ErrAccessDenied
	}

	now := time.Now().UTC()
	ride := &entity.Ride{
		ID:                 uuid.New(),
		DriverID:           driverID,
		PassengerID:        passengerID,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
		Status:             entity.RideStatusCreated,
		OrderTime:          now,
		Price:              req.Price,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	metrics.RidesCreated.Inc()
	logger.Info().
		Str("ride_id", ride.ID.String()).
		Str("driver_id", ride.DriverID.String()).
		Str("passenger_id", ride.PassengerID.String()).
		Msg("Ride created")

	return ride, nil
}

func (s *RideService) GetRide(ctx context.Context, id uuid.UUID, caller auth.Principal) (*entity.Ride, error) {
	ride, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !participant(caller, ride) {
		return nil, ErrAccessDenied
	}
	return ride, nil
}

// ListRides narrows the filter to the caller's own rides unless the caller is
// an admin or a peer service.
func (s *RideService) ListRides(ctx context.Context, filter entity.RideFilter, page pagination.Params, caller auth.Principal) (pagination.Page[entity.Ride], error) {
	switch caller.Role {
	case auth.RoleAdmin, auth.RoleService:
	case auth.RoleDriver, auth.RolePassenger:
		id, err := uuid.Parse(caller.UserID)
		if err != nil {
			return pagination.Page[entity.Ride]{}, ErrAccessDenied
		}
		if caller.Role == auth.RoleDriver {
			filter.DriverID = &id
		} else {
			filter.PassengerID = &id
		}
	default:
		return pagination.Page[entity.Ride]{}, ErrAccessDenied
	}

	rides, total, err := s.rideRepo.FindAll(ctx, filter, page)
	if err != nil {
		return pagination.Page[entity.Ride]{}, fmt.Errorf("failed to list rides: %w", err)
	}

	return pagination.NewPage(rides, page, total), nil
}

// UpdateRide changes participants, addresses or price. Status only moves
// through UpdateStatus.
func (s *RideService) UpdateRide(ctx context.Context, id uuid.UUID, req *entity.UpdateRideRequest) (*entity.Ride, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	ride, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DriverID != "" {
		if ride.DriverID, err = uuid.Parse(req.DriverID); err != nil {
			return nil, fmt.Errorf("invalid driver id: %w", err)
		}
	}
	if req.PassengerID != "" {
		if ride.PassengerID, err = uuid.Parse(req.PassengerID); err != nil {
			return nil, fmt.Errorf("invalid passenger id: %w", err)
		}
	}
	if req.PickupAddress != "" {
		ride.PickupAddress = req.PickupAddress
	}
	if req.DestinationAddress != "" {
		ride.DestinationAddress = req.DestinationAddress
	}
	if req.Price != nil {
		ride.Price = *req.Price
	}
	ride.UpdatedAt = time.Now().UTC()

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		if errors.Is(err, repository.ErrRideNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to update ride: %w", err)
	}

	return ride, nil
}

// UpdateStatus applies the transition policy and, when the ride becomes
// COMPLETED, publishes a RideCompletedEvent. The status change is not rolled
// back when publishing fails.
func (s *RideService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RideStatus, caller auth.Principal) (*entity.Ride, error) {
	ride, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !participant(caller, ride) {
		return nil, ErrAccessDenied
	}

	from := ride.Status
	if !s.policy.Allows(from, status) {
		metrics.RideStatusTransitions.WithLabelValues(string(from), string(status), "rejected").Inc()
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, status)
	}

	if err := s.rideRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrRideNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to update ride status: %w", err)
	}

	ride.Status = status
	ride.UpdatedAt = time.Now().UTC()
	metrics.RideStatusTransitions.WithLabelValues(string(from), string(status), "applied").Inc()
	logger.Info().
		Str("ride_id", id.String()).
		Str("from", string(from)).
		Str("to", string(status)).
		Msg("Ride status changed")

	if status == entity.RideStatusCompleted && from != entity.RideStatusCompleted {
		if err := s.publishCompleted(ctx, ride); err != nil {
			logger.Error().Err(err).Str("ride_id", id.String()).Msg("Failed to publish ride completed event")
		}
	}

	return ride, nil
}

func (s *RideService) DeleteRide(ctx context.Context, id uuid.UUID) error {
	if err := s.rideRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRideNotFound) {
			return ErrRideNotFound
		}
		return fmt.Errorf("failed to delete ride: %w", err)
	}
	return nil
}

func (s *RideService) get(ctx context.Context, id uuid.UUID) (*entity.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRideNotFound) {
			return nil, ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}
	return ride, nil
}

func (s *RideService) publishCompleted(ctx context.Context, ride *entity.Ride) error {
	event := entity.RideCompletedEvent{
		RideID:      ride.ID,
		PassengerID: ride.PassengerID,
		DriverID:    ride.DriverID,
		CompletedAt: ride.UpdatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ride completed event: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, ride.ID.String(), payload); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}
	return nil
}

func participant(caller auth.Principal, ride *entity.Ride) bool {
	return caller.CanView(auth.RoleDriver, ride.DriverID.String()) ||
		caller.CanView(auth.RolePassenger, ride.PassengerID.String())
}
