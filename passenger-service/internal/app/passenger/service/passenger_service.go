package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/passenger-service/internal/app/passenger/repository"
	"ridehail/pkg/auth"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
)

type PassengerService struct {
	passengerRepo repository.PassengerRepository
}

func NewPassengerService(passengerRepo repository.PassengerRepository) *PassengerService {
	return &PassengerService{passengerRepo: passengerRepo}
}

func (s *PassengerService) CreatePassenger(ctx context.Context, req *entity.CreatePassengerRequest) (*entity.Passenger, error) {
	now := time.Now().UTC()
	passenger := &entity.Passenger{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicatePassenger
		}
		return nil, fmt.Errorf("failed to create passenger: %w", err)
	}

	metrics.PassengersRegistered.Inc()
	logger.Info().Str("passenger_id", passenger.ID.String()).Msg("Passenger registered")

	return passenger, nil
}

func (s *PassengerService) GetPassenger(ctx context.Context, id uuid.UUID, caller auth.Principal) (*entity.Passenger, error) {
	if !caller.CanView(auth.RolePassenger, id.String()) {
		return nil, ErrAccessDenied
	}

	return s.get(ctx, id)
}

func (s *PassengerService) ListPassengers(ctx context.Context, page pagination.Params) (pagination.Page[entity.Passenger], error) {
	passengers, total, err := s.passengerRepo.List(ctx, page)
	if err != nil {
		return pagination.Page[entity.Passenger]{}, fmt.Errorf("failed to list passengers: %w", err)
	}

	return pagination.NewPage(passengers, page, total), nil
}

func (s *PassengerService) UpdatePassenger(ctx context.Context, id uuid.UUID, req *entity.UpdatePassengerRequest, caller auth.Principal) (*entity.Passenger, error) {
	if !caller.CanView(auth.RolePassenger, id.String()) {
		return nil, ErrAccessDenied
	}

	passenger, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		passenger.FirstName = req.FirstName
	}
	if req.LastName != "" {
		passenger.LastName = req.LastName
	}
	if req.Email != "" {
		passenger.Email = req.Email
	}
	if req.Phone != "" {
		passenger.Phone = req.Phone
	}
	passenger.UpdatedAt = time.Now().UTC()

	if err := s.passengerRepo.Update(ctx, passenger); err != nil {
		switch {
		case errors.Is(err, repository.ErrPassengerNotFound):
			return nil, ErrPassengerNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrDuplicatePassenger
		}
		return nil, fmt.Errorf("failed to update passenger: %w", err)
	}

	return passenger, nil
}

// DeletePassenger soft-deletes; the passenger may close their own account.
func (s *PassengerService) DeletePassenger(ctx context.Context, id uuid.UUID, caller auth.Principal) error {
	if !caller.CanView(auth.RolePassenger, id.String()) {
		return ErrAccessDenied
	}

	if err := s.passengerRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			return ErrPassengerNotFound
		}
		return fmt.Errorf("failed to delete passenger: %w", err)
	}

	logger.Info().Str("passenger_id", id.String()).Msg("Passenger soft-deleted")
	return nil
}

func (s *PassengerService) get(ctx context.Context, id uuid.UUID) (*entity.Passenger, error) {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPassengerNotFound) {
			return nil, ErrPassengerNotFound
		}
		return nil, fmt.Errorf("failed to get passenger: %w", err)
	}
	return passenger, nil
}
