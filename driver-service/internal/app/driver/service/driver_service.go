package service

import (
	"context"
	"errors"
	"fmt"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/driver-service/internal/app/driver/repository"
	"ridehail/pkg/auth"
	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
)

var (
	ErrDriverNotFound  = errors.New("driver not found")
	ErrDuplicateDriver = errors.New("driver with this phone, email or car number already exists")
	ErrAccessDenied    = errors.New("access denied")
)

// DriverService owns the driver directory. Reads by id go through the redis
// lookup cache; every write invalidates the cached entry.
type DriverService struct {
	driverRepo repository.DriverRepository
	cache      repository.DriverCache
}

func NewDriverService(driverRepo repository.DriverRepository, cache repository.DriverCache) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		cache:      cache,
	}
}

func (s *DriverService) CreateDriver(ctx context.Context, req *entity.CreateDriverRequest) (*entity.Driver, error) {
	driver := &entity.Driver{
		ID:    uuid.New(),
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Sex:   req.Sex,
	}
	driver.Cars = newCars(driver.ID, req.Cars)

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateDriver
		}
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	metrics.DriversRegistered.Inc()
	logger.Info().
		Str("driver_id", driver.ID.String()).
		Int("cars", len(driver.Cars)).
		Msg("Driver registered")

	return driver, nil
}

// GetDriver enforces directory visibility before touching storage, so a
// caller without rights learns nothing about whether the id exists.
func (s *DriverService) GetDriver(ctx context.Context, id uuid.UUID, caller auth.Principal) (*entity.Driver, error) {
	if !caller.CanView(auth.RoleDriver, id.String()) {
		return nil, ErrAccessDenied
	}

	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Str("driver_id", id.String()).Msg("Driver cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	if err := s.cache.Set(ctx, driver); err != nil {
		logger.Warn().Err(err).Str("driver_id", id.String()).Msg("Failed to cache driver")
	}

	return driver, nil
}

func (s *DriverService) ListDrivers(ctx context.Context, page pagination.Params) (pagination.Page[entity.Driver], error) {
	drivers, total, err := s.driverRepo.List(ctx, page)
	if err != nil {
		return pagination.Page[entity.Driver]{}, fmt.Errorf("failed to list drivers: %w", err)
	}

	return pagination.NewPage(drivers, page, total), nil
}

func (s *DriverService) UpdateDriver(ctx context.Context, id uuid.UUID, req *entity.UpdateDriverRequest, caller auth.Principal) (*entity.Driver, error) {
	if !caller.CanView(auth.RoleDriver, id.String()) {
		return nil, ErrAccessDenied
	}

	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	if req.Name != "" {
		driver.Name = req.Name
	}
	if req.Phone != "" {
		driver.Phone = req.Phone
	}
	if req.Email != "" {
		driver.Email = req.Email
	}
	if req.Sex != "" {
		driver.Sex = req.Sex
	}

	replaceCars := req.Cars != nil
	if replaceCars {
		driver.Cars = newCars(driver.ID, *req.Cars)
	}

	if err := s.driverRepo.Update(ctx, driver, replaceCars); err != nil {
		switch {
		case errors.Is(err, repository.ErrDriverNotFound):
			return nil, ErrDriverNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrDuplicateDriver
		}
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}

	s.invalidate(ctx, id)
	return driver, nil
}

func (s *DriverService) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	if err := s.driverRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDriverNotFound) {
			return ErrDriverNotFound
		}
		return fmt.Errorf("failed to delete driver: %w", err)
	}

	s.invalidate(ctx, id)
	logger.Info().Str("driver_id", id.String()).Msg("Driver deleted")
	return nil
}

func (s *DriverService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.Warn().Err(err).Str("driver_id", id.String()).Msg("Failed to invalidate driver cache")
	}
}

func newCars(driverID uuid.UUID, reqs []entity.CarRequest) []entity.Car {
	cars := make([]entity.Car, 0, len(reqs))
	for _, r := range reqs {
		cars = append(cars, entity.Car{
			ID:       uuid.New(),
			DriverID: driverID,
			Number:   r.Number,
			Brand:    r.Brand,
			Color:    r.Color,
			Year:     r.Year,
		})
	}
	return cars
}
