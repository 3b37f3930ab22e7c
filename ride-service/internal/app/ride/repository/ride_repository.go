package repository

import (
	"context"
	"errors"
	"strings"

	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"
	"ridehail/ride-service/internal/app/ride/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceName = "ride-service"

type rideRepository struct {
	db *gorm.DB
}

func NewRideRepository(db *gorm.DB) RideRepository {
	return &rideRepository{db: db}
}

func (r *rideRepository) Create(ctx context.Context, ride *entity.Ride) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "rides")
	defer func() { timer.ObserveDuration(err) }()

	return r.db.WithContext(ctx).Create(ride).Error
}

func (r *rideRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ride, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "rides")

	var ride entity.Ride
	err := r.db.WithContext(ctx).First(&ride, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		timer.ObserveDuration(nil)
		return nil, ErrRideNotFound
	}
	timer.ObserveDuration(err)
	if err != nil {
		return nil, err
	}

	return &ride, nil
}

// FindAll returns one page of rides matching every non-empty filter field,
// newest order first, together with the total match count.
func (r *rideRepository) FindAll(ctx context.Context, filter entity.RideFilter, page pagination.Params) (rides []entity.Ride, total int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "rides")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.Ride{}).Scopes(withFilter(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := r.db.WithContext(ctx).
		Scopes(withFilter(filter)).
		Order("order_time DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&rides)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return rides, total, nil
}

func withFilter(f entity.RideFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.DriverID != nil {
			db = db.Where("driver_id = ?", *f.DriverID)
		}
		if f.PassengerID != nil {
			db = db.Where("passenger_id = ?", *f.PassengerID)
		}
		if f.PickupAddress != "" {
			db = db.Where("pickup_address ILIKE ?", containsPattern(f.PickupAddress))
		}
		if f.DestinationAddress != "" {
			db = db.Where("destination_address ILIKE ?", containsPattern(f.DestinationAddress))
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.MinPrice != nil {
			db = db.Where("price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			db = db.Where("price <= ?", *f.MaxPrice)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *rideRepository) Update(ctx context.Context, ride *entity.Ride) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "rides")
	defer func() { timer.ObserveDuration(err) }()

	result := r.db.WithContext(ctx).Model(&entity.Ride{}).
		Where("id = ?", ride.ID).
		Updates(map[string]interface{}{
			"driver_id":           ride.DriverID,
			"passenger_id":        ride.PassengerID,
			"pickup_address":      ride.PickupAddress,
			"destination_address": ride.DestinationAddress,
			"price":               ride.Price,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRideNotFound
	}
	return nil
}

func (r *rideRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RideStatus) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "rides")
	defer func() { timer.ObserveDuration(err) }()

	result := r.db.WithContext(ctx).Model(&entity.Ride{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRideNotFound
	}
	return nil
}

func (r *rideRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "rides")
	defer func() { timer.ObserveDuration(err) }()

	result := r.db.WithContext(ctx).Delete(&entity.Ride{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRideNotFound
	}
	return nil
}
