package repository

import (
	"context"
	"errors"

	"ridehail/driver-service/internal/app/driver/entity"
	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceName = "driver-service"

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

// Create inserts the driver and its cars.
func (r *driverRepository) Create(ctx context.Context, driver *entity.Driver) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "drivers")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Create(driver).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "drivers")

	var driver entity.Driver
	err := r.db.WithContext(ctx).Preload("Cars").First(&driver, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		timer.ObserveDuration(nil)
		return nil, ErrDriverNotFound
	}
	timer.ObserveDuration(err)
	if err != nil {
		return nil, err
	}

	return &driver, nil
}

func (r *driverRepository) List(ctx context.Context, page pagination.Params) (drivers []entity.Driver, total int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "drivers")
	defer func() { timer.ObserveDuration(err) }()

	if err := r.db.WithContext(ctx).Model(&entity.Driver{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := r.db.WithContext(ctx).
		Preload("Cars").
		Order("created_at DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&drivers)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return drivers, total, nil
}

func (r *driverRepository) Update(ctx context.Context, driver *entity.Driver, replaceCars bool) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "drivers")
	defer func() { timer.ObserveDuration(err) }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Driver{}).
			Where("id = ?", driver.ID).
			Updates(map[string]interface{}{
				"name":  driver.Name,
				"phone": driver.Phone,
				"email": driver.Email,
				"sex":   driver.Sex,
			})
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrDriverNotFound
		}

		if !replaceCars {
			return nil
		}

		if err := tx.Where("driver_id = ?", driver.ID).Delete(&entity.Car{}).Error; err != nil {
			return err
		}
		if len(driver.Cars) == 0 {
			return nil
		}
		return translate(tx.Create(&driver.Cars).Error)
	})
}

// Delete removes the driver; cars go with it through ON DELETE CASCADE.
func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "drivers")
	defer func() { timer.ObserveDuration(err) }()

	result := r.db.WithContext(ctx).Delete(&entity.Driver{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDriverNotFound
	}
	return nil
}

// translate needs gorm.Config.TranslateError to see ErrDuplicatedKey.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}
