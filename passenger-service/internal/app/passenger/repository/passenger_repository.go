package repository

import (
	"context"
	"errors"
	"fmt"

	"ridehail/passenger-service/internal/app/passenger/entity"
	"ridehail/pkg/metrics"
	"ridehail/pkg/pagination"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	serviceName = "passenger-service"

	passengerColumns = `id, first_name, last_name, email, phone, is_deleted, created_at, updated_at`

	uniqueViolation = "23505"
)

type passengerRepository struct {
	db DB
}

func NewPassengerRepository(db DB) PassengerRepository {
	return &passengerRepository{db: db}
}

func (r *passengerRepository) Create(ctx context.Context, p *entity.Passenger) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "passengers")
	defer func() { timer.ObserveDuration(err) }()

	query := `
		INSERT INTO passengers (id, first_name, last_name, email, phone, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
	`

	_, err = r.db.Exec(ctx, query, p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create passenger: %w", err)
	}

	return nil
}

func (r *passengerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Passenger, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "passengers")

	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE id = $1 AND is_deleted = FALSE`

	p, err := scanPassenger(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		timer.ObserveDuration(nil)
		return nil, ErrPassengerNotFound
	}
	timer.ObserveDuration(err)
	if err != nil {
		return nil, fmt.Errorf("failed to get passenger by id: %w", err)
	}

	return p, nil
}

func (r *passengerRepository) List(ctx context.Context, page pagination.Params) (passengers []entity.Passenger, total int64, err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "passengers")
	defer func() { timer.ObserveDuration(err) }()

	if err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM passengers WHERE is_deleted = FALSE`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count passengers: %w", err)
	}

	query := `
		SELECT ` + passengerColumns + `
		FROM passengers
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list passengers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, scanErr := scanPassenger(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan passenger: %w", scanErr)
			return nil, 0, err
		}
		passengers = append(passengers, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating passengers: %w", err)
	}

	return passengers, total, nil
}

func (r *passengerRepository) Update(ctx context.Context, p *entity.Passenger) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "passengers")
	defer func() { timer.ObserveDuration(err) }()

	query := `
		UPDATE passengers
		SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $6 AND is_deleted = FALSE
	`

	tag, err := r.db.Exec(ctx, query, p.FirstName, p.LastName, p.Email, p.Phone, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update passenger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPassengerNotFound
	}

	return nil
}

// SoftDelete flags the row; deleting an already deleted passenger is NotFound.
func (r *passengerRepository) SoftDelete(ctx context.Context, id uuid.UUID) (err error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "passengers")
	defer func() { timer.ObserveDuration(err) }()

	query := `UPDATE passengers SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete passenger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPassengerNotFound
	}

	return nil
}

func scanPassenger(row pgx.Row) (*entity.Passenger, error) {
	var p entity.Passenger
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
