package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RideStatus string

const (
	RideStatusCreated              RideStatus = "CREATED"
	RideStatusAccepted             RideStatus = "ACCEPTED"
	RideStatusEnRouteToPassenger   RideStatus = "EN_ROUTE_TO_PASSENGER"
	RideStatusEnRouteToDestination RideStatus = "EN_ROUTE_TO_DESTINATION"
	RideStatusCompleted            RideStatus = "COMPLETED"
	RideStatusCanceled             RideStatus = "CANCELED"
)

func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCanceled
}

type Ride struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DriverID           uuid.UUID       `gorm:"type:uuid;index;not null" json:"driver_id"`
	PassengerID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"passenger_id"`
	PickupAddress      string          `gorm:"type:varchar(255);not null" json:"pickup_address"`
	DestinationAddress string          `gorm:"type:varchar(255);not null" json:"destination_address"`
	Status             RideStatus      `gorm:"type:varchar(32);index;not null" json:"status"`
	OrderTime          time.Time       `gorm:"not null" json:"order_time"`
	Price              decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (Ride) TableName() string {
	return "rides"
}

// RideFilter fields are ANDed; nil or empty fields are ignored.
type RideFilter struct {
	DriverID           *uuid.UUID
	PassengerID        *uuid.UUID
	PickupAddress      string
	DestinationAddress string
	Status             RideStatus
	MinPrice           *decimal.Decimal
	MaxPrice           *decimal.Decimal
}

// RideCompletedEvent is published keyed by ride id once a ride reaches COMPLETED.
type RideCompletedEvent struct {
	RideID      uuid.UUID `json:"ride_id"`
	PassengerID uuid.UUID `json:"passenger_id"`
	DriverID    uuid.UUID `json:"driver_id"`
	CompletedAt time.Time `json:"completed_at"`
}
