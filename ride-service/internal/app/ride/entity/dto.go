package entity

import (
	"github.com/shopspring/decimal"
)

type CreateRideRequest struct {
	DriverID           string          `json:"driver_id" validate:"required,uuid"`
	PassengerID        string          `json:"passenger_id" validate:"required,uuid"`
	PickupAddress      string          `json:"pickup_address" validate:"required,max=255"`
	DestinationAddress string          `json:"destination_address" validate:"required,max=255"`
	Price              decimal.Decimal `json:"price"`
}

type UpdateRideRequest struct {
	DriverID           string           `json:"driver_id,omitempty" validate:"omitempty,uuid"`
	PassengerID        string           `json:"passenger_id,omitempty" validate:"omitempty,uuid"`
	PickupAddress      string           `json:"pickup_address,omitempty" validate:"omitempty,max=255"`
	DestinationAddress string           `json:"destination_address,omitempty" validate:"omitempty,max=255"`
	Price              *decimal.Decimal `json:"price,omitempty"`
}

type UpdateStatusRequest struct {
	Status RideStatus `json:"status" validate:"required,oneof=CREATED ACCEPTED EN_ROUTE_TO_PASSENGER EN_ROUTE_TO_DESTINATION COMPLETED CANCELED"`
}

// RideFilterQuery is the query string form of RideFilter.
type RideFilterQuery struct {
	DriverID           string `form:"driver_id" validate:"omitempty,uuid"`
	PassengerID        string `form:"passenger_id" validate:"omitempty,uuid"`
	PickupAddress      string `form:"pickup_address"`
	DestinationAddress string `form:"destination_address"`
	Status             string `form:"status" validate:"omitempty,oneof=CREATED ACCEPTED EN_ROUTE_TO_PASSENGER EN_ROUTE_TO_DESTINATION COMPLETED CANCELED"`
	MinPrice           string `form:"min_price" validate:"omitempty,numeric"`
	MaxPrice           string `form:"max_price" validate:"omitempty,numeric"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
