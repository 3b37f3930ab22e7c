package entity

type CreateRatingRequest struct {
	DriverID        string `json:"driver_id" validate:"required,uuid"`
	PassengerID     string `json:"passenger_id" validate:"required,uuid"`
	RideID          string `json:"ride_id,omitempty" validate:"omitempty,uuid"`
	DriverRating    int    `json:"driver_rating" validate:"required,min=1,max=5"`
	PassengerRating int    `json:"passenger_rating" validate:"required,min=1,max=5"`
	Comment         string `json:"comment,omitempty" validate:"max=255"`
}

// UpdateRatingRequest carries only the fields to change. A score that is
// present must be within 1..5, zero included.
type UpdateRatingRequest struct {
	DriverRating    *int   `json:"driver_rating,omitempty" validate:"omitempty,min=1,max=5"`
	PassengerRating *int   `json:"passenger_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment         string `json:"comment,omitempty" validate:"max=255"`
}

type RatingFilterQuery struct {
	DriverID     string `form:"driver_id" json:"driver_id" validate:"omitempty,uuid"`
	PassengerID  string `form:"passenger_id" json:"passenger_id" validate:"omitempty,uuid"`
	DriverRating int    `form:"driver_rating" json:"driver_rating" validate:"omitempty,min=1,max=5"`
}

type AverageRatingResponse struct {
	DriverID      string   `json:"driver_id"`
	AverageRating *float64 `json:"average_rating"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
