package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Rating struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID        string             `json:"driver_id" bson:"driver_id"`
	PassengerID     string             `json:"passenger_id" bson:"passenger_id"`
	RideID          string             `json:"ride_id,omitempty" bson:"ride_id,omitempty"`
	DriverRating    int                `json:"driver_rating" bson:"driver_rating"`
	PassengerRating int                `json:"passenger_rating" bson:"passenger_rating"`
	Comment         string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// RatingWindow is opened by a ride completion and closed once the ride is
// rated or the window expires.
type RatingWindow struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RideID      string             `json:"ride_id" bson:"ride_id"`
	DriverID    string             `json:"driver_id" bson:"driver_id"`
	PassengerID string             `json:"passenger_id" bson:"passenger_id"`
	CompletedAt time.Time          `json:"completed_at" bson:"completed_at"`
	OpenedAt    time.Time          `json:"opened_at" bson:"opened_at"`
	Rated       bool               `json:"rated" bson:"rated"`
	Closed      bool               `json:"closed" bson:"closed"`
	ClosedAt    *time.Time         `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
}

// RatingFilter fields are ANDed; zero values are ignored.
type RatingFilter struct {
	DriverID     string
	PassengerID  string
	DriverRating int
}

// Participant is the part of a directory record the rating service reads.
type Participant struct {
	ID string `json:"id"`
}
