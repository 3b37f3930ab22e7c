package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// RideCompletedEvent is produced by the ride service when a ride reaches COMPLETED.
type RideCompletedEvent struct {
	RideID      string    `json:"ride_id"`
	PassengerID string    `json:"passenger_id"`
	DriverID    string    `json:"driver_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// DecodeError marks a payload that can never be processed.
type DecodeError struct {
	Payload []byte
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed ride completed event: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeRideCompletedEvent returns (nil, nil) for an empty payload and a
// *DecodeError for anything that is not a complete event.
func DecodeRideCompletedEvent(payload []byte) (*RideCompletedEvent, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}

	var event RideCompletedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &DecodeError{Payload: payload, Err: err}
	}

	switch {
	case event.RideID == "":
		return nil, &DecodeError{Payload: payload, Err: fmt.Errorf("ride_id is missing")}
	case event.DriverID == "":
		return nil, &DecodeError{Payload: payload, Err: fmt.Errorf("driver_id is missing")}
	case event.PassengerID == "":
		return nil, &DecodeError{Payload: payload, Err: fmt.Errorf("passenger_id is missing")}
	}

	return &event, nil
}
