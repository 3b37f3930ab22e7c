package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRideCompletedEvent(t *testing.T) {
	event, err := DecodeRideCompletedEvent([]byte(`{"ride_id":"r1","passenger_id":"p1","driver_id":"d1","completed_at":"2024-05-01T10:00:00Z"}`))

	require.NoError(t, err)
	assert.Equal(t, "r1", event.RideID)
	assert.Equal(t, "p1", event.PassengerID)
	assert.Equal(t, "d1", event.DriverID)
	assert.Equal(t, 2024, event.CompletedAt.Year())
}

func TestDecodeRideCompletedEvent_Empty(t *testing.T) {
	for _, payload := range [][]byte{nil, {}, []byte("  \n")} {
		event, err := DecodeRideCompletedEvent(payload)

		assert.NoError(t, err)
		assert.Nil(t, event)
	}
}

func TestDecodeRideCompletedEvent_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":        "invalid json {{{",
		"wrong type":      `{"ride_id": 42}`,
		"missing ride id": `{"passenger_id":"p1","driver_id":"d1"}`,
		"missing driver":  `{"ride_id":"r1","passenger_id":"p1"}`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			event, err := DecodeRideCompletedEvent([]byte(payload))

			assert.Nil(t, event)
			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, []byte(payload), decodeErr.Payload)
		})
	}
}
