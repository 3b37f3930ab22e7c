package service

import (
	"testing"

	"ridehail/ride-service/internal/app/ride/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrictPolicy(t *testing.T) {
	policy := StrictPolicy{}

	tests := []struct {
		name string
		from entity.RideStatus
		to   entity.RideStatus
		want bool
	}{
		{"created to accepted", entity.RideStatusCreated, entity.RideStatusAccepted, true},
		{"accepted to en route to passenger", entity.RideStatusAccepted, entity.RideStatusEnRouteToPassenger, true},
		{"en route to destination", entity.RideStatusEnRouteToPassenger, entity.RideStatusEnRouteToDestination, true},
		{"destination to completed", entity.RideStatusEnRouteToDestination, entity.RideStatusCompleted, true},
		{"cancel from created", entity.RideStatusCreated, entity.RideStatusCanceled, true},
		{"cancel en route", entity.RideStatusEnRouteToDestination, entity.RideStatusCanceled, true},
		{"skip ahead", entity.RideStatusCreated, entity.RideStatusCompleted, false},
		{"backwards", entity.RideStatusAccepted, entity.RideStatusCreated, false},
		{"same status", entity.RideStatusAccepted, entity.RideStatusAccepted, false},
		{"leave completed", entity.RideStatusCompleted, entity.RideStatusCreated, false},
		{"cancel completed", entity.RideStatusCompleted, entity.RideStatusCanceled, false},
		{"leave canceled", entity.RideStatusCanceled, entity.RideStatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Allows(tt.from, tt.to))
		})
	}
}

func TestPermissivePolicy_AcceptsBackwardsMoves(t *testing.T) {
	policy := PermissivePolicy{}

	assert.True(t, policy.Allows(entity.RideStatusCompleted, entity.RideStatusCreated))
	assert.True(t, policy.Allows(entity.RideStatusCanceled, entity.RideStatusCompleted))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.IsType(t, PermissivePolicy{}, p)

	p, err = ParsePolicy(PolicyStrict)
	require.NoError(t, err)
	assert.IsType(t, StrictPolicy{}, p)

	_, err = ParsePolicy("lenient")
	assert.Error(t, err)
}
