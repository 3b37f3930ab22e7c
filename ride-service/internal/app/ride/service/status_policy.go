package service

import (
	"fmt"

	"ridehail/ride-service/internal/app/ride/entity"
)

// TransitionPolicy decides whether a ride may move from one status to another.
type TransitionPolicy interface {
	Allows(from, to entity.RideStatus) bool
}

const (
	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
)

// PermissivePolicy accepts every target status.
type PermissivePolicy struct{}

func (PermissivePolicy) Allows(_, _ entity.RideStatus) bool {
	return true
}

// StrictPolicy walks the lifecycle forward one step at a time; CANCELED is
// reachable from any non-terminal status.
type StrictPolicy struct{}

var forwardTransitions = map[entity.RideStatus]entity.RideStatus{
	entity.RideStatusCreated:              entity.RideStatusAccepted,
	entity.RideStatusAccepted:             entity.RideStatusEnRouteToPassenger,
	entity.RideStatusEnRouteToPassenger:   entity.RideStatusEnRouteToDestination,
	entity.RideStatusEnRouteToDestination: entity.RideStatusCompleted,
}

func (StrictPolicy) Allows(from, to entity.RideStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == entity.RideStatusCanceled {
		return true
	}
	next, ok := forwardTransitions[from]
	return ok && next == to
}

func ParsePolicy(name string) (TransitionPolicy, error) {
	switch name {
	case "", PolicyPermissive:
		return PermissivePolicy{}, nil
	case PolicyStrict:
		return StrictPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown ride status policy %q", name)
	}
}
