package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"
	"ridehail/rating-service/internal/app/rating/entity"
	"ridehail/rating-service/internal/app/rating/infrastructure/directory"
)

// DirectoryClient resolves ride participants in their directories using the
// caller's token.
type DirectoryClient interface {
	GetDriver(ctx context.Context, id, token string) (*entity.Participant, error)
	GetPassenger(ctx context.Context, id, token string) (*entity.Participant, error)
}

type AccessValidator struct {
	directory DirectoryClient
}

func NewAccessValidator(directory DirectoryClient) *AccessValidator {
	return &AccessValidator{directory: directory}
}

// ValidateAccess checks that the caller may rate the ride between the given
// driver and passenger. Both lookups run concurrently. A transport failure is
// returned as is, then a missing participant, and the caller is granted access
// when at least one of the two records is visible to them.
func (v *AccessValidator) ValidateAccess(ctx context.Context, driverID, passengerID, token string) error {
	var driverErr, passengerErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, driverErr = v.directory.GetDriver(gctx, driverID, token)
		return transportOnly(driverErr)
	})
	g.Go(func() error {
		_, passengerErr = v.directory.GetPassenger(gctx, passengerID, token)
		return transportOnly(passengerErr)
	})

	if err := g.Wait(); err != nil {
		metrics.AccessDecisions.WithLabelValues("error").Inc()
		logger.Error().
			Err(err).
			Str("driver_id", driverID).
			Str("passenger_id", passengerID).
			Msg("Directory lookup failed during access validation")
		return err
	}

	for _, err := range []error{driverErr, passengerErr} {
		var notFound *directory.NotFoundError
		if errors.As(err, &notFound) {
			metrics.AccessDecisions.WithLabelValues("denied").Inc()
			return err
		}
	}

	if driverErr == nil || passengerErr == nil {
		metrics.AccessDecisions.WithLabelValues("granted").Inc()
		return nil
	}

	metrics.AccessDecisions.WithLabelValues("denied").Inc()
	return ErrAccessDenied
}

// transportOnly keeps not-found and forbidden outcomes out of the errgroup so
// they do not cancel the sibling lookup.
func transportOnly(err error) error {
	var notFound *directory.NotFoundError
	if err == nil || errors.Is(err, directory.ErrForbidden) || errors.As(err, &notFound) {
		return nil
	}
	return err
}
