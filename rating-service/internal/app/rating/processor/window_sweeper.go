package processor

import (
	"context"
	"time"

	"ridehail/pkg/logger"
	"ridehail/rating-service/internal/app/rating/service"

	"github.com/robfig/cron/v3"
)

// WindowSweeper periodically closes rating windows nobody used within ttl.
type WindowSweeper struct {
	cron    *cron.Cron
	expirer service.WindowExpirer
	ttl     time.Duration
}

func NewWindowSweeper(expirer service.WindowExpirer, ttl time.Duration) *WindowSweeper {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(logger.PrintfFunc(logger.Printf))))

	return &WindowSweeper{
		cron:    c,
		expirer: expirer,
		ttl:     ttl,
	}
}

func (s *WindowSweeper) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Dur("ttl", s.ttl).Msg("Starting rating window sweeper")

	if _, err := s.cron.AddFunc(schedule, func() { s.sweep(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	s.sweep(ctx)

	return nil
}

func (s *WindowSweeper) Stop() {
	logger.Info().Msg("Stopping rating window sweeper")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Rating window sweeper stopped")
}

func (s *WindowSweeper) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *WindowSweeper) sweep(ctx context.Context) {
	closed, err := s.expirer.ExpireWindows(ctx, s.ttl)
	if err != nil {
		logger.Error().Err(err).Msg("Rating window sweep failed")
		return
	}
	logger.Info().Int64("closed", closed).Msg("Rating window sweep completed")
}
