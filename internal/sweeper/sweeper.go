package sweeper

import (
	"context"
	"time"

	"github.com/studiobook/studio-booking/internal/service"
	"go.uber.org/zap"
)

// Sweeper runs the periodic maintenance pass: elapsed confirmed sessions are
// flipped to completed and lapsed packages have their status cache expired.
// Both statements are idempotent, so overlapping or repeated runs are safe.
type Sweeper struct {
	bookings service.BookingService
	packages service.PackageService
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

func New(bookings service.BookingService, packages service.PackageService, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		packages: packages,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("starting sweep loop", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("stopping sweep loop")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// First pass right away so a restart catches up immediately.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("sweep loop stopped")
			return
		case <-ctx.Done():
			s.logger.Info("sweep loop cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	completed, err := s.bookings.CompleteElapsed(ctx)
	if err != nil {
		s.logger.Error("failed to complete elapsed bookings", zap.Error(err))
	} else if completed > 0 {
		s.logger.Info("marked elapsed bookings completed", zap.Int64("count", completed))
	}

	expired, err := s.packages.ExpirePackages(ctx)
	if err != nil {
		s.logger.Error("failed to expire packages", zap.Error(err))
	} else if expired > 0 {
		s.logger.Info("expired lapsed packages", zap.Int64("count", expired))
	}
}
