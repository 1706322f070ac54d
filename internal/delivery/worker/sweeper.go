package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"storefront/config"
	"storefront/internal/delivery"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reservationSweeper periodically cancels abandoned pending orders and returns their stock.
type reservationSweeper struct {
	interval      time.Duration
	fulfillmentUC usecase.FulfillmentUsecase
	logger        *slog.Logger

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// SweeperParams holds dependencies for the reservation sweeper
type SweeperParams struct {
	fx.In

	Lc            fx.Lifecycle
	Cfg           *config.Config
	Logger        *slog.Logger
	FulfillmentUC usecase.FulfillmentUsecase
}

// NewSweeper creates the reservation sweeper delivery
func NewSweeper(params SweeperParams) (delivery.Delivery, error) {
	if params.Cfg.Order == nil || params.Cfg.Order.SweepInterval <= 0 {
		return nil, errors.New("order.sweepInterval must be positive")
	}

	s := newReservationSweeper(params.Cfg.Order.SweepInterval, params.FulfillmentUC, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

func newReservationSweeper(interval time.Duration, fulfillmentUC usecase.FulfillmentUsecase, logger *slog.Logger) *reservationSweeper {
	return &reservationSweeper{
		interval:      interval,
		fulfillmentUC: fulfillmentUC,
		logger:        logger,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Serve runs a sweep every interval until ctx is done or the sweeper is stopped.
func (s *reservationSweeper) Serve(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errors.New("reservation sweeper already running")
	}
	defer close(s.doneCh)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.logger.Info("Starting reservation sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *reservationSweeper) sweep(ctx context.Context) {
	sweepID := uuid.New().String()
	logger := s.logger.With(slog.String("request_id", sweepID))
	ctx = deliverycontext.WithRequestID(ctx, sweepID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	released, err := s.fulfillmentUC.ReleaseExpiredReservations(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Reservation sweep failed", slog.Int("released", released), slog.Any("error", err))

		return
	}

	logger.Debug("Reservation sweep finished", slog.Int("released", released))
}

// stop cancels the loop and waits for an in-flight sweep, bounded by ctx.
func (s *reservationSweeper) stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCh) })

	if !s.started.Load() {
		return nil
	}

	s.logger.Info("Stopping reservation sweeper")

	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-s.doneCh:
		return nil
	case <-shutdownCtx.Done():
		return errors.WithStack(shutdownCtx.Err())
	}
}
