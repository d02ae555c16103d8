package scheduler

import (
	"context"
	"time"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type eventBootstrapper interface {
	Bootstrap(ctx context.Context) domain.BootstrapResult
}

// Scheduler retries the events bootstrap until the seed has been loaded.
type Scheduler struct {
	eventService eventBootstrapper
	interval     time.Duration
	logger       logger.Logger
}

func New(
	eventService eventBootstrapper,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		eventService: eventService,
		interval:     interval,
		logger:       logger,
	}
}

// Start blocks until a bootstrap attempt succeeds or ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("seed retrier started",
		logger.Duration("interval", s.interval),
	)

	attempt := 0
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("seed retrier stopped")
			return
		case <-ticker.C:
			attempt++
			if s.tick(ctx, attempt) {
				return
			}
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, attempt int) bool {
	res := s.eventService.Bootstrap(ctx)
	if res.Outcome == domain.BootstrapFailed {
		s.logger.Warn("seed retry failed",
			logger.Int("attempt", attempt),
		)
		return false
	}

	s.logger.Info("seed retrier done",
		logger.Int("attempt", attempt),
		logger.String("outcome", string(res.Outcome)),
		logger.Int("events", len(res.Events)),
	)
	return true
}
