package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"designvault/api/internal/service"
)

// Scheduler keeps the component stats cache warm so the overview endpoint
// rarely pays for the aggregate query.
type Scheduler struct {
	cron       *cron.Cron
	components *service.ComponentService
	log        zerolog.Logger
}

func NewScheduler(components *service.ComponentService, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:       c,
		components: components,
		log:        log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 */5 * * * *", s.refreshStats); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits up to 5s for a running job to finish.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) refreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.components.RefreshStats(ctx); err != nil {
		s.log.Error().Err(err).Msg("stats refresh failed")
	}
}
