package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/apython1998/ultistats/internal/services"
)

// TokenSweeper periodically clears expired bearer tokens from user rows.
// Token validation never depends on the sweep; this is storage hygiene only.
type TokenSweeper struct {
	users    services.UserServiceProvider
	schedule cron.Schedule
	done     chan bool
}

// NewTokenSweeper creates a sweeper from a cron interval spec like
// "@every 15m".
func NewTokenSweeper(users services.UserServiceProvider, spec string) (*TokenSweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &TokenSweeper{
		users:    users,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweeper loop. It blocks until Stop is called.
func (s *TokenSweeper) Run() {
	log.Info().Msg("Starting token sweeper")
	for {
		timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
		select {
		case <-s.done:
			timer.Stop()
			log.Info().Msg("Stopping token sweeper")
			return
		case <-timer.C:
			s.sweep()
		}
	}
}

// Stop halts the sweeper.
func (s *TokenSweeper) Stop() {
	s.done <- true
}

func (s *TokenSweeper) sweep() {
	purged, err := s.users.DeleteExpiredTokens()
	if err != nil {
		log.Error().Err(err).Msg("Token sweep failed")
		return
	}
	if purged > 0 {
		log.Info().Int64("purged", purged).Msg("Cleared expired tokens")
	}
}
