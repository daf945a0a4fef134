package service

import (
	"context"
	"time"

	"prepaid-point-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// Sweeper periodically expires overdue QR tokens and payment intents.
// Sweeping is a hygiene pass: both consume and approve re-check wall-clock
// expiry themselves, so a late sweep never admits a stale token or intent.
type Sweeper struct {
	qrTokens       ports.QrTokenService
	intents        ports.IntentService
	qrInterval     time.Duration
	intentInterval time.Duration
	log            zerolog.Logger
}

// NewSweeper creates a new Sweeper.
func NewSweeper(qrTokens ports.QrTokenService, intents ports.IntentService, qrInterval, intentInterval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		qrTokens:       qrTokens,
		intents:        intents,
		qrInterval:     qrInterval,
		intentInterval: intentInterval,
		log:            log,
	}
}

// Run blocks until ctx is canceled, sweeping on each interval tick.
func (s *Sweeper) Run(ctx context.Context) {
	qrTicker := time.NewTicker(s.qrInterval)
	defer qrTicker.Stop()
	intentTicker := time.NewTicker(s.intentInterval)
	defer intentTicker.Stop()

	s.log.Info().
		Dur("qr_interval", s.qrInterval).
		Dur("intent_interval", s.intentInterval).
		Msg("sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sweeper stopped")
			return
		case <-qrTicker.C:
			if _, err := s.qrTokens.SweepExpired(ctx); err != nil {
				s.log.Error().Err(err).Msg("qr token sweep failed")
			}
		case <-intentTicker.C:
			if _, err := s.intents.SweepExpired(ctx); err != nil {
				s.log.Error().Err(err).Msg("intent sweep failed")
			}
		}
	}
}
