package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domainProfile "plantops/internal/domain/profile"
	"plantops/internal/logger"
)

// Sweeper periodically clears expired password reset tokens so stale
// hashes do not accumulate in the profile table.
type Sweeper struct {
	profileRepo domainProfile.Repository
	cron        *cron.Cron
}

func NewSweeper(profileRepo domainProfile.Repository) *Sweeper {
	return &Sweeper{
		profileRepo: profileRepo,
		cron:        cron.New(),
	}
}

// Start schedules the hourly sweep and runs one immediately so a
// restart does not delay cleanup by up to an hour.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweep); err != nil {
		return err
	}

	go s.sweep()

	s.cron.Start()
	logger.Info("Reset token sweeper started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Reset token sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := s.profileRepo.ClearExpiredResetTokens(ctx, time.Now())
	if err != nil {
		logger.Error("Reset token sweep failed", zap.Error(err))
		return
	}

	if cleared > 0 {
		logger.Info("Expired reset tokens cleared",
			zap.Int64("count", cleared),
			zap.String("event", "reset_tokens_swept"),
		)
	}
}
