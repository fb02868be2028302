package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"brokersim/internal/service"
)

// Scheduler runs the market price ticker on a fixed cron cadence.
type Scheduler struct {
	cron   *cron.Cron
	ticker *service.PriceTicker
}

// NewScheduler creates a new scheduler
func NewScheduler(ticker *service.PriceTicker) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		ticker: ticker,
	}
}

// Start registers the price tick job (every minute) and starts the cron.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("*/1 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.ticker.Tick(ctx); err != nil {
			log.Printf("ERROR: Scheduled price tick failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("[OK] Price ticker scheduler started (every 1 minute)")
	return nil
}

// Stop stops the scheduler gracefully
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[OK] Price ticker scheduler stopped")
}
