// Package scheduler runs the recurring billing jobs. It owns a single cron
// instance that triggers the subscription renewal pass once per day.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/feepilot/feepilot/internal/pkg/billing"
	"github.com/feepilot/feepilot/internal/pkg/env"
)

// DefaultRenewalSchedule fires at 02:00 server time, after the nightly
// database maintenance window.
const DefaultRenewalSchedule = "0 2 * * *"

type Scheduler struct {
	cron    *cron.Cron
	service *billing.Service
}

func New(service *billing.Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
	}
}

// Start registers the renewal job and launches the cron loop in its own
// goroutine. The schedule can be overridden via RENEWAL_CRON.
func (s *Scheduler) Start() error {
	schedule := env.GetEnv("RENEWAL_CRON", DefaultRenewalSchedule)

	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		report, err := s.service.ProcessDueRenewals(ctx, time.Now())
		if err != nil {
			log.Printf("[Scheduler] renewal pass failed: %v", err)
			return
		}
		log.Printf("[Scheduler] renewal pass done: %d processed, %d failed", report.Processed, report.Failed)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[Scheduler] renewal job scheduled (%s)", schedule)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
