// Package scheduler runs the appointment lifecycle sweep: a periodic bulk
// update that completes scheduled appointments whose date has passed.
package scheduler

import (
	"context"
	"log"
	"time"

	"healthcard-backend/internal/models"

	"gorm.io/gorm"
)

const DefaultInterval = 5 * time.Minute

type Sweeper struct {
	db       *gorm.DB
	interval time.Duration
	stopChan chan struct{}
}

func NewSweeper(db *gorm.DB, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		db:       db,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the tick loop. Each tick is independent: a failed sweep is
// logged and the next tick retries from scratch, no state carried over.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				count, err := s.Sweep(time.Now())
				if err != nil {
					log.Printf("Appointment sweep failed: %v", err)
					continue
				}
				if count > 0 {
					log.Printf("Updated %d appointments to completed", count)
				}
			case <-s.stopChan:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the loop. Safe to call once.
func (s *Sweeper) Stop() {
	close(s.stopChan)
}

// Sweep completes every scheduled appointment dated strictly before now, in
// one bulk update. Pending and cancelled rows are never touched, so the
// operation is idempotent; re-running with nothing newly eligible is a no-op.
func (s *Sweeper) Sweep(now time.Time) (int64, error) {
	res := s.db.Model(&models.Appointment{}).
		Where("status = ? AND appointment_date < ?", models.AppointmentScheduled, now).
		Update("status", models.AppointmentCompleted)
	return res.RowsAffected, res.Error
}
