package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the periodic catalog sync. A non-positive interval disables it.
type Scheduler struct {
	catalog  CatalogPopulator
	interval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		logrus.Info("Catalog sync scheduler disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if syncErr := SyncCatalog(jobCtx, execID, s.catalog); syncErr != nil {
			logrus.WithError(syncErr).WithField("exec_id", execID).Error("Catalog sync job failed")
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.WithError(sdErr).Error("Scheduler shutdown error")
		}
	}()
	return nil
}

// Shutdown stops the scheduler and waits for a running job. Safe to call more than once.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func NewScheduler(catalog CatalogPopulator, interval time.Duration) *Scheduler {
	return &Scheduler{catalog: catalog, interval: interval}
}
