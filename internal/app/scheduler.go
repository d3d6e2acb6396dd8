package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ProposalExpirer помечает истёкшими устаревшие предложения отработки
type ProposalExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	proposals ProposalExpirer
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(proposals ProposalExpirer, interval time.Duration, location *time.Location, logger *zap.Logger) *Scheduler {
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		proposals: proposals,
		interval:  interval,
		now:       func() time.Time { return time.Now().In(location) },
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.runProposalExpiryTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runProposalExpiryTask периодически закрывает предложения, все слоты которых прошли
func (s *Scheduler) runProposalExpiryTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.expireProposals(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireProposals(ctx)
		case <-s.stopChan:
			s.logger.Info("Proposal expiry task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Proposal expiry task cancelled")
			return
		}
	}
}

func (s *Scheduler) expireProposals(ctx context.Context) {
	expired, err := s.proposals.ExpireStale(ctx, s.now())
	if err != nil {
		s.logger.Error("Failed to expire make-up proposals", zap.Error(err))
		return
	}

	s.logger.Debug("Proposal expiry completed", zap.Int64("expired", expired))
}
