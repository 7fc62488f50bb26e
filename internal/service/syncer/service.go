package syncer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
	"github.com/m04kA/SMC-GradShootBooking/internal/worker"
	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
)

const (
	ModeRow   = "row"
	ModeBatch = "batch"
)

const (
	sourceInsert = "after_insert"
	sourceSweep  = "after_insert_sweep"
	sourceCron   = "cron"
)

// Options настройки синхронизации
type Options struct {
	Policy           RetryPolicy
	AfterInsertSweep int
	CronBatchSize    int
	Mode             string
	Concurrency      int
}

// SweepResult итог планового свипа
type SweepResult struct {
	Synced int
	Total  int
}

// Service выгрузка броней в таблицу: после записи и по расписанию
type Service struct {
	pusher    Pusher
	repo      BookingRepository
	submitter JobSubmitter
	opts      Options
	sleep     Sleeper
	logger    Logger
	metrics   *metrics.Metrics
}

// NewService создает сервис синхронизации; m может быть nil
func NewService(pusher Pusher, repo BookingRepository, submitter JobSubmitter, opts Options, logger Logger, m *metrics.Metrics) *Service {
	opts.Policy = opts.Policy.normalized()
	if opts.AfterInsertSweep < 0 {
		opts.AfterInsertSweep = 0
	}
	if opts.CronBatchSize < 1 {
		opts.CronBatchSize = 20
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Mode != ModeBatch {
		opts.Mode = ModeRow
	}

	return &Service{
		pusher:    pusher,
		repo:      repo,
		submitter: submitter,
		opts:      opts,
		sleep:     RealSleeper,
		logger:    logger,
		metrics:   m,
	}
}

// WithSleeper подменяет ожидание между попытками (для тестов)
func (s *Service) WithSleeper(sleep Sleeper) *Service {
	s.sleep = sleep
	return s
}

// SyncWithRetry отправляет строку до maxAttempts раз (<= 0 - по политике).
// Между неудачными попытками ждет по политике, после последней не ждет.
// Никогда не возвращает ошибку: true при первом успехе, false когда попытки кончились.
func (s *Service) SyncWithRetry(ctx context.Context, payload domain.SyncPayload, maxAttempts int) bool {
	return s.retry(ctx, "booking "+payload.ID, maxAttempts, func() error {
		return s.pusher.Push(ctx, payload)
	})
}

// retry общий цикл попыток для строки и для пачки
func (s *Service) retry(ctx context.Context, what string, maxAttempts int, push func() error) bool {
	if maxAttempts <= 0 {
		maxAttempts = s.opts.Policy.MaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := push()
		if err == nil {
			s.metrics.ObserveSyncAttempt("ok")
			return true
		}

		s.metrics.ObserveSyncAttempt("failed")
		s.logger.Warn("Sync: attempt %d/%d for %s failed: %v", attempt, maxAttempts, what, err)

		if attempt < maxAttempts {
			if err := s.sleep(ctx, s.opts.Policy.Backoff(attempt)); err != nil {
				s.logger.Warn("Sync: retry for %s aborted: %v", what, err)
				return false
			}
		}
	}
	return false
}

// Enqueue ставит в очередь выгрузку только что записанной брони и
// добор нескольких других невыгруженных строк. Не блокирует вызывающего.
func (s *Service) Enqueue(b *domain.Booking) {
	snapshot := *b
	s.submitter.Submit(worker.Job{
		Name: "sync:" + snapshot.ID,
		Run: func(ctx context.Context) {
			s.syncOne(ctx, snapshot, sourceInsert)
			s.sweepPending(ctx, snapshot.ID)
		},
	})
}

// sweepPending каждую найденную строку выгружает отдельной задачей
func (s *Service) sweepPending(ctx context.Context, excludeID string) {
	if s.opts.AfterInsertSweep == 0 {
		return
	}

	pending, err := s.repo.ListUnsynced(ctx, s.opts.AfterInsertSweep, excludeID)
	if err != nil {
		s.logger.Error("Sync: failed to list pending bookings: %v", err)
		return
	}

	for _, p := range pending {
		snapshot := *p
		s.submitter.Submit(worker.Job{
			Name: "sync:" + snapshot.ID,
			Run: func(ctx context.Context) {
				s.syncOne(ctx, snapshot, sourceSweep)
			},
		})
	}
}

// syncOne выгружает снимок строки и отмечает synced только эту версию
func (s *Service) syncOne(ctx context.Context, b domain.Booking, source string) bool {
	if !s.SyncWithRetry(ctx, b.SyncPayload(), 0) {
		s.logger.Warn("Sync: booking %s left unsynced", b.ID)
		return false
	}

	marked, err := s.repo.MarkSynced(ctx, b.SyncMark())
	if err != nil {
		s.logger.Error("Sync: pushed booking %s but failed to mark synced: %v", b.ID, err)
		return false
	}
	if marked == 0 {
		s.logger.Info("Sync: booking %s changed after version %d was pushed, left for the next sync", b.ID, b.Version)
		return false
	}

	s.metrics.AddSynced(source, 1)
	return true
}

// Sweep плановая выгрузка: берет до CronBatchSize невыгруженных строк,
// отправляет их и одним запросом помечает принятые версии
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	pending, err := s.repo.ListUnsynced(ctx, s.opts.CronBatchSize)
	if err != nil {
		s.logger.Error("Sweep: failed to list unsynced bookings: %v", err)
		return nil, fmt.Errorf("%w: Sweep - list unsynced: %v", ErrInternal, err)
	}
	if len(pending) == 0 {
		return &SweepResult{}, nil
	}

	var pushed []domain.SyncMark
	if s.opts.Mode == ModeBatch {
		pushed = s.pushBatch(ctx, pending)
	} else {
		pushed = s.pushRows(ctx, pending)
	}

	var synced int64
	if len(pushed) > 0 {
		synced, err = s.repo.MarkSynced(ctx, pushed...)
		if err != nil {
			s.logger.Error("Sweep: failed to mark %d bookings synced: %v", len(pushed), err)
			return nil, fmt.Errorf("%w: Sweep - mark synced: %v", ErrInternal, err)
		}
		if stale := int64(len(pushed)) - synced; stale > 0 {
			s.logger.Info("Sweep: %d bookings changed while being pushed, left for the next sweep", stale)
		}
	}

	s.metrics.AddSynced(sourceCron, int(synced))
	s.logger.Info("Sweep: synced %d out of %d bookings (mode=%s)", synced, len(pending), s.opts.Mode)
	return &SweepResult{Synced: int(synced), Total: len(pending)}, nil
}

// pushRows параллельно отправляет строки, не больше Concurrency одновременно
func (s *Service) pushRows(ctx context.Context, pending []*domain.Booking) []domain.SyncMark {
	var (
		mu     sync.Mutex
		pushed = make([]domain.SyncMark, 0, len(pending))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for _, b := range pending {
		payload, mark := b.SyncPayload(), b.SyncMark()
		g.Go(func() error {
			if s.SyncWithRetry(gctx, payload, 0) {
				mu.Lock()
				pushed = append(pushed, mark)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return pushed
}

// pushBatch отправляет все строки одним запросом с повторами по политике
// и возвращает версии только тех строк, которые были в пачке
func (s *Service) pushBatch(ctx context.Context, pending []*domain.Booking) []domain.SyncMark {
	payloads := make([]domain.SyncPayload, 0, len(pending))
	inBatch := make(map[string]domain.SyncMark, len(pending))
	for _, b := range pending {
		payloads = append(payloads, b.SyncPayload())
		inBatch[b.ID] = b.SyncMark()
	}

	var ids []string
	ok := s.retry(ctx, fmt.Sprintf("batch of %d", len(payloads)), 0, func() error {
		var err error
		ids, err = s.pusher.PushBatch(ctx, payloads)
		return err
	})
	if !ok {
		return nil
	}

	accepted := make([]domain.SyncMark, 0, len(ids))
	for _, id := range ids {
		if mark, found := inBatch[id]; found {
			accepted = append(accepted, mark)
			delete(inBatch, id)
		}
	}
	return accepted
}
