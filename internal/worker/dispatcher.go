package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
)

// ErrStopped возвращается Stop при повторном вызове
var ErrStopped = errors.New("worker: dispatcher already stopped")

// DefaultJobTimeout ограничение на одну фоновую задачу
const DefaultJobTimeout = 2 * time.Minute

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Job фоновая задача. Run получает собственный контекст диспетчера,
// а не контекст HTTP запроса.
type Job struct {
	Name string
	Run  func(ctx context.Context)
}

// Dispatcher ограниченная очередь задач и фиксированный пул воркеров
type Dispatcher struct {
	jobs       chan Job
	workers    int
	jobTimeout time.Duration
	log        Logger
	metrics    *metrics.Metrics

	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.RWMutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher создает диспетчер; m может быть nil
func NewDispatcher(workers, queueSize int, log Logger, m *metrics.Metrics) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		jobs:       make(chan Job, queueSize),
		workers:    workers,
		jobTimeout: DefaultJobTimeout,
		log:        log,
		metrics:    m,
		baseCtx:    ctx,
		cancel:     cancel,
	}
}

// WithJobTimeout меняет таймаут одной задачи
func (d *Dispatcher) WithJobTimeout(timeout time.Duration) *Dispatcher {
	d.jobTimeout = timeout
	return d
}

// Start запускает воркеры. Повторный вызов ничего не делает.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.loop()
	}
	d.log.Info("Dispatcher: started %d workers (queue=%d)", d.workers, cap(d.jobs))
}

// Submit ставит задачу в очередь и никогда не блокируется.
// Возвращает false, если очередь заполнена или диспетчер остановлен.
func (d *Dispatcher) Submit(job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(job, "dispatcher stopped")
		return false
	}

	select {
	case d.jobs <- job:
		d.metrics.SetQueueDepth(len(d.jobs))
		return true
	default:
		d.drop(job, "queue full")
		return false
	}
}

// Stop перестает принимать задачи и дожидается выполнения очереди.
// Если ctx истек раньше, текущие задачи отменяются.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return ErrStopped
	}
	d.stopped = true
	close(d.jobs)
	started := d.started
	d.mu.Unlock()

	if !started {
		d.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.log.Info("Dispatcher: drained and stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		d.log.Warn("Dispatcher: stop deadline exceeded, pending jobs cancelled")
		return ctx.Err()
	}
}

// Len текущая длина очереди
func (d *Dispatcher) Len() int {
	return len(d.jobs)
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.metrics.SetQueueDepth(len(d.jobs))
		d.run(job)
	}
}

func (d *Dispatcher) run(job Job) {
	ctx, cancel := context.WithTimeout(d.baseCtx, d.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Dispatcher: job %s panicked: %v", job.Name, r)
		}
	}()

	job.Run(ctx)
}

func (d *Dispatcher) drop(job Job, reason string) {
	d.metrics.IncJobsDropped()
	d.log.Warn("Dispatcher: dropped job %s: %s", job.Name, reason)
}
