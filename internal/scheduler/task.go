package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task runs a function on a fixed interval until stopped. Each Task owns its
// own ticker, so several tasks never share cadence or cancellation.
type Task struct {
	name     string
	interval time.Duration
	fn       func()
	logger   *zap.Logger

	mu      sync.Mutex
	ticker  *time.Ticker
	stop    chan struct{}
	done    chan struct{}
	running bool
	lastRun time.Time
	runs    int
}

func NewTask(name string, interval time.Duration, fn func(), logger *zap.Logger) *Task {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Task{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   logger,
	}
}

// Start runs fn once immediately and then on every interval. Starting a
// running task is a no-op.
func (t *Task) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.ticker = time.NewTicker(t.interval)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	ticker, stop, done := t.ticker, t.stop, t.done
	t.mu.Unlock()

	t.logger.Debug("Task started",
		zap.String("task", t.name),
		zap.Duration("interval", t.interval))

	t.runOnce()
	go t.run(ticker, stop, done)
}

func (t *Task) run(ticker *time.Ticker, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ticker.C:
			t.runOnce()
		case <-stop:
			ticker.Stop()
			return
		}
	}
}

func (t *Task) runOnce() {
	t.fn()
	t.mu.Lock()
	t.lastRun = time.Now()
	t.runs++
	t.mu.Unlock()
}

// Stop cancels the task and waits for its loop to exit. It is safe to call
// more than once.
func (t *Task) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	stop, done := t.stop, t.done
	t.mu.Unlock()

	close(stop)
	<-done

	t.logger.Debug("Task stopped", zap.String("task", t.name))
}

func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Task) GetStatus() map[string]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return map[string]interface{}{
		"name":     t.name,
		"running":  t.running,
		"interval": t.interval.String(),
		"last_run": t.lastRun,
		"runs":     t.runs,
	}
}
