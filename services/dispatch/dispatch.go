package dispatch

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task is one best-effort outbound side effect: a notification write,
// an email, a webhook post or an audit entry. Failure is contained
// here; it never reaches the request that enqueued the task and never
// rolls back the primary write that already succeeded.
type Task struct {
	Name        string
	Fn          func(ctx context.Context) error
	MaxAttempts int
}

// Dispatcher runs tasks on a bounded queue with per-task retry and
// backoff, decoupled from the request/response lifecycle.
type Dispatcher struct {
	queue   chan Task
	workers int
	wg      sync.WaitGroup
	backoff time.Duration
	timeout time.Duration

	// sync executes tasks inline; used by tests for determinism.
	sync bool
}

// New creates a dispatcher with the given worker count and queue size.
func New(workers, queueSize int) *Dispatcher {
	return &Dispatcher{
		queue:   make(chan Task, queueSize),
		workers: workers,
		backoff: 500 * time.Millisecond,
		timeout: 30 * time.Second,
	}
}

// NewSync creates a dispatcher that executes tasks inline on Enqueue.
func NewSync() *Dispatcher {
	return &Dispatcher{sync: true, backoff: time.Millisecond, timeout: 30 * time.Second}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	if d.sync {
		return
	}
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for task := range d.queue {
				d.run(task)
			}
		}()
	}
}

// Stop closes the queue and drains remaining tasks.
func (d *Dispatcher) Stop() {
	if d.sync {
		return
	}
	close(d.queue)
	d.wg.Wait()
}

// Enqueue hands a task to the workers. It never blocks the caller: when
// the queue is full the task is dropped and logged, consistent with the
// best-effort contract of every side channel.
func (d *Dispatcher) Enqueue(task Task) {
	if task.MaxAttempts <= 0 {
		task.MaxAttempts = 3
	}
	if d.sync {
		d.run(task)
		return
	}
	select {
	case d.queue <- task:
	default:
		log.Printf("[dispatch] queue full, dropping task %q", task.Name)
	}
}

func (d *Dispatcher) run(task Task) {
	var err error
	for attempt := 1; attempt <= task.MaxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err = task.Fn(ctx)
		cancel()
		if err == nil {
			return
		}
		if attempt < task.MaxAttempts {
			time.Sleep(d.backoff * time.Duration(attempt))
		}
	}
	log.Printf("[dispatch] task %q failed after %d attempts: %v", task.Name, task.MaxAttempts, err)
}
