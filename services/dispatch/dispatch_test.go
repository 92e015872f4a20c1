package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncRunsInline(t *testing.T) {
	d := NewSync()

	ran := false
	d.Enqueue(Task{
		Name: "inline",
		Fn: func(ctx context.Context) error {
			ran = true
			return nil
		},
	})

	assert.True(t, ran, "sync dispatcher must execute on Enqueue")
}

func TestRetriesUntilSuccess(t *testing.T) {
	d := NewSync()

	attempts := 0
	d.Enqueue(Task{
		Name: "flaky",
		Fn: func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		},
	})

	assert.Equal(t, 3, attempts)
}

func TestGivesUpAfterMaxAttempts(t *testing.T) {
	d := NewSync()

	attempts := 0
	d.Enqueue(Task{
		Name:        "hopeless",
		MaxAttempts: 2,
		Fn: func(ctx context.Context) error {
			attempts++
			return errors.New("permanent")
		},
	})

	assert.Equal(t, 2, attempts, "stops at MaxAttempts; the failure is logged, not propagated")
}

func TestWorkersDrainQueueOnStop(t *testing.T) {
	d := New(2, 16)
	d.Start()

	var executed int64
	for i := 0; i < 10; i++ {
		d.Enqueue(Task{
			Name: "counted",
			Fn: func(ctx context.Context) error {
				atomic.AddInt64(&executed, 1)
				return nil
			},
		})
	}
	d.Stop()

	assert.Equal(t, int64(10), atomic.LoadInt64(&executed))
}

func TestEnqueueNeverBlocksWhenFull(t *testing.T) {
	// Workers not started, so the queue only holds capacity.
	d := New(1, 1)

	release := make(chan struct{})
	var wg sync.WaitGroup
	d.Enqueue(Task{Name: "fills-queue", Fn: func(ctx context.Context) error {
		<-release
		return nil
	}})

	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.Enqueue(Task{Name: "dropped", Fn: func(ctx context.Context) error { return nil }})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(release)
	d.Start()
	d.Stop()
	wg.Wait()
}

func TestDefaultMaxAttempts(t *testing.T) {
	d := NewSync()

	attempts := 0
	d.Enqueue(Task{
		Name: "defaulted",
		Fn: func(ctx context.Context) error {
			attempts++
			return errors.New("always")
		},
	})

	require.Equal(t, 3, attempts)
}
