package address

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Close()

	var calls atomic.Int32
	var last atomic.Value

	for _, q := range []string{"H", "Hi", "Hig", "High"} {
		q := q
		d.Trigger(t.Context(), func(ctx context.Context) {
			calls.Add(1)
			last.Store(q)
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "High", last.Load())

	// No further calls arrive after the quiet period.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerCancelsSupersededContext(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Close()

	cancelled := make(chan struct{})
	d.Trigger(t.Context(), func(ctx context.Context) {
		// Block: simulate an in-flight lookup for stale input.
		<-ctx.Done()
		close(cancelled)
	})

	// Let the first call start before superseding it.
	time.Sleep(30 * time.Millisecond)
	done := make(chan struct{})
	d.Trigger(t.Context(), func(ctx context.Context) { close(done) })

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded call's context was never cancelled")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("replacement call never ran")
	}
}

func TestDebouncerCloseStopsPendingAndFutureCalls(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(t.Context(), func(ctx context.Context) { calls.Add(1) })
	d.Close()

	d.Trigger(t.Context(), func(ctx context.Context) { calls.Add(1) })

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncerDefaultsDelay(t *testing.T) {
	d := NewDebouncer(0)
	defer d.Close()
	assert.Equal(t, DefaultDebounceDelay, d.delay)
}
