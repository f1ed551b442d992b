package circuit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(opts ...Option) (*Breaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	opts = append([]Option{WithClock(clock.now)}, opts...)
	return New("rootstock-timelock", opts...), clock
}

func TestNewDefaults(t *testing.T) {
	b := New("indexer")
	assert.Equal(t, "indexer", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.True(t, b.Allow())
}

func TestFailureThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		failures  int
		wantOpen  bool
	}{
		{name: "below threshold", threshold: 3, failures: 2, wantOpen: false},
		{name: "at threshold", threshold: 3, failures: 3, wantOpen: true},
		{name: "single failure trips threshold one", threshold: 1, failures: 1, wantOpen: true},
		{name: "non positive threshold keeps default", threshold: 0, failures: 4, wantOpen: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBreaker(WithFailureThreshold(tt.threshold))
			var opened int
			for range tt.failures {
				_, change := b.RecordFailure()
				if change.Opened {
					opened++
				}
			}
			assert.Equal(t, tt.wantOpen, b.IsOpen())
			if tt.wantOpen {
				assert.Equal(t, 1, opened, "open transition is reported once")
			}
		})
	}
}

func TestSuccessBetweenFailuresKeepsBreakerClosed(t *testing.T) {
	b, _ := newTestBreaker(WithFailureThreshold(2))
	b.RecordFailure()
	closed, change := b.RecordSuccess()
	assert.True(t, closed)
	assert.Equal(t, StateChange{}, change)

	b.RecordFailure()
	assert.False(t, b.IsOpen())
}

func TestOpenBreakerAdmitsOneTrialPerCooldown(t *testing.T) {
	b, clock := newTestBreaker(WithFailureThreshold(1), WithCooldown(10*time.Second))
	open, change := b.RecordFailure()
	require.True(t, open)
	require.True(t, change.Opened)

	assert.False(t, b.Allow(), "cooldown starts at the failure")

	clock.advance(10 * time.Second)
	assert.True(t, b.Allow(), "trial call after cooldown")
	assert.False(t, b.Allow(), "only one trial call per window")

	clock.advance(9 * time.Second)
	assert.False(t, b.Allow())
	clock.advance(time.Second)
	assert.True(t, b.Allow())
}

func TestRecoveryNeedsConsecutiveSuccesses(t *testing.T) {
	b, _ := newTestBreaker(WithFailureThreshold(1), WithSuccessThreshold(2))
	b.RecordFailure()

	closed, change := b.RecordSuccess()
	assert.False(t, closed)
	assert.False(t, change.Closed)

	// a failed trial call restarts the recovery count
	open, change := b.RecordFailure()
	assert.True(t, open)
	assert.False(t, change.Opened, "already open")

	b.RecordSuccess()
	closed, change = b.RecordSuccess()
	assert.True(t, closed)
	assert.True(t, change.Closed)
	assert.Equal(t, StateClosed, b.State())

	// counters were cleared on close
	b.RecordFailure()
	assert.True(t, b.IsOpen(), "threshold one trips again from a clean slate")
}

func TestReset(t *testing.T) {
	b, _ := newTestBreaker(WithFailureThreshold(1))
	b.RecordFailure()
	require.True(t, b.IsOpen())

	b.Reset()
	assert.False(t, b.IsOpen())
	assert.True(t, b.Allow())
}

func TestConcurrentRecording(t *testing.T) {
	b, _ := newTestBreaker(WithFailureThreshold(50))
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.RecordFailure()
			b.Allow()
		}()
	}
	wg.Wait()
	assert.True(t, b.IsOpen())
}
