package guard

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_BeginTwiceReportsInFlight(t *testing.T) {
	g := New()

	require.True(t, g.Begin(1))
	assert.True(t, g.InFlight(1))
	assert.False(t, g.Begin(1), "second begin must be rejected")

	g.End(1)
	assert.False(t, g.InFlight(1))
	assert.True(t, g.Begin(1), "begin must succeed again after end")
}

func TestGuard_IdsAreIndependent(t *testing.T) {
	g := New()

	require.True(t, g.Begin(1))
	require.True(t, g.Begin(2))

	g.End(2)
	assert.True(t, g.InFlight(1), "ending id 2 must not touch id 1")
	assert.False(t, g.InFlight(2))
}

func TestGuard_EndOnIdleIsNoop(t *testing.T) {
	g := New()
	g.End(42)
	assert.False(t, g.InFlight(42))
	assert.True(t, g.Begin(42))
}

func TestGuard_DoReleasesOnError(t *testing.T) {
	g := New()
	boom := errors.New("boom")

	ok, err := g.Do(7, func() error {
		assert.True(t, g.InFlight(7))
		return boom
	})

	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.False(t, g.InFlight(7))
}

func TestGuard_DoRejectsWhileInFlight(t *testing.T) {
	g := New()
	require.True(t, g.Begin(3))

	called := false
	ok, err := g.Do(3, func() error {
		called = true
		return nil
	})

	assert.False(t, ok)
	assert.NoError(t, err)
	assert.False(t, called)
	assert.True(t, g.InFlight(3), "rejected Do must not release someone else's flag")
}

func TestGuard_ConcurrentBeginSingleWinner(t *testing.T) {
	g := New()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Begin(9) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}
