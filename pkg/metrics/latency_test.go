package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()

	for i := 1; i <= 100; i++ {
		r.Observe("compute_view", time.Duration(i)*time.Millisecond)
	}
	r.Observe("a_first", time.Millisecond)

	snapshots := r.Snapshot()
	require.Len(t, snapshots, 2)

	// Ordenado por nome
	assert.Equal(t, "a_first", snapshots[0].Name)
	assert.Equal(t, "compute_view", snapshots[1].Name)

	view := snapshots[1]
	assert.Equal(t, int64(100), view.Count)
	assert.InDelta(t, 1000, view.Min, 1)
	assert.InDelta(t, 100000, view.Max, 100)
	assert.InDelta(t, 50000, view.P50, 100)
	assert.InDelta(t, 99000, view.P99, 100)
}

func TestRecorder_ClampsOutOfRangeValues(t *testing.T) {
	r := NewRecorder()

	r.Observe("x", 0)
	r.Observe("x", 2*time.Minute)

	snapshots := r.Snapshot()
	require.Len(t, snapshots, 1)
	assert.Equal(t, int64(2), snapshots[0].Count)
	assert.Equal(t, int64(minTrackable), snapshots[0].Min)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.Observe("x", time.Millisecond)
		r.Since("x", time.Now())
	})
	assert.Nil(t, r.Snapshot())
}

func TestRecorder_ConcurrentObserve(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Observe("http", time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snapshots := r.Snapshot()
	require.Len(t, snapshots, 1)
	assert.Equal(t, int64(1000), snapshots[0].Count)
}
