package correlator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/ghostinput/internal/domain/replay"
)

func TestShouldExecute_InactiveAlwaysAllows(t *testing.T) {
	c := New(DefaultWindow, 0)

	assert.True(t, c.ShouldExecute(replay.Event{Frame: 100, Down: true}))
	assert.True(t, c.ShouldExecute(replay.Event{Frame: 100, Down: false}))
}

func TestShouldExecute_IgnoreLiveOverride(t *testing.T) {
	c := New(DefaultWindow, 0)
	c.SetActive(true)
	c.SetIgnoreLive(true)

	// No live input logged, but the override bypasses correlation.
	assert.True(t, c.ShouldExecute(replay.Event{Frame: 50, Down: true}))
}

func TestShouldExecute_WindowBoundaries(t *testing.T) {
	const live = 100

	tests := []struct {
		name   string
		window Window
		frame  int64
		down   bool
		want   bool
	}{
		{"exact match", Window{3, 3}, live, true, true},
		{"lower boundary", Window{3, 3}, live - 3, true, true},
		{"upper boundary", Window{3, 3}, live + 3, true, true},
		{"below window", Window{3, 3}, live - 4, true, false},
		{"above window", Window{3, 3}, live + 4, true, false},
		{"direction mismatch", Window{3, 3}, live, false, false},
		{"asymmetric upper", Window{0, 5}, live + 5, true, true},
		{"asymmetric below", Window{0, 5}, live - 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.window, 0)
			c.SetActive(true)
			c.Record(true, live)

			got := c.ShouldExecute(replay.Event{Frame: tt.frame, Down: tt.down})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldExecute_NoMatchIsSkip(t *testing.T) {
	c := New(Window{2, 2}, 0)
	c.SetActive(true)

	// Empty log: nothing corroborates.
	assert.False(t, c.ShouldExecute(replay.Event{Frame: 10, Down: true}))

	// A release can't corroborate a press.
	c.Record(false, 10)
	assert.False(t, c.ShouldExecute(replay.Event{Frame: 10, Down: true}))
	assert.True(t, c.ShouldExecute(replay.Event{Frame: 10, Down: false}))
}

func TestRecord_InactiveIsNoop(t *testing.T) {
	c := New(DefaultWindow, 0)

	c.Record(true, 5)
	assert.Equal(t, 0, c.LogSize())

	c.SetActive(true)
	c.Record(true, 5)
	assert.Equal(t, 1, c.LogSize())
}

func TestPrune_DropsOldEvents(t *testing.T) {
	c := New(DefaultWindow, 100)
	c.SetActive(true)

	c.Record(true, 10)
	c.Record(false, 50)
	c.Record(true, 150)

	c.Prune(200)
	// cutoff = 100: frames 10 and 50 go, 150 stays.
	assert.Equal(t, 1, c.LogSize())
	assert.True(t, c.ShouldExecute(replay.Event{Frame: 150, Down: true}))
	assert.False(t, c.ShouldExecute(replay.Event{Frame: 50, Down: false}))
}

func TestPrune_BoundsLogUnderContinuousInput(t *testing.T) {
	c := New(DefaultWindow, 100)
	c.SetActive(true)

	// Simulate a long session: one genuine input per frame, prune
	// each tick as the scheduler does.
	for frame := int64(0); frame < 100_000; frame++ {
		c.Record(frame%2 == 0, frame)
		c.Prune(frame)
	}

	assert.LessOrEqual(t, c.LogSize(), 101)
}

func TestReset_ClearsLog(t *testing.T) {
	c := New(DefaultWindow, 0)
	c.SetActive(true)
	c.Record(true, 1)
	c.Record(false, 2)

	c.Reset()
	assert.Equal(t, 0, c.LogSize())
	assert.False(t, c.ShouldExecute(replay.Event{Frame: 1, Down: true}))
}
