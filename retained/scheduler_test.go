package retained

import (
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	s := NewScheduler()
	var calls []string
	s.Schedule(UpdaterFunc(func(float64) { calls = append(calls, "a") }))
	s.Schedule(UpdaterFunc(func(float64) { calls = append(calls, "b") }))

	assert.True(t, s.Step(frame))
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Equal(t, 2, s.Count())
	assert.InDelta(t, 60, s.FrameRate(), 1e-9)
}

func TestSchedulerCancelAndUnschedule(t *testing.T) {
	s := NewScheduler()
	var ran int
	task := s.Schedule(UpdaterFunc(func(float64) { ran++ }))

	task.Cancel()
	assert.True(t, task.IsCancelled())
	assert.False(t, s.Step(frame))
	assert.Zero(t, ran)
	assert.False(t, s.Unschedule(task.ID()))
}

func TestSchedulerTaskCanUnscheduleOthers(t *testing.T) {
	s := NewScheduler()
	var second *Task
	var secondRan bool

	s.Schedule(UpdaterFunc(func(float64) { s.Unschedule(second.ID()) }))
	second = s.Schedule(UpdaterFunc(func(float64) { secondRan = true }))

	s.Step(frame)
	assert.False(t, secondRan)
	assert.Equal(t, 1, s.Count())
}

func TestSchedulerTaskCanUnscheduleItself(t *testing.T) {
	s := NewScheduler()
	var task *Task
	var ran int
	task = s.Schedule(UpdaterFunc(func(float64) {
		ran++
		s.Unschedule(task.ID())
	}))

	assert.False(t, s.Step(frame))
	assert.False(t, s.Step(frame))
	assert.Equal(t, 1, ran)
}

func TestSchedulerActiveChange(t *testing.T) {
	s := NewScheduler()
	var changes []bool
	s.OnActiveChange(func(active bool) { changes = append(changes, active) })

	a := s.Schedule(UpdaterFunc(func(float64) {}))
	b := s.Schedule(UpdaterFunc(func(float64) {}))
	s.Unschedule(a.ID())
	s.Unschedule(b.ID())

	assert.Equal(t, []bool{true, false}, changes)
	assert.False(t, s.HasActive())
}

func TestSchedulerTick(t *testing.T) {
	s := NewScheduler()
	var got []float64
	s.Schedule(UpdaterFunc(func(dt float64) { got = append(got, dt) }))

	start := time.Unix(1000, 0)
	s.Tick(start)
	assert.Empty(t, got, "first tick only records the time")

	s.Tick(start.Add(20 * time.Millisecond))
	s.Tick(start.Add(20 * time.Millisecond))
	s.Tick(start.Add(50 * time.Millisecond))

	require.Len(t, got, 2)
	assert.InDelta(t, 0.02, got[0], 1e-12)
	assert.InDelta(t, 0.03, got[1], 1e-12)
}

func TestSchedulerDrivesScrollView(t *testing.T) {
	s := NewScheduler()
	sv, _ := newTestView(t, DirectionVertical, Sz(300, 1000))
	s.Schedule(sv)

	require.NoError(t, sv.ScrollToBottom(0.5, false))
	for i := 0; i < 40; i++ {
		s.Step(frame)
	}

	assert.False(t, sv.IsAutoScrolling())
	assert.Equal(t, gg.Pt(0, 0), sv.InnerContainerPosition())
}
