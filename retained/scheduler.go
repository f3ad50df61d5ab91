package retained

import (
	"sync"
	"sync/atomic"
	"time"
)

// TaskID uniquely identifies a scheduled task.
type TaskID uint64

var nextTaskID atomic.Uint64

func newTaskID() TaskID {
	return TaskID(nextTaskID.Add(1))
}

// Updater is anything advanced once per frame. ScrollView and the loader
// both implement it.
type Updater interface {
	Update(dt float64)
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func(dt float64)

// Update calls f(dt).
func (f UpdaterFunc) Update(dt float64) { f(dt) }

// Task is a scheduled Updater.
type Task struct {
	id        TaskID
	updater   Updater
	cancelled atomic.Bool
}

// ID returns the task's identifier.
func (t *Task) ID() TaskID {
	return t.id
}

// Cancel stops the task; it is dropped on the next step.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
}

// IsCancelled returns whether the task was cancelled.
func (t *Task) IsCancelled() bool {
	return t.cancelled.Load()
}

// Scheduler drives per-frame updates. Tasks run in the order they were
// scheduled, outside the scheduler's lock, so a task may schedule or
// unschedule tasks (itself included) while it runs.
type Scheduler struct {
	mu    sync.RWMutex
	tasks map[TaskID]*Task
	order []TaskID

	lastTick  time.Time
	frameRate float64

	// Called when the scheduler goes from idle to busy or back (so a host
	// loop can switch between event-driven and fixed-rate modes).
	onActiveChange func(hasActive bool)
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make(map[TaskID]*Task),
	}
}

// OnActiveChange sets the callback for when tasks become active/inactive.
func (s *Scheduler) OnActiveChange(fn func(hasActive bool)) {
	s.mu.Lock()
	s.onActiveChange = fn
	s.mu.Unlock()
}

// Schedule registers u to be updated every frame.
func (s *Scheduler) Schedule(u Updater) *Task {
	task := &Task{id: newTaskID(), updater: u}

	s.mu.Lock()
	wasEmpty := len(s.tasks) == 0
	s.tasks[task.id] = task
	s.order = append(s.order, task.id)
	callback := s.onActiveChange
	s.mu.Unlock()

	if wasEmpty && callback != nil {
		callback(true)
	}
	return task
}

// Unschedule removes a task. Returns false if it was not scheduled.
func (s *Scheduler) Unschedule(id TaskID) bool {
	s.mu.Lock()
	_, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	isEmpty := len(s.tasks) == 0
	callback := s.onActiveChange
	s.mu.Unlock()

	if ok && isEmpty && callback != nil {
		callback(false)
	}
	return ok
}

// HasActive returns true if any task is scheduled.
func (s *Scheduler) HasActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks) > 0
}

// Count returns the number of scheduled tasks.
func (s *Scheduler) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// FrameRate returns 1/dt of the most recent step, or 0 before the first.
func (s *Scheduler) FrameRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameRate
}

// Tick steps every task by the time elapsed since the previous Tick.
// The first Tick only records the time. Returns true if any task remains.
func (s *Scheduler) Tick(now time.Time) bool {
	s.mu.Lock()
	last := s.lastTick
	s.lastTick = now
	s.mu.Unlock()

	if last.IsZero() || !now.After(last) {
		return s.HasActive()
	}
	return s.Step(now.Sub(last).Seconds())
}

// Step updates every task by dt seconds. Cancelled tasks are dropped without
// being updated. Returns true if any task remains.
func (s *Scheduler) Step(dt float64) bool {
	s.mu.Lock()
	if dt > 0 {
		s.frameRate = 1 / dt
	}
	snapshot := make([]*Task, 0, len(s.order))
	for _, id := range s.order {
		snapshot = append(snapshot, s.tasks[id])
	}
	s.mu.Unlock()

	for _, task := range snapshot {
		if task.IsCancelled() {
			s.Unschedule(task.id)
			continue
		}
		// Skip tasks unscheduled earlier in this step.
		s.mu.RLock()
		_, live := s.tasks[task.id]
		s.mu.RUnlock()
		if live {
			task.updater.Update(dt)
		}
	}
	return s.HasActive()
}
