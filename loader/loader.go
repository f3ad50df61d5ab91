package loader

import (
	"errors"
	"fmt"
	"math"

	"github.com/agiangrant/scrollview/retained"
	"github.com/spf13/afero"
)

// MinFrameRate is the frame rate below which an async preload skips the
// frame instead of loading an item.
const MinFrameRate = 20.0

var (
	// ErrUnknownKind is recorded for entries whose extension is not in the
	// classification table and for kinds with no registered handler.
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrBusy is returned when a preload is started while another runs.
	ErrBusy = errors.New("loader is already preloading")

	// ErrUnknownCallback is recorded when a named completion has no
	// registered callback.
	ErrUnknownCallback = errors.New("no callback registered under that name")
)

// Completion is what runs once every entry has been loaded. Func takes
// precedence; otherwise Name is resolved through RegisterCallback when the
// preload finishes.
type Completion struct {
	Name string
	Func func(l *Loader)
}

// Option configures a Loader.
type Option func(*Loader)

// WithHandler overrides the handler for kind.
func WithHandler(kind Kind, h Handler) Option {
	return func(l *Loader) {
		l.handlers[kind] = h
	}
}

// WithCache stores loaded resources in c instead of a private unbounded cache.
func WithCache(c *Cache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// Loader preloads resources one per scheduler step.
//
// Every entry counts towards progress whether it loaded or failed; failures
// are collected and returned by Errors. A Loader is not safe for concurrent
// use: call it from the goroutine that steps its scheduler.
type Loader struct {
	fs       afero.Fs
	sched    *retained.Scheduler
	handlers map[Kind]Handler
	cache    *Cache

	callbacks map[string]func(*Loader)

	entries []Entry
	cur     int // next entry to load
	loaded  int // entries finished, successfully or not
	async   bool
	done    Completion
	task    *retained.Task
	errs    []error
}

// New creates a loader reading from fs and stepping on sched.
func New(fs afero.Fs, sched *retained.Scheduler, opts ...Option) *Loader {
	l := &Loader{
		fs:        fs,
		sched:     sched,
		handlers:  DefaultHandlers(),
		cache:     NewCache(0),
		callbacks: make(map[string]func(*Loader)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cache returns the cache loaded resources are stored in.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// RegisterCallback makes fn available to completions by name.
func (l *Loader) RegisterCallback(name string, fn func(*Loader)) {
	l.callbacks[name] = fn
}

// Preload starts loading entries (flattened) one item per step.
// done runs on the step after the last item finishes.
func (l *Loader) Preload(entries []Entry, done Completion) error {
	return l.start(entries, done, false)
}

// PreloadAsync is Preload, except that steps slower than MinFrameRate load
// nothing so a struggling frame loop is not slowed further.
func (l *Loader) PreloadAsync(entries []Entry, done Completion) error {
	return l.start(entries, done, true)
}

func (l *Loader) start(entries []Entry, done Completion, async bool) error {
	if l.IsLoading() {
		return ErrBusy
	}
	l.entries = Flatten(entries)
	l.cur = 0
	l.loaded = 0
	l.async = async
	l.done = done
	l.errs = nil
	l.task = l.sched.Schedule(l)

	retained.Logger().Debug("loader: preload started",
		"entries", len(l.entries), "async", async)
	return nil
}

// IsLoading reports whether a preload is scheduled.
func (l *Loader) IsLoading() bool {
	return l.task != nil
}

// Update checks for completion, then loads the next entry. It is called by
// the scheduler.
func (l *Loader) Update(dt float64) {
	if l.task == nil {
		return
	}
	if l.loaded >= len(l.entries) {
		l.finish()
		return
	}
	if l.async && dt > 0 && 1/dt < MinFrameRate {
		retained.Logger().Debug("loader: frame rate below minimum, frame skipped",
			"fps", math.Round(1/dt))
		return
	}
	if l.cur < len(l.entries) {
		l.loadOne(l.entries[l.cur])
		l.cur++
	}
}

func (l *Loader) loadOne(e Entry) {
	defer func() { l.loaded++ }()

	kind := Classify(e)
	h, ok := l.handlers[kind]
	if !ok {
		l.fail(e, fmt.Errorf("%w: %q", ErrUnknownKind, Extension(e.Src)))
		return
	}
	val, err := h.Load(l.fs, e)
	if err != nil {
		l.fail(e, err)
		return
	}
	l.cache.Add(e.Src, val)
}

func (l *Loader) fail(e Entry, err error) {
	err = fmt.Errorf("load %s: %w", e.Src, err)
	l.errs = append(l.errs, err)
	retained.Logger().Warn("loader: failed loading resource", "src", e.Src, "error", err)
}

func (l *Loader) finish() {
	l.sched.Unschedule(l.task.ID())
	l.task = nil

	retained.Logger().Debug("loader: preload finished",
		"entries", len(l.entries), "failed", len(l.errs))

	switch {
	case l.done.Func != nil:
		l.done.Func(l)
	case l.done.Name != "":
		fn, ok := l.callbacks[l.done.Name]
		if !ok {
			l.errs = append(l.errs, fmt.Errorf("completion %q: %w", l.done.Name, ErrUnknownCallback))
			retained.Logger().Warn("loader: unknown completion callback", "name", l.done.Name)
			return
		}
		fn(l)
	}
}

// Progress returns how many entries have finished and the total.
func (l *Loader) Progress() (loaded, total int) {
	return l.loaded, len(l.entries)
}

// Percentage returns the whole percentage of entries finished, rounded
// down. An empty preload is 100% done.
func (l *Loader) Percentage() int {
	if len(l.entries) == 0 {
		return 100
	}
	return l.loaded * 100 / len(l.entries)
}

// Errors returns every failure of the current or last preload, joined.
func (l *Loader) Errors() error {
	return errors.Join(l.errs...)
}

// Purge removes entries (flattened) from the cache. Entries of unknown
// kind are reported; the rest are dropped whether or not they were cached.
func (l *Loader) Purge(entries []Entry) error {
	var errs []error
	for _, e := range Flatten(entries) {
		if Classify(e) == KindUnknown {
			errs = append(errs, fmt.Errorf("purge %s: %w", e.Src, ErrUnknownKind))
			continue
		}
		l.cache.Remove(e.Src)
	}
	return errors.Join(errs...)
}
