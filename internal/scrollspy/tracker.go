// Package scrollspy derives which page section is in view from a scroll
// position and the offsets of the sections inside the scroll container.
package scrollspy

import (
	"context"
	"sync"
	"time"
)

// DefaultSections is the page's section order, top to bottom.
var DefaultSections = []string{"home", "about", "experience", "projects", "skills", "contact"}

// DefaultRetryDelays are the re-computations scheduled on mount so that
// sections materialized after the first pass are picked up.
var DefaultRetryDelays = []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}

const (
	// DefaultOffset is added to the scroll position before matching so a
	// section becomes active slightly before its top reaches the viewport edge.
	DefaultOffset = 100
	// NavigationSpacing is left above a section when scrolling to it.
	NavigationSpacing = 20
)

// Layout reports the geometry of a scroll container.
type Layout interface {
	// ScrollTop returns the container's scroll position; ok is false when the
	// container is not attached yet.
	ScrollTop() (top float64, ok bool)
	// Bounds returns a section's top offset and height relative to the container.
	Bounds(id string) (top, height float64, ok bool)
}

// ActiveSection returns the last section whose span [top, top+height)
// contains scrollTop+offset, or the first section if none does.
func ActiveSection(sections []string, l Layout, scrollTop, offset float64) string {
	if len(sections) == 0 {
		return ""
	}
	pos := scrollTop + offset
	active := sections[0]
	for _, id := range sections {
		top, height, ok := l.Bounds(id)
		if !ok {
			continue
		}
		if pos >= top && pos < top+height {
			active = id
		}
	}
	return active
}

// ScrollTarget returns the scrollTop that brings section id into view,
// leaving NavigationSpacing above it. containerTop is the container's own
// offset within the page.
func ScrollTarget(l Layout, id string, containerTop float64) (float64, bool) {
	top, _, ok := l.Bounds(id)
	if !ok {
		return 0, false
	}
	target := top - containerTop - NavigationSpacing
	if target < 0 {
		target = 0
	}
	return target, true
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithOffset overrides DefaultOffset.
func WithOffset(offset float64) Option {
	return func(t *Tracker) { t.offset = offset }
}

// WithRetryDelays overrides DefaultRetryDelays.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(t *Tracker) { t.delays = append([]time.Duration(nil), delays...) }
}

// WithOnChange registers a callback invoked whenever the active section changes.
func WithOnChange(fn func(id string)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// Tracker holds the active section for one page view.
type Tracker struct {
	sections []string
	offset   float64
	delays   []time.Duration
	onChange func(id string)

	mu         sync.Mutex
	active     string
	timers     []*time.Timer
	stopCtx    func() bool
	generation int
}

// New creates a Tracker for the given section order. The first section is
// active until the first computation.
func New(sections []string, opts ...Option) *Tracker {
	if len(sections) == 0 {
		sections = DefaultSections
	}
	t := &Tracker{
		sections: append([]string(nil), sections...),
		offset:   DefaultOffset,
		delays:   DefaultRetryDelays,
		active:   sections[0],
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Sections returns the tracked section order.
func (t *Tracker) Sections() []string {
	return append([]string(nil), t.sections...)
}

// Offset returns the position offset used for matching.
func (t *Tracker) Offset() float64 { return t.offset }

// Active returns the current section id.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Compute recalculates the active section. It is a no-op returning false
// when the container is not attached.
func (t *Tracker) Compute(l Layout) bool {
	if l == nil {
		return false
	}
	scrollTop, ok := l.ScrollTop()
	if !ok {
		return false
	}
	next := ActiveSection(t.sections, l, scrollTop, t.offset)

	t.mu.Lock()
	changed := next != t.active
	t.active = next
	t.mu.Unlock()

	if changed && t.onChange != nil {
		t.onChange(next)
	}
	return true
}

// OnScroll is the scroll event handler.
func (t *Tracker) OnScroll(l Layout) { t.Compute(l) }

// Mount computes immediately and schedules the retry computations.
// Mounting again replaces any pending retries. Cancelling ctx has the same
// effect as Unmount.
func (t *Tracker) Mount(ctx context.Context, l Layout) {
	t.Unmount()

	t.mu.Lock()
	gen := t.generation
	for _, d := range t.delays {
		t.timers = append(t.timers, time.AfterFunc(d, func() {
			t.mu.Lock()
			stale := gen != t.generation
			t.mu.Unlock()
			if !stale {
				t.Compute(l)
			}
		}))
	}
	t.stopCtx = context.AfterFunc(ctx, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen == t.generation {
			t.unmountLocked()
		}
	})
	t.mu.Unlock()

	t.Compute(l)
}

// Unmount cancels pending retries.
func (t *Tracker) Unmount() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopCtx != nil {
		t.stopCtx()
		t.stopCtx = nil
	}
	t.unmountLocked()
}

func (t *Tracker) unmountLocked() {
	for _, tm := range t.timers {
		tm.Stop()
	}
	t.timers = nil
	t.generation++
}
