// Package shell composes the page: a splash gate followed by sections that
// materialize lazily behind placeholders. Once a section is loaded it stays
// loaded.
package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kundanpawar/portfolio/internal/scrollspy"
)

// DefaultSplashDuration is how long the splash is shown when no completion
// event arrives first.
const DefaultSplashDuration = 500 * time.Millisecond

var (
	// ErrUnknownSection is returned for section ids the page does not have.
	ErrUnknownSection = errors.New("unknown section")
	// ErrNotMounted is returned by Navigate when the section is loaded but
	// the layout has no geometry for it yet.
	ErrNotMounted = errors.New("section not mounted")
)

// Phase is the shell's top-level display state.
type Phase string

const (
	PhaseSplash Phase = "splash"
	PhaseReady  Phase = "ready"
)

// NavigationRecorder receives navigation events.
type NavigationRecorder interface {
	TrackNavigation(section string)
}

// Section is the render state of one section.
type Section struct {
	ID          string `json:"id"`
	Loaded      bool   `json:"loaded"`
	Placeholder string `json:"placeholder"`
}

// Snapshot is the render state of the whole shell.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Phase     Phase     `json:"phase"`
	Sections  []Section `json:"sections"`
}

// Option configures a Shell.
type Option func(*Shell)

// WithSplashDuration overrides DefaultSplashDuration.
func WithSplashDuration(d time.Duration) Option {
	return func(s *Shell) { s.splash = d }
}

// WithRecorder sets the navigation recorder.
func WithRecorder(r NavigationRecorder) Option {
	return func(s *Shell) { s.recorder = r }
}

// WithOnLoad registers a callback run once per section as it is loaded.
func WithOnLoad(fn func(id string)) Option {
	return func(s *Shell) { s.onLoad = fn }
}

// Shell tracks one page view.
type Shell struct {
	id       string
	sections []string
	splash   time.Duration
	recorder NavigationRecorder
	onLoad   func(id string)

	mu     sync.Mutex
	phase  Phase
	loaded map[string]bool
	timer  *time.Timer
	stop   func() bool
}

// New creates a Shell in the splash phase with nothing loaded. A nil
// sections slice uses scrollspy.DefaultSections.
func New(sections []string, opts ...Option) *Shell {
	if len(sections) == 0 {
		sections = scrollspy.DefaultSections
	}
	s := &Shell{
		id:       uuid.NewString(),
		sections: append([]string(nil), sections...),
		splash:   DefaultSplashDuration,
		phase:    PhaseSplash,
		loaded:   make(map[string]bool, len(sections)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the page view's session id.
func (s *Shell) ID() string { return s.id }

// Sections returns the section order.
func (s *Shell) Sections() []string { return append([]string(nil), s.sections...) }

// Has reports whether id is one of the page's sections.
func (s *Shell) Has(id string) bool {
	for _, sec := range s.sections {
		if sec == id {
			return true
		}
	}
	return false
}

// Start arms the splash timer. The splash ends when the timer fires or
// Complete is called, whichever comes first. Cancelling ctx disarms it.
func (s *Shell) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSplash || s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.splash, s.Complete)
	timer := s.timer
	s.stop = context.AfterFunc(ctx, func() { timer.Stop() })
}

// Complete ends the splash and loads every section. Calling it again has
// no effect.
func (s *Shell) Complete() {
	s.mu.Lock()
	if s.phase == PhaseReady {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseReady
	s.disarmLocked()
	var newly []string
	for _, id := range s.sections {
		if !s.loaded[id] {
			s.loaded[id] = true
			newly = append(newly, id)
		}
	}
	s.mu.Unlock()
	s.notify(newly)
}

// Phase returns the display phase.
func (s *Shell) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Loaded reports whether a section has been materialized.
func (s *Shell) Loaded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded[id]
}

// Load materializes a section. Loading an already loaded section is a no-op.
func (s *Shell) Load(id string) error {
	if !s.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	s.mu.Lock()
	if s.loaded[id] {
		s.mu.Unlock()
		return nil
	}
	s.loaded[id] = true
	s.mu.Unlock()
	s.notify([]string{id})
	return nil
}

// Placeholder names the skeleton shown for a section until it is loaded.
func (s *Shell) Placeholder(id string) (string, error) {
	if !s.Has(id) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	return "skeleton-" + id, nil
}

// Visit loads the section if needed and records the navigation.
func (s *Shell) Visit(id string) error {
	if err := s.Load(id); err != nil {
		return err
	}
	if s.recorder != nil {
		s.recorder.TrackNavigation(id)
	}
	return nil
}

// Navigate visits the section and returns the scroll position that brings
// it into view.
func (s *Shell) Navigate(id string, l scrollspy.Layout, containerTop float64) (float64, error) {
	if err := s.Visit(id); err != nil {
		return 0, err
	}
	if l == nil {
		return 0, fmt.Errorf("%w: %q", ErrNotMounted, id)
	}
	target, ok := scrollspy.ScrollTarget(l, id, containerTop)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotMounted, id)
	}
	return target, nil
}

// Snapshot returns the render state.
func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{SessionID: s.id, Phase: s.phase, Sections: make([]Section, 0, len(s.sections))}
	for _, id := range s.sections {
		snap.Sections = append(snap.Sections, Section{ID: id, Loaded: s.loaded[id], Placeholder: "skeleton-" + id})
	}
	return snap
}

// Close disarms the splash timer.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked()
}

func (s *Shell) disarmLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Shell) notify(ids []string) {
	if s.onLoad == nil {
		return
	}
	for _, id := range ids {
		s.onLoad(id)
	}
}
