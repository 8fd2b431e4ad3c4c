package shell

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kundanpawar/portfolio/internal/scrollspy"
)

type navLog struct {
	mu  sync.Mutex
	ids []string
}

func (n *navLog) TrackNavigation(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, id)
}

func TestNewStartsInSplash(t *testing.T) {
	s := New(nil)
	snap := s.Snapshot()
	assert.Equal(t, PhaseSplash, snap.Phase)
	assert.Len(t, snap.Sections, len(scrollspy.DefaultSections))
	for _, sec := range snap.Sections {
		assert.False(t, sec.Loaded, sec.ID)
		assert.Equal(t, "skeleton-"+sec.ID, sec.Placeholder)
	}
	assert.NotEmpty(t, snap.SessionID)
}

func TestCompleteLoadsEverythingOnce(t *testing.T) {
	var loads []string
	s := New([]string{"home", "about"}, WithOnLoad(func(id string) { loads = append(loads, id) }))
	require.NoError(t, s.Load("about"))
	s.Complete()
	s.Complete()

	assert.Equal(t, PhaseReady, s.Phase())
	assert.True(t, s.Loaded("home"))
	assert.True(t, s.Loaded("about"))
	assert.Equal(t, []string{"about", "home"}, loads)
}

func TestStartSplashTimer(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(nil, WithSplashDuration(10*time.Millisecond))
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return s.Phase() == PhaseReady }, time.Second, 2*time.Millisecond)
	assert.True(t, s.Loaded("contact"))
	s.Close()
}

func TestStartCancelledByContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := New(nil, WithSplashDuration(30*time.Millisecond))
	s.Start(ctx)
	cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, PhaseSplash, s.Phase())

	// Event-driven completion still works.
	s.Complete()
	assert.Equal(t, PhaseReady, s.Phase())
	s.Close()
}

func TestCloseDisarmsSplash(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(nil, WithSplashDuration(10*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	s.Close()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, PhaseSplash, s.Phase())
}

func TestNavigateLoadsAndScrolls(t *testing.T) {
	rec := &navLog{}
	s := New(nil, WithRecorder(rec))
	layout := scrollspy.Stack(s.Sections(), 600, 400, 800, 700, 500, 300)

	target, err := s.Navigate("projects", layout, 0)
	require.NoError(t, err)
	assert.Equal(t, 1780.0, target)
	assert.True(t, s.Loaded("projects"))
	assert.False(t, s.Loaded("skills"), "navigation loads only its target")
	assert.Equal(t, []string{"projects"}, rec.ids)
}

func TestVisitRecordsWithoutLayout(t *testing.T) {
	rec := &navLog{}
	s := New(nil, WithRecorder(rec))
	require.NoError(t, s.Visit("skills"))
	require.NoError(t, s.Visit("skills"))
	assert.True(t, s.Loaded("skills"))
	assert.Equal(t, []string{"skills", "skills"}, rec.ids)
	assert.ErrorIs(t, s.Visit("blog"), ErrUnknownSection)
}

func TestNavigateUnknownSection(t *testing.T) {
	rec := &navLog{}
	s := New(nil, WithRecorder(rec))
	_, err := s.Navigate("blog", nil, 0)
	assert.ErrorIs(t, err, ErrUnknownSection)
	assert.Empty(t, rec.ids)

	_, err = s.Placeholder("blog")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestNavigateBeforeMount(t *testing.T) {
	s := New(nil)
	_, err := s.Navigate("about", &scrollspy.Static{Attached: true}, 0)
	assert.ErrorIs(t, err, ErrNotMounted)
	assert.True(t, s.Loaded("about"), "loaded set is monotonic even when the scroll cannot happen yet")
}
