package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/adapters/history"
	"github.com/xvierd/pomo/internal/adapters/statestore"
	"github.com/xvierd/pomo/internal/domain"
)

type recordingNotifier struct {
	notifications []string
	sounds        []string
}

func (n *recordingNotifier) Notify(title, body string) error {
	n.notifications = append(n.notifications, title)
	return nil
}

func (n *recordingNotifier) Play(event string) error {
	n.sounds = append(n.sounds, event)
	return nil
}

func (n *recordingNotifier) Enabled() bool { return true }

type recordingCelebrator struct {
	kinds []domain.CelebrationKind
}

func (c *recordingCelebrator) Celebrate(kind domain.CelebrationKind) {
	c.kinds = append(c.kinds, kind)
}

func newEngine(t *testing.T) (*Engine, *recordingNotifier, *recordingCelebrator) {
	t.Helper()

	store, err := statestore.New(t.TempDir())
	require.NoError(t, err)

	archive, err := history.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })

	notifier := &recordingNotifier{}
	celebrator := &recordingCelebrator{}

	eng, err := New(Options{
		Store:      store,
		History:    archive,
		Notifier:   notifier,
		Celebrator: celebrator,
	})
	require.NoError(t, err)
	return eng, notifier, celebrator
}

func TestDispatch_ClosedEngine(t *testing.T) {
	eng, _, _ := newEngine(t)
	require.NoError(t, eng.Close())

	_, err := eng.Dispatch(domain.LogDistraction{})
	assert.ErrorIs(t, err, domain.ErrEngineClosed)

	assert.ErrorIs(t, eng.Close(), domain.ErrEngineClosed)
}

func TestDispatch_PersistsSnapshot(t *testing.T) {
	store, err := statestore.New(t.TempDir())
	require.NoError(t, err)

	eng, err := New(Options{Store: store})
	require.NoError(t, err)

	_, err = eng.Dispatch(domain.LogDistraction{})
	require.NoError(t, err)

	reloaded, err := store.Load(domain.DefaultState())
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.CurrentSession.Distractions)
	assert.Equal(t, 90, reloaded.CurrentSession.FocusScore)
}

func TestNew_RestoreSettingsOnly(t *testing.T) {
	dir := t.TempDir()
	store, err := statestore.New(dir)
	require.NoError(t, err)

	persisted := domain.DefaultState()
	persisted.TotalPomodoros = 12
	persisted.Settings.WorkDuration = 50
	require.NoError(t, store.Save(persisted))

	eng, err := New(Options{Store: store, RestoreSettingsOnly: true})
	require.NoError(t, err)

	state := eng.State()
	assert.Equal(t, 0, state.TotalPomodoros, "counters should not be restored")
	assert.Equal(t, 50, state.Settings.WorkDuration, "settings should be restored")
}

func TestTick_Decrements(t *testing.T) {
	eng, _, _ := newEngine(t)
	_, err := eng.Dispatch(domain.StartSession{})
	require.NoError(t, err)
	before := eng.State().CurrentSession.TimeLeft

	require.NoError(t, eng.Tick(context.Background()))

	assert.Equal(t, before-1, eng.State().CurrentSession.TimeLeft)
}

func TestTick_PausedIsNoOp(t *testing.T) {
	eng, _, _ := newEngine(t)
	before := eng.State()

	require.NoError(t, eng.Tick(context.Background()))

	assert.Equal(t, before, eng.State())
}

func TestTick_ZeroTriggersCompletion(t *testing.T) {
	eng, _, _ := newEngine(t)
	_, err := eng.Dispatch(domain.StartSession{})
	require.NoError(t, err)
	_, err = eng.Dispatch(domain.SetTimeLeft{Seconds: 0})
	require.NoError(t, err)

	require.NoError(t, eng.Tick(context.Background()))

	state := eng.State()
	assert.Equal(t, 1, state.TotalPomodoros)
	assert.Equal(t, domain.ModeShortBreak, state.CurrentSession.Mode)
}

func TestCompleteSession_WorkRouting(t *testing.T) {
	eng, notifier, celebrator := newEngine(t)

	require.NoError(t, eng.CompleteSession(context.Background()))

	state := eng.State()
	assert.Equal(t, 1, state.TotalPomodoros)
	assert.Equal(t, 1, state.DailyStreak)
	assert.Equal(t, domain.ModeShortBreak, state.CurrentSession.Mode)
	assert.False(t, state.CurrentSession.IsRunning, "auto-start breaks is off by default")

	assert.Contains(t, celebrator.kinds, domain.CelebratePomodoro)
	assert.NotEmpty(t, notifier.notifications)
	assert.Contains(t, notifier.sounds, "complete")

	// The completed session is archived and statistics recomputed.
	assert.InDelta(t, 100.0, state.Statistics.AverageCompletionRate, 0.001)
}

func TestSkipSession_NoCounters(t *testing.T) {
	eng, _, _ := newEngine(t)

	require.NoError(t, eng.SkipSession(context.Background()))

	state := eng.State()
	assert.Equal(t, 0, state.TotalPomodoros, "skipped sessions do not count")
	assert.Equal(t, domain.ModeShortBreak, state.CurrentSession.Mode, "routing still advances")
	assert.InDelta(t, 0.0, state.Statistics.AverageCompletionRate, 0.001)
}

func TestCompleteSession_BreakReturnsToWork(t *testing.T) {
	eng, _, _ := newEngine(t)
	_, err := eng.Dispatch(domain.SetMode{Mode: domain.ModeShortBreak})
	require.NoError(t, err)

	require.NoError(t, eng.CompleteSession(context.Background()))

	state := eng.State()
	assert.Equal(t, 0, state.TotalPomodoros, "breaks never bump the counters")
	assert.Equal(t, domain.ModeWork, state.CurrentSession.Mode)
}

func TestCheckBoundaryReset_FirstRunWritesMarker(t *testing.T) {
	store, err := statestore.New(t.TempDir())
	require.NoError(t, err)
	eng, err := New(Options{Store: store})
	require.NoError(t, err)

	now := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	eng.CheckBoundaryReset(now)

	got, ok, err := store.LastReset()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(now.Truncate(time.Second)))
}

func TestCheckBoundaryReset_MonthBoundary(t *testing.T) {
	store, err := statestore.New(t.TempDir())
	require.NoError(t, err)

	state := domain.DefaultState()
	state.TotalPomodoros = 9
	state.Settings.WorkDuration = 50
	require.NoError(t, store.Save(state))
	require.NoError(t, store.SetLastReset(time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC)))

	eng, err := New(Options{Store: store})
	require.NoError(t, err)

	eng.CheckBoundaryReset(time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC))

	got := eng.State()
	assert.Equal(t, 0, got.TotalPomodoros, "month boundary resets stats")
	assert.Equal(t, 50, got.Settings.WorkDuration, "settings survive the reset")
}

func TestCheckBoundaryReset_WeekBoundary(t *testing.T) {
	store, err := statestore.New(t.TempDir())
	require.NoError(t, err)

	state := domain.DefaultState()
	state.WeeklyPomodoros = 4
	require.NoError(t, store.Save(state))
	// Saturday -> Monday: weekday index goes backwards.
	require.NoError(t, store.SetLastReset(time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)))

	eng, err := New(Options{Store: store})
	require.NoError(t, err)

	eng.CheckBoundaryReset(time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, eng.State().WeeklyPomodoros)
}

func TestCheckBoundaryReset_SameWeekNoReset(t *testing.T) {
	store, err := statestore.New(t.TempDir())
	require.NoError(t, err)

	state := domain.DefaultState()
	state.WeeklyPomodoros = 4
	require.NoError(t, store.Save(state))
	require.NoError(t, store.SetLastReset(time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)))

	eng, err := New(Options{Store: store})
	require.NoError(t, err)

	eng.CheckBoundaryReset(time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, 4, eng.State().WeeklyPomodoros, "mid-week check must not reset")
}
