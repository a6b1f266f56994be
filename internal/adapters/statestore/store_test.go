package statestore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/domain"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLoad_NoSnapshotReturnsDefaults(t *testing.T) {
	store := newStore(t)
	defaults := domain.DefaultState()

	state, err := store.Load(defaults)

	require.NoError(t, err)
	assert.Equal(t, defaults, state)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newStore(t)
	state := domain.DefaultState()
	state.TotalPomodoros = 42
	state.Achievements = []string{domain.AchievementFirstPomodoro}
	state.Settings.WorkDuration = 50
	completed := time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC)
	state.LastCompletedDate = &completed

	require.NoError(t, store.Save(state))

	loaded, err := store.Load(domain.DefaultState())
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestLoad_BackfillsMissingKeys(t *testing.T) {
	store := newStore(t)

	// An old snapshot that predates most of the schema.
	old := `{"totalPomodoros": 7, "settings": {"workDuration": 30}}`
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "state.json"), []byte(old), 0o644))

	state, err := store.Load(domain.DefaultState())
	require.NoError(t, err)

	assert.Equal(t, 7, state.TotalPomodoros)
	assert.Equal(t, 30, state.Settings.WorkDuration)
	// Missing top-level keys come from defaults.
	assert.Equal(t, domain.LevelNovice, state.Level.Current)
	assert.Len(t, state.Statistics.WeeklyProgress, 7)
	assert.Len(t, state.Statistics.MonthlyProgress, 30)
	assert.NotNil(t, state.Achievements)
}

func TestLoad_CorruptSnapshotFallsBackToDefaults(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "state.json"), []byte("{not json"), 0o644))

	state, err := store.Load(domain.DefaultState())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultState(), state)
}

func TestLoad_SanitizesOutOfRangeValues(t *testing.T) {
	store := newStore(t)
	bad := `{
		"totalPomodoros": -3,
		"achievements": ["FIRST_POMODORO", "FIRST_POMODORO", "NIGHT_OWL"],
		"currentSession": {"mode": "nap", "timeLeft": -10, "energyLevel": 9, "focusScore": 400}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "state.json"), []byte(bad), 0o644))

	state, err := store.Load(domain.DefaultState())
	require.NoError(t, err)

	assert.Equal(t, 0, state.TotalPomodoros)
	assert.Equal(t, domain.ModeWork, state.CurrentSession.Mode)
	assert.Equal(t, 0, state.CurrentSession.TimeLeft)
	assert.Equal(t, 5, state.CurrentSession.EnergyLevel)
	assert.Equal(t, 100, state.CurrentSession.FocusScore)
	assert.Equal(t, []string{"FIRST_POMODORO", "NIGHT_OWL"}, state.Achievements)
}

func TestLastReset(t *testing.T) {
	store := newStore(t)

	_, ok, err := store.LastReset()
	require.NoError(t, err)
	assert.False(t, ok, "no marker recorded yet")

	stamp := time.Date(2025, 6, 11, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetLastReset(stamp))

	got, ok, err := store.LastReset()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(stamp), "got %v, want %v", got, stamp)
}

func TestLastReset_GarbageMarkerTreatedAsAbsent(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "last_reset"), []byte("yesterday-ish"), 0o644))

	_, ok, err := store.LastReset()
	require.NoError(t, err)
	assert.False(t, ok)
}
