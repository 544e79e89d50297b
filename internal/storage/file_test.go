package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

func newTestStorage(t *testing.T) (*FileStorage, string, string) {
	t.Helper()
	dir := t.TempDir()
	habitsFile := filepath.Join(dir, "habits.json")
	complFile := filepath.Join(dir, "completions.json")
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := NewFileStorage(habitsFile, complFile, logger)
	assert.NoError(t, err)
	return s, habitsFile, complFile
}

func testHabit(id, title string) *internal.Habit {
	return &internal.Habit{
		ID:        id,
		Title:     title,
		CreatedAt: time.Now(),
	}
}

func TestToggleIsSelfInverse(t *testing.T) {
	s, _, _ := newTestStorage(t)
	ctx := context.Background()

	done, err := s.IsCompleted(ctx, "h1", "2024-05-01")
	assert.NoError(t, err)
	assert.False(t, done)

	completed, err := s.ToggleCompletion(ctx, "h1", "2024-05-01")
	assert.NoError(t, err)
	assert.True(t, completed)

	done, _ = s.IsCompleted(ctx, "h1", "2024-05-01")
	assert.True(t, done)

	completed, err = s.ToggleCompletion(ctx, "h1", "2024-05-01")
	assert.NoError(t, err)
	assert.False(t, completed)

	done, _ = s.IsCompleted(ctx, "h1", "2024-05-01")
	assert.False(t, done)

	// Odd number of toggles ends completed, even ends not.
	for i := 0; i < 3; i++ {
		_, _ = s.ToggleCompletion(ctx, "h1", "2024-05-01")
	}
	done, _ = s.IsCompleted(ctx, "h1", "2024-05-01")
	assert.True(t, done)
}

func TestCascadeDelete(t *testing.T) {
	s, _, _ := newTestStorage(t)
	ctx := context.Background()

	assert.NoError(t, s.SaveHabit(ctx, testHabit("h1", "Read")))
	_, _ = s.ToggleCompletion(ctx, "h1", "2024-05-01")
	_, _ = s.ToggleCompletion(ctx, "h1", "2024-05-02")

	assert.NoError(t, s.DeleteCompletionsForHabit(ctx, "h1"))
	assert.NoError(t, s.DeleteHabit(ctx, "h1"))

	done, _ := s.IsCompleted(ctx, "h1", "2024-05-01")
	assert.False(t, done)
	done, _ = s.IsCompleted(ctx, "h1", "2024-05-02")
	assert.False(t, done)

	completions, err := s.ListCompletionsForHabit(ctx, "h1")
	assert.NoError(t, err)
	assert.Empty(t, completions)

	_, err = s.GetHabit(ctx, "h1")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestRoundTripPersistence(t *testing.T) {
	s, habitsFile, complFile := newTestStorage(t)
	ctx := context.Background()

	rt := "09:00"
	h := testHabit("h1", "Read")
	h.Description = "Twenty pages a day"
	h.ReminderTime = &rt
	assert.NoError(t, s.SaveHabit(ctx, h))
	assert.NoError(t, s.SaveHabit(ctx, testHabit("h2", "Run")))
	_, _ = s.ToggleCompletion(ctx, "h1", "2024-05-01")
	_, _ = s.ToggleCompletion(ctx, "h2", "2024-05-01")

	// A fresh store over the same files must see identical collections.
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	reloaded, err := NewFileStorage(habitsFile, complFile, logger)
	assert.NoError(t, err)

	habits, err := reloaded.ListHabits(ctx)
	assert.NoError(t, err)
	assert.Len(t, habits, 2)
	assert.Equal(t, "h1", habits[0].ID)
	assert.Equal(t, "Read", habits[0].Title)
	assert.Equal(t, "Twenty pages a day", habits[0].Description)
	if assert.NotNil(t, habits[0].ReminderTime) {
		assert.Equal(t, "09:00", *habits[0].ReminderTime)
	}
	assert.Nil(t, habits[1].ReminderTime)

	done, _ := reloaded.IsCompleted(ctx, "h1", "2024-05-01")
	assert.True(t, done)
	done, _ = reloaded.IsCompleted(ctx, "h2", "2024-05-01")
	assert.True(t, done)

	entries, err := reloaded.ListCompletionsOn(ctx, "2024-05-01")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	habitsFile := filepath.Join(dir, "habits.json")
	complFile := filepath.Join(dir, "completions.json")
	assert.NoError(t, os.WriteFile(habitsFile, []byte("{not json"), 0644))
	assert.NoError(t, os.WriteFile(complFile, []byte("also not json"), 0644))

	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := NewFileStorage(habitsFile, complFile, logger)
	assert.NoError(t, err)

	habits, err := s.ListHabits(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, habits)
}

func TestSaveHabitReplacesExisting(t *testing.T) {
	s, _, _ := newTestStorage(t)
	ctx := context.Background()

	h := testHabit("h1", "Read")
	assert.NoError(t, s.SaveHabit(ctx, h))

	updated := *h
	updated.Title = "Read more"
	assert.NoError(t, s.SaveHabit(ctx, &updated))

	habits, _ := s.ListHabits(ctx)
	assert.Len(t, habits, 1)
	assert.Equal(t, "Read more", habits[0].Title)
}

func TestWriteHealthTrackedPerBlob(t *testing.T) {
	dir := t.TempDir()
	habitsFile := filepath.Join(dir, "habits.json")
	// Parent directory does not exist, so every completions write fails.
	complFile := filepath.Join(dir, "missing", "completions.json")
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	s, err := NewFileStorage(habitsFile, complFile, logger)
	assert.NoError(t, err)
	ctx := context.Background()

	assert.True(t, s.WriteHealthy())

	completed, err := s.ToggleCompletion(ctx, "h1", "2024-05-01")
	assert.ErrorIs(t, err, internal.ErrStorageWrite)
	assert.True(t, completed)
	assert.False(t, s.WriteHealthy())

	// In-memory state stays authoritative despite the failed write.
	done, _ := s.IsCompleted(ctx, "h1", "2024-05-01")
	assert.True(t, done)

	// A successful habit save must not mask the completions failure.
	assert.NoError(t, s.SaveHabit(ctx, testHabit("h1", "Read")))
	assert.False(t, s.WriteHealthy())
}

func TestDeleteMissingHabitIsNoop(t *testing.T) {
	s, _, _ := newTestStorage(t)
	assert.NoError(t, s.DeleteHabit(context.Background(), "ghost"))
	assert.NoError(t, s.DeleteCompletionsForHabit(context.Background(), "ghost"))
}
