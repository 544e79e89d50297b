package storage

import (
	"context"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

type HabitRepository interface {
	ListHabits(ctx context.Context) ([]internal.Habit, error)
	GetHabit(ctx context.Context, habitID string) (*internal.Habit, error)
	SaveHabit(ctx context.Context, habit *internal.Habit) error
	DeleteHabit(ctx context.Context, habitID string) error
}

type CompletionRepository interface {
	// ToggleCompletion inserts the (habitID, date) completion if absent and
	// removes it if present. Returns the resulting completed state.
	ToggleCompletion(ctx context.Context, habitID, date string) (bool, error)
	IsCompleted(ctx context.Context, habitID, date string) (bool, error)
	ListCompletionsOn(ctx context.Context, date string) ([]internal.Completion, error)
	ListCompletionsForHabit(ctx context.Context, habitID string) ([]internal.Completion, error)
	DeleteCompletionsForHabit(ctx context.Context, habitID string) error
}

// Health reports whether the backend's last durable write succeeded. File
// storage keeps in-memory state authoritative after a failed write, so the
// process stays up and /health surfaces the degradation.
type Health interface {
	WriteHealthy() bool
}
