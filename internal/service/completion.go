package service

import (
	"context"
	"time"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/cache"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/storage"
)

const DateLayout = "2006-01-02"

type ToggleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

func ValidateToggleRequest(req *ToggleRequest) error {
	return validate.Struct(req)
}

func ValidateDate(date string) error {
	return validate.Var(date, "required,datetime=2006-01-02")
}

// ToggleCompletion flips the completed state of a habit on a date. The habit
// must exist; the toggle itself is the sole mutation entry point, so it is
// trivially its own inverse.
func ToggleCompletion(ctx context.Context, habitRepo storage.HabitRepository, completionRepo storage.CompletionRepository, dayLog cache.DayLog, habitID, date string) (bool, error) {
	if _, err := habitRepo.GetHabit(ctx, habitID); err != nil {
		return false, err
	}
	completed, err := completionRepo.ToggleCompletion(ctx, habitID, date)
	if dayLog != nil {
		dayLog.Invalidate(ctx, date)
	}
	return completed, err
}

// DayLog joins the completions on a date against habit titles. The join is a
// read-time projection, never stored; a habit deleted since the completion
// was recorded simply drops out.
func DayLog(ctx context.Context, habitRepo storage.HabitRepository, completionRepo storage.CompletionRepository, dayLog cache.DayLog, date string) ([]internal.DayLogEntry, error) {
	if dayLog != nil {
		if entries, ok := dayLog.Get(ctx, date); ok {
			return entries, nil
		}
	}

	completions, err := completionRepo.ListCompletionsOn(ctx, date)
	if err != nil {
		return nil, err
	}
	habits, err := habitRepo.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(habits))
	for _, h := range habits {
		titles[h.ID] = h.Title
	}

	entries := make([]internal.DayLogEntry, 0, len(completions))
	for _, c := range completions {
		title, ok := titles[c.HabitID]
		if !ok {
			continue
		}
		entries = append(entries, internal.DayLogEntry{
			HabitID: c.HabitID,
			Title:   title,
			Date:    c.Date,
		})
	}

	if dayLog != nil {
		dayLog.Set(ctx, date, entries)
	}
	return entries, nil
}

// Today formats the current local date the way completions are keyed.
func Today() string {
	return time.Now().Format(DateLayout)
}
