package internal

import "time"

type Habit struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ReminderTime *string   `json:"reminder_time,omitempty"` // "HH:MM", nil means no reminder
}

type Completion struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"` // YYYY-MM-DD, local timezone
}

// DayLogEntry is the read-time projection of a completion joined with its
// habit's title for calendar/log views. It is never stored.
type DayLogEntry struct {
	HabitID string `json:"habit_id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
}
