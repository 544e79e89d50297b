package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/storage"
)

var validate = validator.New()

// NewHabitInput and ExistingHabitUpdate are deliberately distinct types: a
// create carries no id/created_at, an update replaces everything else. The
// route determines which one applies.
type NewHabitInput struct {
	Title        string  `json:"title" validate:"required,min=2,max=50"`
	Description  string  `json:"description,omitempty" validate:"omitempty,max=200"`
	ReminderTime *string `json:"reminder_time,omitempty" validate:"omitempty,datetime=15:04"`
}

type ExistingHabitUpdate struct {
	Title        string  `json:"title" validate:"required,min=2,max=50"`
	Description  string  `json:"description,omitempty" validate:"omitempty,max=200"`
	ReminderTime *string `json:"reminder_time,omitempty" validate:"omitempty,datetime=15:04"`
}

type ReminderUpdate struct {
	ReminderTime *string `json:"reminder_time" validate:"omitempty,datetime=15:04"`
}

func ValidateNewHabitInput(input *NewHabitInput) error {
	return validate.Struct(input)
}

func ValidateExistingHabitUpdate(upd *ExistingHabitUpdate) error {
	return validate.Struct(upd)
}

func ValidateReminderUpdate(upd *ReminderUpdate) error {
	return validate.Struct(upd)
}

func CreateHabit(ctx context.Context, habitRepo storage.HabitRepository, input *NewHabitInput) (*internal.Habit, error) {
	habit := &internal.Habit{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		CreatedAt:    time.Now(),
		ReminderTime: input.ReminderTime,
	}
	if err := habitRepo.SaveHabit(ctx, habit); err != nil {
		return habit, err
	}
	return habit, nil
}

// UpdateHabit replaces every field of the stored record except id and
// created_at.
func UpdateHabit(ctx context.Context, habitRepo storage.HabitRepository, habitID string, upd *ExistingHabitUpdate) (*internal.Habit, error) {
	habit, err := habitRepo.GetHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	habit.Title = upd.Title
	habit.Description = upd.Description
	habit.ReminderTime = upd.ReminderTime
	if err := habitRepo.SaveHabit(ctx, habit); err != nil {
		return habit, err
	}
	return habit, nil
}

// SetReminder patches only the reminder time. A nil time clears it.
func SetReminder(ctx context.Context, habitRepo storage.HabitRepository, habitID string, reminderTime *string) (*internal.Habit, error) {
	habit, err := habitRepo.GetHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	habit.ReminderTime = reminderTime
	if err := habitRepo.SaveHabit(ctx, habit); err != nil {
		return habit, err
	}
	return habit, nil
}

// DeleteHabit removes the habit and cascades to all of its completions.
// Completions go first so a partial failure never leaves orphaned records. A
// failed durable write is not a partial failure: the in-memory removal has
// already taken effect, so the habit removal proceeds and the write error is
// reported once both collections are consistent in memory.
func DeleteHabit(ctx context.Context, habitRepo storage.HabitRepository, completionRepo storage.CompletionRepository, habitID string) error {
	cascadeErr := completionRepo.DeleteCompletionsForHabit(ctx, habitID)
	if cascadeErr != nil && !errors.Is(cascadeErr, internal.ErrStorageWrite) {
		return cascadeErr
	}
	if err := habitRepo.DeleteHabit(ctx, habitID); err != nil {
		return err
	}
	return cascadeErr
}
