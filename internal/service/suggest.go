package service

import (
	"context"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/storage"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/suggest"
)

type SuggestionRequest struct {
	Goals string `json:"goals" validate:"required,min=10,max=500"`
}

func ValidateSuggestionRequest(req *SuggestionRequest) error {
	return validate.Struct(req)
}

// SuggestHabits passes the user's existing habit titles and free-text goals
// to the suggestion collaborator. The result is display-only.
func SuggestHabits(ctx context.Context, habitRepo storage.HabitRepository, provider suggest.Provider, goals string) (*suggest.Response, error) {
	habits, err := habitRepo.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(habits))
	for _, h := range habits {
		titles = append(titles, h.Title)
	}
	return provider.Suggest(ctx, &suggest.Request{ExistingHabits: titles, Goals: goals})
}
