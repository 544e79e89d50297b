package suggest

import (
	"context"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

// LocalProvider returns canned suggestions for development, skipping any
// habit the user already has.
type LocalProvider struct {
	logger internal.Logger
}

func NewLocalProvider(logger internal.Logger) *LocalProvider {
	return &LocalProvider{logger: logger}
}

var cannedSuggestions = []string{
	"Drink a glass of water after waking up",
	"Take a 10 minute walk after lunch",
	"Write down three things you are grateful for",
	"Stretch for five minutes before bed",
	"Read one page of a book",
}

func (p *LocalProvider) Suggest(ctx context.Context, req *Request) (*Response, error) {
	existing := make(map[string]struct{}, len(req.ExistingHabits))
	for _, title := range req.ExistingHabits {
		existing[title] = struct{}{}
	}

	suggestions := make([]string, 0, len(cannedSuggestions))
	for _, s := range cannedSuggestions {
		if _, ok := existing[s]; !ok {
			suggestions = append(suggestions, s)
		}
	}

	p.logger.Debugf("suggest: returning %d local suggestions", len(suggestions))
	return &Response{
		Suggestions: suggestions,
		Reasoning:   "Small, repeatable habits compound well alongside what you already track.",
	}, nil
}

var _ Provider = (*LocalProvider)(nil)
