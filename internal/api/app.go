package api

import (
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/cache"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/storage"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/suggest"
)

type App interface {
	Logger() internal.Logger
	HabitRepo() storage.HabitRepository
	CompletionRepo() storage.CompletionRepository
	Suggester() suggest.Provider
	DayLogCache() cache.DayLog
	StorageHealth() storage.Health
}

type app struct {
	logger      internal.Logger
	habits      storage.HabitRepository
	completions storage.CompletionRepository
	suggester   suggest.Provider
	dayLogCache cache.DayLog
	health      storage.Health
}

// NewApp wires the handler dependencies. dayLogCache may be nil when caching
// is disabled.
func NewApp(logger internal.Logger, habits storage.HabitRepository, completions storage.CompletionRepository, suggester suggest.Provider, dayLogCache cache.DayLog, health storage.Health) App {
	return &app{
		logger:      logger,
		habits:      habits,
		completions: completions,
		suggester:   suggester,
		dayLogCache: dayLogCache,
		health:      health,
	}
}

func (a *app) Logger() internal.Logger                      { return a.logger }
func (a *app) HabitRepo() storage.HabitRepository           { return a.habits }
func (a *app) CompletionRepo() storage.CompletionRepository { return a.completions }
func (a *app) Suggester() suggest.Provider                  { return a.suggester }
func (a *app) DayLogCache() cache.DayLog                    { return a.dayLogCache }
func (a *app) StorageHealth() storage.Health                { return a.health }
