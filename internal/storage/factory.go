package storage

import "github.com/Venkata-Manoj/Habit-Zen-Web/internal"

func NewFileRepositories(habitsFile, completionsFile string, logger internal.Logger) (HabitRepository, CompletionRepository, error) {
	storage, err := NewFileStorage(habitsFile, completionsFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (HabitRepository, CompletionRepository, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	return storage, storage, nil
}
