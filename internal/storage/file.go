package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

// FileStorage keeps habits and completions in memory and mirrors every
// mutation to two JSON blob files. Writes are synchronous: a mutation is not
// acknowledged until the full collection has been re-serialized. A failed
// write leaves in-memory state authoritative for the rest of the session.
type FileStorage struct {
	habits      map[string]*internal.Habit
	completions map[string]map[string]struct{} // habitID -> set of YYYY-MM-DD
	mu          sync.RWMutex
	habitsFile  string
	complFile   string
	// Write health is tracked per blob: a habit save succeeding must not
	// mask completions that still cannot persist.
	habitsWriteOK bool
	complWriteOK  bool
	logger        internal.Logger
}

func NewFileStorage(habitsFile, completionsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		habits:        make(map[string]*internal.Habit),
		completions:   make(map[string]map[string]struct{}),
		habitsFile:    habitsFile,
		complFile:     completionsFile,
		habitsWriteOK: true,
		complWriteOK:  true,
		logger:        logger,
	}

	// Missing or unparsable blobs degrade to empty collections. Losing a
	// corrupt file is recoverable; crashing on startup is not.
	if err := s.loadHabits(); err != nil {
		logger.Warnf("storage: could not load habits, starting empty: %v", err)
	}
	if err := s.loadCompletions(); err != nil {
		logger.Warnf("storage: could not load completions, starting empty: %v", err)
	}

	return s, nil
}

func (s *FileStorage) loadHabits() error {
	file, err := os.Open(s.habitsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", internal.ErrStorageRead, err)
	}
	defer file.Close()

	var habits []*internal.Habit
	if err := json.NewDecoder(file).Decode(&habits); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", internal.ErrStorageRead, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range habits {
		s.habits[h.ID] = h
	}
	return nil
}

func (s *FileStorage) loadCompletions() error {
	file, err := os.Open(s.complFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", internal.ErrStorageRead, err)
	}
	defer file.Close()

	var completions []internal.Completion
	if err := json.NewDecoder(file).Decode(&completions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", internal.ErrStorageRead, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range completions {
		if s.completions[c.HabitID] == nil {
			s.completions[c.HabitID] = make(map[string]struct{})
		}
		s.completions[c.HabitID][c.Date] = struct{}{}
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// saveHabitsLocked re-serializes the habit collection. Caller holds s.mu.
func (s *FileStorage) saveHabitsLocked() error {
	habits := make([]*internal.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	if err := atomicWriteFileJSON(s.habitsFile, habits); err != nil {
		s.habitsWriteOK = false
		s.logger.Errorf("storage: error saving habits: %v", err)
		return fmt.Errorf("%w: %v", internal.ErrStorageWrite, err)
	}
	s.habitsWriteOK = true
	return nil
}

// saveCompletionsLocked re-serializes the completion collection. Caller holds s.mu.
func (s *FileStorage) saveCompletionsLocked() error {
	completions := make([]internal.Completion, 0)
	for habitID, dates := range s.completions {
		for date := range dates {
			completions = append(completions, internal.Completion{HabitID: habitID, Date: date})
		}
	}
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].HabitID != completions[j].HabitID {
			return completions[i].HabitID < completions[j].HabitID
		}
		return completions[i].Date < completions[j].Date
	})

	if err := atomicWriteFileJSON(s.complFile, completions); err != nil {
		s.complWriteOK = false
		s.logger.Errorf("storage: error saving completions: %v", err)
		return fmt.Errorf("%w: %v", internal.ErrStorageWrite, err)
	}
	s.complWriteOK = true
	return nil
}

func (s *FileStorage) WriteHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.habitsWriteOK && s.complWriteOK
}

// Close flushes both collections synchronously. Both are attempted even if
// the first fails.
func (s *FileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	habitsErr := s.saveHabitsLocked()
	complErr := s.saveCompletionsLocked()
	if habitsErr != nil {
		return habitsErr
	}
	return complErr
}

// --- HabitRepository ---

func (s *FileStorage) ListHabits(ctx context.Context) ([]internal.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	habits := make([]internal.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		habits = append(habits, *h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *FileStorage) GetHabit(ctx context.Context, habitID string) (*internal.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.habits[habitID]
	if !ok {
		return nil, internal.ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (s *FileStorage) SaveHabit(ctx context.Context, habit *internal.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits[habit.ID] = habit
	return s.saveHabitsLocked()
}

func (s *FileStorage) DeleteHabit(ctx context.Context, habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.habits[habitID]; !ok {
		return nil
	}
	delete(s.habits, habitID)
	return s.saveHabitsLocked()
}

// --- CompletionRepository ---

func (s *FileStorage) ToggleCompletion(ctx context.Context, habitID, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := s.completions[habitID]
	completed := false
	if dates != nil {
		_, completed = dates[date]
	}

	if completed {
		delete(dates, date)
		if len(dates) == 0 {
			delete(s.completions, habitID)
		}
	} else {
		if dates == nil {
			dates = make(map[string]struct{})
			s.completions[habitID] = dates
		}
		dates[date] = struct{}{}
	}

	return !completed, s.saveCompletionsLocked()
}

func (s *FileStorage) IsCompleted(ctx context.Context, habitID, date string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates, ok := s.completions[habitID]
	if !ok {
		return false, nil
	}
	_, done := dates[date]
	return done, nil
}

func (s *FileStorage) ListCompletionsOn(ctx context.Context, date string) ([]internal.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	completions := make([]internal.Completion, 0)
	for habitID, dates := range s.completions {
		if _, ok := dates[date]; ok {
			completions = append(completions, internal.Completion{HabitID: habitID, Date: date})
		}
	}
	sort.Slice(completions, func(i, j int) bool {
		return completions[i].HabitID < completions[j].HabitID
	})
	return completions, nil
}

func (s *FileStorage) ListCompletionsForHabit(ctx context.Context, habitID string) ([]internal.Completion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	completions := make([]internal.Completion, 0)
	for date := range s.completions[habitID] {
		completions = append(completions, internal.Completion{HabitID: habitID, Date: date})
	}
	sort.Slice(completions, func(i, j int) bool {
		return completions[i].Date < completions[j].Date
	})
	return completions, nil
}

func (s *FileStorage) DeleteCompletionsForHabit(ctx context.Context, habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.completions[habitID]; !ok {
		return nil
	}
	delete(s.completions, habitID)
	return s.saveCompletionsLocked()
}

// --- Compile-time assertions ---
var _ HabitRepository = (*FileStorage)(nil)
var _ CompletionRepository = (*FileStorage)(nil)
var _ Health = (*FileStorage)(nil)
