package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
	"github.com/Venkata-Manoj/Habit-Zen-Web/internal/storage"
)

const (
	timeLayout = "15:04"
	dateLayout = "2006-01-02"

	notificationTitle = "HabitZen Reminder"
)

// Scheduler checks once a minute whether any habit's reminder time matches
// the current wall-clock minute and, if the habit is not yet completed today,
// emits one notification. Minute granularity means a reminder fires at most
// once per day under continuous operation; a minute the process sleeps
// through is simply missed.
//
// The scheduler starts armed and becomes active once the notifier grants
// permission. Denied permission keeps it armed and silent.
type Scheduler struct {
	habits      storage.HabitRepository
	completions storage.CompletionRepository
	notifier    Notifier
	logger      internal.Logger
	interval    time.Duration

	mu      sync.Mutex
	active  bool
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func NewScheduler(habits storage.HabitRepository, completions storage.CompletionRepository, notifier Notifier, interval time.Duration, logger internal.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		habits:      habits,
		completions: completions,
		notifier:    notifier,
		logger:      logger,
		interval:    interval,
	}
}

// Start arms the periodic check. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(s.stop, s.done)
	s.logger.Infof("reminder: scheduler armed, checking every %s", s.interval)
}

// Stop cancels the periodic check deterministically and waits for the
// in-flight tick, if any, to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
	s.logger.Info("reminder: scheduler stopped")
}

func (s *Scheduler) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.Tick(context.Background(), now)
		case <-stop:
			return
		}
	}
}

// Tick runs one reminder check against the given wall-clock instant. It is
// exported so the firing condition can be driven directly in tests.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	if !s.ensureActive(ctx) {
		return
	}

	currentTime := now.Format(timeLayout)
	today := now.Format(dateLayout)

	habits, err := s.habits.ListHabits(ctx)
	if err != nil {
		s.logger.Errorf("reminder: failed to list habits: %v", err)
		return
	}

	for _, habit := range habits {
		if habit.ReminderTime == nil || *habit.ReminderTime != currentTime {
			continue
		}
		completed, err := s.completions.IsCompleted(ctx, habit.ID, today)
		if err != nil {
			s.logger.Errorf("reminder: completion check failed for %s: %v", habit.ID, err)
			continue
		}
		if completed {
			continue
		}
		body := "Don't forget to complete your habit: " + habit.Title
		if err := s.notifier.Notify(ctx, notificationTitle, body); err != nil {
			s.logger.Warnf("reminder: failed to notify for %s: %v", habit.ID, err)
		}
	}
}

// ensureActive lazily requests notification permission. Denial is silent and
// leaves the scheduler armed for the next tick.
func (s *Scheduler) ensureActive(ctx context.Context) bool {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()

	err := s.notifier.RequestPermission(ctx)
	if err != nil {
		if errors.Is(err, internal.ErrPermissionDenied) {
			s.logger.Debug("reminder: notification permission denied, staying armed")
		} else {
			s.logger.Warnf("reminder: permission check failed: %v", err)
		}
		return false
	}

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()
	s.logger.Info("reminder: notifications enabled")
	return true
}
