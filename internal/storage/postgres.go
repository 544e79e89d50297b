package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Errorf("failed to ping postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStorage) WriteHealthy() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.pool.Ping(ctx) == nil
}

// --- HabitRepository ---

func (p *PostgresStorage) ListHabits(ctx context.Context) ([]internal.Habit, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, description, created_at, reminder_time FROM habits ORDER BY created_at`)
	if err != nil {
		p.logger.Errorf("failed to query habits: %v", err)
		return nil, err
	}
	defer rows.Close()

	habits := make([]internal.Habit, 0)
	for rows.Next() {
		var h internal.Habit
		if err := rows.Scan(&h.ID, &h.Title, &h.Description, &h.CreatedAt, &h.ReminderTime); err != nil {
			p.logger.Errorf("failed to scan habit: %v", err)
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (p *PostgresStorage) GetHabit(ctx context.Context, habitID string) (*internal.Habit, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, title, description, created_at, reminder_time FROM habits WHERE id = $1`, habitID)
	var h internal.Habit
	if err := row.Scan(&h.ID, &h.Title, &h.Description, &h.CreatedAt, &h.ReminderTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		p.logger.Errorf("failed to get habit: %v", err)
		return nil, err
	}
	return &h, nil
}

func (p *PostgresStorage) SaveHabit(ctx context.Context, habit *internal.Habit) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO habits (id, title, description, created_at, reminder_time)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET title = $2, description = $3, reminder_time = $5`,
		habit.ID, habit.Title, habit.Description, habit.CreatedAt, habit.ReminderTime)
	if err != nil {
		p.logger.Errorf("failed to save habit: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) DeleteHabit(ctx context.Context, habitID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM habits WHERE id = $1`, habitID)
	if err != nil {
		p.logger.Errorf("failed to delete habit: %v", err)
		return err
	}
	return nil
}

// --- CompletionRepository ---

func (p *PostgresStorage) ToggleCompletion(ctx context.Context, habitID, date string) (bool, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM completions WHERE habit_id = $1 AND date = $2`, habitID, date)
	if err != nil {
		p.logger.Errorf("failed to toggle completion: %v", err)
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO completions (habit_id, date) VALUES ($1, $2) ON CONFLICT DO NOTHING`, habitID, date)
	if err != nil {
		p.logger.Errorf("failed to toggle completion: %v", err)
		return false, err
	}
	return true, nil
}

func (p *PostgresStorage) IsCompleted(ctx context.Context, habitID, date string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM completions WHERE habit_id = $1 AND date = $2)`, habitID, date).Scan(&exists)
	if err != nil {
		p.logger.Errorf("failed to check completion: %v", err)
		return false, err
	}
	return exists, nil
}

func (p *PostgresStorage) ListCompletionsOn(ctx context.Context, date string) ([]internal.Completion, error) {
	rows, err := p.pool.Query(ctx, `SELECT habit_id, date FROM completions WHERE date = $1 ORDER BY habit_id`, date)
	if err != nil {
		p.logger.Errorf("failed to query completions: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (p *PostgresStorage) ListCompletionsForHabit(ctx context.Context, habitID string) ([]internal.Completion, error) {
	rows, err := p.pool.Query(ctx, `SELECT habit_id, date FROM completions WHERE habit_id = $1 ORDER BY date`, habitID)
	if err != nil {
		p.logger.Errorf("failed to query completions: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (p *PostgresStorage) DeleteCompletionsForHabit(ctx context.Context, habitID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM completions WHERE habit_id = $1`, habitID)
	if err != nil {
		p.logger.Errorf("failed to delete completions: %v", err)
		return err
	}
	return nil
}

func scanCompletions(rows pgx.Rows) ([]internal.Completion, error) {
	completions := make([]internal.Completion, 0)
	for rows.Next() {
		var c internal.Completion
		if err := rows.Scan(&c.HabitID, &c.Date); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// --- Compile-time assertions ---
var _ HabitRepository = (*PostgresStorage)(nil)
var _ CompletionRepository = (*PostgresStorage)(nil)
var _ Health = (*PostgresStorage)(nil)
