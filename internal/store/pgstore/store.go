// Package pgstore implements core.TaskStore on PostgreSQL through pgx.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/routine/internal/config"
	"github.com/JonMunkholm/routine/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS custom_tasks (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL,
	start_time  CHAR(5) NOT NULL,
	end_time    CHAR(5) NOT NULL,
	completed   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_custom_tasks_user ON custom_tasks (user_id);

CREATE TABLE IF NOT EXISTS activity_progress (
	user_id      TEXT NOT NULL,
	activity_id  TEXT NOT NULL,
	date         DATE NOT NULL,
	completed    BOOLEAN NOT NULL DEFAULT FALSE,
	completed_at TIMESTAMPTZ,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, activity_id, date)
);`

const taskColumns = `id::text, user_id, title, description, category, start_time, end_time, completed, created_at`

const progressColumns = `user_id, activity_id, to_char(date, 'YYYY-MM-DD'), completed, completed_at, updated_at`

// Store persists tasks and progress in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

var _ core.TaskStore = (*Store)(nil)

// New wraps an existing pool. Call Migrate before first use.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool sized from cfg, verifies it, and applies the schema.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := New(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) CreateTask(ctx context.Context, userID string, draft core.TaskDraft) (core.CustomTask, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO custom_tasks (id, user_id, title, description, category, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taskColumns,
		uuid.New(), userID, draft.Title, draft.Description, string(draft.Category), draft.StartTime, draft.EndTime,
	)
	task, err := scanTask(row)
	if err != nil {
		return core.CustomTask{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]core.CustomTask, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM custom_tasks
		WHERE user_id = $1
		ORDER BY start_time, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (core.CustomTask, error) {
		return scanTask(r)
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) ToggleTask(ctx context.Context, userID, taskID string) (core.CustomTask, error) {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return core.CustomTask{}, core.ErrTaskNotFound
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE custom_tasks SET completed = NOT completed
		WHERE user_id = $1 AND id = $2
		RETURNING `+taskColumns, userID, id)
	task, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.CustomTask{}, core.ErrTaskNotFound
	}
	if err != nil {
		return core.CustomTask{}, fmt.Errorf("toggle task: %w", err)
	}
	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, userID, taskID string) error {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return core.ErrTaskNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM custom_tasks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

func (s *Store) ListProgress(ctx context.Context, userID, date string) ([]core.ActivityProgress, error) {
	d, err := toPgDate(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+progressColumns+`
		FROM activity_progress
		WHERE user_id = $1 AND date = $2
		ORDER BY activity_id`, userID, d)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (core.ActivityProgress, error) {
		return scanProgress(r)
	})
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return out, nil
}

// UpsertProgress inserts or updates the (user, activity, date) entry.
// completed_at is set when completed and cleared otherwise.
func (s *Store) UpsertProgress(ctx context.Context, userID, activityID, date string, completed bool) (core.ActivityProgress, error) {
	d, err := toPgDate(date)
	if err != nil {
		return core.ActivityProgress{}, err
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO activity_progress (user_id, activity_id, date, completed, completed_at, updated_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $4 THEN now() END, now())
		ON CONFLICT (user_id, activity_id, date) DO UPDATE
		SET completed = EXCLUDED.completed,
		    completed_at = EXCLUDED.completed_at,
		    updated_at = EXCLUDED.updated_at
		RETURNING `+progressColumns, userID, activityID, d, completed)
	p, err := scanProgress(row)
	if err != nil {
		return core.ActivityProgress{}, fmt.Errorf("upsert progress: %w", err)
	}
	return p, nil
}

func scanTask(row pgx.Row) (core.CustomTask, error) {
	var (
		t        core.CustomTask
		category string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &category,
		&t.StartTime, &t.EndTime, &t.Completed, &t.CreatedAt); err != nil {
		return core.CustomTask{}, err
	}
	t.Category = core.Category(category)
	return t, nil
}

func scanProgress(row pgx.Row) (core.ActivityProgress, error) {
	var (
		p           core.ActivityProgress
		completedAt pgtype.Timestamptz
	)
	if err := row.Scan(&p.UserID, &p.ActivityID, &p.Date, &p.Completed, &completedAt, &p.UpdatedAt); err != nil {
		return core.ActivityProgress{}, err
	}
	p.CompletedAt = fromPgTimestamptz(completedAt)
	return p, nil
}

// toPgDate parses a YYYY-MM-DD string into a pgtype.Date.
func toPgDate(s string) (pgtype.Date, error) {
	t, err := time.Parse(core.DateLayout, s)
	if err != nil {
		return pgtype.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, s)
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}

func fromPgTimestamptz(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
