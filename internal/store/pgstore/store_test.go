package pgstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/routine/internal/config"
	"github.com/JonMunkholm/routine/internal/core"
)

func TestToPgDate(t *testing.T) {
	d, err := toPgDate("2026-03-14")
	require.NoError(t, err)
	assert.True(t, d.Valid)
	assert.Equal(t, time.March, d.Time.Month())

	_, err = toPgDate("14/03/2026")
	assert.ErrorIs(t, err, core.ErrInvalidDate)
}

func TestFromPgTimestamptz(t *testing.T) {
	assert.Nil(t, fromPgTimestamptz(pgtype.Timestamptz{}))

	now := time.Now()
	got := fromPgTimestamptz(pgtype.Timestamptz{Time: now, Valid: true})
	require.NotNil(t, got)
	assert.True(t, got.Equal(now))
}

// newTestStore connects to ROUTINE_TEST_POSTGRES_URL or skips.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("ROUTINE_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("ROUTINE_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	s, err := Connect(ctx, config.DatabaseConfig{URL: url, MaxConns: 4, MinConns: 1, MaxConnLifetime: time.Hour, MaxConnIdleTime: time.Minute})
	require.NoError(t, err)

	user := "test-" + t.Name()
	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, `DELETE FROM custom_tasks WHERE user_id = $1`, user)
		_, _ = s.pool.Exec(ctx, `DELETE FROM activity_progress WHERE user_id = $1`, user)
		_ = s.Close()
	})
	return s
}

func TestStore_TaskLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := "test-" + t.Name()

	task, err := s.CreateTask(ctx, user, core.TaskDraft{
		Title: "Gym", Category: core.CategoryHealth, StartTime: "07:00", EndTime: "08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, core.CategoryHealth, task.Category)

	toggled, err := s.ToggleTask(ctx, user, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	tasks, err := s.ListTasks(ctx, user)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	require.NoError(t, s.DeleteTask(ctx, user, task.ID))
	assert.ErrorIs(t, s.DeleteTask(ctx, user, task.ID), core.ErrTaskNotFound)
	assert.ErrorIs(t, s.DeleteTask(ctx, user, "not-a-uuid"), core.ErrTaskNotFound)
}

func TestStore_UpsertProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := "test-" + t.Name()

	p, err := s.UpsertProgress(ctx, user, "walk", "2026-03-14", true)
	require.NoError(t, err)
	assert.NotNil(t, p.CompletedAt)
	assert.Equal(t, "2026-03-14", p.Date)

	p, err = s.UpsertProgress(ctx, user, "walk", "2026-03-14", false)
	require.NoError(t, err)
	assert.Nil(t, p.CompletedAt)

	list, err := s.ListProgress(ctx, user, "2026-03-14")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Completed)
}
