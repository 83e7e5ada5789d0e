package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JonMunkholm/routine/internal/core"
)

// Store persists tasks and progress with GORM.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

var _ core.TaskStore = (*Store)(nil)

// New wraps an already-migrated database.
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open creates a Store on the SQLite database at dsn.
func Open(dsn string) (*Store, error) {
	db, err := NewDB(dsn)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) CreateTask(ctx context.Context, userID string, draft core.TaskDraft) (core.CustomTask, error) {
	rec := taskRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    string(draft.Category),
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return core.CustomTask{}, fmt.Errorf("create task: %w", err)
	}
	return rec.toCore(), nil
}

func (s *Store) ListTasks(ctx context.Context, userID string) ([]core.CustomTask, error) {
	var recs []taskRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("start_time, created_at").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]core.CustomTask, len(recs))
	for i, r := range recs {
		tasks[i] = r.toCore()
	}
	return tasks, nil
}

func (s *Store) ToggleTask(ctx context.Context, userID, taskID string) (core.CustomTask, error) {
	var rec taskRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND id = ?", userID, taskID).First(&rec).Error; err != nil {
			return err
		}
		rec.Completed = !rec.Completed
		return tx.Model(&rec).Update("completed", rec.Completed).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.CustomTask{}, core.ErrTaskNotFound
	}
	if err != nil {
		return core.CustomTask{}, fmt.Errorf("toggle task: %w", err)
	}
	return rec.toCore(), nil
}

func (s *Store) DeleteTask(ctx context.Context, userID, taskID string) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&taskRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

func (s *Store) ListProgress(ctx context.Context, userID, date string) ([]core.ActivityProgress, error) {
	var recs []progressRecord
	if err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).
		Order("activity_id").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	out := make([]core.ActivityProgress, len(recs))
	for i, r := range recs {
		out[i] = r.toCore()
	}
	return out, nil
}

// UpsertProgress inserts or updates the (user, activity, date) entry.
// CompletedAt is set when completed and cleared otherwise.
func (s *Store) UpsertProgress(ctx context.Context, userID, activityID, date string, completed bool) (core.ActivityProgress, error) {
	now := s.now().UTC()
	rec := progressRecord{
		UserID:     userID,
		ActivityID: activityID,
		Date:       date,
		Completed:  completed,
		UpdatedAt:  now,
	}
	if completed {
		rec.CompletedAt = &now
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "activity_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return core.ActivityProgress{}, fmt.Errorf("upsert progress: %w", err)
	}
	return rec.toCore(), nil
}

// DB exposes the underlying GORM handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}
