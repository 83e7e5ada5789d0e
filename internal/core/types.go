package core

import (
	"context"
	"time"
)

// RawRow is one untyped record produced by a Source Reader, keyed by column
// name. Values are strings or numbers.
type RawRow map[string]any

// TaskDraft is a validated, normalized candidate custom task.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
}

// Row returns the draft as a RawRow using the canonical column names.
func (d TaskDraft) Row() RawRow {
	return RawRow{
		"title":       d.Title,
		"description": d.Description,
		"category":    string(d.Category),
		"startTime":   d.StartTime,
		"endTime":     d.EndTime,
	}
}

// CustomTask is a persisted, user-owned task created from a TaskDraft.
type CustomTask struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ActivityProgress records whether a user completed an activity on a date.
// Date is formatted YYYY-MM-DD.
type ActivityProgress struct {
	UserID      string     `json:"userId"`
	ActivityID  string     `json:"activityId"`
	Date        string     `json:"date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskSink accepts a validated draft and persists it as a custom task.
type TaskSink interface {
	CreateTask(ctx context.Context, draft TaskDraft) error
}

// TaskStore is the persistence backend for custom tasks and daily progress.
// Implementations live in internal/store.
type TaskStore interface {
	CreateTask(ctx context.Context, userID string, draft TaskDraft) (CustomTask, error)
	ListTasks(ctx context.Context, userID string) ([]CustomTask, error)
	ToggleTask(ctx context.Context, userID, taskID string) (CustomTask, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	ListProgress(ctx context.Context, userID, date string) ([]ActivityProgress, error)
	UpsertProgress(ctx context.Context, userID, activityID, date string, completed bool) (ActivityProgress, error)
}

// storeSink binds a TaskStore to one user.
type storeSink struct {
	store  TaskStore
	userID string
}

// SinkFor adapts a TaskStore to the TaskSink contract for a single user.
func SinkFor(store TaskStore, userID string) TaskSink {
	return storeSink{store: store, userID: userID}
}

func (s storeSink) CreateTask(ctx context.Context, draft TaskDraft) error {
	_, err := s.store.CreateTask(ctx, s.userID, draft)
	return err
}

// ImportReport summarizes one parse operation.
type ImportReport struct {
	TotalRows    int `json:"totalRows"`    // rows handed to the validator
	Accepted     int `json:"accepted"`     // rows that became drafts
	Rejected     int `json:"rejected"`     // rows the validator dropped
	SkippedLines int `json:"skippedLines"` // text lines with fewer than four segments
}

// CommitResult is returned after pending drafts are pushed to a sink.
type CommitResult struct {
	Committed int           `json:"committed"`
	Remaining int           `json:"remaining"`
	Duration  time.Duration `json:"-"`
}
