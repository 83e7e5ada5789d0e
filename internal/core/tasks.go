package core

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the format of progress dates.
const DateLayout = "2006-01-02"

// ListTasks returns the user's custom tasks.
func (s *Service) ListTasks(ctx context.Context, userID string) ([]CustomTask, error) {
	return s.store.ListTasks(ctx, userID)
}

// CreateTask validates row with the same rules as imports and stores it.
func (s *Service) CreateTask(ctx context.Context, userID string, row RawRow) (CustomTask, error) {
	draft, err := ValidateRow(row)
	if err != nil {
		return CustomTask{}, err
	}
	return s.store.CreateTask(ctx, userID, draft)
}

// ToggleTask flips a task's completion flag.
func (s *Service) ToggleTask(ctx context.Context, userID, taskID string) (CustomTask, error) {
	return s.store.ToggleTask(ctx, userID, taskID)
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) error {
	return s.store.DeleteTask(ctx, userID, taskID)
}

// Stats summarizes completion across the user's custom tasks.
func (s *Service) Stats(ctx context.Context, userID string) (TaskStats, error) {
	tasks, err := s.store.ListTasks(ctx, userID)
	if err != nil {
		return TaskStats{}, err
	}
	return ComputeStats(tasks), nil
}

// Progress returns the user's activity progress for date. An empty date
// means today.
func (s *Service) Progress(ctx context.Context, userID, date string) ([]ActivityProgress, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.store.ListProgress(ctx, userID, date)
}

// SetProgress records whether activityID was completed on date. An empty
// date means today.
func (s *Service) SetProgress(ctx context.Context, userID, activityID, date string, completed bool) (ActivityProgress, error) {
	if activityID == "" {
		return ActivityProgress{}, ValidationError{Field: "activityId", Message: "required field is missing"}
	}
	date, err := s.resolveDate(date)
	if err != nil {
		return ActivityProgress{}, err
	}
	return s.store.UpsertProgress(ctx, userID, activityID, date, completed)
}

func (s *Service) resolveDate(date string) (string, error) {
	if date == "" {
		return s.now().Format(DateLayout), nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return date, nil
}
