package gormstore

import (
	"time"

	"github.com/JonMunkholm/routine/internal/core"
)

// taskRecord is a persisted custom task.
type taskRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Category    string `gorm:"size:16;not null"`
	StartTime   string `gorm:"size:5;not null"`
	EndTime     string `gorm:"size:5;not null"`
	Completed   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

func (taskRecord) TableName() string { return "custom_tasks" }

func (r taskRecord) toCore() core.CustomTask {
	return core.CustomTask{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Category:    core.Category(r.Category),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
	}
}

// progressRecord is one (user, activity, date) completion entry.
type progressRecord struct {
	ID          uint       `gorm:"primaryKey"`
	UserID      string     `gorm:"uniqueIndex:idx_progress_user_activity_date;not null"`
	ActivityID  string     `gorm:"uniqueIndex:idx_progress_user_activity_date;not null"`
	Date        string     `gorm:"uniqueIndex:idx_progress_user_activity_date;size:10;not null"`
	Completed   bool       `gorm:"not null;default:false"`
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

func (progressRecord) TableName() string { return "activity_progress" }

func (r progressRecord) toCore() core.ActivityProgress {
	return core.ActivityProgress{
		UserID:      r.UserID,
		ActivityID:  r.ActivityID,
		Date:        r.Date,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
