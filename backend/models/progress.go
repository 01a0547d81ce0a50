package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRecord is created on first completion; a missing record means not completed.
type ProgressRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_lesson" json:"user"`
	LessonID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_lesson;index" json:"lesson"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (ProgressRecord) TableName() string { return "user_progress" }

func (p *ProgressRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AllModels lists every table for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Module{},
		&Lesson{},
		&ProgressRecord{},
	}
}
