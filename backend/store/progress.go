package store

import (
	"context"
	"errors"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressStore interface {
	MarkComplete(ctx context.Context, userID, lessonID uuid.UUID, at time.Time) (*models.ProgressRecord, error)
	GetForLesson(ctx context.Context, userID, lessonID uuid.UUID) (*models.ProgressRecord, error)
	CompletedByUser(ctx context.Context, userID uuid.UUID) ([]models.ProgressRecord, error)
	CompletedForLessons(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) ([]models.ProgressRecord, error)
}

type progressStore struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewProgressStore(db *gorm.DB, log *utils.Logger) ProgressStore {
	return &progressStore{db: db, log: log.With("store", "ProgressStore")}
}

// MarkComplete upserts on (user_id, lesson_id); the unique index keeps concurrent
// calls for the same pair down to one record.
func (s *progressStore) MarkComplete(ctx context.Context, userID, lessonID uuid.UUID, at time.Time) (*models.ProgressRecord, error) {
	row := models.ProgressRecord{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &at,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, wrap(err, "upsert progress")
	}

	var stored models.ProgressRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&stored).Error; err != nil {
		return nil, wrap(err, "reload progress")
	}
	return &stored, nil
}

// GetForLesson returns nil without error when the user has no record.
func (s *progressStore) GetForLesson(ctx context.Context, userID, lessonID uuid.UUID) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "get progress")
	}
	return &rec, nil
}

func (s *progressStore) CompletedByUser(ctx context.Context, userID uuid.UUID) ([]models.ProgressRecord, error) {
	var recs []models.ProgressRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, true).
		Find(&recs).Error; err != nil {
		return nil, wrap(err, "list completed progress")
	}
	return recs, nil
}

func (s *progressStore) CompletedForLessons(ctx context.Context, userID uuid.UUID, lessonIDs []uuid.UUID) ([]models.ProgressRecord, error) {
	var recs []models.ProgressRecord
	if len(lessonIDs) == 0 {
		return recs, nil
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND completed = ? AND lesson_id IN ?", userID, true, lessonIDs).
		Find(&recs).Error; err != nil {
		return nil, wrap(err, "list course progress")
	}
	return recs, nil
}
