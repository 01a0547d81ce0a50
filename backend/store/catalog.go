package store

import (
	"context"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CoursePageSize = 10

type CourseFilter struct {
	Keyword    string
	Category   string
	Difficulty string
	Page       int
}

// CatalogStore reads and writes courses, modules and lessons. LoadCatalog is the
// projection every aggregation and recommendation runs over.
type CatalogStore interface {
	LoadCatalog(ctx context.Context) ([]models.Course, error)
	ListCourses(ctx context.Context, f CourseFilter) ([]models.Course, int64, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CourseTitleExists(ctx context.Context, title string) (bool, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	GetModule(ctx context.Context, id uuid.UUID) (*models.Module, error)
	CreateModule(ctx context.Context, module *models.Module) error
	GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	UpdateLessonContext(ctx context.Context, lessonID, courseID, moduleID uuid.UUID) error
}

type catalogStore struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewCatalogStore(db *gorm.DB, log *utils.Logger) CatalogStore {
	return &catalogStore{db: db, log: log.With("store", "CatalogStore")}
}

func (s *catalogStore) withTree(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Modules", orderByPosition).
		Preload("Modules.Lessons", orderByPosition)
}

func (s *catalogStore) LoadCatalog(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := s.withTree(ctx).
		Order("created_at ASC").Order("id ASC").
		Find(&courses).Error
	if err != nil {
		return nil, wrap(err, "load catalog")
	}
	return courses, nil
}

func (s *catalogStore) ListCourses(ctx context.Context, f CourseFilter) ([]models.Course, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Course{})
	if f.Keyword != "" {
		p := likePattern(f.Keyword)
		query = query.Where(
			`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\' OR LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\'`,
			p, p, p, p)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}

	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, wrap(err, "count courses")
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	var courses []models.Course
	err := query.
		Preload("Modules", orderByPosition).
		Preload("Modules.Lessons", orderByPosition).
		Order("created_at DESC").
		Limit(CoursePageSize).
		Offset(CoursePageSize * (page - 1)).
		Find(&courses).Error
	if err != nil {
		return nil, 0, wrap(err, "list courses")
	}
	return courses, count, nil
}

func (s *catalogStore) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := s.withTree(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get course")
	}
	return &course, nil
}

func (s *catalogStore) CourseTitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Course{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, wrap(err, "check course title")
	}
	return count > 0, nil
}

func (s *catalogStore) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.db.WithContext(ctx).Omit("Modules").Create(course).Error; err != nil {
		return wrap(err, "create course")
	}
	course.Modules = []models.Module{}
	return nil
}

func (s *catalogStore) GetModule(ctx context.Context, id uuid.UUID) (*models.Module, error) {
	var module models.Module
	if err := s.db.WithContext(ctx).Preload("Lessons", orderByPosition).First(&module, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get module")
	}
	return &module, nil
}

// CreateModule appends module at the end of its course.
func (s *catalogStore) CreateModule(ctx context.Context, module *models.Module) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Module{}).Where("course_id = ?", module.CourseID).Count(&count).Error; err != nil {
			return err
		}
		module.Position = int(count)
		return tx.Omit("Lessons").Create(module).Error
	})
	if err != nil {
		return wrap(err, "create module")
	}
	module.Lessons = []models.Lesson{}
	s.log.Debug("module created", "module_id", module.ID, "course_id", module.CourseID, "position", module.Position)
	return nil
}

func (s *catalogStore) GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get lesson")
	}
	return &lesson, nil
}

// CreateLesson appends lesson at the end of its module.
func (s *catalogStore) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Lesson{}).Where("module_id = ?", lesson.ModuleID).Count(&count).Error; err != nil {
			return err
		}
		lesson.Position = int(count)
		return tx.Create(lesson).Error
	})
	if err != nil {
		return wrap(err, "create lesson")
	}
	return nil
}

// UpdateLessonContext re-parents a lesson. A lesson moved to another module is
// appended at the end of it.
func (s *catalogStore) UpdateLessonContext(ctx context.Context, lessonID, courseID, moduleID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.First(&lesson, "id = ?", lessonID).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"course_id": courseID,
			"module_id": moduleID,
		}
		if lesson.ModuleID != moduleID {
			var count int64
			if err := tx.Model(&models.Lesson{}).Where("module_id = ?", moduleID).Count(&count).Error; err != nil {
				return err
			}
			updates["position"] = int(count)
		}
		return tx.Model(&lesson).Updates(updates).Error
	})
	return wrap(err, "update lesson context")
}
