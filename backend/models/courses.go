package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyAllLevels    = "All Levels"
)

var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyAllLevels}

func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

type Course struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"_id"`
	Title       string                      `gorm:"uniqueIndex;not null" json:"title"`
	Description string                      `gorm:"not null" json:"description"`
	Category    string                      `gorm:"index;not null" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Difficulty  string                      `gorm:"not null;default:'All Levels'" json:"difficulty"`
	Modules     []Module                    `gorm:"constraint:OnDelete:CASCADE" json:"modules"`
	CreatedAt   time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// Module belongs to exactly one course; Position orders it within the course.
type Module struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Lessons     []Lesson  `gorm:"constraint:OnDelete:CASCADE" json:"lessons"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Lesson stores both parents; Position orders it within its module.
type Lesson struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"module"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyAllLevels
	}
	return nil
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LessonIDs returns every lesson id of the course in module-then-lesson order.
func (c *Course) LessonIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// Neighbours returns the lessons before and after lessonID in the flattened
// course order. Module boundaries are crossed and empty modules are skipped.
func (c *Course) Neighbours(lessonID uuid.UUID) (prev, next *Lesson) {
	var flat []*Lesson
	for mi := range c.Modules {
		for li := range c.Modules[mi].Lessons {
			flat = append(flat, &c.Modules[mi].Lessons[li])
		}
	}
	for i, l := range flat {
		if l.ID != lessonID {
			continue
		}
		if i > 0 {
			prev = flat[i-1]
		}
		if i < len(flat)-1 {
			next = flat[i+1]
		}
		return prev, next
	}
	return nil, nil
}
