// Package progress computes per-course completion views from a catalog snapshot
// and a user's completed lessons. Nothing here touches a store, and inputs are
// never modified.
package progress

import (
	"math"
	"sort"
	"time"

	"learnhub/backend/models"

	"github.com/google/uuid"
)

// CompletedSet is the set of lesson ids a user has completed.
type CompletedSet map[uuid.UUID]struct{}

func NewCompletedSet(records []models.ProgressRecord) CompletedSet {
	set := make(CompletedSet, len(records))
	for _, r := range records {
		if r.Completed {
			set[r.LessonID] = struct{}{}
		}
	}
	return set
}

func (s CompletedSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// CourseStatus is the completion state of one course for one user.
type CourseStatus struct {
	TotalLessons     int
	CompletedLessons int
}

// Started reports at least one completed lesson.
func (s CourseStatus) Started() bool { return s.CompletedLessons > 0 }

// FullyCompleted requires a non-empty course with every lesson done.
func (s CourseStatus) FullyCompleted() bool {
	return s.TotalLessons > 0 && s.CompletedLessons == s.TotalLessons
}

func (s CourseStatus) Percentage() int { return Percentage(s.CompletedLessons, s.TotalLessons) }

func StatusOf(course models.Course, done CompletedSet) CourseStatus {
	var st CourseStatus
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			st.TotalLessons++
			if done.Has(l.ID) {
				st.CompletedLessons++
			}
		}
	}
	return st
}

// Percentage is round(completed/total*100), and 0 for an empty course.
func Percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

type LessonView struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Position    int       `json:"position"`
	IsCompleted bool      `json:"isCompleted"`
}

type ModuleView struct {
	ID          uuid.UUID    `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Position    int          `json:"position"`
	Lessons     []LessonView `json:"lessons"`
}

type CourseDetail struct {
	ID          uuid.UUID    `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	Difficulty  string       `json:"difficulty"`
	Modules     []ModuleView `json:"modules"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// AnnotateCourse is the single-course view: every lesson carries isCompleted.
func AnnotateCourse(course models.Course, done CompletedSet) CourseDetail {
	detail := CourseDetail{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		Tags:        append([]string{}, course.Tags...),
		Difficulty:  course.Difficulty,
		Modules:     make([]ModuleView, 0, len(course.Modules)),
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
	for _, m := range course.Modules {
		mv := ModuleView{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Position:    m.Position,
			Lessons:     make([]LessonView, 0, len(m.Lessons)),
		}
		for _, l := range m.Lessons {
			mv.Lessons = append(mv.Lessons, LessonView{
				ID:          l.ID,
				Title:       l.Title,
				Content:     l.Content,
				Position:    l.Position,
				IsCompleted: done.Has(l.ID),
			})
		}
		detail.Modules = append(detail.Modules, mv)
	}
	return detail
}

type CourseProgress struct {
	CourseID             uuid.UUID `json:"_id"`
	Title                string    `json:"title"`
	TotalLessons         int       `json:"totalLessons"`
	CompletedLessons     int       `json:"completedLessons"`
	CompletionPercentage int       `json:"completionPercentage"`
}

// Overall emits one entry per catalog course, in catalog order.
func Overall(catalog []models.Course, done CompletedSet) []CourseProgress {
	out := make([]CourseProgress, 0, len(catalog))
	for _, c := range catalog {
		st := StatusOf(c, done)
		out = append(out, CourseProgress{
			CourseID:             c.ID,
			Title:                c.Title,
			TotalLessons:         st.TotalLessons,
			CompletedLessons:     st.CompletedLessons,
			CompletionPercentage: st.Percentage(),
		})
	}
	return out
}

type InProgressCourse struct {
	CourseID           uuid.UUID `json:"courseId"`
	Title              string    `json:"title"`
	CompletedLessons   int       `json:"completedLessons"`
	TotalLessons       int       `json:"totalLessons"`
	ProgressPercentage int       `json:"progressPercentage"`
}

type CompletedCourse struct {
	CourseID     uuid.UUID  `json:"courseId"`
	Title        string     `json:"title"`
	CompletedAt  *time.Time `json:"completedAt"`
	TotalLessons int        `json:"totalLessons"`
}

type ActivityStats struct {
	TotalCoursesStarted   int `json:"totalCoursesStarted"`
	TotalCoursesCompleted int `json:"totalCoursesCompleted"`
	TotalLessonsCompleted int `json:"totalLessonsCompleted"`
}

type Activity struct {
	CoursesInProgress []InProgressCourse `json:"coursesInProgress"`
	CompletedCourses  []CompletedCourse  `json:"completedCourses"`
	Stats             ActivityStats      `json:"stats"`
}

// BuildActivity partitions started courses into in-progress and completed.
// Completed courses carry the latest completion time among their lessons and
// are ordered newest first.
func BuildActivity(catalog []models.Course, records []models.ProgressRecord) Activity {
	done := NewCompletedSet(records)
	completedAt := make(map[uuid.UUID]time.Time, len(records))
	for _, r := range records {
		if r.Completed && r.CompletedAt != nil {
			completedAt[r.LessonID] = *r.CompletedAt
		}
	}

	act := Activity{
		CoursesInProgress: []InProgressCourse{},
		CompletedCourses:  []CompletedCourse{},
	}
	for _, c := range catalog {
		st := StatusOf(c, done)
		if !st.Started() {
			continue
		}
		act.Stats.TotalCoursesStarted++

		if st.FullyCompleted() {
			act.CompletedCourses = append(act.CompletedCourses, CompletedCourse{
				CourseID:     c.ID,
				Title:        c.Title,
				CompletedAt:  latestCompletion(c, completedAt),
				TotalLessons: st.TotalLessons,
			})
			continue
		}
		act.CoursesInProgress = append(act.CoursesInProgress, InProgressCourse{
			CourseID:           c.ID,
			Title:              c.Title,
			CompletedLessons:   st.CompletedLessons,
			TotalLessons:       st.TotalLessons,
			ProgressPercentage: st.Percentage(),
		})
	}

	sort.SliceStable(act.CompletedCourses, func(i, j int) bool {
		a, b := act.CompletedCourses[i].CompletedAt, act.CompletedCourses[j].CompletedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	act.Stats.TotalCoursesCompleted = len(act.CompletedCourses)
	act.Stats.TotalLessonsCompleted = len(done)
	return act
}

func latestCompletion(course models.Course, completedAt map[uuid.UUID]time.Time) *time.Time {
	var latest *time.Time
	for _, id := range course.LessonIDs() {
		t, ok := completedAt[id]
		if !ok {
			continue
		}
		if latest == nil || t.After(*latest) {
			t := t
			latest = &t
		}
	}
	return latest
}
