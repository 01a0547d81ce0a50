// Package recommend ranks next actions for a user from their profile, their
// completed lessons and the course catalog.
//
// Five strategies run in a fixed priority order. Each one only sees courses that
// are not fully completed and not already recommended, contributes at most its
// own limit, and the combined list is capped at MaxRecommendations.
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"learnhub/backend/models"
	"learnhub/backend/services/progress"

	"github.com/google/uuid"
)

const MaxRecommendations = 10

const (
	TypeGoalDriven    = "goal_driven"
	TypeNextStep      = "next_step"
	TypeInterestBased = "interest_based"
	TypeCategoryBased = "category_based"
	TypeFallback      = "fallback_recent"
)

type Recommendation struct {
	Type        string     `json:"type"`
	CourseID    uuid.UUID  `json:"courseId"`
	CourseTitle string     `json:"courseTitle"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Difficulty  string     `json:"difficulty"`
	ModuleID    *uuid.UUID `json:"moduleId,omitempty"`
	ModuleTitle string     `json:"moduleTitle,omitempty"`
	LessonID    *uuid.UUID `json:"lessonId,omitempty"`
	LessonTitle string     `json:"lessonTitle,omitempty"`
	Message     string     `json:"message"`
	Link        string     `json:"link"`
	Score       int        `json:"score,omitempty"`
}

// Input is everything a ranking depends on.
type Input struct {
	Interests []string
	Goals     []string
	Catalog   []models.Course
	Completed progress.CompletedSet
}

type strategy struct {
	name  string
	limit int
	// when reports whether the strategy applies given the list built so far.
	when func(r *ranking) bool
	pick func(r *ranking) []Recommendation
}

var pipeline = []strategy{
	{
		name:  TypeGoalDriven,
		limit: 3,
		when:  func(r *ranking) bool { return len(r.in.Goals) > 0 },
		pick:  goalDriven,
	},
	{
		name:  TypeNextStep,
		limit: 2,
		when:  func(r *ranking) bool { return r.hasRoom() },
		pick:  nextSteps,
	},
	{
		name:  TypeInterestBased,
		limit: 3,
		when:  func(r *ranking) bool { return len(r.in.Interests) > 0 && r.hasRoom() },
		pick:  interestBased,
	},
	{
		name:  TypeCategoryBased,
		limit: 3,
		when:  func(r *ranking) bool { return r.hasRoom() && len(r.in.Completed) > 0 },
		pick:  categoryBased,
	},
	{
		name:  TypeFallback,
		limit: 3,
		when:  func(r *ranking) bool { return len(r.out) == 0 },
		pick:  recentlyAdded,
	},
}

type ranking struct {
	in       Input
	statuses map[uuid.UUID]progress.CourseStatus
	seen     map[uuid.UUID]struct{}
	out      []Recommendation
}

// Recommend runs the strategy pipeline. The result is deterministic for a given
// input and never holds the same course twice.
func Recommend(in Input) []Recommendation {
	if in.Completed == nil {
		in.Completed = progress.CompletedSet{}
	}
	r := &ranking{
		in:       in,
		statuses: make(map[uuid.UUID]progress.CourseStatus, len(in.Catalog)),
		seen:     make(map[uuid.UUID]struct{}),
		out:      []Recommendation{},
	}
	for _, c := range in.Catalog {
		r.statuses[c.ID] = progress.StatusOf(c, in.Completed)
	}

	for _, s := range pipeline {
		if !s.when(r) {
			continue
		}
		picked := s.pick(r)
		if len(picked) > s.limit {
			picked = picked[:s.limit]
		}
		for _, rec := range picked {
			r.add(rec)
		}
	}

	if len(r.out) > MaxRecommendations {
		r.out = r.out[:MaxRecommendations]
	}
	return r.out
}

func (r *ranking) hasRoom() bool { return len(r.out) < MaxRecommendations }

func (r *ranking) add(rec Recommendation) {
	if !r.hasRoom() {
		return
	}
	if _, dup := r.seen[rec.CourseID]; dup {
		return
	}
	r.seen[rec.CourseID] = struct{}{}
	r.out = append(r.out, rec)
}

// eligible lists catalog courses that are neither fully completed nor already
// recommended, in catalog order.
func (r *ranking) eligible() []models.Course {
	var out []models.Course
	for _, c := range r.in.Catalog {
		if r.statuses[c.ID].FullyCompleted() {
			continue
		}
		if _, dup := r.seen[c.ID]; dup {
			continue
		}
		out = append(out, c)
	}
	return out
}

func goalDriven(r *ranking) []Recommendation {
	var recs []Recommendation
	for _, c := range r.eligible() {
		score := goalScore(c, r.in.Goals)
		if score == 0 {
			continue
		}
		rec := fromCourse(TypeGoalDriven, c, fmt.Sprintf("Relevant to your goal: \"%s\"", c.Title))
		rec.Score = score
		recs = append(recs, rec)
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return recs
}

// goalScore counts goal keywords (longer than two characters) found in the
// course's searchable text. Repeated keywords count every time.
func goalScore(c models.Course, goals []string) int {
	text := strings.ToLower(strings.Join([]string{
		c.Title, c.Description, c.Category, strings.Join(c.Tags, " "),
	}, " "))
	score := 0
	for _, goal := range goals {
		for _, kw := range strings.Fields(strings.ToLower(goal)) {
			if utf8.RuneCountInString(kw) <= 2 {
				continue
			}
			if strings.Contains(text, kw) {
				score++
			}
		}
	}
	return score
}

func nextSteps(r *ranking) []Recommendation {
	var recs []Recommendation
	for _, c := range r.eligible() {
		if !r.statuses[c.ID].Started() {
			continue
		}
		if rec, ok := nextStep(c, r.in.Completed); ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// nextStep finds the first uncompleted lesson in module-then-lesson order.
func nextStep(c models.Course, done progress.CompletedSet) (Recommendation, bool) {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if done.Has(l.ID) {
				continue
			}
			moduleID, lessonID := m.ID, l.ID
			rec := fromCourse(TypeNextStep, c, fmt.Sprintf("Continue with \"%s\" in \"%s\"", l.Title, m.Title))
			rec.ModuleID = &moduleID
			rec.ModuleTitle = m.Title
			rec.LessonID = &lessonID
			rec.LessonTitle = l.Title
			rec.Link = "/lessons/" + l.ID.String()
			return rec, true
		}
	}
	return Recommendation{}, false
}

func interestBased(r *ranking) []Recommendation {
	interests := stringSet(r.in.Interests)
	var recs []Recommendation
	for _, c := range r.eligible() {
		if _, ok := interests[c.Category]; !ok {
			continue
		}
		recs = append(recs, fromCourse(TypeInterestBased, c,
			fmt.Sprintf("Based on your interest in \"%s\": \"%s\"", c.Category, c.Title)))
	}
	return recs
}

func categoryBased(r *ranking) []Recommendation {
	engaged := map[string]struct{}{}
	for _, c := range r.in.Catalog {
		if c.Category != "" && r.statuses[c.ID].Started() {
			engaged[c.Category] = struct{}{}
		}
	}
	if len(engaged) == 0 {
		return nil
	}
	var recs []Recommendation
	for _, c := range r.eligible() {
		if _, ok := engaged[c.Category]; !ok {
			continue
		}
		recs = append(recs, fromCourse(TypeCategoryBased, c,
			fmt.Sprintf("More in \"%s\": \"%s\"", c.Category, c.Title)))
	}
	return recs
}

func recentlyAdded(r *ranking) []Recommendation {
	courses := r.eligible()
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	var recs []Recommendation
	for _, c := range courses {
		recs = append(recs, fromCourse(TypeFallback, c, fmt.Sprintf("Recently Added: \"%s\"", c.Title)))
	}
	return recs
}

func fromCourse(kind string, c models.Course, message string) Recommendation {
	return Recommendation{
		Type:        kind,
		CourseID:    c.ID,
		CourseTitle: c.Title,
		Description: c.Description,
		Category:    c.Category,
		Tags:        append([]string{}, c.Tags...),
		Difficulty:  c.Difficulty,
		Message:     message,
		Link:        "/courses/" + c.ID.String(),
	}
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
