package recommend

import (
	"testing"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/services/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type courseOpt func(*models.Course)

func withTags(tags ...string) courseOpt {
	return func(c *models.Course) { c.Tags = tags }
}

func withDescription(d string) courseOpt {
	return func(c *models.Course) { c.Description = d }
}

func addedDaysAgo(days int) courseOpt {
	return func(c *models.Course) { c.CreatedAt = epoch.AddDate(0, 0, 30-days) }
}

func newCourse(title, category string, lessons int, opts ...courseOpt) models.Course {
	c := models.Course{ID: uuid.New(), Title: title, Category: category, CreatedAt: epoch, Difficulty: models.DifficultyBeginner}
	m := models.Module{ID: uuid.New(), CourseID: c.ID, Title: title + " basics"}
	for i := 0; i < lessons; i++ {
		m.Lessons = append(m.Lessons, models.Lesson{ID: uuid.New(), CourseID: c.ID, ModuleID: m.ID, Position: i, Title: title + " lesson"})
	}
	c.Modules = []models.Module{m}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func done(ids ...uuid.UUID) progress.CompletedSet {
	set := progress.CompletedSet{}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func types(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Type)
	}
	return out
}

func TestFallbackOnlyWhenNothingElseMatches(t *testing.T) {
	old := newCourse("Old", "Art", 1, addedDaysAgo(20))
	mid := newCourse("Mid", "Art", 1, addedDaysAgo(10))
	recent := newCourse("Recent", "Art", 1, addedDaysAgo(1))
	oldest := newCourse("Oldest", "Art", 1, addedDaysAgo(29))

	recs := Recommend(Input{Catalog: []models.Course{old, mid, recent, oldest}})
	require.Len(t, recs, 3)
	assert.Equal(t, []string{TypeFallback, TypeFallback, TypeFallback}, types(recs))
	assert.Equal(t, "Recent", recs[0].CourseTitle)
	assert.Equal(t, "Mid", recs[1].CourseTitle)
	assert.Equal(t, "Old", recs[2].CourseTitle)
	assert.Equal(t, "Recently Added: \"Recent\"", recs[0].Message)
}

func TestFallbackSkippedWhenInterestMatches(t *testing.T) {
	art := newCourse("Painting", "Art", 1)
	code := newCourse("Go", "Programming", 1)

	recs := Recommend(Input{Interests: []string{"Programming"}, Catalog: []models.Course{art, code}})
	require.Len(t, recs, 1)
	assert.Equal(t, TypeInterestBased, recs[0].Type)
	assert.Equal(t, code.ID, recs[0].CourseID)
}

func TestGoalDrivenComesFirstAndRanksByScore(t *testing.T) {
	weak := newCourse("Intro to Data", "Data", 2)
	strong := newCourse("Data Science Bootcamp", "Data", 2, withDescription("become a data scientist"), withTags("science"))
	started := newCourse("Go Fundamentals", "Programming", 2)

	recs := Recommend(Input{
		Goals:     []string{"become a data scientist"},
		Interests: []string{"Programming"},
		Catalog:   []models.Course{weak, strong, started},
		Completed: done(started.LessonIDs()[0]),
	})

	require.GreaterOrEqual(t, len(recs), 3)
	assert.Equal(t, TypeGoalDriven, recs[0].Type)
	assert.Equal(t, strong.ID, recs[0].CourseID)
	assert.Greater(t, recs[0].Score, recs[1].Score)
	assert.Equal(t, TypeGoalDriven, recs[1].Type)
	assert.Equal(t, weak.ID, recs[1].CourseID)
	assert.Equal(t, TypeNextStep, recs[2].Type)
}

func TestNextStepPointsAtFirstOpenLesson(t *testing.T) {
	c := newCourse("Rust", "Programming", 3)
	ids := c.LessonIDs()

	recs := Recommend(Input{Catalog: []models.Course{c}, Completed: done(ids[0])})
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, TypeNextStep, rec.Type)
	require.NotNil(t, rec.LessonID)
	assert.Equal(t, ids[1], *rec.LessonID)
	assert.Equal(t, "/lessons/"+ids[1].String(), rec.Link)
	require.NotNil(t, rec.ModuleID)
	assert.Equal(t, c.Modules[0].ID, *rec.ModuleID)
}

func TestCompletedCoursesAreNeverRecommended(t *testing.T) {
	finished := newCourse("Finished", "Programming", 2)
	other := newCourse("Other", "Programming", 1)

	recs := Recommend(Input{
		Interests: []string{"Programming"},
		Catalog:   []models.Course{finished, other},
		Completed: done(finished.LessonIDs()...),
	})
	for _, r := range recs {
		assert.NotEqual(t, finished.ID, r.CourseID)
	}
	require.NotEmpty(t, recs)
	assert.Equal(t, other.ID, recs[0].CourseID)
}

func TestCategoryBasedUsesEngagedCategories(t *testing.T) {
	started := newCourse("SQL 1", "Databases", 2)
	sibling := newCourse("SQL 2", "Databases", 2)
	unrelated := newCourse("Knitting", "Crafts", 1)

	recs := Recommend(Input{
		Catalog:   []models.Course{started, sibling, unrelated},
		Completed: done(started.LessonIDs()[0]),
	})
	assert.Equal(t, []string{TypeNextStep, TypeCategoryBased}, types(recs))
	assert.Equal(t, sibling.ID, recs[1].CourseID)
}

func TestOutputIsCappedAndUnique(t *testing.T) {
	var catalog []models.Course
	var completedIDs []uuid.UUID
	for i := 0; i < 30; i++ {
		c := newCourse("Machine learning "+uuid.NewString()[:8], "AI", 3, withTags("machine", "learning"))
		catalog = append(catalog, c)
		if i%2 == 0 {
			completedIDs = append(completedIDs, c.LessonIDs()[0])
		}
	}

	recs := Recommend(Input{
		Goals:     []string{"machine learning engineer"},
		Interests: []string{"AI"},
		Catalog:   catalog,
		Completed: done(completedIDs...),
	})
	assert.LessOrEqual(t, len(recs), MaxRecommendations)

	seen := map[uuid.UUID]bool{}
	for _, r := range recs {
		assert.False(t, seen[r.CourseID], "duplicate course %s", r.CourseID)
		seen[r.CourseID] = true
	}
	assert.Equal(t, []string{
		TypeGoalDriven, TypeGoalDriven, TypeGoalDriven,
		TypeNextStep, TypeNextStep,
		TypeInterestBased, TypeInterestBased, TypeInterestBased,
		TypeCategoryBased, TypeCategoryBased,
	}, types(recs))
}

func TestShortGoalWordsAreIgnored(t *testing.T) {
	c := newCourse("Go in Practice", "Programming", 1)
	recs := Recommend(Input{Goals: []string{"go to it"}, Catalog: []models.Course{c}})
	require.Len(t, recs, 1)
	assert.Equal(t, TypeFallback, recs[0].Type)
}
