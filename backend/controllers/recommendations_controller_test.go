package controllers_test

import (
	"net/http"
	"testing"

	"learnhub/backend/services/recommend"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendations(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := env.register("Curious", "curious@example.com")
	started := env.seedCourse("Go Basics", "Programming", 3)
	env.seedCourse("Data Science Path", "Data", 1)

	status, data := env.request(http.MethodGet, "/api/recommendations", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	var recs []recommend.Recommendation
	env.decode(data, &recs)
	require.Len(t, recs, 2)
	assert.Equal(t, recommend.TypeFallback, recs[0].Type)
	assert.Equal(t, "Data Science Path", recs[0].CourseTitle)

	status, _ = env.call(http.MethodPut, "/api/user/goals", map[string]interface{}{"goals": []string{"data science"}}, token)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = env.call(http.MethodPost, "/api/progress/lessons/"+started.LessonIDs()[0].String()+"/complete", nil, token)
	require.Equal(t, fiber.StatusOK, status)

	status, data = env.request(http.MethodGet, "/api/recommendations", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	recs = nil
	env.decode(data, &recs)
	require.Len(t, recs, 2)
	assert.Equal(t, recommend.TypeGoalDriven, recs[0].Type)
	assert.Equal(t, "Data Science Path", recs[0].CourseTitle)
	assert.Equal(t, recommend.TypeNextStep, recs[1].Type)
	require.NotNil(t, recs[1].LessonID)
	assert.Equal(t, started.LessonIDs()[1], *recs[1].LessonID)
}
