package controllers_test

import (
	"net/http"
	"testing"

	"learnhub/backend/services/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	token, id := env.register("Profile User", "profile@example.com")
	env.register("Other", "other@example.com")

	status, result := env.call(http.MethodGet, "/api/user/profile", nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, id, result["_id"])
	assert.Equal(t, "Profile User", result["name"])
	assert.NotContains(t, result, "token")

	status, result = env.call(http.MethodPut, "/api/user/profile", map[string]string{"name": "Renamed"}, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Renamed", result["name"])
	assert.Equal(t, "profile@example.com", result["email"])

	status, result = env.call(http.MethodPut, "/api/user/profile", map[string]string{"email": "other@example.com"}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Email is already in use", result["message"])

	status, _ = env.call(http.MethodPut, "/api/user/profile", map[string]string{"password": "newpassword"}, token)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = env.call(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "profile@example.com", "password": "newpassword",
	}, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestInterestsAndGoals(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := env.register("Learner", "learner@example.com")

	status, result := env.call(http.MethodPut, "/api/user/interests", map[string]interface{}{
		"interests": []string{"Data", "Go"},
	}, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []interface{}{"Data", "Go"}, result["interests"])

	status, result = env.call(http.MethodPut, "/api/user/interests", map[string]interface{}{"interests": "Data"}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Interests must be provided as an array.", result["message"])

	status, result = env.call(http.MethodPut, "/api/user/interests", map[string]interface{}{"interests": nil}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, result = env.call(http.MethodPut, "/api/user/goals", map[string]interface{}{
		"goals": []string{"become a data scientist"},
	}, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []interface{}{"become a data scientist"}, result["goals"])
	assert.Equal(t, []interface{}{"Data", "Go"}, result["interests"])

	status, result = env.call(http.MethodPut, "/api/user/goals", map[string]interface{}{"goals": 42}, token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Goals must be provided as an array.", result["message"])

	// An absent key leaves the list alone.
	status, result = env.call(http.MethodPut, "/api/user/goals", map[string]interface{}{}, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []interface{}{"become a data scientist"}, result["goals"])
}

func TestActivity(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := env.register("Active", "active@example.com")
	partial := env.seedCourse("Partial", "Data", 2, 2)
	full := env.seedCourse("Full", "Data", 1)
	env.seedCourse("Empty", "Data")

	for _, id := range []string{partial.LessonIDs()[0].String(), full.LessonIDs()[0].String()} {
		status, _ := env.call(http.MethodPost, "/api/progress/lessons/"+id+"/complete", nil, token)
		require.Equal(t, fiber.StatusOK, status)
	}

	status, data := env.request(http.MethodGet, "/api/user/activity", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	var act progress.Activity
	env.decode(data, &act)

	require.Len(t, act.CoursesInProgress, 1)
	assert.Equal(t, partial.ID, act.CoursesInProgress[0].CourseID)
	assert.Equal(t, 25, act.CoursesInProgress[0].ProgressPercentage)
	require.Len(t, act.CompletedCourses, 1)
	assert.Equal(t, full.ID, act.CompletedCourses[0].CourseID)
	assert.NotNil(t, act.CompletedCourses[0].CompletedAt)
	assert.Equal(t, progress.ActivityStats{TotalCoursesStarted: 2, TotalCoursesCompleted: 1, TotalLessonsCompleted: 2}, act.Stats)
}
