package controllers_test

import (
	"net/http"
	"testing"

	"learnhub/backend/models"
	"learnhub/backend/services/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteLessonIsIdempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	token, userID := env.register("Finisher", "finisher@example.com")
	c := env.seedCourse("Idempotent", "Data", 2)
	lesson := c.LessonIDs()[0].String()

	status, data := env.request(http.MethodGet, "/api/progress/lessons/"+lesson, nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "null", string(data))

	status, first := env.call(http.MethodPost, "/api/progress/lessons/"+lesson+"/complete", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, first["completed"])
	assert.Equal(t, userID, first["user"])
	assert.NotNil(t, first["completedAt"])

	status, second := env.call(http.MethodPost, "/api/progress/lessons/"+lesson+"/complete", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, first["_id"], second["_id"])

	var count int64
	require.NoError(t, env.db.Model(&models.ProgressRecord{}).Where("lesson_id = ?", c.LessonIDs()[0]).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	status, got := env.call(http.MethodGet, "/api/progress/lessons/"+lesson, nil, token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, first["_id"], got["_id"])
}

func TestProgressUnknownLesson(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := env.register("Lost", "lost@example.com")

	status, result := env.call(http.MethodPost, "/api/progress/lessons/"+uuid.NewString()+"/complete", nil, token)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Lesson not found", result["message"])

	status, _ = env.call(http.MethodGet, "/api/progress/lessons/"+uuid.NewString(), nil, token)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestOverallProgress(t *testing.T) {
	env := newTestEnv(t, nil)
	token, _ := env.register("Half", "half@example.com")
	c := env.seedCourse("Six Lessons", "Data", 2, 2, 2)
	env.seedCourse("Nothing Inside", "Data")

	for _, id := range c.LessonIDs()[:3] {
		status, _ := env.call(http.MethodPost, "/api/progress/lessons/"+id.String()+"/complete", nil, token)
		require.Equal(t, fiber.StatusOK, status)
	}

	status, data := env.request(http.MethodGet, "/api/progress/overall", nil, token)
	require.Equal(t, fiber.StatusOK, status)
	var overall []progress.CourseProgress
	env.decode(data, &overall)

	require.Len(t, overall, 2)
	assert.Equal(t, progress.CourseProgress{
		CourseID: c.ID, Title: "Six Lessons", TotalLessons: 6, CompletedLessons: 3, CompletionPercentage: 50,
	}, overall[0])
	assert.Equal(t, 0, overall[1].CompletionPercentage)
}
