package controllers

import (
	"errors"
	"fmt"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LessonsController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   *utils.Logger
}

func NewLessonsController(s *store.Store, cfg *config.Config, log *utils.Logger) *LessonsController {
	return &LessonsController{Store: s, Cfg: cfg, Log: log.With("controller", "lessons")}
}

// Ref is an {_id, title} pointer to a related record.
type Ref struct {
	ID    uuid.UUID `json:"_id"`
	Title string    `json:"title"`
}

type LessonResponse struct {
	ID             uuid.UUID `json:"_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Position       int       `json:"position"`
	Course         *Ref      `json:"course"`
	Module         *Ref      `json:"module"`
	PreviousLesson *Ref      `json:"previousLesson"`
	NextLesson     *Ref      `json:"nextLesson"`
}

type LessonContextUpdate struct {
	LessonID string `json:"lessonId"`
	CourseID string `json:"courseId"`
	ModuleID string `json:"moduleId"`
}

type BatchResult struct {
	LessonID string `json:"lessonId"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

type BatchResponse struct {
	Message string        `json:"message"`
	Results []BatchResult `json:"results"`
}

// GetLesson godoc
// @Summary Lesson detail
// @Description Lesson with its course and module, and previous/next lessons across module boundaries
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} LessonResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /lessons/{id} [get]
func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Lesson not found")
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	lesson, err := lc.Store.Catalog.GetLesson(ctx, id)
	if err != nil {
		return storeError(err, "Lesson not found", "Could not fetch lesson")
	}

	resp := LessonResponse{
		ID:       lesson.ID,
		Title:    lesson.Title,
		Content:  lesson.Content,
		Position: lesson.Position,
	}

	// A lesson whose parents are gone is still served, without navigation.
	course, err := lc.Store.Catalog.GetCourse(ctx, lesson.CourseID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return utils.Internal("Could not fetch course", err)
	}
	if course == nil {
		return utils.OK(c, resp)
	}
	resp.Course = &Ref{ID: course.ID, Title: course.Title}
	for _, m := range course.Modules {
		if m.ID == lesson.ModuleID {
			resp.Module = &Ref{ID: m.ID, Title: m.Title}
		}
	}

	prev, next := course.Neighbours(lesson.ID)
	resp.PreviousLesson = lessonRef(prev)
	resp.NextLesson = lessonRef(next)
	return utils.OK(c, resp)
}

func lessonRef(l *models.Lesson) *Ref {
	if l == nil {
		return nil
	}
	return &Ref{ID: l.ID, Title: l.Title}
}

// BatchUpdateContext godoc
// @Summary Re-parent lessons in bulk
// @Description Each item is applied independently; the response reports per-item outcomes
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body []LessonContextUpdate true "Updates"
// @Success 200 {object} BatchResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/batch-update-context [post]
func (lc *LessonsController) BatchUpdateContext(c *fiber.Ctx) error {
	var updates []LessonContextUpdate
	if err := json.Unmarshal(c.Body(), &updates); err != nil || len(updates) == 0 {
		return utils.BadRequest("Request body must be a non-empty array of lesson updates.")
	}

	results := make([]BatchResult, 0, len(updates))
	var succeeded, failed int
	for _, u := range updates {
		if reason := lc.applyContext(c, u); reason != "" {
			results = append(results, BatchResult{LessonID: u.LessonID, Status: "failed", Reason: reason})
			failed++
			continue
		}
		results = append(results, BatchResult{LessonID: u.LessonID, Status: "success"})
		succeeded++
	}

	lc.Log.Info("lesson context batch applied", "succeeded", succeeded, "failed", failed)
	return utils.OK(c, BatchResponse{
		Message: fmt.Sprintf("Batch update completed. Successful: %d, Failed: %d.", succeeded, failed),
		Results: results,
	})
}

// applyContext returns the failure reason, or "" on success.
func (lc *LessonsController) applyContext(c *fiber.Ctx, u LessonContextUpdate) string {
	if u.LessonID == "" || u.CourseID == "" || u.ModuleID == "" {
		return "Missing lessonId, courseId, or moduleId."
	}
	lessonID, errL := uuid.Parse(u.LessonID)
	courseID, errC := uuid.Parse(u.CourseID)
	moduleID, errM := uuid.Parse(u.ModuleID)
	if errL != nil || errC != nil || errM != nil {
		return "Invalid id format."
	}

	ctx := c.UserContext()
	module, err := lc.Store.Catalog.GetModule(ctx, moduleID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Module not found."
	case err != nil:
		return err.Error()
	case module.CourseID != courseID:
		return "Module does not belong to the specified course."
	}

	err = lc.Store.Catalog.UpdateLessonContext(ctx, lessonID, courseID, moduleID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Lesson not found."
	case err != nil:
		lc.Log.Warn("lesson context update failed", "lesson_id", lessonID, "error", err)
		return err.Error()
	}
	return ""
}
