package controllers

import (
	"time"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services/progress"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   *utils.Logger
	// Now is overridable in tests.
	Now func() time.Time
}

func NewProgressController(s *store.Store, cfg *config.Config, log *utils.Logger) *ProgressController {
	return &ProgressController{Store: s, Cfg: cfg, Log: log.With("controller", "progress"), Now: time.Now}
}

// CompleteLesson godoc
// @Summary Mark a lesson complete
// @Description Idempotent; repeating the call refreshes completedAt on the same record
// @Tags progress
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} models.ProgressRecord
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/lessons/{lessonId}/complete [post]
func (pc *ProgressController) CompleteLesson(c *fiber.Ctx) error {
	lessonID, err := paramID(c, "lessonId", "Lesson not found")
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	if _, err := pc.Store.Catalog.GetLesson(ctx, lessonID); err != nil {
		return storeError(err, "Lesson not found", "Could not fetch lesson")
	}

	rec, err := pc.Store.Progress.MarkComplete(ctx, middleware.UserID(c), lessonID, pc.Now().UTC())
	if err != nil {
		return utils.Internal("Could not update progress", err)
	}
	return utils.OK(c, rec)
}

// GetLessonProgress godoc
// @Summary Progress record for one lesson
// @Description Returns the record, or null when the lesson was never completed
// @Tags progress
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} models.ProgressRecord
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/lessons/{lessonId} [get]
func (pc *ProgressController) GetLessonProgress(c *fiber.Ctx) error {
	lessonID, err := paramID(c, "lessonId", "Lesson not found")
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	if _, err := pc.Store.Catalog.GetLesson(ctx, lessonID); err != nil {
		return storeError(err, "Lesson not found", "Could not fetch lesson")
	}

	rec, err := pc.Store.Progress.GetForLesson(ctx, middleware.UserID(c), lessonID)
	if err != nil {
		return utils.Internal("Could not fetch progress", err)
	}
	if rec == nil {
		return c.Status(fiber.StatusOK).Type("json").SendString("null")
	}
	return utils.OK(c, rec)
}

// GetOverall godoc
// @Summary Completion per course
// @Description Every course in the catalog with lesson totals and completion percentage
// @Tags progress
// @Produce json
// @Success 200 {array} progress.CourseProgress
// @Security ApiKeyAuth
// @Router /progress/overall [get]
func (pc *ProgressController) GetOverall(c *fiber.Ctx) error {
	ctx := c.UserContext()
	catalog, err := pc.Store.Catalog.LoadCatalog(ctx)
	if err != nil {
		return utils.Internal("Could not load courses", err)
	}
	records, err := pc.Store.Progress.CompletedByUser(ctx, middleware.UserID(c))
	if err != nil {
		return utils.Internal("Could not load progress", err)
	}
	return utils.OK(c, progress.Overall(catalog, progress.NewCompletedSet(records)))
}
