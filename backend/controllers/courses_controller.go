package controllers

import (
	"errors"
	"math"
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services/progress"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   *utils.Logger
}

func NewCoursesController(s *store.Store, cfg *config.Config, log *utils.Logger) *CoursesController {
	return &CoursesController{Store: s, Cfg: cfg, Log: log.With("controller", "courses")}
}

type CourseListResponse struct {
	Courses []models.Course `json:"courses"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	Count   int64           `json:"count"`
}

type CreateCourseRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags"`
	Difficulty  string   `json:"difficulty" validate:"required"`
}

type CreateModuleRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type CreateLessonRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// GetCourses godoc
// @Summary List courses
// @Description Paginated course list, newest first. keyword matches title, description, category and tags.
// @Tags courses
// @Produce json
// @Param keyword query string false "Search keyword"
// @Param category query string false "Exact category"
// @Param difficulty query string false "Exact difficulty"
// @Param pageNumber query int false "Page, starting at 1"
// @Success 200 {object} CourseListResponse
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	page := c.QueryInt("pageNumber", 1)
	if page < 1 {
		page = 1
	}
	filter := store.CourseFilter{
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		Category:   strings.TrimSpace(c.Query("category")),
		Difficulty: strings.TrimSpace(c.Query("difficulty")),
		Page:       page,
	}

	courses, count, err := cc.Store.Catalog.ListCourses(c.UserContext(), filter)
	if err != nil {
		return utils.Internal("Could not fetch courses", err)
	}
	if courses == nil {
		courses = []models.Course{}
	}

	return utils.OK(c, CourseListResponse{
		Courses: courses,
		Page:    page,
		Pages:   int(math.Ceil(float64(count) / float64(store.CoursePageSize))),
		Count:   count,
	})
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := utils.BindJSON(c, &req); err != nil {
		return err
	}
	if !models.ValidDifficulty(req.Difficulty) {
		return utils.BadRequest("Difficulty must be one of: " + strings.Join(models.Difficulties, ", ") + ".")
	}

	title := strings.TrimSpace(req.Title)
	exists, err := cc.Store.Catalog.CourseTitleExists(c.UserContext(), title)
	if err != nil {
		return utils.Internal("Could not check course title", err)
	}
	if exists {
		return utils.BadRequest("A course with this title already exists.")
	}

	course := models.Course{
		Title:       title,
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Tags:        cleanTags(req.Tags),
		Difficulty:  req.Difficulty,
	}
	if err := cc.Store.Catalog.CreateCourse(c.UserContext(), &course); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return utils.BadRequest("A course with this title already exists.")
		}
		return utils.Internal("Could not create course", err)
	}

	cc.Log.Info("course created", "course_id", course.ID, "by", middleware.UserID(c))
	return utils.Created(c, course)
}

// GetCourse godoc
// @Summary Course detail
// @Description Course with ordered modules and lessons; every lesson carries isCompleted for the caller
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} progress.CourseDetail
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "Course not found")
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	course, err := cc.Store.Catalog.GetCourse(ctx, id)
	if err != nil {
		return storeError(err, "Course not found", "Could not fetch course")
	}
	records, err := cc.Store.Progress.CompletedForLessons(ctx, middleware.UserID(c), course.LessonIDs())
	if err != nil {
		return utils.Internal("Could not load progress", err)
	}

	return utils.OK(c, progress.AnnotateCourse(*course, progress.NewCompletedSet(records)))
}

// CreateModule godoc
// @Summary Add a module to a course
// @Description The module is appended after the course's existing modules
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param request body CreateModuleRequest true "Module"
// @Success 201 {object} models.Module
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/modules [post]
func (cc *CoursesController) CreateModule(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId", "Course not found. Cannot add module.")
	if err != nil {
		return err
	}
	var req CreateModuleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		return err
	}
	ctx := c.UserContext()

	if _, err := cc.Store.Catalog.GetCourse(ctx, courseID); err != nil {
		return storeError(err, "Course not found. Cannot add module.", "Could not fetch course")
	}

	module := models.Module{
		CourseID:    courseID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if err := cc.Store.Catalog.CreateModule(ctx, &module); err != nil {
		return utils.Internal("Could not create module", err)
	}
	return utils.Created(c, module)
}

// CreateLesson godoc
// @Summary Add a lesson to a module
// @Description The lesson is appended after the module's existing lessons
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param moduleId path string true "Module ID"
// @Param request body CreateLessonRequest true "Lesson"
// @Success 201 {object} models.Lesson
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{courseId}/modules/{moduleId}/lessons [post]
func (cc *CoursesController) CreateLesson(c *fiber.Ctx) error {
	courseID, err := paramID(c, "courseId", "Parent course not found.")
	if err != nil {
		return err
	}
	moduleID, err := paramID(c, "moduleId", "Module not found. Cannot add lesson.")
	if err != nil {
		return err
	}
	var req CreateLessonRequest
	if err := utils.BindJSON(c, &req); err != nil {
		return err
	}
	ctx := c.UserContext()

	if _, err := cc.Store.Catalog.GetCourse(ctx, courseID); err != nil {
		return storeError(err, "Parent course not found.", "Could not fetch course")
	}
	module, err := cc.Store.Catalog.GetModule(ctx, moduleID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return utils.Internal("Could not fetch module", err)
	}
	if module == nil || module.CourseID != courseID {
		return utils.BadRequest("Module does not belong to the specified course.")
	}

	lesson := models.Lesson{
		CourseID: courseID,
		ModuleID: moduleID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}
	if err := cc.Store.Catalog.CreateLesson(ctx, &lesson); err != nil {
		return utils.Internal("Could not create lesson", err)
	}
	return utils.Created(c, lesson)
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
