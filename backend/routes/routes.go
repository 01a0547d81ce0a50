package routes

import (
	"time"

	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/services/advisor"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupRoutes(app *fiber.App, s *store.Store, cfg *config.Config, log *utils.Logger, adv *advisor.Advisor) {
	authMiddleware := middleware.AuthMiddleware(cfg, s.Users)
	adminMiddleware := middleware.AdminMiddleware()

	api := app.Group("/api")

	// Auth routes
	authController := controllers.NewAuthController(s, cfg, log)
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", authController.Login)

	// User routes
	userController := controllers.NewUserController(s, cfg, log)
	user := api.Group("/user", authMiddleware)
	user.Get("/profile", userController.GetProfile)
	user.Put("/profile", userController.UpdateProfile)
	user.Put("/interests", userController.UpdateInterests)
	user.Put("/goals", userController.UpdateGoals)
	user.Get("/activity", userController.GetActivity)

	// Courses routes
	coursesController := controllers.NewCoursesController(s, cfg, log)
	api.Get("/courses", coursesController.GetCourses)
	api.Post("/courses", authMiddleware, coursesController.CreateCourse)
	api.Get("/courses/:id", authMiddleware, coursesController.GetCourse)
	api.Post("/courses/:courseId/modules", authMiddleware, coursesController.CreateModule)
	api.Post("/courses/:courseId/modules/:moduleId/lessons", authMiddleware, coursesController.CreateLesson)

	// Lessons routes; the static path is registered before /:id
	lessonsController := controllers.NewLessonsController(s, cfg, log)
	api.Post("/lessons/batch-update-context", authMiddleware, adminMiddleware, lessonsController.BatchUpdateContext)
	api.Get("/lessons/:id", lessonsController.GetLesson)

	// Progress routes
	progressController := controllers.NewProgressController(s, cfg, log)
	progress := api.Group("/progress", authMiddleware)
	progress.Post("/lessons/:lessonId/complete", progressController.CompleteLesson)
	progress.Get("/lessons/:lessonId", progressController.GetLessonProgress)
	progress.Get("/overall", progressController.GetOverall)

	// Recommendations routes
	recommendationsController := controllers.NewRecommendationsController(s, cfg, log)
	api.Get("/recommendations", authMiddleware, recommendationsController.GetRecommendations)

	// AI routes, rate limited per caller
	aiController := controllers.NewAIController(s, cfg, log, adv)
	api.Post("/ai/generate-path", authMiddleware, aiLimiter(cfg), aiController.GeneratePath)
}

func aiLimiter(cfg *config.Config) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.AIRateLimit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return middleware.UserID(c).String()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.NewAppError(fiber.StatusTooManyRequests, "Too many AI requests, please try again later.", nil)
		},
	})
}
