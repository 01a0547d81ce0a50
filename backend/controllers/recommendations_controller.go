package controllers

import (
	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services/progress"
	"learnhub/backend/services/recommend"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type RecommendationsController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   *utils.Logger
}

func NewRecommendationsController(s *store.Store, cfg *config.Config, log *utils.Logger) *RecommendationsController {
	return &RecommendationsController{Store: s, Cfg: cfg, Log: log.With("controller", "recommendations")}
}

// GetRecommendations godoc
// @Summary Ranked recommendations
// @Description Up to ten courses or next lessons, ranked by goals, started courses, interests and engaged categories
// @Tags recommendations
// @Produce json
// @Success 200 {array} recommend.Recommendation
// @Security ApiKeyAuth
// @Router /recommendations [get]
func (rc *RecommendationsController) GetRecommendations(c *fiber.Ctx) error {
	ctx := c.UserContext()
	user := middleware.CurrentUser(c)

	catalog, err := rc.Store.Catalog.LoadCatalog(ctx)
	if err != nil {
		return utils.Internal("Could not load courses", err)
	}
	records, err := rc.Store.Progress.CompletedByUser(ctx, user.ID)
	if err != nil {
		return utils.Internal("Could not load progress", err)
	}

	recs := recommend.Recommend(recommend.Input{
		Interests: user.Interests,
		Goals:     user.Goals,
		Catalog:   catalog,
		Completed: progress.NewCompletedSet(records),
	})
	rc.Log.Debug("recommendations built", "user_id", user.ID, "count", len(recs))
	return utils.OK(c, recs)
}
