package controllers

import (
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services/advisor"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AIController struct {
	Store   *store.Store
	Cfg     *config.Config
	Log     *utils.Logger
	Advisor *advisor.Advisor
}

func NewAIController(s *store.Store, cfg *config.Config, log *utils.Logger, adv *advisor.Advisor) *AIController {
	return &AIController{Store: s, Cfg: cfg, Log: log.With("controller", "ai"), Advisor: adv}
}

type GeneratePathRequest struct {
	Query string `json:"query" validate:"required"`
}

type UserInput struct {
	Query     string   `json:"query"`
	Interests []string `json:"interests"`
	Goals     []string `json:"goals"`
}

type AdvisorResponse struct {
	UserInput       UserInput          `json:"userInput"`
	ResponseType    advisor.QueryType  `json:"responseType"`
	SuggestedPath   []advisor.PathStep `json:"suggestedPath"`
	GeneralResponse *string            `json:"generalResponse"`
	AINotes         string             `json:"aiNotes"`
}

// GeneratePath godoc
// @Summary Ask the AI advisor
// @Description Answers with a step-by-step learning path or a text answer depending on the query
// @Tags ai
// @Accept json
// @Produce json
// @Param request body GeneratePathRequest true "Query"
// @Success 200 {object} AdvisorResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 500 {object} AdvisorResponse
// @Security ApiKeyAuth
// @Router /ai/generate-path [post]
func (ac *AIController) GeneratePath(c *fiber.Ctx) error {
	var req GeneratePathRequest
	if err := utils.BindJSON(c, &req); err != nil {
		return err
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return utils.BadRequest("Please provide a query.")
	}
	if ac.Advisor == nil || !ac.Advisor.Configured() {
		ac.Log.Error("AI request rejected, no API key configured")
		return utils.NewAppError(fiber.StatusInternalServerError, "AI service is not configured correctly.", nil)
	}

	user := middleware.CurrentUser(c)
	input := UserInput{
		Query:     query,
		Interests: append([]string{}, user.Interests...),
		Goals:     append([]string{}, user.Goals...),
	}

	ctx := c.UserContext()
	catalog, err := ac.Store.Catalog.LoadCatalog(ctx)
	if err != nil {
		return utils.Internal("Could not load courses", err)
	}
	summaries := make([]advisor.CourseSummary, 0, len(catalog))
	for _, course := range catalog {
		summaries = append(summaries, advisor.CourseSummary{Title: course.Title, Category: course.Category})
	}

	res, err := ac.Advisor.Advise(ctx, advisor.Request{
		Query:     query,
		UserName:  user.Name,
		Interests: input.Interests,
		Goals:     input.Goals,
		Courses:   summaries,
	})
	if err != nil {
		message := advisor.UnavailableMessage
		return c.Status(fiber.StatusInternalServerError).JSON(AdvisorResponse{
			UserInput:       input,
			ResponseType:    advisor.ResponseError,
			GeneralResponse: &message,
			AINotes:         advisor.NotesUnavailable,
		})
	}

	return utils.OK(c, AdvisorResponse{
		UserInput:       input,
		ResponseType:    res.ResponseType,
		SuggestedPath:   res.SuggestedPath,
		GeneralResponse: res.GeneralResponse,
		AINotes:         res.AINotes,
	})
}
