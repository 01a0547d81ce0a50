package controllers

import (
	"bytes"
	"errors"
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services/progress"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   *utils.Logger
}

func NewUserController(s *store.Store, cfg *config.Config, log *utils.Logger) *UserController {
	return &UserController{Store: s, Cfg: cfg, Log: log.With("controller", "user")}
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	return utils.OK(c, userResponse(middleware.CurrentUser(c)))
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates name, email and password; empty fields are left unchanged
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := utils.BindJSON(c, &req); err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != user.Email {
		taken, err := uc.Store.Users.EmailTaken(c.UserContext(), email, user.ID)
		if err != nil {
			return utils.Internal("Could not check email", err)
		}
		if taken {
			return utils.BadRequest("Email is already in use")
		}
		user.Email = email
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return utils.Internal("Could not hash password", err)
		}
	}

	return uc.save(c, user)
}

// UpdateInterests godoc
// @Summary Replace user interests
// @Tags users
// @Accept json
// @Produce json
// @Param request body map[string][]string true "{interests: []}"
// @Success 200 {object} UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/interests [put]
func (uc *UserController) UpdateInterests(c *fiber.Ctx) error {
	return uc.replaceList(c, "interests", "Interests must be provided as an array.", func(u *models.User, v []string) {
		u.Interests = v
	})
}

// UpdateGoals godoc
// @Summary Replace user goals
// @Tags users
// @Accept json
// @Produce json
// @Param request body map[string][]string true "{goals: []}"
// @Success 200 {object} UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/goals [put]
func (uc *UserController) UpdateGoals(c *fiber.Ctx) error {
	return uc.replaceList(c, "goals", "Goals must be provided as an array.", func(u *models.User, v []string) {
		u.Goals = v
	})
}

// replaceList sets one string list from body[key]. An absent key leaves the user
// unchanged; any value other than an array of strings is rejected.
func (uc *UserController) replaceList(c *fiber.Ctx, key, invalid string, set func(*models.User, []string)) error {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.BadRequest("Cannot parse JSON")
	}
	user := middleware.CurrentUser(c)

	raw, present := body[key]
	if !present {
		return utils.OK(c, userResponse(user))
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return utils.BadRequest(invalid)
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return utils.BadRequest(invalid)
	}
	set(user, values)
	return uc.save(c, user)
}

func (uc *UserController) save(c *fiber.Ctx, user *models.User) error {
	if err := uc.Store.Users.Save(c.UserContext(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return utils.BadRequest("Email is already in use")
		}
		return utils.Internal("Could not update user", err)
	}
	return utils.OK(c, userResponse(user))
}

// GetActivity godoc
// @Summary Learning activity summary
// @Description Courses in progress, completed courses (latest completion first) and totals
// @Tags users
// @Produce json
// @Success 200 {object} progress.Activity
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/activity [get]
func (uc *UserController) GetActivity(c *fiber.Ctx) error {
	ctx := c.UserContext()
	catalog, err := uc.Store.Catalog.LoadCatalog(ctx)
	if err != nil {
		return utils.Internal("Could not load courses", err)
	}
	records, err := uc.Store.Progress.CompletedByUser(ctx, middleware.UserID(c))
	if err != nil {
		return utils.Internal("Could not load progress", err)
	}
	return utils.OK(c, progress.BuildActivity(catalog, records))
}
