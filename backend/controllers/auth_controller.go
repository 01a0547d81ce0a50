package controllers

import (
	"errors"
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthController struct {
	Store *store.Store
	Cfg   *config.Config
	Log   *utils.Logger
}

func NewAuthController(s *store.Store, cfg *config.Config, log *utils.Logger) *AuthController {
	return &AuthController{Store: s, Cfg: cfg, Log: log.With("controller", "auth")}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and returns it with a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := utils.BindJSON(c, &req); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := ac.Store.Users.EmailTaken(c.UserContext(), email, uuid.Nil)
	if err != nil {
		return utils.Internal("Could not check email", err)
	}
	if taken {
		return utils.BadRequest("User already exists")
	}

	user := models.User{Name: strings.TrimSpace(req.Name), Email: email}
	if err := user.SetPassword(req.Password); err != nil {
		return utils.Internal("Could not hash password", err)
	}
	if err := ac.Store.Users.Create(c.UserContext(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return utils.BadRequest("User already exists")
		}
		return utils.Internal("Could not create user", err)
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.Internal("Could not generate token", err)
	}

	ac.Log.Info("user registered", "user_id", user.ID)
	resp := userResponse(&user)
	resp.Token = token
	return utils.Created(c, resp)
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		return err
	}

	user, err := ac.Store.Users.GetByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.Unauthorized("Invalid email or password")
		}
		return utils.Internal("Could not query database", err)
	}
	if !user.MatchPassword(req.Password) {
		return utils.Unauthorized("Invalid email or password")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.Internal("Could not generate token", err)
	}

	resp := userResponse(user)
	resp.Token = token
	return utils.OK(c, resp)
}
