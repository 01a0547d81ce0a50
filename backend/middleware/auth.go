package middleware

import (
	"errors"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID = "userID"
	localUser   = "user"
)

// AuthMiddleware verifies the bearer token and loads the caller. The user id and
// the user are stored in Locals for the handlers.
func AuthMiddleware(cfg *config.Config, users store.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return err
		}

		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return utils.Unauthorized("Not authorized, token failed")
			}
			return utils.Internal("Could not load user", err)
		}

		c.Locals(localUserID, userID)
		c.Locals(localUser, user)
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.Unauthorized("Not authorized, no token")
		}
		if !user.IsAdmin {
			return utils.Forbidden("Not authorized as an admin")
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's id, or uuid.Nil outside AuthMiddleware.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}

func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}
