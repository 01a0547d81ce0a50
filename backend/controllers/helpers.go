package controllers

import (
	"errors"

	"learnhub/backend/models"
	"learnhub/backend/store"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// paramID parses a path id. A malformed id cannot name a record, so it is
// reported the same way as a missing one.
func paramID(c *fiber.Ctx, name, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, utils.NotFound(notFound)
	}
	return id, nil
}

// storeError maps store sentinels onto HTTP errors.
func storeError(err error, notFound, internal string) error {
	if errors.Is(err, store.ErrNotFound) {
		return utils.NotFound(notFound)
	}
	return utils.Internal(internal, err)
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	Interests []string  `json:"interests"`
	Goals     []string  `json:"goals"`
	Token     string    `json:"token,omitempty"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		Interests: append([]string{}, u.Interests...),
		Goals:     append([]string{}, u.Goals...),
	}
}
