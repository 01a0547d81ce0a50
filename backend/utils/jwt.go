package utils

import (
	"strings"
	"time"

	"learnhub/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateJWTToken(userID uuid.UUID, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"exp": time.Now().Add(cfg.JWTTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ExtractUserIDFromToken reads "Authorization: Bearer <token>" and returns the user id claim.
func ExtractUserIDFromToken(c *fiber.Ctx, cfg *config.Config) (uuid.UUID, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer") {
		return uuid.Nil, Unauthorized("Not authorized, no token")
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if tokenString == "" {
		return uuid.Nil, Unauthorized("Not authorized, no token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return uuid.Nil, Unauthorized("Not authorized, token failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, Unauthorized("Not authorized, token failed")
	}

	raw, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, Unauthorized("Not authorized, token failed")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Unauthorized("Not authorized, token failed")
	}
	return userID, nil
}
