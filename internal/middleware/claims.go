package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserID extracts the numeric user id from the verified JWT in context.
func UserID(c *fiber.Ctx) (uint, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("missing sub claim")
	}

	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errors.New("malformed sub claim")
	}
	return uint(id), nil
}
