package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// UserIDKey is the Locals key under which the resolved principal is stored.
const UserIDKey = "user_id"

// Auth resolves the bearer session token against Redis and stores the user id
// in Locals. The identity provider owns the session lifecycle; this middleware
// only consumes resolved principals. No store access happens before rejection.
func Auth(redisClient *redis.Client, keyPrefix string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		userID, err := redisClient.Get(c.Context(), keyPrefix+":"+token).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				logger.Error("session lookup failed", zap.Error(err))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the principal resolved by Auth, or "" when absent.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
