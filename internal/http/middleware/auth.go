package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"clinicapi/internal/auth"
)

// UserIDLocalKey holds the authenticated user's id (int64) in Fiber's context locals.
const UserIDLocalKey = "user_id"

// Unauthorized is called to write the 401 response; it lets the HTTP layer keep one error envelope.
type Unauthorized func(c *fiber.Ctx, message string) error

// RequireAuth accepts only requests carrying a valid "Authorization: Bearer <token>" header.
func RequireAuth(tokens *auth.TokenIssuer, deny Unauthorized) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return deny(c, "missing bearer token")
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return deny(c, "invalid or expired token")
		}
		uid, err := claims.UserID()
		if err != nil {
			return deny(c, "invalid or expired token")
		}

		c.Locals(UserIDLocalKey, uid)
		return c.Next()
	}
}

// UserID returns the id set by RequireAuth.
func UserID(c *fiber.Ctx) (int64, bool) {
	uid, ok := c.Locals(UserIDLocalKey).(int64)
	return uid, ok
}
