package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"signlearn/backend/session"
	"signlearn/backend/utils"
)

// RequireAuth rejects requests without a valid session or bearer token, or
// whose user no longer exists, and stores the caller's identity for the
// handlers. Email and role come from the users table, not the credential.
func RequireAuth(mgr *session.Manager, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claimed, err := mgr.Identity(c)
		if err != nil || claimed == nil {
			return utils.Unauthorized(c, "Not authenticated")
		}
		id, err := session.Verify(c.UserContext(), db, claimed)
		if err != nil {
			return err
		}
		if id == nil {
			return utils.Unauthorized(c, "Not authenticated")
		}
		session.SetCurrent(c, id)
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := session.Current(c)
		if err != nil {
			return utils.Unauthorized(c, "Not authenticated")
		}
		if !id.IsAdmin() {
			return utils.Forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}
