// Package auth carries the logged-in identity through a request.
// Sessions are created by the login flow, attached by the auth
// middleware and passed explicitly to whichever service needs to know
// who is acting; there is no module-global session state.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsKey = "session"

// Session identifies the authenticated admin for one request.
type Session struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// Actor returns the display identity used in audit entries.
func (s Session) Actor() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// Attach stores the session in the Fiber request context.
func Attach(c *fiber.Ctx, s Session) {
	c.Locals(localsKey, s)
}

// FromCtx extracts the session set by the auth middleware. The zero
// Session is returned on unauthenticated routes.
func FromCtx(c *fiber.Ctx) Session {
	if s, ok := c.Locals(localsKey).(Session); ok {
		return s
	}
	return Session{}
}
