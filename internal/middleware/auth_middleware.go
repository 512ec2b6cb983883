package middleware

import (
	"strings"

	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/auth"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/internal/repository"
	"github.com/davipeperaio/e-commerce-Amar-castanhas/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth guards the admin routes. It validates the bearer token,
// checks the account still exists and is active, and attaches the
// session for the handlers downstream.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization header"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil || !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Account disabled"})
		}

		auth.Attach(c, auth.Session{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.FullName,
		})
		return c.Next()
	}
}
