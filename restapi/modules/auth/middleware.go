package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/model"
)

const accountLocal = "account"

func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies("token"); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth validates the token from the cookie or Authorization header and
// loads the account into the request context.
func RequireAuth(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return model.Unauthorized("not authorized to access this route")
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			return model.Unauthorized("not authorized to access this route")
		}

		acc, err := accounts.Get(c.Context(), claims.Subject)
		if err != nil {
			return model.Unauthorized("not authorized to access this route")
		}

		c.Locals(accountLocal, acc)
		return c.Next()
	}
}

// RequireRole restricts a route to accounts holding one of the given roles.
// Must run after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc := CurrentAccount(c)
		if acc == nil {
			return model.Unauthorized("not authorized to access this route")
		}
		for _, role := range roles {
			if acc.Role == role {
				return c.Next()
			}
		}
		return model.Forbidden("account role %s is not authorized to access this route", acc.Role)
	}
}

// CurrentAccount returns the authenticated account, or nil outside RequireAuth.
func CurrentAccount(c *fiber.Ctx) *model.Account {
	acc, _ := c.Locals(accountLocal).(*model.Account)
	return acc
}
