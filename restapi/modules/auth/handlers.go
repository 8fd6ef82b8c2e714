package auth

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dvinubius/bootcamp-backend/internal/config"
	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/model"
)

const resetTokenTTL = 10 * time.Minute

func sendToken(c *fiber.Ctx, acc *model.Account, status int) error {
	token, err := GenerateJWT(acc.Key, acc.Role)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(jwtExpire),
		HTTPOnly: true,
	})

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// Register creates a new account and signs it in.
func Register(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto model.AccountCreate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}
		if dto.Role == model.RoleAdmin {
			return model.BadRequest("role must be one of: user, publisher")
		}

		hash, err := HashPassword(dto.Password)
		if err != nil {
			return err
		}

		acc, err := accounts.Create(c.Context(), &dto, hash)
		if err != nil {
			return err
		}

		return sendToken(c, acc, fiber.StatusCreated)
	}
}

// Login authenticates by email and password.
func Login(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return model.BadRequest("invalid request body")
		}
		if req.Email == "" || req.Password == "" {
			return model.BadRequest("please provide an email and password")
		}

		acc, err := accounts.GetByEmail(c.Context(), req.Email)
		if err != nil {
			return err
		}
		if acc == nil || !CheckPasswordHash(req.Password, acc.PasswordHash) {
			return model.Unauthorized("invalid credentials")
		}

		return sendToken(c, acc, fiber.StatusOK)
	}
}

// Logout clears the token cookie.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "token",
			Value:    "none",
			Expires:  time.Now().Add(10 * time.Second),
			HTTPOnly: true,
		})
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}})
	}
}

// Me returns the authenticated account.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc := CurrentAccount(c)
		return c.JSON(fiber.Map{"success": true, "data": acc.Public()})
	}
}

// UpdateDetails changes the authenticated account's name and email.
func UpdateDetails(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc := CurrentAccount(c)

		var dto model.AccountUpdate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}

		updated, err := accounts.Update(c.Context(), acc, dto.Changes())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": updated.Public()})
	}
}

// UpdatePassword changes the password after verifying the current one.
func UpdatePassword(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc := CurrentAccount(c)

		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.BodyParser(&req); err != nil {
			return model.BadRequest("invalid request body")
		}
		if !CheckPasswordHash(req.CurrentPassword, acc.PasswordHash) {
			return model.Unauthorized("password is incorrect")
		}
		if len(req.NewPassword) < 6 {
			return model.BadRequest("password must be at least 6 characters")
		}

		hash, err := HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		if err := accounts.SetCredentials(c.Context(), acc.Key, map[string]interface{}{
			"passwordHash": hash,
		}); err != nil {
			return err
		}

		return sendToken(c, acc, fiber.StatusOK)
	}
}

// ForgotPassword issues a reset token and mails a reset link.
func ForgotPassword(accounts *services.AccountService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&req); err != nil {
			return model.BadRequest("invalid request body")
		}

		acc, err := accounts.GetByEmail(c.Context(), req.Email)
		if err != nil {
			return err
		}
		if acc == nil {
			return model.NotFound("there is no account with that email")
		}

		token, hash := GenerateResetToken()
		expire := time.Now().UTC().Add(resetTokenTTL)
		if err := accounts.SetCredentials(c.Context(), acc.Key, map[string]interface{}{
			"resetPasswordToken":  hash,
			"resetPasswordExpire": expire,
		}); err != nil {
			return err
		}

		resetURL := fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", cfg.Server.BaseURL, token)
		if err := SendPasswordResetEmail(cfg.SMTP, acc.Email, resetURL); err != nil {
			_ = accounts.SetCredentials(c.Context(), acc.Key, map[string]interface{}{
				"resetPasswordToken":  nil,
				"resetPasswordExpire": nil,
			})
			return fmt.Errorf("email could not be sent: %w", err)
		}

		return c.JSON(fiber.Map{"success": true, "data": "email sent"})
	}
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return model.BadRequest("invalid request body")
		}
		if len(req.Password) < 6 {
			return model.BadRequest("password must be at least 6 characters")
		}

		acc, err := accounts.GetByResetToken(c.Context(), HashToken(c.Params("resettoken")))
		if err != nil {
			return err
		}
		if acc == nil {
			return model.BadRequest("invalid token")
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			return err
		}
		if err := accounts.SetCredentials(c.Context(), acc.Key, map[string]interface{}{
			"passwordHash":        hash,
			"resetPasswordToken":  nil,
			"resetPasswordExpire": nil,
		}); err != nil {
			return err
		}

		return sendToken(c, acc, fiber.StatusOK)
	}
}
