// Package accounts provides the admin-only account management handlers.
package accounts

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/query"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/auth"
)

// credentialFields never leave the API, regardless of select projections.
var credentialFields = []string{"passwordHash", "resetPasswordToken", "resetPasswordExpire"}

func stripCredentials(doc map[string]interface{}) map[string]interface{} {
	for _, f := range credentialFields {
		delete(doc, f)
	}
	return doc
}

// List handles GET /accounts with the full filter/sort/page surface.
func List(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := url.ParseQuery(string(c.Request().URI().QueryString()))
		if err != nil {
			return model.BadRequest("invalid query string")
		}

		result, err := query.RunList(c.Context(), db, "account", raw)
		if err != nil {
			return err
		}
		for _, doc := range result.Data {
			stripCredentials(doc)
		}
		return c.JSON(result)
	}
}

// Get handles GET /accounts/:id.
func Get(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := query.FindPopulated(c.Context(), db, "account", c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": stripCredentials(data)})
	}
}

// Create handles POST /accounts. Unlike self-registration, an admin may
// assign any role.
func Create(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var dto model.AccountCreate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}

		hash, err := auth.HashPassword(dto.Password)
		if err != nil {
			return err
		}

		acc, err := svc.Create(c.Context(), &dto, hash)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": acc.Public()})
	}
}

// Update handles PUT /accounts/:id.
func Update(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}

		var dto model.AccountUpdate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}

		updated, err := svc.Update(c.Context(), acc, dto.Changes())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": updated.Public()})
	}
}

// Delete handles DELETE /accounts/:id, cascading to authored reviews,
// participant lists and an owned organization.
func Delete(svc *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acc, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}

		if err := svc.Delete(c.Context(), acc); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}})
	}
}
