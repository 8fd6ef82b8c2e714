// Package reviews provides the REST handlers for organization reviews.
package reviews

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/query"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/auth"
)

// List handles GET /reviews and the nested GET /organizations/:id/reviews.
func List(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := url.ParseQuery(string(c.Request().URI().QueryString()))
		if err != nil {
			return model.BadRequest("invalid query string")
		}
		if org := c.Params("id"); org != "" {
			raw.Set("organization._key", org)
		}

		result, err := query.RunList(c.Context(), db, "review", raw)
		if err != nil {
			return err
		}
		return c.JSON(result)
	}
}

// Get handles GET /reviews/:id.
func Get(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := query.FindPopulated(c.Context(), db, "review", c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// Create handles POST /organizations/:id/reviews. One review per author per
// organization.
func Create(svc *services.ReviewService, orgs *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		org, err := orgs.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}

		existing, err := svc.GetByAuthorAndOrg(c.Context(), actor.Key, org.Key)
		if err != nil {
			return err
		}
		if existing != nil {
			return model.BadRequest("account %s has already reviewed this organization", actor.Key)
		}

		var dto model.ReviewCreate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}

		data, err := svc.Create(c.Context(), &dto, org, actor)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
	}
}

// Update handles PUT /reviews/:id.
func Update(svc *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		review, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if review.Author != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to update this review", actor.Key)
		}

		var dto model.ReviewUpdate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}

		data, err := svc.Update(c.Context(), review, &dto)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// Delete handles DELETE /reviews/:id.
func Delete(svc *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		review, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if review.Author != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to delete this review", actor.Key)
		}

		if err := svc.Delete(c.Context(), review); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}})
	}
}
