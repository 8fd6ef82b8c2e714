// Package courses provides the REST handlers for courses.
package courses

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/query"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/auth"
)

// List handles GET /courses and the nested GET /organizations/:id/courses.
// The nested form scopes the listing to the parent organization.
func List(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := url.ParseQuery(string(c.Request().URI().QueryString()))
		if err != nil {
			return model.BadRequest("invalid query string")
		}
		if org := c.Params("id"); org != "" {
			raw.Set("organization._key", org)
		}

		result, err := query.RunList(c.Context(), db, "course", raw)
		if err != nil {
			return err
		}
		return c.JSON(result)
	}
}

// Get handles GET /courses/:id.
func Get(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := query.FindPopulated(c.Context(), db, "course", c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// Create handles POST /organizations/:id/courses. Only the organization owner
// or an admin may add courses.
func Create(svc *services.CourseService, orgs *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		org, err := orgs.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if org.Owner != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to add a course to this organization", actor.Key)
		}

		var dto model.CourseCreate
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

// Update handles PUT /courses/:id.
func Update(svc *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		course, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if course.Owner != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to update this course", actor.Key)
		}

		var dto model.CourseUpdate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}

		data, err := svc.Update(c.Context(), course, &dto)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// Delete handles DELETE /courses/:id.
func Delete(svc *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		course, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if course.Owner != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to delete this course", actor.Key)
		}

		if err := svc.Delete(c.Context(), course); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}})
	}
}
