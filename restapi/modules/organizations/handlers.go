// Package organizations provides the REST handlers for the organization
// directory.
package organizations

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/internal/geo"
	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/internal/storage"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/query"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/auth"
)

const milesToMeters = 1609.34

// rawQuery re-parses the query string. Fiber collapses repeated keys, but the
// compiler needs to see every occurrence.
func rawQuery(c *fiber.Ctx) (url.Values, error) {
	vals, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return nil, model.BadRequest("invalid query string")
	}
	return vals, nil
}

// List handles GET /organizations with the full filter/sort/page surface.
func List(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := rawQuery(c)
		if err != nil {
			return err
		}
		result, err := query.RunList(c.Context(), db, "organization", raw)
		if err != nil {
			return err
		}
		return c.JSON(result)
	}
}

// Get handles GET /organizations/:id.
func Get(db database.DBConnection) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := query.FindPopulated(c.Context(), db, "organization", c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// Create handles POST /organizations. Publishers may own a single
// organization; admins are exempt.
func Create(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		var dto model.OrganizationCreate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}
		if err := dto.Validate(); err != nil {
			return err
		}

		if actor.Role != model.RoleAdmin {
			owned, err := svc.GetByOwner(c.Context(), actor.Key)
			if err != nil {
				return err
			}
			if owned != nil {
				return model.BadRequest("the account with id %s has already published an organization", actor.Key)
			}
		}

		data, err := svc.Create(c.Context(), &dto, actor)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
	}
}

// Update handles PUT /organizations/:id.
func Update(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		org, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if org.Owner != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to update this organization", actor.Key)
		}

		var dto model.OrganizationUpdate
		if err := c.BodyParser(&dto); err != nil {
			return model.BadRequest("invalid request body")
		}

		data, err := svc.Update(c.Context(), org, &dto)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// Delete handles DELETE /organizations/:id, cascading to courses and reviews.
func Delete(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		org, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if org.Owner != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to delete this organization", actor.Key)
		}

		if err := svc.Delete(c.Context(), org, false); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{}})
	}
}

// photoFilename validates an uploaded photo and derives its stored name. The
// name keeps only the original extension; one photo per organization.
func photoFilename(orgKey string, file *multipart.FileHeader, maxBytes int64) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image") {
		return "", model.BadRequest("please upload an image file")
	}
	if file.Size > maxBytes {
		return "", model.BadRequest("please upload an image less than %d bytes", maxBytes)
	}
	return "photo_" + orgKey + filepath.Ext(file.Filename), nil
}

// UploadPhoto handles PUT /organizations/:id/photo.
func UploadPhoto(svc *services.OrganizationService, store storage.Store, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		org, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		if org.Owner != actor.Key && actor.Role != model.RoleAdmin {
			return model.Forbidden("account %s is not authorized to update this organization", actor.Key)
		}

		file, err := c.FormFile("file")
		if err != nil {
			return model.BadRequest("please upload a file")
		}
		name, err := photoFilename(org.Key, file, maxBytes)
		if err != nil {
			return err
		}

		src, err := file.Open()
		if err != nil {
			return model.BadRequest("please upload a file")
		}
		defer src.Close()

		if err := store.Save(name, src); err != nil {
			if errors.Is(err, storage.ErrNotConfigured) {
				return model.BadRequest("file uploads are not configured")
			}
			return fmt.Errorf("problem with file upload: %w", err)
		}

		if err := svc.SetPhoto(c.Context(), org, name); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": name})
	}
}

// Register handles POST /organizations/:id/register, joining the acting
// account as a participant.
func Register(svc *services.OrganizationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := auth.CurrentAccount(c)

		org, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		for _, p := range org.Participants {
			if p == actor.Key {
				return model.BadRequest("account %s is already registered with this organization", actor.Key)
			}
		}

		data, err := svc.Register(c.Context(), org, actor.Key)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// Radius handles GET /organizations/radius/:zipcode/:distance. The distance is
// given in miles around the geocoded zipcode.
func Radius(db database.DBConnection, geocoder geo.Geocoder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		distance, err := c.ParamsInt("distance")
		if err != nil || distance < 0 {
			return model.BadRequest("distance must be a non-negative number of miles")
		}

		loc, err := geocoder.Geocode(c.Context(), c.Params("zipcode"))
		if err != nil {
			if errors.Is(err, geo.ErrNotConfigured) {
				return model.BadRequest("radius search requires a configured geocoder")
			}
			return model.BadRequest("could not geocode zipcode %s", c.Params("zipcode"))
		}

		filter := &query.RawFilterStage{
			Expr: "DISTANCE(doc.location.coordinates[1], doc.location.coordinates[0], @lat, @lng) <= @radius",
			Binds: map[string]interface{}{
				"lat":    loc.Coordinates[1],
				"lng":    loc.Coordinates[0],
				"radius": float64(distance) * milesToMeters,
			},
		}

		data, err := query.FindPopulatedWhere(c.Context(), db, "organization", filter)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "count": len(data), "data": data})
	}
}
