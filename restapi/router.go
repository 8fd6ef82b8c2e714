// Package restapi provides the main router and initialization for REST API
// endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/internal/config"
	"github.com/dvinubius/bootcamp-backend/internal/geo"
	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/internal/storage"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/accounts"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/auth"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/courses"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/organizations"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/reviews"
)

// Deps bundles what the route handlers need.
type Deps struct {
	DB       database.DBConnection
	Config   *config.Config
	Geocoder geo.Geocoder
	Uploads  storage.Store
	Orgs     *services.OrganizationService
	Courses  *services.CourseService
	Reviews  *services.ReviewService
	Accounts *services.AccountService
	Schema   graphql.Schema
}

// SetupRoutes configures all REST API routes and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, d Deps) {
	api := app.Group("/api/v1")

	requireAuth := auth.RequireAuth(d.Accounts)
	publisherOrAdmin := auth.RequireRole(model.RolePublisher, model.RoleAdmin)
	userOrAdmin := auth.RequireRole(model.RoleUser, model.RoleAdmin)
	adminOnly := auth.RequireRole(model.RoleAdmin)

	api.Post("/graphql", GraphQLHandler(d.Schema))

	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.Register(d.Accounts))
	authGroup.Post("/login", auth.Login(d.Accounts))
	authGroup.Get("/logout", auth.Logout())
	authGroup.Get("/me", requireAuth, auth.Me())
	authGroup.Put("/updatedetails", requireAuth, auth.UpdateDetails(d.Accounts))
	authGroup.Put("/updatepassword", requireAuth, auth.UpdatePassword(d.Accounts))
	authGroup.Post("/forgotpassword", auth.ForgotPassword(d.Accounts, d.Config))
	authGroup.Put("/resetpassword/:resettoken", auth.ResetPassword(d.Accounts))

	orgGroup := api.Group("/organizations")
	orgGroup.Get("/", organizations.List(d.DB))
	orgGroup.Get("/radius/:zipcode/:distance", organizations.Radius(d.DB, d.Geocoder))
	orgGroup.Get("/:id", organizations.Get(d.DB))
	orgGroup.Post("/", requireAuth, publisherOrAdmin, organizations.Create(d.Orgs))
	orgGroup.Put("/:id", requireAuth, publisherOrAdmin, organizations.Update(d.Orgs))
	orgGroup.Delete("/:id", requireAuth, publisherOrAdmin, organizations.Delete(d.Orgs))
	orgGroup.Put("/:id/photo", requireAuth, publisherOrAdmin, organizations.UploadPhoto(d.Orgs, d.Uploads, d.Config.Upload.MaxBytes))
	orgGroup.Post("/:id/register", requireAuth, organizations.Register(d.Orgs))

	orgGroup.Get("/:id/courses", courses.List(d.DB))
	orgGroup.Post("/:id/courses", requireAuth, publisherOrAdmin, courses.Create(d.Courses, d.Orgs))
	orgGroup.Get("/:id/reviews", reviews.List(d.DB))
	orgGroup.Post("/:id/reviews", requireAuth, userOrAdmin, reviews.Create(d.Reviews, d.Orgs))

	courseGroup := api.Group("/courses")
	courseGroup.Get("/", courses.List(d.DB))
	courseGroup.Get("/:id", courses.Get(d.DB))
	courseGroup.Put("/:id", requireAuth, publisherOrAdmin, courses.Update(d.Courses))
	courseGroup.Delete("/:id", requireAuth, publisherOrAdmin, courses.Delete(d.Courses))

	reviewGroup := api.Group("/reviews")
	reviewGroup.Get("/", reviews.List(d.DB))
	reviewGroup.Get("/:id", reviews.Get(d.DB))
	reviewGroup.Put("/:id", requireAuth, reviews.Update(d.Reviews))
	reviewGroup.Delete("/:id", requireAuth, reviews.Delete(d.Reviews))

	accountGroup := api.Group("/accounts", requireAuth, adminOnly)
	accountGroup.Get("/", accounts.List(d.DB))
	accountGroup.Get("/:id", accounts.Get(d.DB))
	accountGroup.Post("/", accounts.Create(d.Accounts))
	accountGroup.Put("/:id", accounts.Update(d.Accounts))
	accountGroup.Delete("/:id", accounts.Delete(d.Accounts))
}
