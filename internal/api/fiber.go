// Package api builds the HTTP application serving the REST and GraphQL
// surfaces.
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/graphql"
	"github.com/dvinubius/bootcamp-backend/internal/config"
	"github.com/dvinubius/bootcamp-backend/internal/geo"
	"github.com/dvinubius/bootcamp-backend/internal/services"
	"github.com/dvinubius/bootcamp-backend/internal/storage"
	"github.com/dvinubius/bootcamp-backend/model"
	"github.com/dvinubius/bootcamp-backend/restapi"
)

// errorHandler renders every error as the {success:false, error} envelope.
// Typed errors select their status; anything else is a 500.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "server error"

	var resp *model.ErrorResponse
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &resp):
		status = resp.StatusCode
		message = resp.Message
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(cfg *config.Config, db database.DBConnection, log *zap.Logger) (*fiber.App, error) {
	schema, err := graphql.CreateSchema(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL schema: %w", err)
	}

	geocoder := geo.New(cfg.Geocoder)
	uploads := storage.New(cfg.Upload)
	sugar := log.Sugar()

	agg := &services.AggregateRecalculator{DB: db, Log: sugar}
	orgs := &services.OrganizationService{DB: db, Geo: geocoder, Log: sugar}
	courseSvc := &services.CourseService{DB: db, Log: sugar, Agg: agg}
	reviewSvc := &services.ReviewService{DB: db, Log: sugar, Agg: agg}
	accountSvc := &services.AccountService{DB: db, Log: sugar, Orgs: orgs, Agg: agg}

	app := fiber.New(fiber.Config{
		AppName:      "bootcamp-backend API v1.0",
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  60 * time.Second,
		ErrorHandler: errorHandler,
	})

	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://127.0.0.1:3000",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		AllowMethods:     "GET, POST, HEAD, PUT, DELETE, PATCH, OPTIONS",
	}))
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	restapi.SetupRoutes(app, restapi.Deps{
		DB:       db,
		Config:   cfg,
		Geocoder: geocoder,
		Uploads:  uploads,
		Orgs:     orgs,
		Courses:  courseSvc,
		Reviews:  reviewSvc,
		Accounts: accountSvc,
		Schema:   schema,
	})

	return app, nil
}
