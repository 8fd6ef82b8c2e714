// package main provides the entry point for the course directory backend,
// wiring configuration, the ArangoDB connection and the HTTP application.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/internal/api"
	"github.com/dvinubius/bootcamp-backend/internal/config"
	"github.com/dvinubius/bootcamp-backend/restapi/modules/auth"
)

func main() {
	logger := database.InitLogger()
	defer logger.Sync() //nolint:errcheck

	seed := flag.Bool("seed", false, "import the JSON fixtures from the data directory and exit")
	destroy := flag.Bool("destroy", false, "remove all documents and exit")
	dataDir := flag.String("data", "_data", "directory holding the seed fixtures")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar().Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Initialize(cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("Failed to initialize database: %v", err)
	}

	if *seed || *destroy {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if *destroy {
			err = database.Destroy(ctx, db, logger)
		} else {
			err = database.Seed(ctx, db, *dataDir, logger)
		}
		if err != nil {
			logger.Sugar().Fatalf("Fixture run failed: %v", err)
		}
		return
	}

	auth.Configure(cfg.JWT)

	app, err := api.NewFiberApp(cfg, db, logger)
	if err != nil {
		logger.Sugar().Fatalf("Failed to build application: %v", err)
	}

	logger.Sugar().Infof("Starting server on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Sugar().Fatalf("Failed to start server: %v", err)
	}
}
