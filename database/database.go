// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dvinubius/bootcamp-backend/internal/config"
	"github.com/dvinubius/bootcamp-backend/model"
)

// DBConnection is the structure that defines the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// Define a struct to hold the index definition
type indexConfig struct {
	Collection string
	IdxName    string
	IdxField   string
	Unique     bool
}

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	logger, _ := prodConfig.Build()
	return logger
}

func dbConnectionConfig(endpoint connection.Endpoint, dbuser string, dbpass string) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(dbuser, dbpass),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// Initialize connects to the db engine and creates the database, collections
// and indexes. The returned connection is handed to every consumer explicitly;
// there is no package level handle.
func Initialize(cfg *config.Config, logger *zap.Logger) (DBConnection, error) {
	const initialInterval = 10 * time.Second
	const maxInterval = 2 * time.Minute

	var db arangodb.Database
	ctx := context.Background()

	var client arangodb.Client

	//
	// Database connection with backoff retry
	//

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval
	bo.MaxElapsedTime = 10 * time.Minute

	err := backoff.RetryNotify(func() error {
		endpoint := connection.NewRoundRobinEndpoints([]string{cfg.Arango.URL})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, cfg.Arango.User, cfg.Arango.Password))

		client = arangodb.NewClient(conn)

		versionInfo, err := client.Version(context.Background())
		if err != nil {
			return err
		}

		logger.Sugar().Infof("Database has version '%s' and license '%s'", versionInfo.Version, versionInfo.License)
		return nil

	}, bo, func(err error, _ time.Duration) {
		logger.Sugar().Warnf("Retrying connection to ArangoDB: %v", err)
	})

	if err != nil {
		return DBConnection{}, fmt.Errorf("could not connect to ArangoDB: %w", err)
	}

	//
	// Database creation
	//

	exists := false
	dblist, _ := client.Databases(ctx)

	for _, dbinfo := range dblist {
		if dbinfo.Name() == cfg.Arango.Database {
			exists = true
			break
		}
	}

	if exists {
		var options arangodb.GetDatabaseOptions
		if db, err = client.GetDatabase(ctx, cfg.Arango.Database, &options); err != nil {
			return DBConnection{}, fmt.Errorf("failed to get database: %w", err)
		}
	} else {
		if db, err = client.CreateDatabase(ctx, cfg.Arango.Database, nil); err != nil {
			return DBConnection{}, fmt.Errorf("failed to create database: %w", err)
		}
	}

	//
	// Collection creation for document storage
	//

	collections := make(map[string]arangodb.Collection)
	collectionNames := []string{model.ColOrganizations, model.ColCourses, model.ColReviews, model.ColAccounts}

	for _, collectionName := range collectionNames {
		var col arangodb.Collection

		colExists, _ := db.CollectionExists(ctx, collectionName)
		if colExists {
			var options arangodb.GetCollectionOptions
			if col, err = db.GetCollection(ctx, collectionName, &options); err != nil {
				return DBConnection{}, fmt.Errorf("failed to use collection %s: %w", collectionName, err)
			}
		} else {
			if col, err = db.CreateCollectionV2(ctx, collectionName, nil); err != nil {
				return DBConnection{}, fmt.Errorf("failed to create collection %s: %w", collectionName, err)
			}
		}

		collections[collectionName] = col
	}

	//
	// Index creation
	//

	idxList := []indexConfig{
		// accounts: email is the unique login identifier
		{Collection: model.ColAccounts, IdxName: "account_email_unique", IdxField: "email", Unique: true},
		{Collection: model.ColAccounts, IdxName: "account_reset_token", IdxField: "resetPasswordToken"},
		{Collection: model.ColAccounts, IdxName: "account_created_at", IdxField: "createdAt"},

		// organizations: slug lookups and owner-uniqueness checks
		{Collection: model.ColOrganizations, IdxName: "org_slug_unique", IdxField: "slug", Unique: true},
		{Collection: model.ColOrganizations, IdxName: "org_owner", IdxField: "owner"},
		{Collection: model.ColOrganizations, IdxName: "org_created_at", IdxField: "createdAt"},

		// courses: parent lookups drive cascades and aggregate recalculation
		{Collection: model.ColCourses, IdxName: "course_org", IdxField: "organization._key"},
		{Collection: model.ColCourses, IdxName: "course_owner", IdxField: "owner"},
		{Collection: model.ColCourses, IdxName: "course_created_at", IdxField: "createdAt"},

		// reviews: parent + author lookups
		{Collection: model.ColReviews, IdxName: "review_org", IdxField: "organization._key"},
		{Collection: model.ColReviews, IdxName: "review_author", IdxField: "author"},
		{Collection: model.ColReviews, IdxName: "review_created_at", IdxField: "createdAt"},
	}

	False := false
	for _, idx := range idxList {
		found := false

		if indexes, err := collections[idx.Collection].Indexes(ctx); err == nil {
			for _, index := range indexes {
				if idx.IdxName == index.Name {
					found = true
					break
				}
			}
		}

		if !found {
			unique := idx.Unique
			indexOptions := arangodb.CreatePersistentIndexOptions{
				Unique: &unique,
				Sparse: &False,
				Name:   idx.IdxName,
			}

			_, _, err = collections[idx.Collection].EnsurePersistentIndex(ctx, []string{idx.IdxField}, &indexOptions)
			if err != nil {
				return DBConnection{}, fmt.Errorf("error creating index %s: %w", idx.IdxName, err)
			}
			logger.Sugar().Infof("Created index: %s on %s.%s", idx.IdxName, idx.Collection, idx.IdxField)
		}
	}

	logger.Sugar().Infof("Database initialization complete")

	return DBConnection{
		Database:    db,
		Collections: collections,
	}, nil
}
