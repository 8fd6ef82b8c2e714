package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dvinubius/bootcamp-backend/model"
)

// seedFiles maps collection names to their data file in the seed directory.
var seedFiles = map[string]string{
	model.ColOrganizations: "organizations.json",
	model.ColCourses:       "courses.json",
	model.ColReviews:       "reviews.json",
	model.ColAccounts:      "accounts.json",
}

// Seed imports the JSON files from dir into their collections. Documents are
// inserted as-is; derived fields and snapshots are expected to be consistent
// in the seed data.
func Seed(ctx context.Context, db DBConnection, dir string, logger *zap.Logger) error {
	for collection, file := range seedFiles {
		path := filepath.Join(dir, file)
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Sugar().Warnf("Seed file %s missing, skipping %s", path, collection)
				continue
			}
			return fmt.Errorf("failed to read seed file %s: %w", path, err)
		}

		var docs []map[string]interface{}
		if err := json.Unmarshal(raw, &docs); err != nil {
			return fmt.Errorf("failed to parse seed file %s: %w", path, err)
		}

		for _, doc := range docs {
			if _, err := db.Collections[collection].CreateDocument(ctx, doc); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", collection, err)
			}
		}
		logger.Sugar().Infof("Seeded %d documents into %s", len(docs), collection)
	}
	return nil
}

// Destroy removes all documents from every collection.
func Destroy(ctx context.Context, db DBConnection, logger *zap.Logger) error {
	for collection := range seedFiles {
		query := fmt.Sprintf("FOR doc IN %s REMOVE doc IN %s", collection, collection)
		cursor, err := db.Database.Query(ctx, query, nil)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", collection, err)
		}
		cursor.Close()
		logger.Sugar().Infof("Cleared collection %s", collection)
	}
	return nil
}
