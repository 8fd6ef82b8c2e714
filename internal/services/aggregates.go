package services

import (
	"context"
	"math"

	"github.com/arangodb/go-driver/v2/arangodb"
	"go.uber.org/zap"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/model"
)

// AggregateRecalculator recomputes the derived averages of an organization
// from its child rows. Recalculation is best-effort: failures are logged and
// never fail the write that triggered them, since a stale aggregate is less
// harmful than losing the primary write.
type AggregateRecalculator struct {
	DB  database.DBConnection
	Log *zap.SugaredLogger
}

// RecalcAverageCost recomputes the mean tuition across the organization's
// courses, rounded up to the nearest multiple of 10. With no courses left the
// field is removed, not zeroed.
func (a *AggregateRecalculator) RecalcAverageCost(ctx context.Context, orgKey string) {
	avg, err := a.average(ctx, model.ColCourses, "tuition", orgKey)
	if err != nil {
		a.Log.Errorf("Failed to compute average cost for organization %s: %v", orgKey, err)
		return
	}
	if avg == nil {
		a.write(ctx, orgKey, "averageCost", nil)
		return
	}
	rounded := Ceil10(*avg)
	a.write(ctx, orgKey, "averageCost", &rounded)
}

// RecalcAverageRating recomputes the mean rating across the organization's
// reviews. With no reviews left the field is removed.
func (a *AggregateRecalculator) RecalcAverageRating(ctx context.Context, orgKey string) {
	avg, err := a.average(ctx, model.ColReviews, "rating", orgKey)
	if err != nil {
		a.Log.Errorf("Failed to compute average rating for organization %s: %v", orgKey, err)
		return
	}
	a.write(ctx, orgKey, "averageRating", avg)
}

// Ceil10 rounds up to the nearest multiple of 10.
func Ceil10(v float64) float64 {
	return math.Ceil(v/10) * 10
}

// average returns nil when the organization has no child rows in the
// collection.
func (a *AggregateRecalculator) average(ctx context.Context, collection, field, orgKey string) (*float64, error) {
	query := `
		RETURN AVERAGE(
			FOR c IN ` + collection + `
				FILTER c.organization._key == @org
				RETURN c.` + field + `
		)
	`
	cursor, err := a.DB.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"org": orgKey},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var avg *float64
	if cursor.HasMore() {
		if _, err := cursor.ReadDocument(ctx, &avg); err != nil {
			return nil, err
		}
	}
	return avg, nil
}

// write sets the aggregate field, or unsets it when value is nil. Errors are
// logged, not returned.
func (a *AggregateRecalculator) write(ctx context.Context, orgKey, field string, value *float64) {
	query := `
		FOR o IN organizations
			FILTER o._key == @org
			UPDATE o WITH { ` + field + `: @value } IN organizations OPTIONS { keepNull: false }
	`
	bindVars := map[string]interface{}{"org": orgKey, "value": nil}
	if value != nil {
		bindVars["value"] = *value
	}
	cursor, err := a.DB.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		a.Log.Errorf("Failed to write %s for organization %s: %v", field, orgKey, err)
		return
	}
	cursor.Close()
}
