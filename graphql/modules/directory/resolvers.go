// Package directory implements the resolvers for the directory queries.
package directory

import (
	"context"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/query"
)

// ResolveOrganizationBySlug fetches one populated organization by slug.
// Returns nil when the slug is unknown.
func ResolveOrganizationBySlug(ctx context.Context, db database.DBConnection, slug string) (map[string]interface{}, error) {
	filter := &query.MatchStage{Conditions: []query.Condition{
		{Field: "slug", Op: "eq", Value: slug},
	}}
	data, err := query.FindPopulatedWhere(ctx, db, "organization", filter)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data[0], nil
}

// ResolveOrganizations lists populated organizations, optionally narrowed to a
// career tag.
func ResolveOrganizations(ctx context.Context, db database.DBConnection, career string, limit int) ([]map[string]interface{}, error) {
	match := &query.MatchStage{}
	if career != "" {
		match.Conditions = append(match.Conditions, query.Condition{
			Field: "careers", Op: "in", Value: []interface{}{career},
		})
	}

	data, err := query.FindPopulatedWhere(ctx, db, "organization", match)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}
	return data, nil
}

// ResolveCoursesByOrganization lists the populated courses of one organization.
func ResolveCoursesByOrganization(ctx context.Context, db database.DBConnection, orgKey string) ([]map[string]interface{}, error) {
	filter := &query.MatchStage{Conditions: []query.Condition{
		{Field: "organization._key", Op: "eq", Value: orgKey},
	}}
	return query.FindPopulatedWhere(ctx, db, "course", filter)
}
