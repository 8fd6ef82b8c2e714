// Package directory defines the GraphQL queries for the organization
// directory.
package directory

import (
	"github.com/graphql-go/graphql"

	"github.com/dvinubius/bootcamp-backend/database"
)

// GetQueryFields returns the directory queries to be mounted in the root
// schema.
func GetQueryFields(db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		"organization": &graphql.Field{
			Type: OrganizationType,
			Args: graphql.FieldConfigArgument{
				"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				slug := p.Args["slug"].(string)
				return ResolveOrganizationBySlug(p.Context, db, slug)
			},
		},
		"organizations": &graphql.Field{
			Type: graphql.NewList(OrganizationType),
			Args: graphql.FieldConfigArgument{
				"career": &graphql.ArgumentConfig{Type: graphql.String},
				"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				career, _ := p.Args["career"].(string)
				limit, _ := p.Args["limit"].(int)
				return ResolveOrganizations(p.Context, db, career, limit)
			},
		},
		"courses": &graphql.Field{
			Type: graphql.NewList(CourseType),
			Args: graphql.FieldConfigArgument{
				"organization": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				orgKey := p.Args["organization"].(string)
				return ResolveCoursesByOrganization(p.Context, db, orgKey)
			},
		},
	}
}
