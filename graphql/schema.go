// Package graphql assembles the read-only GraphQL schema over the directory.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/graphql/modules/directory"
)

// CreateSchema builds the root query schema over the given connection.
func CreateSchema(db database.DBConnection) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range directory.GetQueryFields(db) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
