// Package directory defines the GraphQL types for the organization directory.
package directory

import (
	"github.com/graphql-go/graphql"
)

// AccountRefType is the populated account reference embedded in organizations
// and courses.
var AccountRefType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AccountRef",
	Fields: graphql.Fields{
		"_key":  &graphql.Field{Type: graphql.String},
		"name":  &graphql.Field{Type: graphql.String},
		"email": &graphql.Field{Type: graphql.String},
	},
})

// CourseRefType is the populated course reference embedded in organizations.
var CourseRefType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CourseRef",
	Fields: graphql.Fields{
		"_key":        &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
	},
})

// LocationType is the geocoded point of an organization.
var LocationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Location",
	Fields: graphql.Fields{
		"type":             &graphql.Field{Type: graphql.String},
		"coordinates":      &graphql.Field{Type: graphql.NewList(graphql.Float)},
		"formattedAddress": &graphql.Field{Type: graphql.String},
		"street":           &graphql.Field{Type: graphql.String},
		"city":             &graphql.Field{Type: graphql.String},
		"zipcode":          &graphql.Field{Type: graphql.String},
		"country":          &graphql.Field{Type: graphql.String},
	},
})

// OrganizationType represents a populated organization document.
var OrganizationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Organization",
	Fields: graphql.Fields{
		"_key":          &graphql.Field{Type: graphql.String},
		"name":          &graphql.Field{Type: graphql.String},
		"slug":          &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"website":       &graphql.Field{Type: graphql.String},
		"phone":         &graphql.Field{Type: graphql.String},
		"email":         &graphql.Field{Type: graphql.String},
		"address":       &graphql.Field{Type: graphql.String},
		"careers":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		"housing":       &graphql.Field{Type: graphql.Boolean},
		"jobAssistance": &graphql.Field{Type: graphql.Boolean},
		"jobGuarantee":  &graphql.Field{Type: graphql.Boolean},
		"acceptGi":      &graphql.Field{Type: graphql.Boolean},
		"averageRating": &graphql.Field{Type: graphql.Float},
		"averageCost":   &graphql.Field{Type: graphql.Float},
		"location":      &graphql.Field{Type: LocationType},
		"owner":         &graphql.Field{Type: AccountRefType},
		"courses":       &graphql.Field{Type: graphql.NewList(CourseRefType)},
		"participants":  &graphql.Field{Type: graphql.NewList(AccountRefType)},
		"createdAt":     &graphql.Field{Type: graphql.String},
	},
})

// OrganizationSnapshotType is the denormalized parent embedded in courses.
var OrganizationSnapshotType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrganizationSnapshot",
	Fields: graphql.Fields{
		"_key": &graphql.Field{Type: graphql.String},
		"name": &graphql.Field{Type: graphql.String},
		"slug": &graphql.Field{Type: graphql.String},
	},
})

// CourseType represents a populated course document.
var CourseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Course",
	Fields: graphql.Fields{
		"_key":                 &graphql.Field{Type: graphql.String},
		"title":                &graphql.Field{Type: graphql.String},
		"description":          &graphql.Field{Type: graphql.String},
		"weeks":                &graphql.Field{Type: graphql.Float},
		"tuition":              &graphql.Field{Type: graphql.Float},
		"minimumSkill":         &graphql.Field{Type: graphql.String},
		"scholarshipAvailable": &graphql.Field{Type: graphql.Boolean},
		"organization":         &graphql.Field{Type: OrganizationSnapshotType},
		"owner":                &graphql.Field{Type: AccountRefType},
		"createdAt":            &graphql.Field{Type: graphql.String},
	},
})
