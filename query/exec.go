package query

import (
	"context"
	"fmt"
	"net/url"

	"github.com/arangodb/go-driver/v2/arangodb"

	"github.com/dvinubius/bootcamp-backend/database"
	"github.com/dvinubius/bootcamp-backend/model"
)

// RunList compiles the raw request query for the entity, appends its
// population stages, executes the pipeline once and wraps the results in the
// listing envelope.
func RunList(ctx context.Context, db database.DBConnection, entity string, raw url.Values) (*model.ListResult, error) {
	schema, ok := model.Schemas[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}

	params, err := ParseParams(raw)
	if err != nil {
		return nil, err
	}

	pipe, err := Compile(params, schema)
	if err != nil {
		return nil, err
	}
	AppendPopulation(pipe, schema.Relations, params.Select)

	data, err := execute(ctx, db, pipe, schema.Collection)
	if err != nil {
		return nil, err
	}

	// collection-wide count, not filtered: next/prev detection deliberately
	// matches the source system
	total, err := countAll(ctx, db, schema.Collection)
	if err != nil {
		return nil, err
	}

	return &model.ListResult{
		Success:    true,
		Count:      len(data),
		Pagination: Paginate(params.Page, params.Limit, total),
		Data:       data,
	}, nil
}

// FindPopulated fetches a single entity by key with all relations populated.
// Returns a NotFound error when the document does not exist.
func FindPopulated(ctx context.Context, db database.DBConnection, entity, key string) (map[string]interface{}, error) {
	schema, ok := model.Schemas[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}

	pipe := &Pipeline{Page: 1, Limit: 1}
	pipe.Stages = append(pipe.Stages,
		&MatchStage{Conditions: []Condition{{Field: "_key", Op: "eq", Value: key}}},
		&PageStage{Skip: 0, Limit: 1},
	)
	AppendPopulation(pipe, schema.Relations, nil)

	data, err := execute(ctx, db, pipe, schema.Collection)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, model.NotFound("%s not found with id of %s", entity, key)
	}
	return data[0], nil
}

// FindPopulatedWhere fetches all entities matching the given filter stage,
// with relations populated. Used for filtered reads that bypass request
// parameters, e.g. the radius search.
func FindPopulatedWhere(ctx context.Context, db database.DBConnection, entity string, filter Stage) ([]map[string]interface{}, error) {
	schema, ok := model.Schemas[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}

	pipe := &Pipeline{}
	pipe.Stages = append(pipe.Stages, filter)
	AppendPopulation(pipe, schema.Relations, nil)

	return execute(ctx, db, pipe, schema.Collection)
}

func execute(ctx context.Context, db database.DBConnection, pipe *Pipeline, collection string) ([]map[string]interface{}, error) {
	aql, binds := pipe.Render(collection)
	cursor, err := db.Database.Query(ctx, aql, &arangodb.QueryOptions{BindVars: binds})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	data := []map[string]interface{}{}
	for cursor.HasMore() {
		var doc map[string]interface{}
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, err
		}
		data = append(data, doc)
	}
	return data, nil
}

// countQuery counts the whole collection. The active filter deliberately does
// not participate; next/prev detection works off the unfiltered total.
func countQuery(collection string) string {
	return fmt.Sprintf("RETURN LENGTH(%s)", collection)
}

func countAll(ctx context.Context, db database.DBConnection, collection string) (int64, error) {
	cursor, err := db.Database.Query(ctx, countQuery(collection), nil)
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	var total int64
	if cursor.HasMore() {
		if _, err := cursor.ReadDocument(ctx, &total); err != nil {
			return 0, err
		}
	}
	return total, nil
}
