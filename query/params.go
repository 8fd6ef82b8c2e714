// Package query compiles request parameters into executable AQL pipelines and
// plans the population of related documents.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dvinubius/bootcamp-backend/model"
)

// Listing defaults.
const (
	DefaultSort  = "-createdAt"
	DefaultPage  = 1
	DefaultLimit = 100
)

var reservedParams = []string{"select", "sort", "page", "limit"}

// Params is the parsed form of a listing request: the remaining filter set plus
// the extracted select/sort/pagination values.
type Params struct {
	Filter url.Values
	Select []string // nil when no selection is active
	Sort   string
	Page   int
	Limit  int
}

// Skip returns the number of documents to skip for the requested page.
func (p *Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

// SelectIncludes reports whether the active selection includes the field.
// Without an active selection every field is included.
func (p *Params) SelectIncludes(field string) bool {
	if p.Select == nil {
		return true
	}
	for _, f := range p.Select {
		if f == field {
			return true
		}
	}
	return false
}

// ParseParams extracts the reserved keys from the raw query and validates
// them. The reserved keys are removed from the returned filter set. Each
// reserved key must appear at most once; page and limit must parse as
// positive integers.
func ParseParams(raw url.Values) (*Params, error) {
	p := &Params{
		Filter: url.Values{},
		Sort:   DefaultSort,
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, vals := range raw {
		if !isReserved(key) {
			p.Filter[key] = vals
		}
	}

	if vals, ok := raw["select"]; ok {
		if len(vals) != 1 {
			return nil, model.BadRequest("select query param must be a string")
		}
		p.Select = splitFields(vals[0])
	}

	if vals, ok := raw["sort"]; ok {
		if len(vals) != 1 {
			return nil, model.BadRequest("sort query param must be a string")
		}
		p.Sort = vals[0]
	}

	var err error
	if p.Page, err = singleInt(raw, "page", DefaultPage); err != nil {
		return nil, err
	}
	if p.Limit, err = singleInt(raw, "limit", DefaultLimit); err != nil {
		return nil, err
	}

	return p, nil
}

func isReserved(key string) bool {
	for _, r := range reservedParams {
		if r == key {
			return true
		}
	}
	return false
}

func singleInt(raw url.Values, key string, def int) (int, error) {
	vals, ok := raw[key]
	if !ok {
		return def, nil
	}
	if len(vals) != 1 {
		return 0, model.BadRequest("page and limit params must be strings")
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		return 0, model.BadRequest("%s query param must be an integer", key)
	}
	if n < 1 {
		return 0, model.BadRequest("%s query param must be positive", key)
	}
	return n, nil
}

func splitFields(s string) []string {
	parts := strings.Split(s, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if f := strings.TrimSpace(part); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
