package query

import (
	"net/url"
	"strings"
	"testing"

	"github.com/dvinubius/bootcamp-backend/model"
)

func TestTotalCountIsCollectionWide(t *testing.T) {
	got := countQuery("organizations")
	if got != "RETURN LENGTH(organizations)" {
		t.Fatalf("unexpected count query: %q", got)
	}
}

func TestTotalCountIgnoresActiveFilter(t *testing.T) {
	raw := url.Values{"averageCost[lte]": {"10000"}, "housing": {"true"}}
	params, err := ParseParams(raw)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	schema := model.Schemas["organization"]
	pipe, err := Compile(params, schema)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	listQuery, _ := pipe.Render(schema.Collection)
	if !strings.Contains(listQuery, "FILTER") {
		t.Fatalf("expected the list query to filter, got %q", listQuery)
	}
	if strings.Contains(countQuery("organizations"), "FILTER") {
		t.Fatal("count query must not carry the list filter")
	}
}
