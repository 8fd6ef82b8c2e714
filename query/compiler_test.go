package query

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/dvinubius/bootcamp-backend/model"
)

func compileRaw(t *testing.T, entity string, raw url.Values) (string, map[string]interface{}) {
	t.Helper()
	params, err := ParseParams(raw)
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	schema := model.Schemas[entity]
	pipe, err := Compile(params, schema)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return pipe.Render(schema.Collection)
}

func TestCompileConditionOperators(t *testing.T) {
	cases := []struct {
		key, val string
		want     Condition
	}{
		{"housing", "true", Condition{Field: "housing", Op: "eq", Value: "true"}},
		{"averageCost[lte]", "10000", Condition{Field: "averageCost", Op: "lte", Value: 10000.0}},
		{"tuition[gt]", "4000", Condition{Field: "tuition", Op: "gt", Value: 4000.0}},
		{"careers[in]", "Business,UI/UX", Condition{Field: "careers", Op: "in", Value: []interface{}{"Business", "UI/UX"}}},
		{"location[city]", "Boston", Condition{Field: "location.city", Op: "eq", Value: "Boston"}},
	}
	for _, tc := range cases {
		got := compileCondition(tc.key, tc.val)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("compileCondition(%q, %q) = %+v, want %+v", tc.key, tc.val, got, tc.want)
		}
	}
}

func TestNumericCoercionAllowList(t *testing.T) {
	// numeric allow-listed field under an operator becomes a number
	if got := coerce("rating", "8"); got != 8.0 {
		t.Errorf("rating should coerce to float, got %#v", got)
	}
	// fields outside the allow-list stay strings even when numeric-looking
	if got := coerce("name", "42"); got != "42" {
		t.Errorf("name should stay a string, got %#v", got)
	}
	// unparsable values stay strings
	if got := coerce("tuition", "cheap"); got != "cheap" {
		t.Errorf("unparsable value should stay a string, got %#v", got)
	}
}

func TestRenderFilterAndSort(t *testing.T) {
	raw := url.Values{
		"averageCost[lte]": {"10000"},
		"sort":             {"-averageCost,name"},
	}
	aql, binds := compileRaw(t, "organization", raw)

	if !strings.HasPrefix(aql, "FOR doc IN organizations") {
		t.Errorf("unexpected query head: %q", aql)
	}
	if !strings.Contains(aql, "FILTER doc.`averageCost` <= @v0") {
		t.Errorf("missing comparison filter in:\n%s", aql)
	}
	if binds["v0"] != 10000.0 {
		t.Errorf("expected coerced bind value, got %#v", binds["v0"])
	}
	if !strings.Contains(aql, "SORT doc.`averageCost` DESC, doc.`name` ASC") {
		t.Errorf("missing sort clause in:\n%s", aql)
	}
	if !strings.Contains(aql, "LIMIT 0, 100") {
		t.Errorf("missing default page clause in:\n%s", aql)
	}
}

func TestRenderInFilter(t *testing.T) {
	raw := url.Values{"careers[in]": {"Business"}}
	aql, binds := compileRaw(t, "organization", raw)

	if !strings.Contains(aql, "IS_LIST(doc.`careers`)") || !strings.Contains(aql, "INTERSECTION(doc.`careers`, @v0)") {
		t.Errorf("missing list-aware IN filter in:\n%s", aql)
	}
	want := []interface{}{"Business"}
	if !reflect.DeepEqual(binds["v0"], want) {
		t.Errorf("expected %v bind, got %#v", want, binds["v0"])
	}
}

func TestRenderSelectKeepsKey(t *testing.T) {
	raw := url.Values{"select": {"name,description"}}
	aql, binds := compileRaw(t, "organization", raw)

	if !strings.Contains(aql, "KEEP(doc, @v0)") {
		t.Errorf("missing projection in:\n%s", aql)
	}
	fields, ok := binds["v0"].([]string)
	if !ok || len(fields) != 3 || fields[0] != "_key" {
		t.Errorf("projection must include _key first, got %#v", binds["v0"])
	}
}

func TestParseSortKeys(t *testing.T) {
	keys := parseSortKeys("-averageCost, name,")
	want := []sortKey{{Field: "averageCost", Desc: true}, {Field: "name"}}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("parseSortKeys = %+v, want %+v", keys, want)
	}
}

func TestDocAttrQuoting(t *testing.T) {
	if got := docAttr("organization._key"); got != "doc.`organization`.`_key`" {
		t.Errorf("unexpected attribute expression: %q", got)
	}
	// backticks in request-supplied names are stripped, not rendered
	if got := docAttr("na`me"); got != "doc.`name`" {
		t.Errorf("expected quoting-safe expression, got %q", got)
	}
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		next, prev  *model.Page
	}{
		{2, 10, 25, &model.Page{Page: 3, Limit: 10}, &model.Page{Page: 1, Limit: 10}},
		{1, 10, 25, &model.Page{Page: 2, Limit: 10}, nil},
		{3, 10, 25, nil, &model.Page{Page: 2, Limit: 10}},
		{1, 10, 5, nil, nil},
		{1, 10, 10, nil, nil},
	}
	for _, tc := range cases {
		pg := Paginate(tc.page, tc.limit, tc.total)
		if !reflect.DeepEqual(pg.Next, tc.next) {
			t.Errorf("page %d/%d of %d: next = %+v, want %+v", tc.page, tc.limit, tc.total, pg.Next, tc.next)
		}
		if !reflect.DeepEqual(pg.Prev, tc.prev) {
			t.Errorf("page %d/%d of %d: prev = %+v, want %+v", tc.page, tc.limit, tc.total, pg.Prev, tc.prev)
		}
	}
}
