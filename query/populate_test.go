package query

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dvinubius/bootcamp-backend/model"
)

func renderWithPopulation(entity string, sel []string) (string, map[string]interface{}) {
	schema := model.Schemas[entity]
	pipe := &Pipeline{}
	AppendPopulation(pipe, schema.Relations, sel)
	return pipe.Render(schema.Collection)
}

func TestLookupOneCardinality(t *testing.T) {
	aql, binds := renderWithPopulation("course", nil)

	if !strings.Contains(aql, "LET owner = FIRST(FOR rel IN accounts FILTER rel._key == doc.`owner` RETURN KEEP(rel, @v0))") {
		t.Errorf("missing single-valued lookup in:\n%s", aql)
	}
	// an unresolved single-valued relation drops from the output entirely
	if !strings.Contains(aql, "owner == null ? {} : { owner: owner }") {
		t.Errorf("missing conditional merge in:\n%s", aql)
	}

	want := []string{"_key", "name", "email"}
	if !reflect.DeepEqual(binds["v0"], want) {
		t.Errorf("lookup projection = %#v, want %v", binds["v0"], want)
	}
}

func TestLookupManyCardinality(t *testing.T) {
	aql, _ := renderWithPopulation("organization", nil)

	if !strings.Contains(aql, "LET courses = (FOR rel IN courses FILTER rel._key IN doc.`courses`") {
		t.Errorf("missing list-valued lookup in:\n%s", aql)
	}
	// an absent reference list always normalizes to [], so the merge is
	// unconditional
	if !strings.Contains(aql, "{ courses: courses }") {
		t.Errorf("missing unconditional merge in:\n%s", aql)
	}
	if !strings.Contains(aql, "{ participants: participants }") {
		t.Errorf("missing participants merge in:\n%s", aql)
	}
}

func TestLookupProjectionStaysInsideAllowList(t *testing.T) {
	_, binds := renderWithPopulation("organization", nil)

	for name, v := range binds {
		fields, ok := v.([]string)
		if !ok {
			t.Fatalf("bind %s is %#v, expected a field list", name, v)
		}
		for _, f := range fields {
			switch f {
			case "_key", "name", "email", "title", "description":
			default:
				t.Errorf("field %q leaked outside the relation allow-lists", f)
			}
		}
	}
}

func TestPopulationSkippedWhenSelectOmitsRelation(t *testing.T) {
	aql, _ := renderWithPopulation("organization", []string{"name", "courses"})

	if !strings.Contains(aql, "LET courses") {
		t.Errorf("selected relation must still populate:\n%s", aql)
	}
	if strings.Contains(aql, "LET owner") || strings.Contains(aql, "LET participants") {
		t.Errorf("relations omitted by the selection must not populate:\n%s", aql)
	}
}
