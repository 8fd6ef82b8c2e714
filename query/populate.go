package query

import (
	"fmt"

	"github.com/dvinubius/bootcamp-backend/model"
)

// LookupStage resolves one declared relation: a subquery against the target
// collection, narrowed to the allow-listed fields, merged back onto the parent
// under the relation name.
//
// Single-valued relations drop from the output when the reference does not
// resolve; list-valued relations normalize to an empty array. Which of the two
// applies comes from the schema's cardinality flag, never from the runtime
// shape of the stored value.
type LookupStage struct {
	Relation model.Relation
}

func (s *LookupStage) apply(b *aqlBuilder) {
	rel := s.Relation
	name := rel.Name
	attr := docAttr(name)
	fields := append([]string{"_key"}, rel.Fields...)
	keep := b.bind(fields)

	switch rel.Cardinality {
	case model.One:
		b.lets = append(b.lets, fmt.Sprintf(
			"LET %s = FIRST(FOR rel IN %s FILTER rel._key == %s RETURN KEEP(rel, %s))",
			name, rel.Collection, attr, keep))
		b.merges = append(b.merges, fmt.Sprintf("%s == null ? {} : { %s: %s }", name, name, name))
	default:
		b.lets = append(b.lets, fmt.Sprintf(
			"LET %s = (FOR rel IN %s FILTER rel._key IN %s RETURN KEEP(rel, %s))",
			name, rel.Collection, attr, keep))
		b.merges = append(b.merges, fmt.Sprintf("{ %s: %s }", name, name))
	}
}

// AppendPopulation plans the population stages for the entity's relations and
// appends them to the pipeline. A relation is skipped when an active field
// selection omits it.
func AppendPopulation(pipe *Pipeline, relations []model.Relation, sel []string) {
	for _, rel := range relations {
		if sel != nil && !containsField(sel, rel.Name) {
			continue
		}
		pipe.Stages = append(pipe.Stages, &LookupStage{Relation: rel})
	}
}

func containsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
