package query

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dvinubius/bootcamp-backend/model"
)

// Stage is one step of a compiled pipeline. Stages are applied in order onto
// the AQL builder; the final query is rendered in a single pass.
type Stage interface {
	apply(b *aqlBuilder)
}

// Pipeline is the ordered stage list produced by Compile, plus the pagination
// inputs needed to build the response envelope.
type Pipeline struct {
	Stages []Stage
	Page   int
	Limit  int
}

// Render translates the pipeline into one AQL query over the collection.
func (p *Pipeline) Render(collection string) (string, map[string]interface{}) {
	b := newAqlBuilder()
	for _, s := range p.Stages {
		s.apply(b)
	}
	return b.render(collection), b.binds
}

// Comparison operator tokens recognized inside filter keys, mapped to their
// AQL form.
var operatorAQL = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

var filterKeyRe = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]$`)

// Compile turns parsed listing parameters into the match/select/sort/page
// stage list for the entity. Population stages are appended separately by the
// planner.
func Compile(p *Params, schema model.EntitySchema) (*Pipeline, error) {
	pipe := &Pipeline{Page: p.Page, Limit: p.Limit}

	match := &MatchStage{}
	// deterministic stage content regardless of map iteration order
	keys := make([]string, 0, len(p.Filter))
	for k := range p.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, val := range p.Filter[key] {
			match.Conditions = append(match.Conditions, compileCondition(key, val))
		}
	}
	pipe.Stages = append(pipe.Stages, match)

	if p.Select != nil {
		pipe.Stages = append(pipe.Stages, &SelectStage{Fields: p.Select})
	}

	pipe.Stages = append(pipe.Stages, &SortStage{Keys: parseSortKeys(p.Sort)})
	pipe.Stages = append(pipe.Stages, &PageStage{Skip: p.Skip(), Limit: p.Limit})

	return pipe, nil
}

// Condition is a single filter term: attribute, operator, value. Op is one of
// eq, gt, gte, lt, lte, in.
type Condition struct {
	Field string
	Op    string
	Value interface{}
}

// compileCondition rewrites one raw filter pair. A key of the form field[op]
// with a recognized operator token becomes a comparison; any other bracketed
// key collapses to a dotted attribute path matched by equality. Values of
// numeric allow-listed fields are coerced under operators.
func compileCondition(key, val string) Condition {
	if m := filterKeyRe.FindStringSubmatch(key); m != nil {
		field, op := m[1], m[2]
		if _, ok := operatorAQL[op]; ok {
			return Condition{Field: field, Op: op, Value: coerce(field, val)}
		}
		if op == "in" {
			return Condition{Field: field, Op: "in", Value: coerceList(field, val)}
		}
		return Condition{Field: field + "." + op, Op: "eq", Value: val}
	}
	return Condition{Field: key, Op: "eq", Value: val}
}

// coerce converts the value to a number when the field is in the numeric
// allow-list. Values that do not parse are left as strings.
func coerce(field, val string) interface{} {
	if !model.IsNumericFilterField(field) {
		return val
	}
	n, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return val
	}
	return n
}

func coerceList(field, val string) []interface{} {
	parts := strings.Split(val, ",")
	out := make([]interface{}, 0, len(parts))
	for _, part := range parts {
		out = append(out, coerce(field, strings.TrimSpace(part)))
	}
	return out
}

// MatchStage filters the collection scan.
type MatchStage struct {
	Conditions []Condition
}

func (s *MatchStage) apply(b *aqlBuilder) {
	for _, c := range s.Conditions {
		attr := docAttr(c.Field)
		switch c.Op {
		case "eq":
			b.filter(fmt.Sprintf("%s == %s", attr, b.bind(c.Value)))
		case "in":
			// mirrors document-store IN semantics: scalar membership, or a
			// non-empty intersection when the stored attribute is a list
			v := b.bind(c.Value)
			b.filter(fmt.Sprintf("(IS_LIST(%s) ? LENGTH(INTERSECTION(%s, %s)) > 0 : %s IN %s)", attr, attr, v, attr, v))
		default:
			b.filter(fmt.Sprintf("%s %s %s", attr, operatorAQL[c.Op], b.bind(c.Value)))
		}
	}
}

// RawFilterStage injects a pre-built filter expression with its own named bind
// vars. Callers must pick names outside the compiler's v<N> range.
type RawFilterStage struct {
	Expr  string
	Binds map[string]interface{}
}

func (s *RawFilterStage) apply(b *aqlBuilder) {
	for k, v := range s.Binds {
		b.binds[k] = v
	}
	b.filter(s.Expr)
}

// SelectStage restricts output to the selected fields. The identifier is
// always included.
type SelectStage struct {
	Fields []string
}

func (s *SelectStage) apply(b *aqlBuilder) {
	fields := append([]string{"_key"}, s.Fields...)
	b.base = fmt.Sprintf("KEEP(doc, %s)", b.bind(fields))
}

// sortKey is one sort term; a leading '-' in the request marks it descending.
type sortKey struct {
	Field string
	Desc  bool
}

func parseSortKeys(s string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			keys = append(keys, sortKey{Field: part[1:], Desc: true})
		} else {
			keys = append(keys, sortKey{Field: part})
		}
	}
	return keys
}

// SortStage orders the results. Sort fields are not validated; an unknown
// field sorts by a missing attribute, which the engine orders first.
type SortStage struct {
	Keys []sortKey
}

func (s *SortStage) apply(b *aqlBuilder) {
	terms := make([]string, 0, len(s.Keys))
	for _, k := range s.Keys {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		terms = append(terms, docAttr(k.Field)+" "+dir)
	}
	if len(terms) > 0 {
		b.sortExpr = "SORT " + strings.Join(terms, ", ")
	}
}

// PageStage applies skip/limit.
type PageStage struct {
	Skip  int
	Limit int
}

func (s *PageStage) apply(b *aqlBuilder) {
	b.limitExpr = fmt.Sprintf("LIMIT %d, %d", s.Skip, s.Limit)
}

// Paginate builds the next/prev descriptors for the envelope. Per the source
// behavior the total is the unfiltered collection count.
func Paginate(page, limit int, total int64) model.Pagination {
	skip := (page - 1) * limit
	var pg model.Pagination
	if int64(skip+limit) < total {
		pg.Next = &model.Page{Page: page + 1, Limit: limit}
	}
	if skip > 0 {
		pg.Prev = &model.Page{Page: page - 1, Limit: limit}
	}
	return pg
}

// docAttr renders a safe attribute access on the iterated document. Dotted
// names traverse nested attributes; each segment is backtick-quoted so request
// supplied names stay inside the attribute position.
func docAttr(field string) string {
	expr := "doc"
	for _, part := range strings.Split(field, ".") {
		expr += ".`" + strings.ReplaceAll(part, "`", "") + "`"
	}
	return expr
}

// aqlBuilder accumulates the pieces of the final query while stages apply in
// order.
type aqlBuilder struct {
	filters   []string
	sortExpr  string
	limitExpr string
	lets      []string
	merges    []string
	base      string
	binds     map[string]interface{}
	n         int
}

func newAqlBuilder() *aqlBuilder {
	return &aqlBuilder{base: "doc", binds: map[string]interface{}{}}
}

func (b *aqlBuilder) bind(v interface{}) string {
	name := fmt.Sprintf("v%d", b.n)
	b.n++
	b.binds[name] = v
	return "@" + name
}

func (b *aqlBuilder) filter(cond string) {
	b.filters = append(b.filters, cond)
}

func (b *aqlBuilder) render(collection string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FOR doc IN %s\n", collection)
	for _, f := range b.filters {
		fmt.Fprintf(&sb, "    FILTER %s\n", f)
	}
	if b.sortExpr != "" {
		fmt.Fprintf(&sb, "    %s\n", b.sortExpr)
	}
	if b.limitExpr != "" {
		fmt.Fprintf(&sb, "    %s\n", b.limitExpr)
	}
	for _, l := range b.lets {
		fmt.Fprintf(&sb, "    %s\n", l)
	}
	if len(b.merges) == 0 {
		fmt.Fprintf(&sb, "    RETURN %s", b.base)
	} else {
		fmt.Fprintf(&sb, "    RETURN MERGE(%s, %s)", b.base, strings.Join(b.merges, ", "))
	}
	return sb.String()
}
