package model

// Cardinality tells the population planner whether a relation is stored as a
// single reference or a reference list. The distinction drives how an absent
// relation is normalized: single-valued relations are dropped, list-valued
// relations become an empty array.
type Cardinality int

// Relation cardinalities.
const (
	One Cardinality = iota
	Many
)

// Relation declares one populatable path of an entity: the attribute holding
// the reference(s), the collection it resolves against, and the field subset
// that may be merged into the parent document. Fields not listed here never
// appear in populated output.
type Relation struct {
	Name        string
	Collection  string
	Fields      []string
	Cardinality Cardinality
}

// EntitySchema describes one entity type for the query compiler and the
// population planner.
type EntitySchema struct {
	Collection string
	Relations  []Relation
}

// Collection names.
const (
	ColOrganizations = "organizations"
	ColCourses       = "courses"
	ColReviews       = "reviews"
	ColAccounts      = "accounts"
)

// Schemas is the single static schema table. Compiler, planner and the
// consistency services all read relation and allow-list data from here so the
// lists cannot diverge.
var Schemas = map[string]EntitySchema{
	"organization": {
		Collection: ColOrganizations,
		Relations: []Relation{
			{Name: "courses", Collection: ColCourses, Fields: []string{"title", "description"}, Cardinality: Many},
			{Name: "owner", Collection: ColAccounts, Fields: []string{"name", "email"}, Cardinality: One},
			{Name: "participants", Collection: ColAccounts, Fields: []string{"name", "email"}, Cardinality: Many},
		},
	},
	"course": {
		Collection: ColCourses,
		Relations: []Relation{
			{Name: "owner", Collection: ColAccounts, Fields: []string{"name", "email"}, Cardinality: One},
		},
	},
	"review": {
		Collection: ColReviews,
		Relations: []Relation{
			{Name: "author", Collection: ColAccounts, Fields: []string{"name", "email"}, Cardinality: One},
		},
	},
	"account": {
		Collection: ColAccounts,
	},
}

// Allow-lists for the organization snapshots embedded in other entities.
// A field outside these lists never propagates anywhere.
var (
	CourseOrganizationFields        = []string{"name", "slug"}
	ReviewOrganizationFields        = []string{"name"}
	AccountOwnedOrganizationFields  = []string{"name", "description", "averageRating"}
	AccountJoinedOrganizationFields = []string{"name", "description"}
)

// NumericFilterFields are the only request filter keys whose values are coerced
// from string to number before compilation.
var NumericFilterFields = []string{"tuition", "weeks", "rating", "averageRating", "averageCost"}

// IsNumericFilterField reports whether values of the given filter key are
// coerced to numbers.
func IsNumericFilterField(name string) bool {
	for _, f := range NumericFilterFields {
		if f == name {
			return true
		}
	}
	return false
}
