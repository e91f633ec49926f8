package query

import "strings"

// Category is a semantic grouping of raw relationship-type strings.
// Queries never match on raw types directly; they ask for a category and
// accept every member type. A relationship type outside the taxonomy
// belongs to no category and is only reachable through direct
// type-equality lookups.
type Category string

const (
	CategoryManagement Category = "management"
	CategoryDependency Category = "dependency"
	CategoryLocation   Category = "location"
	CategoryHierarchy  Category = "hierarchy"
)

// The taxonomy is fixed. It mirrors the relationship vocabulary the
// extraction prompt asks for, so extending one means extending the other.
var categoryMembers = map[Category][]string{
	CategoryManagement: {"manages", "owns", "administers", "supervises", "controls"},
	CategoryDependency: {"depends_on", "requires", "uses", "connects_to", "runs_on"},
	CategoryLocation:   {"located_in", "hosted_in", "deployed_in"},
	CategoryHierarchy:  {"reports_to"},
}

var categoryByType = func() map[string]Category {
	m := make(map[string]Category)
	for category, members := range categoryMembers {
		for _, member := range members {
			m[member] = category
		}
	}
	return m
}()

// Classify maps a raw relationship-type string onto its semantic
// category. Matching is case-insensitive. Returns ok=false for types
// outside the taxonomy.
func Classify(relType string) (Category, bool) {
	category, ok := categoryByType[strings.ToLower(strings.TrimSpace(relType))]
	return category, ok
}

// InCategory reports whether a raw relationship type belongs to the given
// category.
func InCategory(relType string, category Category) bool {
	got, ok := Classify(relType)
	return ok && got == category
}
