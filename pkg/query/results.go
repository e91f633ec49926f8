package query

import "github.com/atlasgraph/atlas/pkg/common"

// QueryResult is the tagged result of a natural-language query. QueryType
// names the intent that was matched; Results holds the intent-specific
// payload. Suggestions is only set for the "unknown" intent.
//
// A miss (entity not found, nothing matched) is itself a valid result
// carried as a Notice; handlers never fail.
type QueryResult struct {
	QueryType   string   `json:"query_type"`
	Entity      string   `json:"entity,omitempty"`
	Results     any      `json:"results"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Notice is a typed "nothing to report" payload: Error when the target
// could not be resolved, Result for an informational empty answer.
type Notice struct {
	Error  string `json:"error,omitempty"`
	Result string `json:"result,omitempty"`
}

// Manager is one answer row of a who_manages query.
type Manager struct {
	Manager           string         `json:"manager"`
	ManagerType       string         `json:"manager_type"`
	Relationship      string         `json:"relationship"`
	ManagerID         string         `json:"manager_id"`
	ManagerProperties map[string]any `json:"manager_properties,omitempty"`
}

// ManagedItem is one answer row of a what_manages query.
type ManagedItem struct {
	Item           string         `json:"item"`
	ItemType       string         `json:"item_type"`
	Relationship   string         `json:"relationship"`
	ItemID         string         `json:"item_id"`
	ItemProperties map[string]any `json:"item_properties,omitempty"`
}

// DependencyItem is one edge of a dependency report, in either direction.
type DependencyItem struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Relationship string         `json:"relationship"`
	ID           string         `json:"id"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// DependencyReport is the two-sided answer of a dependencies query. Both
// lists are always present, even when empty.
type DependencyReport struct {
	Entity            string           `json:"entity"`
	EntityType        string           `json:"entity_type"`
	DependsOn         []DependencyItem `json:"depends_on"`
	Dependents        []DependencyItem `json:"dependents"`
	TotalDependencies int              `json:"total_dependencies"`
	TotalDependents   int              `json:"total_dependents"`
}

// LocationItem is one answer row of a by_location query.
type LocationItem struct {
	Item         string         `json:"item"`
	ItemType     string         `json:"item_type"`
	ItemID       string         `json:"item_id"`
	Relationship string         `json:"relationship"`
	Properties   map[string]any `json:"properties,omitempty"`
}

// TypedEntity is one answer row of a by_type query. Connections is the
// total degree of the entity; rows are sorted by it descending so the
// most connected entities surface first.
type TypedEntity struct {
	Item        string         `json:"item"`
	ItemType    string         `json:"item_type"`
	ItemID      string         `json:"item_id"`
	Properties  map[string]any `json:"properties,omitempty"`
	Connections int            `json:"connections"`
}

// ChainMember is one person in a reporting chain.
type ChainMember struct {
	Person     string         `json:"person"`
	PersonType string         `json:"person_type"`
	PersonID   string         `json:"person_id"`
	Properties map[string]any `json:"properties,omitempty"`
}

// ReportingChain is the answer of a reporting_chain query: the upward
// chain of reports_to hops and the direct reports one level down.
type ReportingChain struct {
	Person        string        `json:"person"`
	ReportsTo     []ChainMember `json:"reports_to"`
	DirectReports []ChainMember `json:"direct_reports"`
	ChainLength   int           `json:"chain_length"`
	TeamSize      int           `json:"team_size"`
}

// RelationSummary describes one edge of an entity in an entity_info
// answer.
type RelationSummary struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Type         string `json:"type"`
	Relationship string `json:"relationship"`
}

// EntityInfo is the full picture of a single entity: its record plus all
// incoming and outgoing relationships.
type EntityInfo struct {
	Entity           common.Entity     `json:"entity"`
	Outgoing         []RelationSummary `json:"outgoing_relationships"`
	Incoming         []RelationSummary `json:"incoming_relationships"`
	TotalConnections int               `json:"total_connections"`
}
