package store

import (
	"errors"

	"github.com/atlasgraph/atlas/pkg/common"
)

// ErrMissingEntityID is returned when an entity without an ID is added to
// the store. A missing ID means the upstream payload is fundamentally
// malformed, so this is the one ingestion failure that surfaces to the
// caller instead of being recorded as a diagnostic.
var ErrMissingEntityID = errors.New("entity has no id")

// DropReason explains why a relationship was not inserted into the graph.
type DropReason string

const (
	DropMissingSource DropReason = "missing_source"
	DropMissingTarget DropReason = "missing_target"
)

// Diagnostic records a relationship that was dropped during ingestion.
// Dangling endpoints are a data-quality problem of the upstream extractor,
// not an error: the graph is built from whatever survives.
type Diagnostic struct {
	Relationship common.Relationship `json:"relationship"`
	Reason       DropReason          `json:"reason"`
}

// Edge is one traversal step from a node: the neighbor reached, the
// relationship type of the connecting edge, and the edge's property bag.
type Edge struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Stats aggregates structural information about the graph.
type Stats struct {
	TotalNodes           int            `json:"total_nodes"`
	TotalEdges           int            `json:"total_edges"`
	NodeTypes            map[string]int `json:"node_types"`
	RelationshipTypes    map[string]int `json:"relationship_types"`
	ConnectedComponents  int            `json:"connected_components"`
	DroppedRelationships int            `json:"dropped_relationships"`
}

// GraphStore holds a directed property graph of entities and relationships.
//
// Implementations are write-once: a store is populated during graph
// construction and read-only afterwards, which makes it safe for
// concurrent readers without locking.
type GraphStore interface {
	// AddEntity inserts or overwrites a node. Re-adding an ID replaces
	// the previous entity wholesale (last write wins, no merge).
	AddEntity(entity common.Entity) error

	// AddRelationship inserts an edge when both endpoints exist as nodes.
	// A relationship referencing a missing endpoint is dropped and
	// recorded as a Diagnostic; it never fails.
	AddRelationship(rel common.Relationship) *Diagnostic

	// Entity returns the stored entity for an ID.
	Entity(id string) (common.Entity, bool)

	// Entities returns all entities in insertion order.
	Entities() []common.Entity

	// Successors returns the outbound edges of a node keyed by traversal
	// step, Predecessors the inbound ones.
	Successors(id string) []Edge
	Predecessors(id string) []Edge

	// Degree returns the number of outbound plus inbound edges of a node.
	Degree(id string) int

	// Diagnostics returns the relationships dropped during ingestion.
	Diagnostics() []Diagnostic

	// Stats computes aggregate counts over the current graph.
	Stats() Stats
}
