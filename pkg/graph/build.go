package graph

import (
	"fmt"

	"github.com/atlasgraph/atlas/pkg/common"
	"github.com/atlasgraph/atlas/pkg/query"
	"github.com/atlasgraph/atlas/pkg/store"
	"github.com/atlasgraph/atlas/pkg/store/memory"
)

// Handle is an immutable, queryable snapshot of a built knowledge graph.
// Once BuildGraph returns, the underlying store is never written again,
// so a Handle is safe for concurrent readers without locking.
type Handle struct {
	store  *memory.MemoryGraphStore
	engine *query.Engine
}

// BuildGraph constructs a graph from extracted entities and relationships.
// Entities are inserted in order with last-write-wins semantics per ID;
// relationships referencing unknown endpoints are dropped and recorded as
// diagnostics rather than failing the build. The only build error is an
// entity without an ID.
func BuildGraph(entities []common.Entity, relationships []common.Relationship) (*Handle, error) {
	s := memory.NewMemoryGraphStore()

	for _, entity := range entities {
		if err := s.AddEntity(entity); err != nil {
			return nil, fmt.Errorf("failed to add entity %q: %w", entity.Label, err)
		}
	}
	for _, rel := range relationships {
		s.AddRelationship(rel)
	}

	return &Handle{
		store:  s,
		engine: query.NewEngine(s),
	}, nil
}

// BuildGraphFromPayload constructs a graph directly from an extraction payload.
func BuildGraphFromPayload(payload *common.ExtractionPayload) (*Handle, error) {
	if payload == nil {
		return BuildGraph(nil, nil)
	}
	return BuildGraph(payload.Entities, payload.Relationships)
}

// Stats returns aggregate counts over the graph.
func (h *Handle) Stats() store.Stats {
	return h.store.Stats()
}

// Query answers a natural language question against the graph.
func (h *Handle) Query(question string) *query.QueryResult {
	return h.engine.Query(question)
}

// FindByType lists all entities of a canonical type, sorted by connection
// count descending.
func (h *Handle) FindByType(entityType string) *query.QueryResult {
	return h.engine.FindByType(entityType)
}

// Nodes returns all entities in insertion order.
func (h *Handle) Nodes() []common.Entity {
	return h.store.Entities()
}

// Edges returns all surviving relationships, reconstructed from the store's
// adjacency in node insertion order.
func (h *Handle) Edges() []common.Relationship {
	var edges []common.Relationship
	for _, entity := range h.store.Entities() {
		for _, edge := range h.store.Successors(entity.ID) {
			edges = append(edges, common.Relationship{
				Source:     entity.ID,
				Target:     edge.ID,
				Type:       edge.Type,
				Properties: edge.Properties,
			})
		}
	}
	return edges
}

// Entity returns the stored entity for an ID.
func (h *Handle) Entity(id string) (common.Entity, bool) {
	return h.store.Entity(id)
}

// Diagnostics returns the relationships dropped during construction.
func (h *Handle) Diagnostics() []store.Diagnostic {
	return h.store.Diagnostics()
}
