package memory

import (
	"github.com/atlasgraph/atlas/pkg/common"
	"github.com/atlasgraph/atlas/pkg/store"
)

// MemoryGraphStore is an in-memory store.GraphStore implementation.
//
// Nodes keep their insertion order so that queries and rendering are
// deterministic. Edges are stored as adjacency maps in both directions;
// a (source, target) pair holds at most one edge, later relationships
// between the same pair overwrite earlier ones.
type MemoryGraphStore struct {
	entities map[string]common.Entity
	order    []string

	outgoing map[string]map[string]edgeData
	incoming map[string]map[string]edgeData
	outOrder map[string][]string
	inOrder  map[string][]string

	diagnostics []store.Diagnostic
}

type edgeData struct {
	relType    string
	properties map[string]any
}

// NewMemoryGraphStore creates an empty in-memory graph store.
func NewMemoryGraphStore() *MemoryGraphStore {
	return &MemoryGraphStore{
		entities: make(map[string]common.Entity),
		outgoing: make(map[string]map[string]edgeData),
		incoming: make(map[string]map[string]edgeData),
		outOrder: make(map[string][]string),
		inOrder:  make(map[string][]string),
	}
}

// AddEntity inserts or overwrites a node. The entity type defaults to
// "unknown" when absent. Existing edges of an overwritten node are kept.
func (s *MemoryGraphStore) AddEntity(entity common.Entity) error {
	if entity.ID == "" {
		return store.ErrMissingEntityID
	}

	entity.Type = entity.TypeOrUnknown()
	if entity.Label == "" {
		entity.Label = entity.ID
	}

	if _, exists := s.entities[entity.ID]; !exists {
		s.order = append(s.order, entity.ID)
	}
	s.entities[entity.ID] = entity
	return nil
}

// AddRelationship inserts an edge when both endpoints exist. A dangling
// relationship is dropped and recorded, never raised.
func (s *MemoryGraphStore) AddRelationship(rel common.Relationship) *store.Diagnostic {
	if _, ok := s.entities[rel.Source]; !ok {
		d := store.Diagnostic{Relationship: rel, Reason: store.DropMissingSource}
		s.diagnostics = append(s.diagnostics, d)
		return &d
	}
	if _, ok := s.entities[rel.Target]; !ok {
		d := store.Diagnostic{Relationship: rel, Reason: store.DropMissingTarget}
		s.diagnostics = append(s.diagnostics, d)
		return &d
	}

	data := edgeData{relType: rel.Type, properties: rel.Properties}

	if s.outgoing[rel.Source] == nil {
		s.outgoing[rel.Source] = make(map[string]edgeData)
	}
	if _, exists := s.outgoing[rel.Source][rel.Target]; !exists {
		s.outOrder[rel.Source] = append(s.outOrder[rel.Source], rel.Target)
	}
	s.outgoing[rel.Source][rel.Target] = data

	if s.incoming[rel.Target] == nil {
		s.incoming[rel.Target] = make(map[string]edgeData)
	}
	if _, exists := s.incoming[rel.Target][rel.Source]; !exists {
		s.inOrder[rel.Target] = append(s.inOrder[rel.Target], rel.Source)
	}
	s.incoming[rel.Target][rel.Source] = data

	return nil
}

// Entity returns the stored entity for an ID.
func (s *MemoryGraphStore) Entity(id string) (common.Entity, bool) {
	entity, ok := s.entities[id]
	return entity, ok
}

// Entities returns all entities in insertion order.
func (s *MemoryGraphStore) Entities() []common.Entity {
	result := make([]common.Entity, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.entities[id])
	}
	return result
}

// Successors returns the outbound edges of a node in insertion order.
func (s *MemoryGraphStore) Successors(id string) []store.Edge {
	return collectEdges(s.outgoing[id], s.outOrder[id])
}

// Predecessors returns the inbound edges of a node in insertion order.
func (s *MemoryGraphStore) Predecessors(id string) []store.Edge {
	return collectEdges(s.incoming[id], s.inOrder[id])
}

func collectEdges(edges map[string]edgeData, order []string) []store.Edge {
	result := make([]store.Edge, 0, len(order))
	for _, neighbor := range order {
		data := edges[neighbor]
		result = append(result, store.Edge{
			ID:         neighbor,
			Type:       data.relType,
			Properties: data.properties,
		})
	}
	return result
}

// Degree returns the total number of edges touching a node.
func (s *MemoryGraphStore) Degree(id string) int {
	return len(s.outgoing[id]) + len(s.incoming[id])
}

// Diagnostics returns the relationships dropped during ingestion.
func (s *MemoryGraphStore) Diagnostics() []store.Diagnostic {
	return s.diagnostics
}

// Stats computes aggregate counts over the current graph. The component
// count treats the graph as undirected: two nodes are in the same
// component when one reaches the other ignoring edge direction.
func (s *MemoryGraphStore) Stats() store.Stats {
	stats := store.Stats{
		TotalNodes:           len(s.entities),
		NodeTypes:            make(map[string]int),
		RelationshipTypes:    make(map[string]int),
		DroppedRelationships: len(s.diagnostics),
	}

	for _, id := range s.order {
		stats.NodeTypes[s.entities[id].Type]++
	}

	for _, source := range s.order {
		for _, target := range s.outOrder[source] {
			stats.TotalEdges++
			stats.RelationshipTypes[s.outgoing[source][target].relType]++
		}
	}

	stats.ConnectedComponents = s.countComponents()
	return stats
}

func (s *MemoryGraphStore) countComponents() int {
	visited := make(map[string]bool, len(s.entities))
	components := 0

	for _, start := range s.order {
		if visited[start] {
			continue
		}
		components++

		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, neighbor := range s.outOrder[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
			for _, neighbor := range s.inOrder[current] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
	}

	return components
}
