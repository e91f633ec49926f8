package index

import (
	"strings"

	"github.com/atlasgraph/atlas/pkg/common"
)

// EntityIndex resolves free-text names to entity IDs and groups entities
// by type. It is built once from the full entity list and read-only
// afterwards.
//
// Name resolution is deliberately permissive: questions use informal
// phrasing ("the web server" vs "Web Server 01"), so a miss on the exact
// name falls back to substring and then word-overlap matching. Tie-breaks
// always go to the first-indexed entity, which keeps resolution
// deterministic.
type EntityIndex struct {
	byName map[string]string
	names  []string

	byType    map[string][]string
	typeOrder []string
}

// Build constructs an index over the given entities. Labels are
// lowercased for the name map; entities sharing a lowercased label keep
// the first one indexed.
func Build(entities []common.Entity) *EntityIndex {
	idx := &EntityIndex{
		byName: make(map[string]string, len(entities)),
		names:  make([]string, 0, len(entities)),
		byType: make(map[string][]string),
	}

	for _, entity := range entities {
		name := strings.ToLower(entity.Label)
		if _, exists := idx.byName[name]; !exists {
			idx.byName[name] = entity.ID
			idx.names = append(idx.names, name)
		}

		entityType := entity.TypeOrUnknown()
		if _, exists := idx.byType[entityType]; !exists {
			idx.typeOrder = append(idx.typeOrder, entityType)
		}
		idx.byType[entityType] = append(idx.byType[entityType], entity.ID)
	}

	return idx
}

// Resolve maps a free-text name to an entity ID. Matching runs in three
// tiers, each strictly more permissive than the last:
//
//  1. exact match on the lowercased name
//  2. substring match in either direction
//  3. at least one shared word
//
// A later tier only runs when all earlier tiers miss. Returns ok=false
// when nothing matches.
func (idx *EntityIndex) Resolve(name string) (string, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return "", false
	}

	if id, ok := idx.byName[query]; ok {
		return id, true
	}

	for _, indexed := range idx.names {
		if strings.Contains(indexed, query) || strings.Contains(query, indexed) {
			return idx.byName[indexed], true
		}
	}

	queryWords := strings.Fields(query)
	for _, indexed := range idx.names {
		indexedWords := strings.Fields(indexed)
		for _, word := range queryWords {
			for _, indexedWord := range indexedWords {
				if word == indexedWord {
					return idx.byName[indexed], true
				}
			}
		}
	}

	return "", false
}

// ByType returns the IDs of all entities with the given type, in index
// order. Matching is case-insensitive and allows substring containment in
// either direction ("server" matches a stored "servers" type and vice
// versa).
func (idx *EntityIndex) ByType(entityType string) []string {
	query := strings.ToLower(strings.TrimSpace(entityType))
	if query == "" {
		return nil
	}

	var ids []string
	for _, storedType := range idx.typeOrder {
		stored := strings.ToLower(storedType)
		if stored == query || strings.Contains(stored, query) || strings.Contains(query, stored) {
			ids = append(ids, idx.byType[storedType]...)
		}
	}
	return ids
}

// Types returns all indexed entity types in first-seen order.
func (idx *EntityIndex) Types() []string {
	return idx.typeOrder
}
