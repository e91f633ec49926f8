package graph

import (
	"github.com/atlasgraph/atlas/pkg/common"
)

// payloadMerger accumulates extraction payloads from multiple units or files
// into one. Entities are deduplicated by ID and relationships by
// (source, target) pair; the first occurrence wins in both cases, matching
// the single edge slot per node pair in the store.
type payloadMerger struct {
	entities  []common.Entity
	relations []common.Relationship
	seenIDs   map[string]struct{}
	seenEdges map[[2]string]struct{}
}

func newPayloadMerger() *payloadMerger {
	return &payloadMerger{
		entities:  make([]common.Entity, 0),
		relations: make([]common.Relationship, 0),
		seenIDs:   make(map[string]struct{}),
		seenEdges: make(map[[2]string]struct{}),
	}
}

func (m *payloadMerger) add(p *common.ExtractionPayload) {
	if p == nil {
		return
	}

	for _, entity := range p.Entities {
		if entity.ID == "" {
			continue
		}
		if _, ok := m.seenIDs[entity.ID]; ok {
			continue
		}
		m.seenIDs[entity.ID] = struct{}{}
		m.entities = append(m.entities, entity)
	}

	for _, rel := range p.Relationships {
		key := [2]string{rel.Source, rel.Target}
		if _, ok := m.seenEdges[key]; ok {
			continue
		}
		m.seenEdges[key] = struct{}{}
		m.relations = append(m.relations, rel)
	}
}

func (m *payloadMerger) payload() *common.ExtractionPayload {
	return &common.ExtractionPayload{
		Entities:      m.entities,
		Relationships: m.relations,
	}
}
