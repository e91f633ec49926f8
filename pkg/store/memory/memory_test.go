package memory

import (
	"reflect"
	"testing"

	"github.com/atlasgraph/atlas/pkg/common"
	"github.com/atlasgraph/atlas/pkg/store"
)

func TestAddEntity_MissingID(t *testing.T) {
	s := NewMemoryGraphStore()
	err := s.AddEntity(common.Entity{Label: "No ID"})
	if err != store.ErrMissingEntityID {
		t.Fatalf("expected ErrMissingEntityID, got %v", err)
	}
}

func TestAddEntity_Defaults(t *testing.T) {
	s := NewMemoryGraphStore()
	if err := s.AddEntity(common.Entity{ID: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entity, ok := s.Entity("a")
	if !ok {
		t.Fatal("entity not found after insert")
	}
	if entity.Type != "unknown" {
		t.Fatalf("expected type 'unknown', got %q", entity.Type)
	}
	if entity.Label != "a" {
		t.Fatalf("expected label to fall back to id, got %q", entity.Label)
	}
}

func TestAddEntity_LastWriteWins(t *testing.T) {
	s := NewMemoryGraphStore()
	s.AddEntity(common.Entity{ID: "a", Label: "Alice", Type: "person", Properties: map[string]any{"role": "admin"}})
	s.AddEntity(common.Entity{ID: "a", Label: "Alice Cooper", Type: "person"})

	entity, _ := s.Entity("a")
	if entity.Label != "Alice Cooper" {
		t.Fatalf("expected overwritten label, got %q", entity.Label)
	}
	if entity.Properties != nil {
		t.Fatalf("expected properties replaced, not merged, got %v", entity.Properties)
	}
	if len(s.Entities()) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(s.Entities()))
	}
}

func TestAddRelationship_DanglingDropped(t *testing.T) {
	s := NewMemoryGraphStore()
	s.AddEntity(common.Entity{ID: "a", Label: "Alice", Type: "person"})

	d := s.AddRelationship(common.Relationship{Source: "a", Target: "ghost", Type: "manages"})
	if d == nil {
		t.Fatal("expected a diagnostic for dangling target")
	}
	if d.Reason != store.DropMissingTarget {
		t.Fatalf("expected DropMissingTarget, got %q", d.Reason)
	}

	d = s.AddRelationship(common.Relationship{Source: "ghost", Target: "a", Type: "manages"})
	if d == nil || d.Reason != store.DropMissingSource {
		t.Fatalf("expected DropMissingSource diagnostic, got %+v", d)
	}

	stats := s.Stats()
	if stats.TotalEdges != 0 {
		t.Fatalf("dropped relationships must not appear as edges, got %d", stats.TotalEdges)
	}
	if stats.DroppedRelationships != 2 {
		t.Fatalf("expected 2 dropped relationships, got %d", stats.DroppedRelationships)
	}
	if len(s.Successors("a")) != 0 || len(s.Predecessors("a")) != 0 {
		t.Fatal("dropped relationships must not be traversable")
	}
}

func TestAddRelationship_PairOverwrite(t *testing.T) {
	s := NewMemoryGraphStore()
	s.AddEntity(common.Entity{ID: "a", Label: "Alice", Type: "person"})
	s.AddEntity(common.Entity{ID: "b", Label: "Web Server", Type: "system"})

	s.AddRelationship(common.Relationship{Source: "a", Target: "b", Type: "manages"})
	s.AddRelationship(common.Relationship{Source: "a", Target: "b", Type: "owns"})

	succ := s.Successors("a")
	if len(succ) != 1 {
		t.Fatalf("expected single edge per pair, got %d", len(succ))
	}
	if succ[0].Type != "owns" {
		t.Fatalf("expected later relationship to win, got %q", succ[0].Type)
	}

	pred := s.Predecessors("b")
	if len(pred) != 1 || pred[0].Type != "owns" {
		t.Fatalf("incoming edge not overwritten: %+v", pred)
	}
}

func buildSampleStore(t *testing.T) *MemoryGraphStore {
	t.Helper()
	s := NewMemoryGraphStore()
	entities := []common.Entity{
		{ID: "a", Label: "Alice", Type: "person"},
		{ID: "b", Label: "Web Server", Type: "system"},
		{ID: "c", Label: "Database Server", Type: "system"},
		{ID: "d", Label: "Berlin Office", Type: "location"},
	}
	for _, e := range entities {
		if err := s.AddEntity(e); err != nil {
			t.Fatalf("add entity %s: %v", e.ID, err)
		}
	}
	rels := []common.Relationship{
		{Source: "a", Target: "b", Type: "manages"},
		{Source: "b", Target: "c", Type: "depends_on"},
	}
	for _, r := range rels {
		if d := s.AddRelationship(r); d != nil {
			t.Fatalf("unexpected diagnostic: %+v", d)
		}
	}
	return s
}

func TestStats(t *testing.T) {
	s := buildSampleStore(t)
	stats := s.Stats()

	if stats.TotalNodes != 4 || stats.TotalEdges != 2 {
		t.Fatalf("unexpected counts: %d nodes, %d edges", stats.TotalNodes, stats.TotalEdges)
	}
	wantNodeTypes := map[string]int{"person": 1, "system": 2, "location": 1}
	if !reflect.DeepEqual(stats.NodeTypes, wantNodeTypes) {
		t.Fatalf("unexpected node types: %v", stats.NodeTypes)
	}
	wantRelTypes := map[string]int{"manages": 1, "depends_on": 1}
	if !reflect.DeepEqual(stats.RelationshipTypes, wantRelTypes) {
		t.Fatalf("unexpected relationship types: %v", stats.RelationshipTypes)
	}
	// a->b->c is one weak component, d is isolated.
	if stats.ConnectedComponents != 2 {
		t.Fatalf("expected 2 components, got %d", stats.ConnectedComponents)
	}
}

func TestStats_Idempotent(t *testing.T) {
	first := buildSampleStore(t).Stats()
	second := buildSampleStore(t).Stats()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rebuilding from the same input changed stats:\n%+v\n%+v", first, second)
	}
}

func TestDegree(t *testing.T) {
	s := buildSampleStore(t)
	tests := []struct {
		id   string
		want int
	}{
		{"a", 1},
		{"b", 2},
		{"c", 1},
		{"d", 0},
	}
	for _, tt := range tests {
		if got := s.Degree(tt.id); got != tt.want {
			t.Fatalf("degree of %s: got %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestComponents_DirectionIgnored(t *testing.T) {
	s := NewMemoryGraphStore()
	s.AddEntity(common.Entity{ID: "a", Label: "A", Type: "system"})
	s.AddEntity(common.Entity{ID: "b", Label: "B", Type: "system"})
	s.AddEntity(common.Entity{ID: "c", Label: "C", Type: "system"})
	// a->c and b->c: a and b are only connected through c's incoming edges.
	s.AddRelationship(common.Relationship{Source: "a", Target: "c", Type: "connects_to"})
	s.AddRelationship(common.Relationship{Source: "b", Target: "c", Type: "connects_to"})

	if got := s.Stats().ConnectedComponents; got != 1 {
		t.Fatalf("expected 1 weak component, got %d", got)
	}
}
