package session

import (
	"testing"

	"github.com/atlasgraph/atlas/pkg/graph"
)

func newHandle(t *testing.T) *graph.Handle {
	t.Helper()
	h, err := graph.BuildGraph(nil, nil)
	if err != nil {
		t.Fatalf("BuildGraph() error = %v", err)
	}
	return h
}

func TestRegistryAddGetDelete(t *testing.T) {
	r := NewRegistry()

	s, err := r.Add("inventory", newHandle(t))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if s.ID == "" {
		t.Fatal("Add() returned session without ID")
	}

	got, ok := r.Get(s.ID)
	if !ok || got.Name != "inventory" {
		t.Fatalf("Get() = %v, %v", got, ok)
	}

	if !r.Delete(s.ID) {
		t.Error("Delete() = false for existing session")
	}
	if _, ok := r.Get(s.ID); ok {
		t.Error("session still present after Delete()")
	}
	if r.Delete(s.ID) {
		t.Error("Delete() = true for missing session")
	}
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()

	first, _ := r.Add("first", newHandle(t))
	second, _ := r.Add("second", newHandle(t))
	third, _ := r.Add("third", newHandle(t))
	r.Delete(second.ID)

	got := r.List()
	if len(got) != 2 {
		t.Fatalf("List() returned %d sessions, want 2", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != third.ID {
		t.Errorf("List() order wrong: %s, %s", got[0].Name, got[1].Name)
	}
}
