package ai

import (
	"context"
	"errors"
	"testing"
)

func TestExtractGraphWithMockClient(t *testing.T) {
	client := NewMockGraphAIClient()

	payload, err := ExtractGraph(context.Background(), client, "The web server runs in the NYC datacenter.")
	if err != nil {
		t.Fatalf("ExtractGraph() error = %v", err)
	}
	if len(payload.Entities) != 7 {
		t.Errorf("got %d entities, want 7", len(payload.Entities))
	}
	if len(payload.Relationships) != 9 {
		t.Errorf("got %d relationships, want 9", len(payload.Relationships))
	}
	for _, rel := range payload.Relationships {
		if rel.Source == "" || rel.Target == "" || rel.Type == "" {
			t.Errorf("incomplete relationship: %+v", rel)
		}
	}
}

func TestExtractGraphGenericText(t *testing.T) {
	client := NewMockGraphAIClient()

	payload, err := ExtractGraph(context.Background(), client, "An unrelated note about travel plans.")
	if err != nil {
		t.Fatalf("ExtractGraph() error = %v", err)
	}
	if len(payload.Entities) != 1 || payload.Entities[0].ID != "entity_1" {
		t.Errorf("entities = %+v", payload.Entities)
	}
	if payload.Relationships == nil {
		t.Error("relationships must be an empty slice, not nil")
	}
}

func TestExtractGraphCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractGraph(ctx, NewMockGraphAIClient(), "server inventory")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestFallbackPayload(t *testing.T) {
	payload := FallbackPayload()
	if len(payload.Entities) != 1 || payload.Entities[0].ID != "fallback_entity" {
		t.Fatalf("entities = %+v", payload.Entities)
	}
	if payload.Entities[0].Type != "system" {
		t.Errorf("fallback type = %q", payload.Entities[0].Type)
	}
	if payload.Relationships == nil || len(payload.Relationships) != 0 {
		t.Errorf("relationships = %+v", payload.Relationships)
	}
}
