package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/atlasgraph/atlas/pkg/ai"
	"github.com/atlasgraph/atlas/pkg/common"
	"github.com/atlasgraph/atlas/pkg/loader"
)

func TestProcessFilesWithMockClient(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{
		TokenEncoder:       "cl100k_base",
		ParallelFiles:      2,
		ParallelAiRequests: 4,
	})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	file := loader.NewGraphDocumentFile(loader.NewGraphFileParams{
		ID:        "f1",
		FilePath:  "infra.txt",
		MaxTokens: 200,
		Loader: &mockFileLoader{
			text: "John Doe manages Web Server 01. The server depends on the database.",
		},
	})

	payload, err := client.ProcessFiles(context.Background(), []loader.GraphFile{file}, ai.NewMockGraphAIClient())
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	if len(payload.Entities) != 7 {
		t.Errorf("got %d entities, want 7", len(payload.Entities))
	}
	if len(payload.Relationships) != 9 {
		t.Errorf("got %d relationships, want 9", len(payload.Relationships))
	}
}

func TestProcessFilesDeduplicatesAcrossUnits(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{
		TokenEncoder:       "cl100k_base",
		ParallelFiles:      1,
		ParallelAiRequests: 2,
	})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	// Low token budget forces several units; every unit yields the same
	// sample payload, which must collapse to one copy.
	file := loader.NewGraphDocumentFile(loader.NewGraphFileParams{
		ID:        "f1",
		FilePath:  "infra.txt",
		MaxTokens: 5,
		Loader: &mockFileLoader{
			text: "Web Server 01 runs in NYC. The database server hosts MySQL. John Doe manages the web server.",
		},
	})

	payload, err := client.ProcessFiles(context.Background(), []loader.GraphFile{file}, ai.NewMockGraphAIClient())
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}

	seen := make(map[string]int)
	for _, e := range payload.Entities {
		seen[e.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("entity %q appears %d times after merge", id, n)
		}
	}
	if len(payload.Entities) != 7 {
		t.Errorf("got %d entities, want 7", len(payload.Entities))
	}
}

func TestProcessFilesEmptyFile(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{TokenEncoder: "cl100k_base"})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	file := loader.NewGraphDocumentFile(loader.NewGraphFileParams{
		ID:       "f1",
		FilePath: "empty.txt",
		Loader:   &mockFileLoader{text: "   "},
	})

	payload, err := client.ProcessFiles(context.Background(), []loader.GraphFile{file}, ai.NewMockGraphAIClient())
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}
	if len(payload.Entities) != 0 || len(payload.Relationships) != 0 {
		t.Errorf("expected empty payload, got %d entities and %d relationships",
			len(payload.Entities), len(payload.Relationships))
	}
}

type failingLoader struct{}

func (l *failingLoader) GetFileText(ctx context.Context, file loader.GraphFile) ([]byte, error) {
	return nil, errors.New("read failed")
}

func TestProcessFilesLoaderError(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{TokenEncoder: "cl100k_base"})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	file := loader.NewGraphDocumentFile(loader.NewGraphFileParams{
		ID:       "f1",
		FilePath: "broken.txt",
		Loader:   &failingLoader{},
	})

	if _, err := client.ProcessFiles(context.Background(), []loader.GraphFile{file}, ai.NewMockGraphAIClient()); err == nil {
		t.Error("expected error when the loader fails")
	}
}

func TestPayloadMergerFirstOccurrenceWins(t *testing.T) {
	m := newPayloadMerger()
	m.add(&common.ExtractionPayload{
		Entities: []common.Entity{
			{ID: "web_server_01", Label: "Web Server 01", Type: "system"},
		},
		Relationships: []common.Relationship{
			{Source: "web_server_01", Target: "database_01", Type: "depends_on"},
		},
	})
	m.add(&common.ExtractionPayload{
		Entities: []common.Entity{
			{ID: "web_server_01", Label: "Renamed Server", Type: "system"},
			{ID: "database_01", Label: "Database Server", Type: "system"},
		},
		Relationships: []common.Relationship{
			{Source: "web_server_01", Target: "database_01", Type: "uses"},
		},
	})

	got := m.payload()
	if len(got.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(got.Entities))
	}
	if got.Entities[0].Label != "Web Server 01" {
		t.Errorf("duplicate entity overwrote first occurrence: %q", got.Entities[0].Label)
	}
	if len(got.Relationships) != 1 {
		t.Fatalf("got %d relationships, want 1", len(got.Relationships))
	}
	if got.Relationships[0].Type != "depends_on" {
		t.Errorf("duplicate edge overwrote first occurrence: %q", got.Relationships[0].Type)
	}
}

func TestPayloadMergerSkipsEntitiesWithoutID(t *testing.T) {
	m := newPayloadMerger()
	m.add(&common.ExtractionPayload{
		Entities: []common.Entity{
			{ID: "", Label: "Nameless"},
			{ID: "ok", Label: "Named"},
		},
	})

	got := m.payload()
	if len(got.Entities) != 1 || got.Entities[0].ID != "ok" {
		t.Errorf("unexpected merge result: %#v", got.Entities)
	}
}
