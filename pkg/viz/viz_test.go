package viz

import (
	"strings"
	"testing"

	"github.com/atlasgraph/atlas/pkg/common"
)

func TestRenderContainsNodesAndEdges(t *testing.T) {
	entities := []common.Entity{
		{ID: "john_doe", Label: "John Doe", Type: "person", Properties: map[string]any{"role": "System Administrator"}},
		{ID: "web_server_01", Label: "Web Server 01", Type: "system"},
	}
	relationships := []common.Relationship{
		{Source: "john_doe", Target: "web_server_01", Type: "manages"},
	}

	var sb strings.Builder
	if err := Render(&sb, "Infrastructure Graph", entities, relationships); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	html := sb.String()
	for _, want := range []string{
		"Infrastructure Graph",
		"John Doe",
		"Web Server 01",
		"manages",
		"#FF6B6B",
		"#45B7D1",
		"#3498DB",
		"vis.Network",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderUnknownTypesGetDefaultColor(t *testing.T) {
	entities := []common.Entity{
		{ID: "mystery", Label: "Mystery Box", Type: "artifact"},
	}
	relationships := []common.Relationship{
		{Source: "mystery", Target: "mystery", Type: "contains"},
	}

	var sb strings.Builder
	if err := Render(&sb, "g", entities, relationships); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(sb.String(), defaultColor) {
		t.Errorf("expected default color %q in output", defaultColor)
	}
}

func TestRenderEmptyGraph(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, "empty", nil, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(sb.String(), "vis.DataSet") {
		t.Errorf("expected a well-formed page even for an empty graph")
	}
}

func TestHoverInfoSortsProperties(t *testing.T) {
	got := hoverInfo("Type: system", map[string]any{"os": "Linux", "ip": "192.168.1.10"})
	want := "Type: system\nip: 192.168.1.10\nos: Linux"
	if got != want {
		t.Errorf("hoverInfo() = %q, want %q", got, want)
	}
}
