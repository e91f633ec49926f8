package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlasgraph/atlas/pkg/common"
)

// MockGraphAIClient is a deterministic GraphAIClient for tests and offline
// runs. Extraction requests whose text mentions infrastructure return a
// small CMDB-flavored payload; anything else yields a single placeholder
// entity.
type MockGraphAIClient struct{}

func NewMockGraphAIClient() *MockGraphAIClient {
	return &MockGraphAIClient{}
}

func (c *MockGraphAIClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...GenerateOption,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "Connection successful", nil
}

func (c *MockGraphAIClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...GenerateOption,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, ok := out.(*common.ExtractionPayload)
	if !ok {
		return fmt.Errorf("mock client cannot produce %T", out)
	}

	// Match on the source text only, not the prompt instructions around it.
	text := prompt
	if idx := strings.LastIndex(prompt, "Text:"); idx != -1 {
		text = prompt[idx+len("Text:"):]
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "server") || strings.Contains(lower, "database") || strings.Contains(lower, "cmdb") {
		*payload = cmdbSamplePayload()
	} else {
		*payload = common.ExtractionPayload{
			Entities: []common.Entity{
				{
					ID:         "entity_1",
					Label:      "Sample Entity",
					Type:       "unknown",
					Properties: map[string]any{"source": "mock_data"},
				},
			},
			Relationships: []common.Relationship{},
		}
	}
	return nil
}

func cmdbSamplePayload() common.ExtractionPayload {
	return common.ExtractionPayload{
		Entities: []common.Entity{
			{ID: "john_doe", Label: "John Doe", Type: "person", Properties: map[string]any{"department": "IT", "role": "System Administrator"}},
			{ID: "jane_smith", Label: "Jane Smith", Type: "person", Properties: map[string]any{"department": "IT", "role": "Database Administrator"}},
			{ID: "mike_wilson", Label: "Mike Wilson", Type: "person", Properties: map[string]any{"department": "IT", "role": "IT Manager"}},
			{ID: "web_server_01", Label: "Web Server 01", Type: "system", Properties: map[string]any{"ip": "192.168.1.10", "status": "Active", "os": "Linux"}},
			{ID: "database_01", Label: "Database Server", Type: "system", Properties: map[string]any{"ip": "192.168.1.20", "status": "Active", "type": "MySQL"}},
			{ID: "it_department", Label: "IT Department", Type: "organization", Properties: map[string]any{"budget": "2M", "location": "New York"}},
			{ID: "nyc_dc1", Label: "NYC-DC1", Type: "location", Properties: map[string]any{"type": "datacenter", "city": "New York"}},
		},
		Relationships: []common.Relationship{
			{Source: "john_doe", Target: "it_department", Type: "works_for", Properties: map[string]any{}},
			{Source: "jane_smith", Target: "it_department", Type: "works_for", Properties: map[string]any{}},
			{Source: "john_doe", Target: "mike_wilson", Type: "reports_to", Properties: map[string]any{}},
			{Source: "jane_smith", Target: "mike_wilson", Type: "reports_to", Properties: map[string]any{}},
			{Source: "john_doe", Target: "web_server_01", Type: "manages", Properties: map[string]any{}},
			{Source: "jane_smith", Target: "database_01", Type: "manages", Properties: map[string]any{}},
			{Source: "web_server_01", Target: "database_01", Type: "depends_on", Properties: map[string]any{}},
			{Source: "web_server_01", Target: "nyc_dc1", Type: "located_in", Properties: map[string]any{}},
			{Source: "database_01", Target: "nyc_dc1", Type: "located_in", Properties: map[string]any{}},
		},
	}
}
