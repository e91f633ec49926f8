package query

import (
	"testing"

	"github.com/atlasgraph/atlas/pkg/common"
	"github.com/atlasgraph/atlas/pkg/store/memory"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	entities := []common.Entity{
		{ID: "john_doe", Label: "John Doe", Type: "person", Properties: map[string]any{"role": "System Admin"}},
		{ID: "jane_smith", Label: "Jane Smith", Type: "person", Properties: map[string]any{"role": "DBA"}},
		{ID: "mike_wilson", Label: "Mike Wilson", Type: "person", Properties: map[string]any{"role": "IT Manager"}},
		{ID: "web_server_01", Label: "Web Server 01", Type: "system", Properties: map[string]any{"ip": "192.168.1.10"}},
		{ID: "database_01", Label: "Database Server", Type: "system", Properties: map[string]any{"ip": "192.168.1.20"}},
		{ID: "crm_app", Label: "CRM Application", Type: "application", Properties: map[string]any{"version": "2.1"}},
		{ID: "nyc_dc1", Label: "NYC DataCenter 1", Type: "location", Properties: map[string]any{"city": "New York"}},
		{ID: "it_dept", Label: "IT Department", Type: "organization", Properties: map[string]any{"headcount": "25"}},
	}
	relationships := []common.Relationship{
		{Source: "john_doe", Target: "mike_wilson", Type: "reports_to"},
		{Source: "jane_smith", Target: "mike_wilson", Type: "reports_to"},
		{Source: "john_doe", Target: "web_server_01", Type: "manages"},
		{Source: "jane_smith", Target: "database_01", Type: "manages"},
		{Source: "web_server_01", Target: "database_01", Type: "depends_on"},
		{Source: "crm_app", Target: "web_server_01", Type: "runs_on"},
		{Source: "web_server_01", Target: "nyc_dc1", Type: "located_in"},
		{Source: "database_01", Target: "nyc_dc1", Type: "located_in"},
		{Source: "john_doe", Target: "it_dept", Type: "works_for"},
		{Source: "jane_smith", Target: "it_dept", Type: "works_for"},
	}

	s := memory.NewMemoryGraphStore()
	for _, entity := range entities {
		if err := s.AddEntity(entity); err != nil {
			t.Fatalf("add entity %s: %v", entity.ID, err)
		}
	}
	for _, rel := range relationships {
		if diag := s.AddRelationship(rel); diag != nil {
			t.Fatalf("relationship %s -> %s dropped: %s", rel.Source, rel.Target, diag.Reason)
		}
	}
	return NewEngine(s)
}

func TestQueryIntentRouting(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name      string
		question  string
		queryType string
		entity    string
	}{
		{"who manages", "Who manages Web Server 01?", "who_manages", "web server 01"},
		{"manager of", "manager of Database Server", "who_manages", "database server"},
		{"who owns", "Who owns the CRM Application?", "who_manages", "the crm application"},
		{"what manages", "What does John Doe manage?", "what_manages", "john doe"},
		{"depend on", "What does Web Server 01 depend on?", "dependencies", "web server 01"},
		{"dependencies for", "dependencies for CRM Application", "dependencies", "crm application"},
		{"what depends on", "What depends on Database Server?", "dependencies", "database server"},
		{"what is in", "What is in NYC DataCenter 1?", "by_location", "nyc datacenter 1"},
		{"show everything in", "show everything in NYC DataCenter 1", "by_location", "nyc datacenter 1"},
		{"show all servers", "Show all servers", "by_type", "system"},
		{"list people", "list all people", "by_type", "person"},
		{"reporting chain for", "Reporting chain for John Doe", "reporting_chain", "john doe"},
		{"who does report to", "Who does Jane Smith report to?", "reporting_chain", "jane smith"},
		{"bare entity name", "Database Server", "entity_info", "database server"},
		{"nonsense", "what color is the sky", "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Query(tt.question)
			if res.QueryType != tt.queryType {
				t.Fatalf("Query(%q) type = %q, want %q", tt.question, res.QueryType, tt.queryType)
			}
			if res.Entity != tt.entity {
				t.Errorf("Query(%q) entity = %q, want %q", tt.question, res.Entity, tt.entity)
			}
		})
	}
}

func TestQueryUnknownTypeFallsThrough(t *testing.T) {
	engine := newTestEngine(t)

	// "printers" is not a known type spelling, and nothing resolves it as
	// an entity either.
	res := engine.Query("show all printers")
	if res.QueryType != "unknown" {
		t.Fatalf("query type = %q, want unknown", res.QueryType)
	}
}

func TestQueryUnknownSuggestions(t *testing.T) {
	engine := newTestEngine(t)

	res := engine.Query("how do I reset my password")
	if res.QueryType != "unknown" {
		t.Fatalf("query type = %q, want unknown", res.QueryType)
	}
	notice, ok := res.Results.(Notice)
	if !ok {
		t.Fatalf("results type %T, want Notice", res.Results)
	}
	if notice.Error == "" {
		t.Error("expected an error message for unknown questions")
	}
	if len(res.Suggestions) == 0 {
		t.Error("expected example-question suggestions")
	}
}

func TestQueryNeverPanicsOnOddInput(t *testing.T) {
	engine := newTestEngine(t)

	for _, q := range []string{"", "   ", "?", "who manages", "show all", "..." /* punctuation only */} {
		res := engine.Query(q)
		if res == nil {
			t.Fatalf("Query(%q) returned nil", q)
		}
	}
}
