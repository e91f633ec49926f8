package common

// ExtractionPayload is the raw output of an AI extraction pass over a
// document: the entities that were found and the relationships between
// them. It is the input to graph construction.
//
// Payloads coming from AI models are unreliable: entities may be missing
// fields and relationships may reference entities that were never
// extracted. Graph construction tolerates both.
type ExtractionPayload struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// Entity represents a node in the knowledge graph: a person, system,
// application, location, organization, or any other concept found in the
// source data.
//
// Properties carries arbitrary key/value attributes (role, department,
// IP address, ...) preserved verbatim from extraction. It is kept
// separate from the fixed schema fields and never interpreted by the
// core.
type Entity struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Relationship represents a directed, typed edge between two entities,
// referenced by their IDs. The Type field is free text from extraction
// (e.g. "manages", "depends_on", "located_in").
type Relationship struct {
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// TypeOrUnknown returns the entity type, or "unknown" when the extractor
// did not provide one.
func (e Entity) TypeOrUnknown() string {
	if e.Type == "" {
		return "unknown"
	}
	return e.Type
}
