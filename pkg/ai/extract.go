package ai

import (
	"context"
	"fmt"

	"github.com/atlasgraph/atlas/pkg/common"
)

// ExtractGraph asks the model to pull entities and relationships out of a
// chunk of text. The response is schema-constrained and repaired if the
// model returns slightly broken JSON; a nil-slice payload is normalized to
// empty slices so callers never see nil.
func ExtractGraph(
	ctx context.Context,
	client GraphAIClient,
	text string,
) (*common.ExtractionPayload, error) {
	payload := &common.ExtractionPayload{}
	err := client.GenerateCompletionWithFormat(
		ctx,
		"knowledge_graph_extraction",
		"Entities and relationships extracted from the source text.",
		ExtractionPrompt(text),
		payload,
		WithSystemPrompts(ExtractionSystemPrompt),
		WithTemperature(0.1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to extract graph payload: %w", err)
	}

	if payload.Entities == nil {
		payload.Entities = []common.Entity{}
	}
	if payload.Relationships == nil {
		payload.Relationships = []common.Relationship{}
	}
	return payload, nil
}

// FallbackPayload is the placeholder returned when extraction fails for
// good after retries. It keeps a build alive with a marker entity instead
// of aborting the whole run over one bad chunk.
func FallbackPayload() *common.ExtractionPayload {
	return &common.ExtractionPayload{
		Entities: []common.Entity{
			{
				ID:    "fallback_entity",
				Label: "Fallback Entity",
				Type:  "system",
				Properties: map[string]any{
					"note": "extraction failed, using fallback",
				},
			},
		},
		Relationships: []common.Relationship{},
	}
}
