package ai

import "fmt"

// ExtractionSystemPrompt primes the model for structured graph output.
const ExtractionSystemPrompt = "You are a knowledge graph extraction expert. Always respond with valid JSON."

const extractionPromptTemplate = `Analyze the following text and extract entities and relationships to build a knowledge graph.

Focus on identifying:
- People (employees, managers, contacts)
- Organizations (departments, companies, teams)
- Systems (servers, applications, databases)
- Locations (offices, data centers, cities)
- Assets (hardware, software, licenses)
- Processes (workflows, procedures, services)

And their relationships like:
- works_for, manages, reports_to
- located_in, hosted_in, depends_on
- owns, uses, maintains

Entity ids must be lowercase snake_case and unique. Relationship source and
target must reference entity ids from the same response.

Text:
%s`

// ExtractionPrompt builds the entity/relationship extraction prompt for a
// chunk of source text.
func ExtractionPrompt(text string) string {
	return fmt.Sprintf(extractionPromptTemplate, text)
}
