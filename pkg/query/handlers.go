package query

import (
	"sort"
	"strings"
)

// typeSynonyms maps common type spellings, both singular and plural, to
// the canonical entity type. A captured word outside this table is not a
// type query at all and the question falls through to later intents.
var typeSynonyms = map[string]string{
	"person":        "person",
	"people":        "person",
	"user":          "person",
	"users":         "person",
	"server":        "system",
	"servers":       "system",
	"system":        "system",
	"systems":       "system",
	"application":   "application",
	"applications":  "application",
	"app":           "application",
	"apps":          "application",
	"location":      "location",
	"locations":     "location",
	"organization":  "organization",
	"organizations": "organization",
	"department":    "organization",
	"departments":   "organization",
}

func (e *Engine) whoManages(target string) *QueryResult {
	res := &QueryResult{QueryType: "who_manages", Entity: target}

	id, ok := e.index.Resolve(target)
	if !ok {
		res.Results = Notice{Error: "Could not find entity: " + target}
		return res
	}

	var managers []Manager
	for _, edge := range e.store.Predecessors(id) {
		if !InCategory(edge.Type, CategoryManagement) {
			continue
		}
		source, _ := e.store.Entity(edge.ID)
		managers = append(managers, Manager{
			Manager:           source.Label,
			ManagerType:       source.TypeOrUnknown(),
			Relationship:      edge.Type,
			ManagerID:         edge.ID,
			ManagerProperties: source.Properties,
		})
	}

	if len(managers) == 0 {
		res.Results = Notice{Result: "No managers found for " + target}
		return res
	}
	res.Results = managers
	return res
}

func (e *Engine) whatManages(person string) *QueryResult {
	res := &QueryResult{QueryType: "what_manages", Entity: person}

	id, ok := e.index.Resolve(person)
	if !ok {
		res.Results = Notice{Error: "Could not find person: " + person}
		return res
	}

	var managed []ManagedItem
	for _, edge := range e.store.Successors(id) {
		if !InCategory(edge.Type, CategoryManagement) {
			continue
		}
		target, _ := e.store.Entity(edge.ID)
		managed = append(managed, ManagedItem{
			Item:           target.Label,
			ItemType:       target.TypeOrUnknown(),
			Relationship:   edge.Type,
			ItemID:         edge.ID,
			ItemProperties: target.Properties,
		})
	}

	if len(managed) == 0 {
		res.Results = Notice{Result: person + " doesn't manage anything directly"}
		return res
	}
	res.Results = managed
	return res
}

func (e *Engine) dependencies(name string) *QueryResult {
	res := &QueryResult{QueryType: "dependencies", Entity: name}

	id, ok := e.index.Resolve(name)
	if !ok {
		res.Results = Notice{Error: "Could not find entity: " + name}
		return res
	}
	entity, _ := e.store.Entity(id)

	report := DependencyReport{
		Entity:     entity.Label,
		EntityType: entity.TypeOrUnknown(),
		DependsOn:  []DependencyItem{},
		Dependents: []DependencyItem{},
	}

	for _, edge := range e.store.Successors(id) {
		if !InCategory(edge.Type, CategoryDependency) {
			continue
		}
		target, _ := e.store.Entity(edge.ID)
		report.DependsOn = append(report.DependsOn, DependencyItem{
			Name:         target.Label,
			Type:         target.TypeOrUnknown(),
			Relationship: edge.Type,
			ID:           edge.ID,
			Properties:   target.Properties,
		})
	}
	for _, edge := range e.store.Predecessors(id) {
		if !InCategory(edge.Type, CategoryDependency) {
			continue
		}
		source, _ := e.store.Entity(edge.ID)
		report.Dependents = append(report.Dependents, DependencyItem{
			Name:         source.Label,
			Type:         source.TypeOrUnknown(),
			Relationship: edge.Type,
			ID:           edge.ID,
			Properties:   source.Properties,
		})
	}

	report.TotalDependencies = len(report.DependsOn)
	report.TotalDependents = len(report.Dependents)
	res.Results = report
	return res
}

func (e *Engine) byLocation(location string) *QueryResult {
	res := &QueryResult{QueryType: "by_location", Entity: location}

	// Resolution may miss; a raw label match below still counts.
	locationID, _ := e.index.Resolve(location)
	locationLower := strings.ToLower(location)

	var items []LocationItem
	for _, entity := range e.store.Entities() {
		for _, edge := range e.store.Successors(entity.ID) {
			if !InCategory(edge.Type, CategoryLocation) {
				continue
			}
			target, _ := e.store.Entity(edge.ID)
			if edge.ID != locationID && strings.ToLower(target.Label) != locationLower {
				continue
			}
			items = append(items, LocationItem{
				Item:         entity.Label,
				ItemType:     entity.TypeOrUnknown(),
				ItemID:       entity.ID,
				Relationship: edge.Type,
				Properties:   entity.Properties,
			})
		}
	}

	if len(items) == 0 {
		res.Results = Notice{Result: "No items found in " + location}
		return res
	}
	res.Results = items
	return res
}

// byType only claims the question when the captured word is a known type
// spelling; anything else falls through to the remaining intents.
func (e *Engine) byType(word string) *QueryResult {
	canonical, ok := typeSynonyms[word]
	if !ok {
		return nil
	}
	return e.FindByType(canonical)
}

// FindByType returns all entities whose stored type matches entityType by
// case-insensitive containment in either direction, sorted by total degree
// descending. It backs the by_type intent and is also exposed directly for
// callers that already know the type.
func (e *Engine) FindByType(entityType string) *QueryResult {
	res := &QueryResult{QueryType: "by_type", Entity: entityType}

	var matches []TypedEntity
	for _, id := range e.index.ByType(entityType) {
		entity, _ := e.store.Entity(id)
		matches = append(matches, TypedEntity{
			Item:        entity.Label,
			ItemType:    entity.TypeOrUnknown(),
			ItemID:      id,
			Properties:  entity.Properties,
			Connections: e.store.Degree(id),
		})
	}

	if len(matches) == 0 {
		res.Results = Notice{Result: "No entities found of type: " + entityType}
		return res
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Connections > matches[j].Connections
	})
	res.Results = matches
	return res
}

func (e *Engine) reportingChain(person string) *QueryResult {
	res := &QueryResult{QueryType: "reporting_chain", Entity: person}

	id, ok := e.index.Resolve(person)
	if !ok {
		res.Results = Notice{Error: "Could not find person: " + person}
		return res
	}
	start, _ := e.store.Entity(id)

	chain := ReportingChain{
		Person:        start.Label,
		ReportsTo:     []ChainMember{},
		DirectReports: []ChainMember{},
	}

	// Walk upward one reports_to hop at a time; the visited set guards
	// against cycles in the data.
	visited := map[string]bool{}
	current := id
	for current != "" && !visited[current] {
		visited[current] = true
		next := ""
		for _, edge := range e.store.Successors(current) {
			if !InCategory(edge.Type, CategoryHierarchy) {
				continue
			}
			boss, _ := e.store.Entity(edge.ID)
			chain.ReportsTo = append(chain.ReportsTo, ChainMember{
				Person:     boss.Label,
				PersonType: boss.TypeOrUnknown(),
				PersonID:   edge.ID,
				Properties: boss.Properties,
			})
			next = edge.ID
			break
		}
		current = next
	}

	for _, edge := range e.store.Predecessors(id) {
		if !InCategory(edge.Type, CategoryHierarchy) {
			continue
		}
		report, _ := e.store.Entity(edge.ID)
		chain.DirectReports = append(chain.DirectReports, ChainMember{
			Person:     report.Label,
			PersonType: report.TypeOrUnknown(),
			PersonID:   edge.ID,
			Properties: report.Properties,
		})
	}

	chain.ChainLength = len(chain.ReportsTo)
	chain.TeamSize = len(chain.DirectReports)
	res.Results = chain
	return res
}

// entityInfo returns the full record of a bare entity name, or nil when
// the name does not resolve.
func (e *Engine) entityInfo(name string) *QueryResult {
	id, ok := e.index.Resolve(name)
	if !ok {
		return nil
	}
	entity, _ := e.store.Entity(id)

	info := EntityInfo{
		Entity:   entity,
		Outgoing: []RelationSummary{},
		Incoming: []RelationSummary{},
	}
	for _, edge := range e.store.Successors(id) {
		target, _ := e.store.Entity(edge.ID)
		info.Outgoing = append(info.Outgoing, RelationSummary{
			ID:           edge.ID,
			Label:        target.Label,
			Type:         target.TypeOrUnknown(),
			Relationship: edge.Type,
		})
	}
	for _, edge := range e.store.Predecessors(id) {
		source, _ := e.store.Entity(edge.ID)
		info.Incoming = append(info.Incoming, RelationSummary{
			ID:           edge.ID,
			Label:        source.Label,
			Type:         source.TypeOrUnknown(),
			Relationship: edge.Type,
		})
	}
	info.TotalConnections = len(info.Outgoing) + len(info.Incoming)

	return &QueryResult{QueryType: "entity_info", Entity: name, Results: info}
}
