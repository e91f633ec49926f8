// Package query answers natural-language questions against a knowledge
// graph. Questions are matched against ordered intent patterns; the first
// pattern that matches wins and its handler produces the result.
package query

import (
	"regexp"
	"strings"

	"github.com/atlasgraph/atlas/pkg/index"
	"github.com/atlasgraph/atlas/pkg/store"
)

// Engine resolves questions against a graph store and its entity index.
// It is read-only and safe for concurrent use once constructed.
type Engine struct {
	store   store.GraphStore
	index   *index.EntityIndex
	intents []intent
}

type intent struct {
	name     string
	patterns []*regexp.Regexp
	handle   func(e *Engine, capture string) *QueryResult
}

// NewEngine builds an engine over a populated store. The index is built
// from the store's current entities; the engine does not observe later
// mutations.
func NewEngine(s store.GraphStore) *Engine {
	e := &Engine{
		store: s,
		index: index.Build(s.Entities()),
	}
	e.intents = intents
	return e
}

// intents is the ordered dispatch table. Order matters: earlier families
// claim a question before later ones see it, and by_type deliberately
// comes before reporting_chain so "show all servers" never reads as a
// chain lookup.
var intents = []intent{
	{
		name: "who_manages",
		patterns: compile(
			`who (?:manages|owns|administers|controls) (.+?)[?.]*$`,
			`who is (?:managing|owning|administering|controlling) (.+?)[?.]*$`,
			`(?:manager|owner|admin|administrator) (?:of|for) (.+?)[?.]*$`,
		),
		handle: (*Engine).whoManages,
	},
	{
		name: "what_manages",
		patterns: compile(
			`what does (.+?) (?:manage|own|administer|control)[?.]*$`,
			`what is (.+?) (?:managing|owning|administering|controlling)[?.]*$`,
			`(?:list|show) what (.+?) (?:manages|owns)[?.]*$`,
		),
		handle: (*Engine).whatManages,
	},
	{
		name: "dependencies",
		patterns: compile(
			`(?:dependencies|depends on|requirements) (?:for|of) (.+?)[?.]*$`,
			`what (?:does|are) (.+?) (?:depend|depends) on[?.]*$`,
			`what (?:depends|relies) on (.+?)[?.]*$`,
			`(?:show|find|get) dependencies (?:for|of) (.+?)[?.]*$`,
		),
		handle: (*Engine).dependencies,
	},
	{
		name: "by_location",
		patterns: compile(
			`(?:what|which) (?:is|are) in (?:the )?(.+?)[?.]*$`,
			`(?:show|list|find) (?:everything|all|items) in (?:the )?(.+?)[?.]*$`,
			`(?:what|which) (?:systems|servers|items|entities) (?:are )?(?:in|at|located in) (?:the )?(.+?)[?.]*$`,
		),
		handle: (*Engine).byLocation,
	},
	{
		name: "by_type",
		patterns: compile(
			`(?:show|list|find) (?:all )?(.+?)s?[?.]*$`,
			`(?:what|which) (.+?)s? (?:do we have|are there|exist)[?.]*$`,
			`(?:get|find) (?:all )?(?:the )?(.+?) (?:entities|items|objects)[?.]*$`,
		),
		handle: (*Engine).byType,
	},
	{
		name: "reporting_chain",
		patterns: compile(
			`who does (.+?) report to[?.]*$`,
			`(?:show |get )?(?:the )?(?:reporting chain|org chart) (?:for|of) (.+?)[?.]*$`,
			`(.+?) (?:reports to|reporting chain|org structure)[?.]*$`,
		),
		handle: (*Engine).reportingChain,
	},
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}

// Query answers a natural-language question. It never returns an error;
// unresolvable questions produce an "unknown" result with suggestions.
func (e *Engine) Query(question string) *QueryResult {
	q := strings.ToLower(strings.TrimSpace(question))

	for _, in := range e.intents {
		for _, pat := range in.patterns {
			m := pat.FindStringSubmatch(q)
			if m == nil {
				continue
			}
			capture := firstGroup(m)
			if capture == "" {
				continue
			}
			if res := in.handle(e, capture); res != nil {
				return res
			}
		}
	}

	// Short questions might be a bare entity name.
	if len(strings.Fields(q)) <= 3 {
		name := strings.TrimSpace(punctStripper.Replace(q))
		if res := e.entityInfo(name); res != nil {
			return res
		}
	}

	return &QueryResult{
		QueryType: "unknown",
		Results: Notice{
			Error: "Could not understand question: " + question,
		},
		Suggestions: querySuggestions,
	}
}

var punctStripper = strings.NewReplacer("?", "", ".", "", "!", "")

// firstGroup returns the first non-empty capture group. Alternation
// patterns leave all but one group empty.
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return strings.TrimSpace(g)
		}
	}
	return ""
}

var querySuggestions = []string{
	"Try: 'Who manages Web Server 01?'",
	"Try: 'What does John Doe manage?'",
	"Try: 'What are the dependencies for CRM Application?'",
	"Try: 'What is in DataCenter-A?'",
	"Try: 'Show all servers'",
	"Try: 'Reporting chain for Jane Smith'",
}
