// Package viz renders a knowledge graph as a single interactive HTML page
// using vis-network. The node and edge payload is inlined as JSON, so the
// output file works standalone in a browser.
package viz

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/atlasgraph/atlas/pkg/common"
)

const defaultColor = "#BDC3C7"

var entityColors = map[string]string{
	"person":       "#FF6B6B",
	"organization": "#4ECDC4",
	"system":       "#45B7D1",
	"location":     "#96CEB4",
	"asset":        "#FFEAA7",
	"process":      "#DDA0DD",
	"application":  "#FFA07A",
	"unknown":      "#BDC3C7",
}

var relationshipColors = map[string]string{
	"works_for":  "#E74C3C",
	"manages":    "#3498DB",
	"reports_to": "#9B59B6",
	"located_in": "#2ECC71",
	"hosted_on":  "#F39C12",
	"depends_on": "#E67E22",
	"owns":       "#1ABC9C",
	"uses":       "#34495E",
	"maintains":  "#8E44AD",
	"runs_on":    "#16A085",
	"hosted_in":  "#27AE60",
}

type visNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	Title string  `json:"title"`
	Size  int     `json:"size"`
	Font  visFont `json:"font"`
}

type visFont struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
}

type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Title  string `json:"title"`
	Arrows string `json:"arrows"`
	Width  int    `json:"width"`
}

// Render writes a self-contained HTML visualization of the given entities
// and relationships.
func Render(w io.Writer, title string, entities []common.Entity, relationships []common.Relationship) error {
	nodes := make([]visNode, 0, len(entities))
	for _, entity := range entities {
		entityType := entity.TypeOrUnknown()
		color, ok := entityColors[entityType]
		if !ok {
			color = defaultColor
		}

		label := entity.Label
		if label == "" {
			label = entity.ID
		}

		nodes = append(nodes, visNode{
			ID:    entity.ID,
			Label: label,
			Color: color,
			Title: hoverInfo("Type: "+entityType, entity.Properties),
			Size:  25,
			Font:  visFont{Size: 12, Color: "white"},
		})
	}

	edges := make([]visEdge, 0, len(relationships))
	for _, rel := range relationships {
		color, ok := relationshipColors[rel.Type]
		if !ok {
			color = defaultColor
		}

		edges = append(edges, visEdge{
			From:   rel.Source,
			To:     rel.Target,
			Label:  rel.Type,
			Color:  color,
			Title:  hoverInfo("Relationship: "+rel.Type, rel.Properties),
			Arrows: "to",
			Width:  2,
		})
	}

	nodeJSON, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("failed to encode nodes: %w", err)
	}
	edgeJSON, err := json.Marshal(edges)
	if err != nil {
		return fmt.Errorf("failed to encode edges: %w", err)
	}

	data := struct {
		Title string
		Nodes template.JS
		Edges template.JS
	}{
		Title: title,
		Nodes: template.JS(nodeJSON),
		Edges: template.JS(edgeJSON),
	}

	return pageTemplate.Execute(w, data)
}

// hoverInfo builds a tooltip: a headline plus the property bag, one
// "key: value" pair per line in sorted key order.
func hoverInfo(headline string, properties map[string]any) string {
	lines := []string{headline}

	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, properties[k]))
	}

	return strings.Join(lines, "\n")
}

var pageTemplate = template.Must(template.New("graph").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
<style>
  body { margin: 0; background-color: #222222; }
  #graph { width: 100%; height: 600px; }
</style>
</head>
<body>
<div id="graph"></div>
<script>
  var nodes = new vis.DataSet({{.Nodes}});
  var edges = new vis.DataSet({{.Edges}});
  var container = document.getElementById("graph");
  var data = { nodes: nodes, edges: edges };
  var options = {
    physics: {
      enabled: true,
      stabilization: { iterations: 100 },
      barnesHut: {
        gravitationalConstant: -8000,
        centralGravity: 0.3,
        springLength: 95,
        springConstant: 0.04,
        damping: 0.09
      }
    }
  };
  new vis.Network(container, data, options);
</script>
</body>
</html>
`))
