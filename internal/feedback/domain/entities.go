package domain

import (
	"strings"
)

// Entity is a single named entity extracted from the analysis text.
type Entity struct {
	Text        string  `json:"text"`
	Confidence  float64 `json:"confidence"`
	Subcategory *string `json:"subcategory"`
}

// EntityGroups holds extracted entities keyed by category
// (Product, Person, Location, Organization, ...).
type EntityGroups map[string][]Entity

// NoEntitiesSummary is the literal summary used when no entities were found.
const NoEntitiesSummary = "No entities detected"

// summaryOrder fixes the category order and display labels of the summary line.
var summaryOrder = []struct {
	category string
	label    string
}{
	{"Product", "Products"},
	{"Person", "People"},
	{"Location", "Locations"},
	{"Organization", "Organizations"},
}

// Summary builds the human-readable one-line summary of the extracted
// entities: non-empty groups in fixed order, joined by " | ". An empty group
// set yields NoEntitiesSummary.
func (g EntityGroups) Summary() string {
	var parts []string
	for _, entry := range summaryOrder {
		entities := g[entry.category]
		if len(entities) == 0 {
			continue
		}
		names := make([]string, len(entities))
		for i, entity := range entities {
			names[i] = entity.Text
		}
		parts = append(parts, entry.label+": "+strings.Join(names, ", "))
	}

	if len(parts) == 0 {
		return NoEntitiesSummary
	}
	return strings.Join(parts, " | ")
}

// Count returns the total number of entities across all groups.
func (g EntityGroups) Count() int {
	total := 0
	for _, entities := range g {
		total += len(entities)
	}
	return total
}
