// Package validate checks the poetry graph against its structural
// invariants and reports every violation found.
package validate

import (
	"fmt"

	"github.com/bohara2000/MARTA-Poetry/internal/config"
	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDanglingEdge    = "dangling_edge"
	codeEntityIDDrift   = "entity_id_mismatch"
	codeUsageUnderflow  = "usage_count_underflow"
	codeUsageDrift      = "usage_count_drift"
	codeOrphanedEntity  = "orphaned_entity"
	codeUnknownRole     = "unknown_narrative_role"
	codeNarrativeTarget = "narrative_connection_target"
	codeUnknownRoute    = "unknown_route"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	NodeID   string
}

type Report struct {
	Issues []Issue
}

// Errors reports whether the report contains any error-severity issue.
func (r *Report) Errors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// relation edge types, as they appear in edge views.
var relationTypes = map[string]struct{}{
	string(graph.EdgeHasTheme):        {},
	string(graph.EdgeContainsImagery): {},
	string(graph.EdgeConveysEmotion):  {},
	string(graph.EdgeUsesSoundDevice): {},
}

// Run validates the graph. A nil catalog skips the route checks.
func Run(g *graph.Graph, catalog *config.RouteCatalog) (*Report, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is required")
	}

	issues := make([]Issue, 0)
	issues = append(issues, checkEdges(g)...)
	issues = append(issues, checkEntities(g)...)
	issues = append(issues, checkPoems(g, catalog)...)
	return &Report{Issues: issues}, nil
}

func checkEdges(g *graph.Graph) []Issue {
	var issues []Issue
	for _, edge := range g.EdgeViews() {
		if edge.SourceType == "unknown" || edge.TargetType == "unknown" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDanglingEdge,
				Message:  fmt.Sprintf("edge %s -> %s references a missing node", edge.SourceID, edge.TargetID),
				NodeID:   edge.SourceID,
			})
			continue
		}
		if _, relation := relationTypes[edge.ConnectionType]; relation {
			continue
		}
		// Everything else is a narrative connection, which must join two
		// poems.
		if edge.SourceType != string(graph.KindPoem) || edge.TargetType != string(graph.KindPoem) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeNarrativeTarget,
				Message: fmt.Sprintf("narrative connection %s -> %s joins %s to %s, want poem to poem",
					edge.SourceID, edge.TargetID, edge.SourceType, edge.TargetType),
				NodeID: edge.SourceID,
			})
		}
	}
	return issues
}

func checkEntities(g *graph.Graph) []Issue {
	referenceCounts := make(map[string]int)
	for _, edge := range g.EdgeViews() {
		if _, relation := relationTypes[edge.ConnectionType]; relation {
			referenceCounts[edge.TargetID]++
		}
	}

	var issues []Issue
	for _, kind := range graph.EntityKinds {
		for _, entity := range g.Entities(kind) {
			if want := graph.EntityID(kind, entity.Name); want != entity.ID {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     codeEntityIDDrift,
					Message:  fmt.Sprintf("entity %q has id %s, want %s", entity.Name, entity.ID, want),
					NodeID:   entity.ID,
				})
			}

			references := referenceCounts[entity.ID]
			switch {
			case references == 0:
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     codeOrphanedEntity,
					Message:  fmt.Sprintf("%s %q is referenced by no poem", kind, entity.Name),
					NodeID:   entity.ID,
				})
			case entity.UsageCount < references:
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     codeUsageUnderflow,
					Message: fmt.Sprintf("%s %q has usage count %d but %d relation edges",
						kind, entity.Name, entity.UsageCount, references),
					NodeID: entity.ID,
				})
			case entity.UsageCount > references:
				// Removals without orphan cleanup leave the historical count
				// above the live edge count.
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     codeUsageDrift,
					Message: fmt.Sprintf("%s %q has usage count %d but only %d relation edges",
						kind, entity.Name, entity.UsageCount, references),
					NodeID: entity.ID,
				})
			}
		}
	}
	return issues
}

func checkPoems(g *graph.Graph, catalog *config.RouteCatalog) []Issue {
	knownRoles := make(map[graph.Role]struct{}, len(graph.Roles))
	for _, role := range graph.Roles {
		knownRoles[role] = struct{}{}
	}

	var issues []Issue
	for _, poem := range g.Poems("") {
		if !poem.NarrativeRole.IsUnassigned() {
			if _, ok := knownRoles[poem.NarrativeRole]; !ok {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     codeUnknownRole,
					Message:  fmt.Sprintf("poem %s has unknown narrative role %q", poem.ID, poem.NarrativeRole),
					NodeID:   poem.ID,
				})
			}
		}
		if catalog != nil && poem.RouteID != "" && !catalog.IsValidRoute(poem.RouteID) {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeUnknownRoute,
				Message:  fmt.Sprintf("poem %s names route %q, which is not in the route catalog", poem.ID, poem.RouteID),
				NodeID:   poem.ID,
			})
		}
	}
	return issues
}
