package graph

import "sort"

// MarkRole sets a poem's narrative role, overwriting any previous role.
// Any role may replace any other. Returns false if the id is absent or not
// a poem.
func (g *Graph) MarkRole(poemID string, role Role) bool {
	poem, ok := g.poems[poemID]
	if !ok {
		return false
	}
	poem.NarrativeRole = role
	return true
}

// ClearRole removes a poem's narrative role entirely, reverting it to the
// unassigned state.
func (g *Graph) ClearRole(poemID string) bool {
	poem, ok := g.poems[poemID]
	if !ok {
		return false
	}
	poem.NarrativeRole = ""
	return true
}

// PoemsByRole returns poems holding the role, newest first. Querying for
// RoleUnassigned also matches poems whose role attribute is absent.
func (g *Graph) PoemsByRole(role Role) []*PoemView {
	var out []*PoemView
	for _, id := range g.poemIDs("") {
		poem := g.poems[id]
		if roleMatches(poem.NarrativeRole, role) {
			out = append(out, g.poemView(poem))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func roleMatches(have, want Role) bool {
	if want.IsUnassigned() {
		return have.IsUnassigned()
	}
	return have == want
}

// CreateConnection adds a directed narrative edge between two poems.
// Returns false if either endpoint is absent or not a poem.
func (g *Graph) CreateConnection(sourceID, targetID, connectionType string, strength float64, notes string) bool {
	if _, ok := g.poems[sourceID]; !ok {
		return false
	}
	if _, ok := g.poems[targetID]; !ok {
		return false
	}
	if connectionType == "" {
		connectionType = "narrative_extension"
	}
	g.edges = append(g.edges, &Edge{
		Source: sourceID,
		Target: targetID,
		Kind:   EdgeNarrative,
		Narrative: &NarrativeAttrs{
			ConnectionType: connectionType,
			Strength:       strength,
			Notes:          notes,
			CreatedAt:      g.now(),
		},
	})
	return true
}

// RemoveConnection deletes every narrative edge from source to target.
// Returns true iff at least one edge was removed.
func (g *Graph) RemoveConnection(sourceID, targetID string) bool {
	removed := false
	kept := g.edges[:0]
	for _, edge := range g.edges {
		if edge.Kind == EdgeNarrative && edge.Source == sourceID && edge.Target == targetID {
			removed = true
			continue
		}
		kept = append(kept, edge)
	}
	g.edges = kept
	return removed
}

// NarrativeSummary aggregates the narrative structure of the graph.
type NarrativeSummary struct {
	CorePoems           int
	ExtensionPoems      int
	VariationPoems      int
	RouteGeneratedPoems int
	UnassignedPoems     int
	Connections         int
	CorePoemTitles      []string
	LatestCorePoem      *PoemView
	TotalNarrativePoems int
}

func (g *Graph) Summarize() NarrativeSummary {
	var summary NarrativeSummary
	for _, id := range g.poemIDs("") {
		switch role := g.poems[id].NarrativeRole; {
		case role == RoleCore:
			summary.CorePoems++
		case role == RoleExtension:
			summary.ExtensionPoems++
		case role == RoleVariation:
			summary.VariationPoems++
		case role == RoleRouteGenerated:
			summary.RouteGeneratedPoems++
		case role.IsUnassigned():
			summary.UnassignedPoems++
		}
	}
	for _, edge := range g.edges {
		if edge.Kind == EdgeNarrative {
			summary.Connections++
		}
	}

	core := g.PoemsByRole(RoleCore)
	for _, poem := range core {
		summary.CorePoemTitles = append(summary.CorePoemTitles, poem.Title)
	}
	if len(core) > 0 {
		summary.LatestCorePoem = core[0]
	}
	summary.TotalNarrativePoems = summary.CorePoems + summary.ExtensionPoems
	return summary
}

// RemovalCandidate identifies a poem slated for bulk removal.
type RemovalCandidate struct {
	ID    string
	Title string
	Role  Role
}

// PlanRemovalByRole lists the poems currently holding a role, in insertion
// order, without touching the graph. The caller filters the plan and
// commits it with RemovePoems.
func (g *Graph) PlanRemovalByRole(role Role) []RemovalCandidate {
	var plan []RemovalCandidate
	for _, id := range g.poemIDs("") {
		poem := g.poems[id]
		if roleMatches(poem.NarrativeRole, role) {
			plan = append(plan, RemovalCandidate{ID: id, Title: poem.Title, Role: poem.NarrativeRole})
		}
	}
	return plan
}

// RemovePoems removes the listed poems through the normal cascade with
// orphaned-entity cleanup, returning how many were actually removed.
func (g *Graph) RemovePoems(ids []string) int {
	removed := 0
	for _, id := range ids {
		if g.RemovePoem(id, true) {
			removed++
		}
	}
	return removed
}
