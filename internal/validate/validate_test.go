package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bohara2000/MARTA-Poetry/internal/config"
	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

func seededGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	add := func(id, route string, themes []string) {
		t.Helper()
		err := g.AddPoem(graph.PoemInput{
			ID:      id,
			Title:   "Poem " + id,
			Text:    "brief text",
			RouteID: route,
			Themes:  themes,
		})
		if err != nil {
			t.Fatalf("AddPoem(%s): %v", id, err)
		}
	}
	add("p1", "16", []string{"transit"})
	add("p2", "16", []string{"transit", "rain"})
	return g
}

func loadCatalog(t *testing.T) *config.RouteCatalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	data := `version: 1
routes:
  - id: "16"
    name: Noble-Due West
    personality: observant
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write routes: %v", err)
	}
	catalog, err := config.LoadRouteCatalog(path)
	if err != nil {
		t.Fatalf("LoadRouteCatalog: %v", err)
	}
	return catalog
}

func issuesByCode(report *Report) map[string][]Issue {
	byCode := make(map[string][]Issue)
	for _, issue := range report.Issues {
		byCode[issue.Code] = append(byCode[issue.Code], issue)
	}
	return byCode
}

func TestRunCleanGraph(t *testing.T) {
	g := seededGraph(t)

	report, err := Run(g, loadCatalog(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("issues = %v, want none", report.Issues)
	}
	if report.Errors() {
		t.Errorf("Errors() = true on a clean graph")
	}
}

func TestRunNilGraph(t *testing.T) {
	if _, err := Run(nil, nil); err == nil {
		t.Fatalf("expected error for nil graph")
	}
}

func TestRunFlagsUsageDriftAfterRemoval(t *testing.T) {
	g := seededGraph(t)
	// Removing without orphan cleanup leaves rain with a usage count but no
	// referencing edges.
	if !g.RemovePoem("p2", false) {
		t.Fatalf("RemovePoem(p2) failed")
	}

	report, err := Run(g, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	byCode := issuesByCode(report)

	orphans := byCode[codeOrphanedEntity]
	if len(orphans) != 1 || orphans[0].NodeID != graph.EntityID(graph.KindTheme, "rain") {
		t.Errorf("orphan issues = %v, want one for rain", orphans)
	}
	drift := byCode[codeUsageDrift]
	if len(drift) != 1 || drift[0].NodeID != graph.EntityID(graph.KindTheme, "transit") {
		t.Errorf("drift issues = %v, want one for transit", drift)
	}
	for _, issue := range report.Issues {
		if issue.Severity != SeverityWarn {
			t.Errorf("issue %v should be a warning", issue)
		}
	}
	if report.Errors() {
		t.Errorf("Errors() = true, drift and orphans are warnings")
	}
}

func TestRunFlagsUnknownRoute(t *testing.T) {
	g := seededGraph(t)
	err := g.AddPoem(graph.PoemInput{
		ID:      "p3",
		Title:   "Stray",
		Text:    "off the map",
		RouteID: "99",
		Themes:  []string{"transit"},
	})
	if err != nil {
		t.Fatalf("AddPoem: %v", err)
	}

	report, err := Run(g, loadCatalog(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	routeIssues := issuesByCode(report)[codeUnknownRoute]
	if len(routeIssues) != 1 || routeIssues[0].NodeID != "p3" {
		t.Fatalf("route issues = %v, want one for p3", routeIssues)
	}
	if routeIssues[0].Severity != SeverityWarn {
		t.Errorf("unknown route should be a warning")
	}

	// Without a catalog the route check is skipped.
	report, err = Run(g, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(issuesByCode(report)[codeUnknownRoute]) != 0 {
		t.Errorf("route issues reported without a catalog")
	}
}

func TestRunAcceptsNarrativeConnections(t *testing.T) {
	g := seededGraph(t)
	if !g.CreateConnection("p1", "p2", "narrative_extension", 0.8, "") {
		t.Fatalf("CreateConnection failed")
	}
	g.MarkRole("p1", graph.RoleCore)

	report, err := Run(g, loadCatalog(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("issues = %v, want none", report.Issues)
	}
}
