package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/narrative"
)

func reportGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()

	add := func(id, title, route string, themes, sounds []string) {
		t.Helper()
		err := g.AddPoem(graph.PoemInput{
			ID:           id,
			Title:        title,
			Text:         "steel doors sigh open\nthe platform exhales",
			RouteID:      route,
			Themes:       themes,
			Imagery:      []string{"platform"},
			Emotions:     []string{"calm"},
			SoundDevices: sounds,
			Meta: graph.PoemMeta{
				Structure: &graph.StructureMeta{LineCount: 2, LineLengths: []int{20, 19}},
			},
		})
		if err != nil {
			t.Fatalf("AddPoem(%s): %v", id, err)
		}
	}

	add("p1", "Opening Doors", "R1", []string{"transit", "waiting"}, []string{"alliteration", "assonance"})
	add("p2", "Night Platform", "R1", []string{"transit"}, []string{"alliteration", "assonance"})
	add("p3", "Crossing", "R2", []string{"waiting"}, nil)
	g.CreateConnection("p1", "p2", "narrative_extension", 0.9, "")
	return g
}

func fixedWriter(t *testing.T) *Writer {
	t.Helper()
	w := NewWriter(filepath.Join(t.TempDir(), "reports"))
	w.now = func() time.Time { return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC) }
	return w
}

func TestGraphReport(t *testing.T) {
	g := reportGraph(t)
	w := fixedWriter(t)

	text := w.GraphReport(g)

	for _, want := range []string{
		"MARTA POETRY PROJECT - COMPLETE GRAPH REPORT",
		"EXECUTIVE SUMMARY",
		"Total Poems: 3",
		"Contributing Routes: 2",
		"ROUTE ANALYSIS",
		"Route R1: 2 poems",
		"Dominant themes: transit",
		"THEMATIC ANALYSIS",
		"transit + calm: 2 occurrences",
		"LITERARY ANALYSIS",
		"Line count: avg=2.0, range=2-2",
		"alliteration + assonance: 2 poems",
		"TEMPORAL ANALYSIS",
		"Composition Timeline (3 poems):",
		"NETWORK ANALYSIS",
		"narrative_extension: 1",
		"has_theme: 4",
		"Most Connected Poems:",
		"COMPLETE POEM CATALOG",
		" 1. Opening Doors",
		"Route: R1",
		"Themes: transit, waiting",
		`"steel doors sigh open"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestGraphReportRanksRoutesByPoemCount(t *testing.T) {
	g := reportGraph(t)
	w := fixedWriter(t)

	text := w.GraphReport(g)
	r1 := strings.Index(text, "Route R1:")
	r2 := strings.Index(text, "Route R2:")
	if r1 < 0 || r2 < 0 || r1 > r2 {
		t.Errorf("R1 (2 poems) should precede R2 (1 poem): r1=%d r2=%d", r1, r2)
	}
}

func TestSaveGraphReport(t *testing.T) {
	g := reportGraph(t)
	w := fixedWriter(t)

	path, err := w.SaveGraphReport(g)
	if err != nil {
		t.Fatalf("SaveGraphReport: %v", err)
	}
	if filepath.Base(path) != "graph_report_20250615_103000.txt" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "EXECUTIVE SUMMARY") {
		t.Errorf("saved report missing summary section")
	}
}

func adherenceSweep() narrative.SweepResult {
	results := []narrative.RouteResult{
		{
			RouteID:        "R1",
			StoryInfluence: 0.1,
			ExpectedStance: narrative.StanceOpposing,
			AvgScore:       0.35,
			Result:         "POOR",
			PoemsAnalyzed:  2,
			Poems: []narrative.PoemResult{
				{PoemID: "p1", Title: "Opening Doors", Score: 0.4},
				{PoemID: "p2", Title: "Night Platform", Score: 0.3},
			},
		},
		{
			RouteID:        "R1",
			StoryInfluence: 0.9,
			ExpectedStance: narrative.StanceSupporting,
			AvgScore:       0.85,
			Result:         "HIGH ADHERENCE",
			PoemsAnalyzed:  2,
		},
	}
	sweep := narrative.SweepResult{
		RouteID:  "R1",
		Results:  results,
		AvgScore: (0.35 + 0.85) / 2,
	}
	sweep.Best = &sweep.Results[1]
	sweep.Worst = &sweep.Results[0]
	return sweep
}

func TestAdherenceReport(t *testing.T) {
	w := fixedWriter(t)

	text := w.AdherenceReport(adherenceSweep())

	for _, want := range []string{
		"NARRATIVE ADHERENCE TEST REPORT",
		"Route: R1",
		"Average Adherence Across All Tests: 0.60",
		"Best Performance:",
		"Story Influence: 0.9 (supporting)",
		"Adherence Score: 0.85",
		"Worst Performance:",
		"Story Influence: 0.1 (opposing)",
		"DETAILED TEST RESULTS",
		"Test Result: POOR",
		"Poems Analyzed: 2",
		"Individual Poem Scores:",
		"- Opening Doors: 0.40",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("adherence report missing %q", want)
		}
	}
}

func TestSaveAdherenceReport(t *testing.T) {
	w := fixedWriter(t)

	path, err := w.SaveAdherenceReport(adherenceSweep())
	if err != nil {
		t.Fatalf("SaveAdherenceReport: %v", err)
	}
	if filepath.Base(path) != "narrative_adherence_R1_20250615_103000.txt" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}
}
