package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

func exportFixture(t *testing.T) (*graph.Graph, *Exporter) {
	t.Helper()
	g := graph.New()

	add := func(id, title, route string, themes, emotions, sounds []string) {
		t.Helper()
		in := graph.PoemInput{
			ID:       id,
			Title:    title,
			Text:     "the train hums\nunder the city",
			RouteID:  route,
			Themes:   themes,
			Imagery:  []string{"rails"},
			Emotions: emotions,
			Meta: graph.PoemMeta{
				Structure: &graph.StructureMeta{LineCount: 2, LineLengths: []int{14, 14}},
			},
			SoundDevices: sounds,
		}
		if err := g.AddPoem(in); err != nil {
			t.Fatalf("AddPoem(%s): %v", id, err)
		}
	}

	add("p1", "First Light", "R1", []string{"transit"}, []string{"wonder"}, []string{"alliteration"})
	add("p2", "Second Bell", "R2", []string{"transit", "rain"}, []string{"dread"}, nil)
	if !g.CreateConnection("p1", "p2", "narrative_extension", 0.8, "") {
		t.Fatalf("CreateConnection failed")
	}
	g.MarkRole("p1", graph.RoleCore)
	g.ClearRole("p2")

	e := New(g, filepath.Join(t.TempDir(), "exports"))
	e.now = func() time.Time { return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC) }
	return g, e
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestPoemsCSV(t *testing.T) {
	_, e := exportFixture(t)

	path, err := e.PoemsCSV()
	if err != nil {
		t.Fatalf("PoemsCSV: %v", err)
	}
	if filepath.Base(path) != "poems_20250615_103000.csv" {
		t.Fatalf("unexpected filename %q", filepath.Base(path))
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 poems", len(rows))
	}
	if rows[0][0] != "poem_id" || rows[0][7] != "themes" {
		t.Fatalf("unexpected header %v", rows[0])
	}

	byID := map[string][]string{}
	for _, row := range rows[1:] {
		byID[row[0]] = row
	}
	p2 := byID["p2"]
	if p2 == nil {
		t.Fatalf("p2 row missing")
	}
	if p2[7] != "transit; rain" {
		t.Errorf("p2 themes = %q, want %q", p2[7], "transit; rain")
	}
	if p2[3] != string(graph.RoleUnassigned) && p2[3] != "" {
		t.Errorf("p2 role = %q, want unassigned", p2[3])
	}
	if p2[6] != "2" {
		t.Errorf("p2 line_count = %q, want 2", p2[6])
	}
	if byID["p1"][3] != string(graph.RoleCore) {
		t.Errorf("p1 role = %q, want %s", byID["p1"][3], graph.RoleCore)
	}
}

func TestConnectionsCSV(t *testing.T) {
	g, e := exportFixture(t)

	path, err := e.ConnectionsCSV()
	if err != nil {
		t.Fatalf("ConnectionsCSV: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != g.EdgeCount()+1 {
		t.Fatalf("rows = %d, want %d edges + header", len(rows), g.EdgeCount())
	}

	var narrative []string
	for _, row := range rows[1:] {
		if row[4] == "narrative_extension" {
			narrative = row
		}
	}
	if narrative == nil {
		t.Fatalf("narrative edge missing from %v", rows)
	}
	want := []string{"p1", "p2", "poem", "poem", "narrative_extension", "First Light", "Second Bell"}
	for i, col := range want {
		if narrative[i] != col {
			t.Errorf("narrative row[%d] = %q, want %q", i, narrative[i], col)
		}
	}
}

func TestSummaryJSON(t *testing.T) {
	_, e := exportFixture(t)

	path, err := e.SummaryJSON()
	if err != nil {
		t.Fatalf("SummaryJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	var doc struct {
		GeneratedAt    string `json:"generated_at"`
		GraphSummary   struct {
			TotalPoems int `json:"total_poems"`
		} `json:"graph_summary"`
		RouteStatistics []json.RawMessage `json:"route_statistics"`
		ElementsByType  map[string][]struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Connections int    `json:"connections"`
		} `json:"elements_by_type"`
		CoOccurrences map[string]map[string]int `json:"co_occurrences"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}

	if doc.GeneratedAt == "" {
		t.Errorf("generated_at missing")
	}
	if doc.GraphSummary.TotalPoems != 2 {
		t.Errorf("total_poems = %d, want 2", doc.GraphSummary.TotalPoems)
	}
	if len(doc.RouteStatistics) != 2 {
		t.Errorf("route_statistics len = %d, want 2", len(doc.RouteStatistics))
	}

	themes := doc.ElementsByType["theme"]
	var transit *struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Connections int    `json:"connections"`
	}
	for i := range themes {
		if themes[i].Name == "transit" {
			transit = &themes[i]
		}
	}
	if transit == nil {
		t.Fatalf("transit missing from theme elements %v", themes)
	}
	if transit.Connections != 2 {
		t.Errorf("transit connections = %d, want 2", transit.Connections)
	}

	if doc.CoOccurrences["theme_emotion"]["transit+wonder"] != 1 {
		t.Errorf("theme_emotion transit+wonder = %d, want 1",
			doc.CoOccurrences["theme_emotion"]["transit+wonder"])
	}
	if doc.CoOccurrences["imagery_emotion"]["rails+dread"] != 1 {
		t.Errorf("imagery_emotion rails+dread = %d, want 1",
			doc.CoOccurrences["imagery_emotion"]["rails+dread"])
	}
}

func TestPoemsText(t *testing.T) {
	_, e := exportFixture(t)

	path, err := e.PoemsText()
	if err != nil {
		t.Fatalf("PoemsText: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read text: %v", err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "MARTA POETRY PROJECT - COMPLETE COLLECTION\n") {
		t.Errorf("missing collection header")
	}
	if !strings.Contains(text, "Total Poems: 2") {
		t.Errorf("missing total count")
	}
	first := strings.Index(text, "1. First Light")
	second := strings.Index(text, "2. Second Bell")
	if first < 0 || second < 0 || first > second {
		t.Errorf("poems missing or out of order: first=%d second=%d", first, second)
	}
	if !strings.Contains(text, "Route: R1") {
		t.Errorf("missing route line")
	}
	if !strings.Contains(text, "the train hums") {
		t.Errorf("missing poem body")
	}
}

func TestExportAll(t *testing.T) {
	_, e := exportFixture(t)

	paths, err := e.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	for _, key := range []string{"poems_csv", "connections_csv", "summary_json", "poems_text"} {
		path, ok := paths[key]
		if !ok {
			t.Fatalf("missing %s in %v", key, paths)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", key, err)
		}
	}
}
