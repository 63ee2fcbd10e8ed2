// Package export writes the poetry graph out as CSV, JSON, and plain text.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

// Exporter writes graph exports into a directory, one timestamped file per
// format.
type Exporter struct {
	graph *graph.Graph
	dir   string
	now   func() time.Time
}

func New(g *graph.Graph, dir string) *Exporter {
	return &Exporter{graph: g, dir: dir, now: time.Now}
}

func (e *Exporter) filename(prefix, ext string) string {
	return filepath.Join(e.dir, fmt.Sprintf("%s_%s.%s", prefix, e.now().Format("20060102_150405"), ext))
}

func (e *Exporter) ensureDir() error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	return nil
}

// PoemsCSV writes one row per poem with its connected entity names joined
// by "; ".
func (e *Exporter) PoemsCSV() (string, error) {
	if err := e.ensureDir(); err != nil {
		return "", err
	}
	path := e.filename("poems", "csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("exporting poems csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"poem_id", "title", "route_id", "narrative_role", "created_at",
		"text_length", "line_count", "themes", "imagery", "emotions", "sound_devices",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("exporting poems csv: %w", err)
	}

	for _, poem := range e.graph.Poems("") {
		lineCount := ""
		if poem.Meta.Structure != nil && poem.Meta.Structure.LineCount > 0 {
			lineCount = strconv.Itoa(poem.Meta.Structure.LineCount)
		}
		row := []string{
			poem.ID,
			poem.Title,
			poem.RouteID,
			string(poem.NarrativeRole),
			poem.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(len(poem.Text)),
			lineCount,
			strings.Join(poem.Themes, "; "),
			strings.Join(poem.Imagery, "; "),
			strings.Join(poem.Emotions, "; "),
			strings.Join(poem.SoundDevices, "; "),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("exporting poems csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("exporting poems csv: %w", err)
	}
	return path, nil
}

// ConnectionsCSV writes one row per edge with endpoint kinds and names.
func (e *Exporter) ConnectionsCSV() (string, error) {
	if err := e.ensureDir(); err != nil {
		return "", err
	}
	path := e.filename("connections", "csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("exporting connections csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"source_id", "target_id", "source_type", "target_type",
		"connection_type", "source_name", "target_name",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("exporting connections csv: %w", err)
	}

	for _, edge := range e.graph.EdgeViews() {
		row := []string{
			edge.SourceID, edge.TargetID, edge.SourceType, edge.TargetType,
			edge.ConnectionType, edge.SourceName, edge.TargetName,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("exporting connections csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("exporting connections csv: %w", err)
	}
	return path, nil
}

type entitySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

type graphTotals struct {
	TotalPoems         int `json:"total_poems"`
	TotalThemes        int `json:"total_themes"`
	TotalImagery       int `json:"total_imagery"`
	TotalEmotions      int `json:"total_emotions"`
	TotalSoundDevices  int `json:"total_sound_devices"`
	ContributingRoutes int `json:"contributing_routes"`
	TotalEdges         int `json:"total_edges"`
	NarrativeCore      int `json:"narrative_core_poems"`
	NarrativeLinks     int `json:"narrative_connections"`
}

type nameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type routeReport struct {
	RouteID             string      `json:"route_id"`
	PoemCount           int         `json:"poem_count"`
	Themes              []nameCount `json:"common_themes"`
	Imagery             []nameCount `json:"common_imagery"`
	Emotions            []nameCount `json:"common_emotions"`
	SoundDevices        []nameCount `json:"common_sound_devices"`
	AvgLineCount        float64     `json:"avg_line_count"`
	AvgLineLength       float64     `json:"avg_line_length"`
	StructuralDiversity float64     `json:"structural_diversity"`
}

type summaryDocument struct {
	GeneratedAt     string                     `json:"generated_at"`
	GraphSummary    graphTotals                `json:"graph_summary"`
	RouteStatistics []routeReport              `json:"route_statistics"`
	ElementsByType  map[string][]entitySummary `json:"elements_by_type"`
	CoOccurrences   map[string]map[string]int  `json:"co_occurrences"`
}

func totalsOf(s graph.GraphSummary) graphTotals {
	return graphTotals{
		TotalPoems:         s.TotalPoems,
		TotalThemes:        s.TotalThemes,
		TotalImagery:       s.TotalImagery,
		TotalEmotions:      s.TotalEmotions,
		TotalSoundDevices:  s.TotalSoundDevices,
		ContributingRoutes: s.ContributingRoutes,
		TotalEdges:         s.TotalEdges,
		NarrativeCore:      s.Narrative.CorePoems,
		NarrativeLinks:     s.Narrative.Connections,
	}
}

func routeReportOf(stats graph.RouteStatistics) routeReport {
	return routeReport{
		RouteID:             stats.RouteID,
		PoemCount:           stats.PoemCount,
		Themes:              nameCountsOf(stats.Themes),
		Imagery:             nameCountsOf(stats.Imagery),
		Emotions:            nameCountsOf(stats.Emotions),
		SoundDevices:        nameCountsOf(stats.SoundDevices),
		AvgLineCount:        stats.Structure.AvgLineCount,
		AvgLineLength:       stats.Structure.OverallAvgLineLength,
		StructuralDiversity: stats.StructuralDiversity,
	}
}

func nameCountsOf(counts []graph.NameCount) []nameCount {
	out := make([]nameCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, nameCount{Name: c.Name, Count: c.Count})
	}
	return out
}

// SummaryJSON writes the full analytical snapshot: totals, per-route
// statistics, entity inventories, and co-occurrence counts.
func (e *Exporter) SummaryJSON() (string, error) {
	if err := e.ensureDir(); err != nil {
		return "", err
	}
	path := e.filename("graph_summary", "json")

	doc := summaryDocument{
		GeneratedAt:    e.now().Format(time.RFC3339),
		GraphSummary:   totalsOf(e.graph.Summary()),
		ElementsByType: make(map[string][]entitySummary),
		CoOccurrences: map[string]map[string]int{
			"theme_emotion":   flattenPairs(e.graph.EntityCooccurrence(graph.KindTheme, graph.KindEmotion)),
			"imagery_emotion": flattenPairs(e.graph.EntityCooccurrence(graph.KindImagery, graph.KindEmotion)),
		},
	}

	for _, stats := range e.graph.AllRouteStatistics() {
		doc.RouteStatistics = append(doc.RouteStatistics, routeReportOf(stats))
	}

	for _, kind := range graph.EntityKinds {
		var entries []entitySummary
		for _, entity := range e.graph.Entities(kind) {
			entries = append(entries, entitySummary{
				ID:          entity.ID,
				Name:        entity.Name,
				Connections: e.graph.Degree(entity.ID),
			})
		}
		doc.ElementsByType[string(kind)] = entries
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("exporting summary json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("exporting summary json: %w", err)
	}
	return path, nil
}

func flattenPairs(pairs map[graph.CoPair]int) map[string]int {
	flat := make(map[string]int, len(pairs))
	for pair, count := range pairs {
		flat[pair.A+"+"+pair.B] = count
	}
	return flat
}

// PoemsText writes the whole collection as one readable text file, oldest
// poem first.
func (e *Exporter) PoemsText() (string, error) {
	if err := e.ensureDir(); err != nil {
		return "", err
	}
	path := e.filename("all_poems", "txt")

	poems := e.graph.Poems("")
	sort.SliceStable(poems, func(i, j int) bool {
		return poems[i].CreatedAt.Before(poems[j].CreatedAt)
	})

	var sb strings.Builder
	rule := strings.Repeat("=", 60)
	sb.WriteString("MARTA POETRY PROJECT - COMPLETE COLLECTION\n")
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "Generated: %s\n", e.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Total Poems: %d\n", len(poems))
	sb.WriteString(rule + "\n\n")

	for i, poem := range poems {
		title := poem.Title
		if title == "" {
			title = "Untitled"
		}
		routeID := poem.RouteID
		if routeID == "" {
			routeID = "Unknown"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		fmt.Fprintf(&sb, "Route: %s\n", routeID)
		if !poem.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, "Created: %s\n", poem.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		sb.WriteString(poem.Text + "\n")
		sb.WriteString(rule + "\n\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return "", fmt.Errorf("exporting poems text: %w", err)
	}
	return path, nil
}

// All runs every export and returns format -> written path.
func (e *Exporter) All() (map[string]string, error) {
	out := make(map[string]string, 4)
	steps := []struct {
		key string
		fn  func() (string, error)
	}{
		{"poems_csv", e.PoemsCSV},
		{"connections_csv", e.ConnectionsCSV},
		{"summary_json", e.SummaryJSON},
		{"poems_text", e.PoemsText},
	}
	for _, step := range steps {
		path, err := step.fn()
		if err != nil {
			return nil, err
		}
		out[step.key] = path
	}
	return out, nil
}
