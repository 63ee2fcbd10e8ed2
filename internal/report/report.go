// Package report renders human-readable text reports over the poetry graph
// and saves them under a reports directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/narrative"
)

// Writer renders reports and saves them with timestamped filenames.
type Writer struct {
	dir string
	now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

func (w *Writer) save(name, content string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports dir: %w", err)
	}
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.txt", name, w.now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return path, nil
}

// GraphReport renders the complete graph report: summary, per-route
// productivity, thematic pairings, structure, timeline, connections, and a
// full poem catalog.
func (w *Writer) GraphReport(g *graph.Graph) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	sub := strings.Repeat("-", 40)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "MARTA POETRY PROJECT - COMPLETE GRAPH REPORT")
	fmt.Fprintf(&b, "Generated: %s\n", w.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, rule)

	writeExecutiveSummary(&b, sub, g)
	writeRouteAnalysis(&b, sub, g)
	writeThematicAnalysis(&b, sub, g)
	writeLiteraryAnalysis(&b, sub, g)
	writeTemporalAnalysis(&b, sub, g)
	writeNetworkAnalysis(&b, sub, g)
	writePoemCatalog(&b, sub, g)

	return b.String()
}

// SaveGraphReport writes the graph report to disk and returns its path.
func (w *Writer) SaveGraphReport(g *graph.Graph) (string, error) {
	return w.save("graph_report", w.GraphReport(g))
}

func writeExecutiveSummary(b *strings.Builder, sub string, g *graph.Graph) {
	summary := g.Summary()

	fmt.Fprintln(b, "\nEXECUTIVE SUMMARY")
	fmt.Fprintln(b, sub)
	fmt.Fprintf(b, "Total Poems: %d\n", summary.TotalPoems)
	fmt.Fprintf(b, "Contributing Routes: %d\n", summary.ContributingRoutes)
	fmt.Fprintf(b, "Unique Themes: %d\n", summary.TotalThemes)
	fmt.Fprintf(b, "Imagery Elements: %d\n", summary.TotalImagery)
	fmt.Fprintf(b, "Emotional Range: %d\n", summary.TotalEmotions)
	fmt.Fprintf(b, "Sound Devices: %d\n", summary.TotalSoundDevices)
	fmt.Fprintf(b, "Graph Connections: %d\n", summary.TotalEdges)

	if summary.TotalPoems > 0 {
		n := float64(summary.TotalPoems)
		fmt.Fprintln(b, "\nAverages per Poem:")
		fmt.Fprintf(b, "  - Themes: %.1f\n", float64(summary.TotalThemes)/n)
		fmt.Fprintf(b, "  - Imagery: %.1f\n", float64(summary.TotalImagery)/n)
		fmt.Fprintf(b, "  - Emotions: %.1f\n", float64(summary.TotalEmotions)/n)
	}
}

func writeRouteAnalysis(b *strings.Builder, sub string, g *graph.Graph) {
	stats := g.AllRouteStatistics()
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].PoemCount > stats[j].PoemCount })

	fmt.Fprintln(b, "\nROUTE ANALYSIS")
	fmt.Fprintln(b, sub)
	fmt.Fprintf(b, "Active Routes: %d\n", len(stats))
	fmt.Fprintln(b, "\nRoute Productivity:")
	for _, s := range stats {
		fmt.Fprintf(b, "  - Route %s: %d poems", s.RouteID, s.PoemCount)
		if s.Structure.AvgLineCount > 0 {
			fmt.Fprintf(b, ", %.1f avg lines", s.Structure.AvgLineCount)
		}
		fmt.Fprintln(b)
		if len(s.Themes) > 0 {
			names := make([]string, 0, 3)
			for _, t := range s.Themes {
				if len(names) == 3 {
					break
				}
				names = append(names, t.Name)
			}
			fmt.Fprintf(b, "    Dominant themes: %s\n", strings.Join(names, ", "))
		}
	}
}

func writeThematicAnalysis(b *strings.Builder, sub string, g *graph.Graph) {
	fmt.Fprintln(b, "\nTHEMATIC ANALYSIS")
	fmt.Fprintln(b, sub)

	writePairCounts(b, "Most Common Theme-Emotion Combinations:",
		g.EntityCooccurrence(graph.KindTheme, graph.KindEmotion))
	fmt.Fprintln(b)
	writePairCounts(b, "Most Common Imagery-Emotion Combinations:",
		g.EntityCooccurrence(graph.KindImagery, graph.KindEmotion))
}

func writePairCounts(b *strings.Builder, heading string, pairs map[graph.CoPair]int) {
	fmt.Fprintln(b, heading)
	type pairCount struct {
		pair  graph.CoPair
		count int
	}
	ranked := make([]pairCount, 0, len(pairs))
	for pair, count := range pairs {
		ranked = append(ranked, pairCount{pair, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if ranked[i].pair.A != ranked[j].pair.A {
			return ranked[i].pair.A < ranked[j].pair.A
		}
		return ranked[i].pair.B < ranked[j].pair.B
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	for i, pc := range ranked {
		fmt.Fprintf(b, "  %2d. %s + %s: %d occurrences\n", i+1, pc.pair.A, pc.pair.B, pc.count)
	}
}

func writeLiteraryAnalysis(b *strings.Builder, sub string, g *graph.Graph) {
	fmt.Fprintln(b, "\nLITERARY ANALYSIS")
	fmt.Fprintln(b, sub)

	var lineCounts []int
	for _, poem := range g.Poems("") {
		if poem.Meta.Structure != nil && poem.Meta.Structure.LineCount > 0 {
			lineCounts = append(lineCounts, poem.Meta.Structure.LineCount)
		}
	}

	fmt.Fprintln(b, "Structural Patterns:")
	if len(lineCounts) == 0 {
		fmt.Fprintln(b, "  No structure data available.")
		return
	}
	total, minLines, maxLines := 0, lineCounts[0], lineCounts[0]
	for _, count := range lineCounts {
		total += count
		if count < minLines {
			minLines = count
		}
		if count > maxLines {
			maxLines = count
		}
	}
	avg := float64(total) / float64(len(lineCounts))
	fmt.Fprintf(b, "  - Line count: avg=%.1f, range=%d-%d\n", avg, minLines, maxLines)

	patterns := g.CommonSoundPatterns()
	if len(patterns.CommonPairs) > 0 {
		fmt.Fprintln(b, "\nSound Pattern Distribution:")
		for _, pc := range patterns.CommonPairs {
			fmt.Fprintf(b, "  - %s + %s: %d poems\n", pc.Pair.A, pc.Pair.B, pc.Count)
		}
	}
}

func writeTemporalAnalysis(b *strings.Builder, sub string, g *graph.Graph) {
	fmt.Fprintln(b, "\nTEMPORAL ANALYSIS")
	fmt.Fprintln(b, sub)

	poems := g.Poems("")
	var dated []*graph.PoemView
	for _, poem := range poems {
		if !poem.CreatedAt.IsZero() {
			dated = append(dated, poem)
		}
	}
	if len(dated) == 0 {
		fmt.Fprintln(b, "No temporal data available.")
		return
	}
	sort.SliceStable(dated, func(i, j int) bool { return dated[i].CreatedAt.Before(dated[j].CreatedAt) })

	fmt.Fprintf(b, "Composition Timeline (%d poems):\n", len(dated))
	fmt.Fprintf(b, "First poem: %s\n", dated[0].CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(b, "Latest poem: %s\n", dated[len(dated)-1].CreatedAt.Format("2006-01-02 15:04"))

	daily := make(map[string]int)
	var days []string
	for _, poem := range dated {
		day := poem.CreatedAt.Format("2006-01-02")
		if _, seen := daily[day]; !seen {
			days = append(days, day)
		}
		daily[day]++
	}
	if len(days) > 1 {
		sort.Strings(days)
		fmt.Fprintln(b, "\nDaily distribution:")
		for _, day := range days {
			fmt.Fprintf(b, "  - %s: %d poems\n", day, daily[day])
		}
	}
}

func writeNetworkAnalysis(b *strings.Builder, sub string, g *graph.Graph) {
	fmt.Fprintln(b, "\nNETWORK ANALYSIS")
	fmt.Fprintln(b, sub)

	typeCounts := make(map[string]int)
	var types []string
	for _, edge := range g.EdgeViews() {
		if _, seen := typeCounts[edge.ConnectionType]; !seen {
			types = append(types, edge.ConnectionType)
		}
		typeCounts[edge.ConnectionType]++
	}
	sort.Strings(types)

	fmt.Fprintln(b, "Connection Types:")
	for _, connType := range types {
		fmt.Fprintf(b, "  - %s: %d\n", connType, typeCounts[connType])
	}

	poems := g.Poems("")
	sort.SliceStable(poems, func(i, j int) bool {
		return g.Degree(poems[i].ID) > g.Degree(poems[j].ID)
	})
	if len(poems) > 5 {
		poems = poems[:5]
	}
	if len(poems) > 0 {
		fmt.Fprintln(b, "\nMost Connected Poems:")
		for _, poem := range poems {
			title := poem.Title
			if title == "" {
				title = "Untitled"
			}
			fmt.Fprintf(b, "  - %s: %d connections\n", truncate(title, 40), g.Degree(poem.ID))
		}
	}
}

func writePoemCatalog(b *strings.Builder, sub string, g *graph.Graph) {
	fmt.Fprintln(b, "\nCOMPLETE POEM CATALOG")
	fmt.Fprintln(b, sub)

	poems := g.Poems("")
	sort.SliceStable(poems, func(i, j int) bool { return poems[i].CreatedAt.Before(poems[j].CreatedAt) })

	for i, poem := range poems {
		title := poem.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(b, "\n%2d. %s\n", i+1, title)
		fmt.Fprintf(b, "    ID: %s\n", poem.ID)
		routeID := poem.RouteID
		if routeID == "" {
			routeID = "Unknown"
		}
		fmt.Fprintf(b, "    Route: %s\n", routeID)
		if !poem.CreatedAt.IsZero() {
			fmt.Fprintf(b, "    Created: %s\n", poem.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		writeEntityLine(b, "Themes", poem.Themes, 5)
		writeEntityLine(b, "Imagery", poem.Imagery, 5)
		writeEntityLine(b, "Emotions", poem.Emotions, 3)
		writeEntityLine(b, "Sound", poem.SoundDevices, 3)
		if poem.Text != "" {
			firstLine := strings.SplitN(poem.Text, "\n", 2)[0]
			fmt.Fprintf(b, "    %q\n", truncate(firstLine, 60))
		}
	}
}

func writeEntityLine(b *strings.Builder, label string, names []string, limit int) {
	if len(names) == 0 {
		return
	}
	shown := names
	suffix := ""
	if len(shown) > limit {
		shown = shown[:limit]
		suffix = "..."
	}
	fmt.Fprintf(b, "    %s: %s%s\n", label, strings.Join(shown, ", "), suffix)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// AdherenceReport renders a narrative adherence sweep as a readable report.
func (w *Writer) AdherenceReport(sweep narrative.SweepResult) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	sub := strings.Repeat("-", 40)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "NARRATIVE ADHERENCE TEST REPORT")
	fmt.Fprintf(&b, "Route: %s\n", sweep.RouteID)
	fmt.Fprintf(&b, "Generated: %s\n", w.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, rule)

	fmt.Fprintln(&b, "\nEXECUTIVE SUMMARY")
	fmt.Fprintln(&b, sub)
	fmt.Fprintf(&b, "Average Adherence Across All Tests: %.2f\n", sweep.AvgScore)

	if sweep.Best != nil {
		fmt.Fprintln(&b, "\nBest Performance:")
		writePerformance(&b, sweep.Best)
	}
	if sweep.Worst != nil {
		fmt.Fprintln(&b, "\nWorst Performance:")
		writePerformance(&b, sweep.Worst)
	}

	fmt.Fprintln(&b, "\nDETAILED TEST RESULTS")
	fmt.Fprintln(&b, sub)
	for _, result := range sweep.Results {
		fmt.Fprintf(&b, "\nStory Influence: %.1f (%s)\n", result.StoryInfluence, result.ExpectedStance)
		fmt.Fprintf(&b, "   Adherence Score: %.2f\n", result.AvgScore)
		fmt.Fprintf(&b, "   Test Result: %s\n", result.Result)
		fmt.Fprintf(&b, "   Poems Analyzed: %d\n", result.PoemsAnalyzed)
		if len(result.Poems) > 0 {
			fmt.Fprintln(&b, "   Individual Poem Scores:")
			shown := result.Poems
			if len(shown) > 5 {
				shown = shown[:5]
			}
			for _, poem := range shown {
				fmt.Fprintf(&b, "     - %s: %.2f\n", truncate(poem.Title, 30), poem.Score)
			}
		}
	}

	return b.String()
}

func writePerformance(b *strings.Builder, result *narrative.RouteResult) {
	fmt.Fprintf(b, "  Story Influence: %.1f (%s)\n", result.StoryInfluence, result.ExpectedStance)
	fmt.Fprintf(b, "  Adherence Score: %.2f\n", result.AvgScore)
	fmt.Fprintf(b, "  Result: %s\n", result.Result)
}

// SaveAdherenceReport writes the adherence report to disk and returns its
// path.
func (w *Writer) SaveAdherenceReport(sweep narrative.SweepResult) (string, error) {
	return w.save("narrative_adherence_"+sweep.RouteID, w.AdherenceReport(sweep))
}
