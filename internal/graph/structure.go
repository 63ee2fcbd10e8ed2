package graph

import (
	"math"
	"sort"
)

// RouteMetrics aggregates free verse structure metrics across a route's
// poems. Poems without a structure record are excluded from the averages
// rather than counted as zero.
type RouteMetrics struct {
	RouteID              string
	PoemCount            int
	LineCounts           []int
	AvgLineLengths       []float64
	StanzaPatterns       [][]int
	AvgLineCount         float64
	OverallAvgLineLength float64
}

func (g *Graph) FreeVerseMetrics(routeID string) RouteMetrics {
	metrics := RouteMetrics{RouteID: routeID}
	for _, id := range g.poemIDs(routeID) {
		metrics.PoemCount++
		structure := g.poems[id].Meta.Structure
		if structure == nil {
			continue
		}
		if structure.LineCount > 0 {
			metrics.LineCounts = append(metrics.LineCounts, structure.LineCount)
		}
		if len(structure.LineLengths) > 0 {
			total := 0
			for _, length := range structure.LineLengths {
				total += length
			}
			metrics.AvgLineLengths = append(metrics.AvgLineLengths, float64(total)/float64(len(structure.LineLengths)))
		}
		if len(structure.StanzaBreaks) > 0 {
			metrics.StanzaPatterns = append(metrics.StanzaPatterns, structure.StanzaBreaks)
		}
	}

	if len(metrics.LineCounts) > 0 {
		total := 0
		for _, count := range metrics.LineCounts {
			total += count
		}
		metrics.AvgLineCount = float64(total) / float64(len(metrics.LineCounts))
	}
	if len(metrics.AvgLineLengths) > 0 {
		total := 0.0
		for _, avg := range metrics.AvgLineLengths {
			total += avg
		}
		metrics.OverallAvgLineLength = total / float64(len(metrics.AvgLineLengths))
	}
	return metrics
}

// StructuralDiversityScore measures how varied a route's poem lengths are:
// the population coefficient of variation of line counts, scaled by 2 and
// clamped to 1.0. Poetry's natural CoV rarely exceeds about 0.5, so the
// doubling normalizes it into a usable [0, 1] signal. Routes with fewer
// than two line counts score 0.
func (g *Graph) StructuralDiversityScore(routeID string) float64 {
	lineCounts := g.FreeVerseMetrics(routeID).LineCounts
	if len(lineCounts) < 2 {
		return 0.0
	}

	total := 0
	for _, count := range lineCounts {
		total += count
	}
	mean := float64(total) / float64(len(lineCounts))
	if mean == 0 {
		return 0.0
	}

	variance := 0.0
	for _, count := range lineCounts {
		diff := float64(count) - mean
		variance += diff * diff
	}
	variance /= float64(len(lineCounts))

	cov := math.Sqrt(variance) / mean
	return math.Min(cov*2, 1.0)
}

// NameCount is a display name with its per-route reference count.
type NameCount struct {
	Name  string
	Count int
}

// RouteStatistics describes one route's contributions to the corpus.
type RouteStatistics struct {
	RouteID             string
	PoemCount           int
	Themes              []NameCount
	Imagery             []NameCount
	Emotions            []NameCount
	SoundDevices        []NameCount
	Structure           RouteMetrics
	StructuralDiversity float64
}

func (g *Graph) RouteStatistics(routeID string) RouteStatistics {
	stats := RouteStatistics{RouteID: routeID}
	counters := map[NodeKind]map[string]int{}
	orders := map[NodeKind][]string{}

	for _, poemID := range g.poemIDs(routeID) {
		stats.PoemCount++
		for _, edge := range g.outEdges(poemID) {
			if edge.Kind == EdgeNarrative {
				continue
			}
			entity, ok := g.entities[edge.Target]
			if !ok {
				continue
			}
			if counters[entity.Kind] == nil {
				counters[entity.Kind] = make(map[string]int)
			}
			if _, seen := counters[entity.Kind][entity.Name]; !seen {
				orders[entity.Kind] = append(orders[entity.Kind], entity.Name)
			}
			counters[entity.Kind][entity.Name]++
		}
	}
	if stats.PoemCount == 0 {
		return stats
	}

	stats.Themes = mostCommon(counters[KindTheme], orders[KindTheme])
	stats.Imagery = mostCommon(counters[KindImagery], orders[KindImagery])
	stats.Emotions = mostCommon(counters[KindEmotion], orders[KindEmotion])
	stats.SoundDevices = mostCommon(counters[KindSoundDevice], orders[KindSoundDevice])
	stats.Structure = g.FreeVerseMetrics(routeID)
	stats.StructuralDiversity = g.StructuralDiversityScore(routeID)
	return stats
}

func mostCommon(counts map[string]int, order []string) []NameCount {
	out := make([]NameCount, 0, len(order))
	for _, name := range order {
		out = append(out, NameCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// RouteIDs returns the distinct routes that contributed poems, sorted.
func (g *Graph) RouteIDs() []string {
	seen := make(map[string]struct{})
	var routes []string
	for _, id := range g.poemIDs("") {
		routeID := g.poems[id].RouteID
		if routeID == "" {
			continue
		}
		if _, dup := seen[routeID]; dup {
			continue
		}
		seen[routeID] = struct{}{}
		routes = append(routes, routeID)
	}
	sort.Strings(routes)
	return routes
}

// AllRouteStatistics returns statistics for every contributing route,
// sorted by route id.
func (g *Graph) AllRouteStatistics() []RouteStatistics {
	var all []RouteStatistics
	for _, routeID := range g.RouteIDs() {
		all = append(all, g.RouteStatistics(routeID))
	}
	return all
}

// GraphSummary is the high-level shape of the corpus.
type GraphSummary struct {
	TotalPoems         int
	TotalThemes        int
	TotalImagery       int
	TotalEmotions      int
	TotalSoundDevices  int
	ContributingRoutes int
	TotalEdges         int
	Narrative          NarrativeSummary
}

func (g *Graph) Summary() GraphSummary {
	summary := GraphSummary{
		TotalPoems:         len(g.poems),
		TotalThemes:        len(g.entityIDs(KindTheme)),
		TotalImagery:       len(g.entityIDs(KindImagery)),
		TotalEmotions:      len(g.entityIDs(KindEmotion)),
		TotalSoundDevices:  len(g.entityIDs(KindSoundDevice)),
		ContributingRoutes: len(g.RouteIDs()),
		TotalEdges:         len(g.edges),
		Narrative:          g.Summarize(),
	}
	return summary
}
