package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
)

// PoemFacts is what an analyzer extracts from a poem for scoring.
type PoemFacts struct {
	Themes   []string
	Imagery  []string
	Emotions []string
}

// Analyzer extracts themes, imagery, and emotions from poem text.
type Analyzer interface {
	AnalyzePoem(ctx context.Context, title, text string) (PoemFacts, error)
}

// Adherence result buckets.
const (
	AdherenceHigh     = "HIGH_ADHERENCE"
	AdherenceModerate = "MODERATE_ADHERENCE"
	AdherenceLow      = "LOW_ADHERENCE"
	AdherencePoor     = "POOR_ADHERENCE"
	AdherenceNoPoems  = "NO_POEMS"
)

// DefaultInfluenceLevels is the sweep used by comprehensive tests.
var DefaultInfluenceLevels = []float64{0.1, 0.3, 0.5, 0.7, 0.9}

/// Scoring weights: theme alignment dominates, fragments barely register.
const (
	weightThemes    = 0.4
	weightMotifs    = 0.3
	weightEmotions  = 0.2
	weightFragments = 0.1
)

// Factor is one weighted component of a poem's adherence score.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// PoemResult scores one poem against the expected stance.
type PoemResult struct {
	PoemID  string   `json:"poem_id"`
	Title   string   `json:"title"`
	Score   float64  `json:"adherence_score"`
	Factors []Factor `json:"adherence_factors"`
	Err     string   `json:"error,omitempty"`
}

// RouteResult is the outcome of testing one route at one influence level.
type RouteResult struct {
	RouteID        string         `json:"route_id"`
	StoryInfluence float64        `json:"story_influence"`
	ExpectedStance string         `json:"expected_stance"`
	AvgScore       float64        `json:"avg_adherence_score"`
	Result         string         `json:"test_result"`
	PoemsAnalyzed  int            `json:"poems_analyzed"`
	Poems          []PoemResult   `json:"detailed_analysis,omitempty"`
	Narrative      StoryInfluence `json:"narrative_data"`
}

// SweepResult aggregates a route's results across influence levels.
type SweepResult struct {
	RouteID  string        `json:"route_id"`
	Results  []RouteResult `json:"test_results"`
	AvgScore float64       `json:"avg_adherence_across_all"`
	Best     *RouteResult  `json:"best_adherence"`
	Worst    *RouteResult  `json:"worst_adherence"`
}

// Evaluator scores a route's poems against its expected narrative stance.
type Evaluator struct {
	graph    *graph.Graph
	analyzer Analyzer
}

func NewEvaluator(g *graph.Graph, analyzer Analyzer) *Evaluator {
	return &Evaluator{graph: g, analyzer: analyzer}
}

// EvaluateRoute tests every poem on the route against the stance implied by
// storyInfluence.
func (e *Evaluator) EvaluateRoute(ctx context.Context, routeID string, storyInfluence float64) (RouteResult, error) {
	character := CharacterFor(routeID)
	influence := ApplyStoryInfluence(character, storyInfluence)

	result := RouteResult{
		RouteID:        routeID,
		StoryInfluence: storyInfluence,
		ExpectedStance: influence.Stance,
		Narrative:      influence,
	}

	poems := e.graph.Poems(routeID)
	if len(poems) == 0 {
		result.Result = AdherenceNoPoems
		return result, nil
	}
	result.PoemsAnalyzed = len(poems)

	total := 0.0
	for _, poem := range poems {
		pr := e.scorePoem(ctx, poem.Title, poem.Text, influence)
		pr.PoemID = poem.ID
		result.Poems = append(result.Poems, pr)
		total += pr.Score
	}

	result.AvgScore = total / float64(len(poems))
	result.Result = bucket(result.AvgScore)
	return result, nil
}

func bucket(score float64) string {
	switch {
	case score >= 0.8:
		return AdherenceHigh
	case score >= 0.6:
		return AdherenceModerate
	case score >= 0.4:
		return AdherenceLow
	default:
		return AdherencePoor
	}
}

func (e *Evaluator) scorePoem(ctx context.Context, title, text string, influence StoryInfluence) PoemResult {
	pr := PoemResult{Title: title}
	if pr.Title == "" {
		pr.Title = "Untitled"
	}

	facts, err := e.analyzer.AnalyzePoem(ctx, title, text)
	if err != nil {
		pr.Err = err.Error()
		return pr
	}

	pr.Factors = []Factor{
		{Name: "theme_alignment", Score: themeAlignment(facts.Themes, influence.Stance), Weight: weightThemes},
		{Name: "motif_adherence", Score: motifScore(facts.Imagery, influence.EmphasizedMotifs, influence.RejectedMotifs), Weight: weightMotifs},
		{Name: "emotion_alignment", Score: emotionAlignment(facts.Emotions, influence.Stance), Weight: weightEmotions},
		{Name: "narrative_fragments", Score: fragmentScore(text, influence.NarrativeFragments), Weight: weightFragments},
	}
	for _, f := range pr.Factors {
		pr.Score += f.Score * f.Weight
	}
	return pr
}

// themeAlignment rewards canonical theme overlap when supporting, penalizes
// it when opposing, and wants exactly one overlap when ambivalent.
func themeAlignment(themes []string, stance string) float64 {
	canonical := lowerSet(Homunculus.CentralThemes)
	overlap := 0
	for theme := range lowerSet(themes) {
		if canonical[theme] {
			overlap++
		}
	}

	switch stance {
	case StanceSupporting:
		return minFloat(1.0, float64(overlap)/2.0)
	case StanceOpposing:
		return maxFloat(0.0, 1.0-float64(overlap)/2.0)
	default:
		switch overlap {
		case 1:
			return 1.0
		case 0:
			return 0.7
		default:
			return 0.5
		}
	}
}

// motifScore matches poem imagery against emphasized motifs by substring in
// either direction, with a 0.3 penalty per rejected motif found.
func motifScore(imagery, emphasized, rejected []string) float64 {
	if len(emphasized) == 0 && len(rejected) == 0 {
		return 1.0
	}

	imageryLower := lowerUnique(imagery)
	expectedFound := countLooseMatches(imageryLower, lowerSlice(emphasized))
	rejectedFound := countLooseMatches(imageryLower, lowerSlice(rejected))

	denom := len(emphasized)
	if denom < 1 {
		denom = 1
	}
	expectedScore := minFloat(1.0, float64(expectedFound)/float64(denom))
	return maxFloat(0.0, expectedScore-float64(rejectedFound)*0.3)
}

func countLooseMatches(haystack, needles []string) int {
	found := 0
	for _, h := range haystack {
		for _, n := range needles {
			if strings.Contains(h, n) || strings.Contains(n, h) {
				found++
				break
			}
		}
	}
	return found
}

// Stance-specific emotion vocabularies.
var (
	surveillanceEmotions = lowerSet([]string{"anxious", "tense", "watchful", "paranoid", "uncomfortable"})
	freedomEmotions      = lowerSet([]string{"peaceful", "liberated", "defiant", "free", "rebellious"})
	ambivalentEmotions   = lowerSet([]string{"conflicted", "uncertain", "contemplative", "complex"})
)

func emotionAlignment(emotions []string, stance string) float64 {
	var vocab map[string]bool
	switch stance {
	case StanceSupporting:
		vocab = surveillanceEmotions
	case StanceOpposing:
		vocab = freedomEmotions
	default:
		vocab = ambivalentEmotions
	}

	unique := lowerUnique(emotions)
	matched := 0
	for _, emotion := range unique {
		if vocab[emotion] {
			matched++
		}
	}
	denom := len(unique)
	if denom < 1 {
		denom = 1
	}
	return float64(matched) / float64(denom)
}

// fragmentScore checks each fragment's significant words (longer than three
// characters) against the poem text; a fragment counts when at least half of
// them appear.
func fragmentScore(text string, fragments []string) float64 {
	if len(fragments) == 0 {
		return 1.0
	}

	textLower := strings.ToLower(text)
	found := 0
	for _, fragment := range fragments {
		var keyWords []string
		for _, word := range strings.Fields(strings.ToLower(fragment)) {
			if len(word) > 3 {
				keyWords = append(keyWords, word)
			}
		}
		hits := 0
		for _, word := range keyWords {
			if strings.Contains(textLower, word) {
				hits++
			}
		}
		if float64(hits) >= float64(len(keyWords))*0.5 {
			found++
		}
	}
	return float64(found) / float64(len(fragments))
}

// Sweep evaluates a route across several influence levels.
func (e *Evaluator) Sweep(ctx context.Context, routeID string, influences []float64) (SweepResult, error) {
	if len(influences) == 0 {
		influences = DefaultInfluenceLevels
	}

	sweep := SweepResult{RouteID: routeID}
	total := 0.0
	for _, influence := range influences {
		result, err := e.EvaluateRoute(ctx, routeID, influence)
		if err != nil {
			return sweep, fmt.Errorf("evaluating route %s at %.1f: %w", routeID, influence, err)
		}
		sweep.Results = append(sweep.Results, result)
		total += result.AvgScore
	}

	sweep.AvgScore = total / float64(len(sweep.Results))
	for i := range sweep.Results {
		r := &sweep.Results[i]
		if sweep.Best == nil || r.AvgScore > sweep.Best.AvgScore {
			sweep.Best = r
		}
		if sweep.Worst == nil || r.AvgScore < sweep.Worst.AvgScore {
			sweep.Worst = r
		}
	}
	return sweep, nil
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func lowerSlice(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.ToLower(item)
	}
	return out
}

// lowerUnique lowercases and de-duplicates, keeping first-seen order, so a
// repeated analyzer output counts once.
func lowerUnique(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		lowered := strings.ToLower(item)
		if seen[lowered] {
			continue
		}
		seen[lowered] = true
		out = append(out, lowered)
	}
	return out
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
