// Package prompt turns a route personality plus the current canon into
// creative constraints and a complete generation prompt.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/personality"
)

// Constraint approach labels.
const (
	ApproachCanonical   = "canonical"
	ApproachIgnoreCanon = "ignore_canon"
	ApproachInvertCanon = "invert_canon"
	ApproachCreateNew   = "create_new"
	ApproachBalanced    = "balanced"
)

// Constraints captures what the knowledge graph asks of one generation.
type Constraints struct {
	Approach          string         `json:"approach"`
	Strategy          string         `json:"strategy"`
	Themes            []string       `json:"themes"`
	SoundDevices      []string       `json:"sound_devices"`
	InverseEmotions   []string       `json:"inverse_emotions,omitempty"`
	UnexploredImagery []string       `json:"unexplored_imagery,omitempty"`
	ThemeSoundPairs   map[string]int `json:"theme_sound_pairs,omitempty"`
	Avoid             string         `json:"avoid,omitempty"`
	Structure         StructureHints `json:"structure"`
	EncourageNew      bool           `json:"encourage_new,omitempty"`
	Rationale         string         `json:"rationale"`
}

// StructureHints guides poem shape without prescribing a form.
type StructureHints struct {
	AvgLineCount     float64 `json:"avg_line_count,omitempty"`
	StanzaPattern    []int   `json:"stanza_pattern,omitempty"`
	Experimental     bool    `json:"experimental,omitempty"`
	VaryFromNorm     bool    `json:"vary_from_norm,omitempty"`
	ContrastWithNorm bool    `json:"contrast_with_norm,omitempty"`
	BreakConventions bool    `json:"break_conventions,omitempty"`
}

// Builder derives constraints and prompts from the knowledge graph.
type Builder struct {
	graph *graph.Graph
}

func NewBuilder(g *graph.Graph) *Builder {
	return &Builder{graph: g}
}

// ConstraintsFor picks the creative strategy for a personality. Loyalty
// above 0.7 always follows the canon; otherwise the rebellious mode decides.
func (b *Builder) ConstraintsFor(p personality.Personality) Constraints {
	switch {
	case p.LoyaltyToCanon > 0.7:
		return b.loyalConstraints(p)
	case p.RebelliousMode == personality.ModeIgnore:
		return b.ignoreConstraints(p)
	case p.RebelliousMode == personality.ModeInvert:
		return b.invertConstraints(p)
	case p.RebelliousMode == personality.ModeCreateNew:
		return b.createNewConstraints(p)
	default:
		return b.balancedConstraints(p)
	}
}

func (b *Builder) loyalConstraints(p personality.Personality) Constraints {
	canonicalThemes := b.graph.Canonical(graph.KindTheme, 3)
	canonicalSounds := b.graph.Canonical(graph.KindSoundDevice, 2)

	themes := selectWithAffinity(canonicalThemes, p.ThemeAffinities, 3)
	sounds := selectWithAffinity(canonicalSounds, p.SoundPreferences, 2)

	var pairs map[string]int
	if len(themes) > 0 {
		pairs = b.graph.SoundDeviceCooccurrence(themes[0])
	}

	return Constraints{
		Approach:        ApproachCanonical,
		Strategy:        "following established patterns",
		Themes:          themes,
		SoundDevices:    sounds,
		ThemeSoundPairs: pairs,
		Structure:       b.canonicalStructure(),
		Rationale:       fmt.Sprintf("Following established patterns with %s themes", strings.Join(firstN(themes, 2), ", ")),
	}
}

// canonicalStructure averages line counts across routes with enough history,
// defaulting to a twelve line quatrain shape when the canon is thin.
func (b *Builder) canonicalStructure() StructureHints {
	hints := StructureHints{AvgLineCount: 12, StanzaPattern: []int{4, 4, 4}}

	total, n := 0.0, 0
	for _, stats := range b.graph.AllRouteStatistics() {
		if stats.PoemCount <= 2 {
			continue
		}
		avg := stats.Structure.AvgLineCount
		if avg == 0 {
			avg = 12
		}
		total += avg
		n++
	}
	if n > 0 {
		hints.AvgLineCount = total / float64(n)
	}
	return hints
}

func (b *Builder) ignoreConstraints(p personality.Personality) Constraints {
	rareThemes := b.graph.Rare(graph.KindTheme, 2)
	rareSounds := b.graph.Rare(graph.KindSoundDevice, 1)

	var themes []string
	if len(rareThemes) > 0 {
		themes = append(themes, rareThemes[0].Name)
	}
	themes = append(themes, topWeighted(p.ThemeAffinities, 2)...)

	sounds := topWeighted(p.SoundPreferences, 2)
	if len(sounds) == 0 {
		for _, s := range firstRanks(rareSounds, 2) {
			sounds = append(sounds, s.Name)
		}
	}

	return Constraints{
		Approach:     ApproachIgnoreCanon,
		Strategy:     "exploring underutilized territory",
		Themes:       firstN(themes, 3),
		SoundDevices: sounds,
		Avoid:        "canonical patterns",
		Structure:    StructureHints{VaryFromNorm: true, Experimental: true},
		Rationale:    "Exploring underutilized territory with rare themes and sounds",
	}
}

func (b *Builder) invertConstraints(p personality.Personality) Constraints {
	canonicalThemes := b.graph.Canonical(graph.KindTheme, 3)
	if len(canonicalThemes) == 0 {
		return b.balancedConstraints(p)
	}

	primary := canonicalThemes[0]
	inverseSounds := b.graph.InversePattern(primary.ID, graph.KindSoundDevice)
	inverseEmotions := b.graph.InversePattern(primary.ID, graph.KindEmotion)

	var sounds []string
	if len(inverseSounds) > 0 {
		sounds = append(sounds, inverseSounds[0].Name)
	}
	for _, candidate := range inverseSounds[min(1, len(inverseSounds)):] {
		if _, preferred := p.SoundPreferences[candidate.Name]; preferred {
			sounds = append(sounds, candidate.Name)
			break
		}
	}

	var emotions []string
	for _, e := range firstRanks(inverseEmotions, 2) {
		emotions = append(emotions, e.Name)
	}

	return Constraints{
		Approach:        ApproachInvertCanon,
		Strategy:        "subverting expectations",
		Themes:          []string{primary.Name},
		SoundDevices:    firstN(sounds, 2),
		InverseEmotions: emotions,
		Structure:       StructureHints{ContrastWithNorm: true},
		Rationale:       fmt.Sprintf("Using canonical theme %q with unexpected sound devices to create contrast", primary.Name),
	}
}

func (b *Builder) createNewConstraints(p personality.Personality) Constraints {
	combos := b.graph.UnexploredCombinations(graph.KindTheme, graph.KindSoundDevice, 10)
	imageryCombos := b.graph.UnexploredCombinations(graph.KindTheme, graph.KindImagery, 10)

	var themes, sounds []string
	if len(combos) > 0 {
		best := combos[0]
		for _, combo := range combos {
			score := weight(p.SoundPreferences, combo.BName) + weight(p.ThemeAffinities, combo.AName)
			if score > 1.0 {
				best = combo
				break
			}
		}
		themes = []string{best.AName}
		sounds = []string{best.BName}
	} else {
		themes = []string{"(introduce new theme)"}
		sounds = []string{"(introduce new sound device)"}
	}

	var imagery []string
	for _, combo := range imageryCombos {
		if len(imagery) == 3 {
			break
		}
		imagery = append(imagery, combo.BName)
	}

	return Constraints{
		Approach:          ApproachCreateNew,
		Strategy:          "pioneering new ground",
		Themes:            themes,
		SoundDevices:      sounds,
		UnexploredImagery: imagery,
		EncourageNew:      true,
		Structure:         StructureHints{Experimental: true, BreakConventions: true},
		Rationale:         fmt.Sprintf("Pioneering unexplored combination: %s with %s", themes[0], sounds[0]),
	}
}

func (b *Builder) balancedConstraints(p personality.Personality) Constraints {
	canonicalThemes := b.graph.Canonical(graph.KindTheme, 2)
	unexplored := b.graph.UnexploredCombinations(graph.KindTheme, graph.KindSoundDevice, 5)

	var themes []string
	if len(canonicalThemes) > 0 {
		themes = append(themes, canonicalThemes[0].Name)
	}
	if len(unexplored) > 0 {
		themes = append(themes, unexplored[0].AName)
	}

	return Constraints{
		Approach:     ApproachBalanced,
		Strategy:     "balancing tradition and innovation",
		Themes:       themes,
		SoundDevices: topWeighted(p.SoundPreferences, 2),
		Rationale:    "Balancing established patterns with fresh exploration",
	}
}

// selectWithAffinity ranks candidates by personality affinity plus usage
// count normalized by ten, keeping the top count names.
func selectWithAffinity(items []graph.EntityRank, affinities map[string]float64, count int) []string {
	if len(items) == 0 {
		return nil
	}
	type scored struct {
		name  string
		score float64
	}
	ranked := make([]scored, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, scored{
			name:  item.Name,
			score: affinities[item.Name] + float64(item.UsageCount)/10,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	names := make([]string, 0, count)
	for _, r := range ranked {
		if len(names) == count {
			break
		}
		names = append(names, r.name)
	}
	return names
}

// topWeighted returns the count highest weighted names, heaviest first,
// ties broken alphabetically so output is stable.
func topWeighted(weights map[string]float64, count int) []string {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if weights[names[i]] != weights[names[j]] {
			return weights[names[i]] > weights[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > count {
		names = names[:count]
	}
	return names
}

func weight(weights map[string]float64, name string) float64 {
	if w, ok := weights[name]; ok {
		return w
	}
	return 0.5
}

func firstN(names []string, n int) []string {
	if len(names) > n {
		return names[:n]
	}
	return names
}

func firstRanks(ranks []graph.EntityRank, n int) []graph.EntityRank {
	if len(ranks) > n {
		return ranks[:n]
	}
	return ranks
}
