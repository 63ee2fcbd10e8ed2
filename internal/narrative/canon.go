// Package narrative tracks how routes relate to The Homunculus, the central
// poetry collection, and scores generated poems against that stance.
package narrative

// Collection is the canon a route positions itself against.
type Collection struct {
	CentralThemes      []string
	CoreMotifs         []string
	NarrativeFragments []string
	EmotionalRegister  string
}

// Homunculus is the working canon. The themes and motifs here seed stance
// calculations until the collection is sourced from the graph itself.
var Homunculus = Collection{
	CentralThemes: []string{
		"urban surveillance and observation",
		"movement as freedom and control",
		"community formation in transit spaces",
		"technology mediating human connection",
		"the politics of public space",
	},
	CoreMotifs: []string{
		"watching eyes", "mechanical birds", "voices in motion",
		"windows as frames", "rhythmic cycles", "intersections",
		"barriers and passages", "collective breath",
	},
	NarrativeFragments: []string{
		"the city breathes through its arteries of motion",
		"each journey is a negotiation with power",
		"we are witnessed by glass and steel",
		"transit reveals who belongs where",
		"movement creates temporary communities",
	},
	EmotionalRegister: "observant, political, communal",
}

// Stances toward the canon.
const (
	StanceSupporting = "supporting"
	StanceOpposing   = "opposing"
	StanceAmbivalent = "ambivalent"
)

// StanceFor maps a story influence level to a stance: 0.3 and below
// opposes, 0.7 and above supports, anything between is ambivalent.
func StanceFor(storyInfluence float64) string {
	switch {
	case storyInfluence <= 0.3:
		return StanceOpposing
	case storyInfluence >= 0.7:
		return StanceSupporting
	default:
		return StanceAmbivalent
	}
}

// StoryInfluence describes how a route engages the canon at one influence
// level.
type StoryInfluence struct {
	Stance             string    `json:"stance"`
	InfluenceLevel     float64   `json:"story_influence_level"`
	EmphasizedMotifs   []string  `json:"emphasized_motifs"`
	RejectedMotifs     []string  `json:"rejected_motifs"`
	EmotionalTone      string    `json:"emotional_tone"`
	NarrativeFragments []string  `json:"narrative_fragments"`
	Character          Character `json:"route_personality"`
}

// ApplyStoryInfluence resolves which motifs a route emphasizes or rejects
// for a given influence level, colored by the route's character.
func ApplyStoryInfluence(character Character, storyInfluence float64) StoryInfluence {
	stance := StanceFor(storyInfluence)
	out := StoryInfluence{
		Stance:         stance,
		InfluenceLevel: storyInfluence,
		Character:      character,
	}

	switch stance {
	case StanceSupporting:
		out.EmphasizedMotifs = Homunculus.CoreMotifs[:3]
		out.EmotionalTone = character.Tone + " but harmonious with urban observation"
		out.NarrativeFragments = Homunculus.NarrativeFragments[:2]
	case StanceOpposing:
		out.EmphasizedMotifs = []string{"freedom from surveillance", "escape routes", "hidden spaces"}
		out.RejectedMotifs = Homunculus.CoreMotifs[:2]
		out.EmotionalTone = character.Tone + " but defiant toward observation"
		out.NarrativeFragments = []string{"this route refuses to be catalogued", "movement without witness"}
	default:
		out.EmphasizedMotifs = Homunculus.CoreMotifs[1:3]
		out.RejectedMotifs = Homunculus.CoreMotifs[:1]
		out.EmotionalTone = character.Tone + " but conflicted about visibility"
		out.NarrativeFragments = []string{"sometimes watched, sometimes free"}
	}
	return out
}
