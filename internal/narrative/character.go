package narrative

import (
	"hash/fnv"
	"math/rand"
)

// Character is the theatrical persona of a route, distinct from its
// creative personality profile.
type Character struct {
	Alignment string   `json:"alignment"`
	Tone      string   `json:"tone"`
	Quirks    []string `json:"quirks"`
}

var (
	alignments = []string{"lawful good", "chaotic good", "neutral", "chaotic neutral", "lawful evil"}
	tones      = []string{"dreamy", "gritty", "urgent", "reflective", "chaotic"}
	quirks     = []string{
		"hums at stops",
		"tells tall tales",
		"pauses for graffiti",
		"prefers left turns",
		"compulsively syncopates",
		"refuses to stop for geese",
	}
)

// CharacterFor derives a stable character from the route id. The same route
// always gets the same traits.
func CharacterFor(routeID string) Character {
	h := fnv.New64a()
	h.Write([]byte(routeID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	picked := rng.Perm(len(quirks))[:2]
	return Character{
		Alignment: alignments[rng.Intn(len(alignments))],
		Tone:      tones[rng.Intn(len(tones))],
		Quirks:    []string{quirks[picked[0]], quirks[picked[1]]},
	}
}
