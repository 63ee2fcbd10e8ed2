// Package graph holds the poetry knowledge graph: a directed labeled
// multigraph of poems and the thematic and sonic entities they reference.
// The graph lives entirely in memory and persists as a single JSON
// node-link document. It performs no locking; callers embedding it in a
// concurrent host must serialize mutations externally.
package graph

import (
	"strings"
	"time"
)

type NodeKind string

const (
	KindPoem        NodeKind = "poem"
	KindTheme       NodeKind = "theme"
	KindImagery     NodeKind = "imagery"
	KindEmotion     NodeKind = "emotion"
	KindSoundDevice NodeKind = "sound_device"
)

// EntityKinds are the node kinds managed by the entity registry, in the
// order relation edges are added to a poem.
var EntityKinds = []NodeKind{KindTheme, KindImagery, KindEmotion, KindSoundDevice}

type EdgeKind string

const (
	EdgeHasTheme        EdgeKind = "has_theme"
	EdgeContainsImagery EdgeKind = "contains_imagery"
	EdgeConveysEmotion  EdgeKind = "conveys_emotion"
	EdgeUsesSoundDevice EdgeKind = "uses_sound_device"
	EdgeNarrative       EdgeKind = "narrative_connection"
)

// relationEdgeKind maps an entity kind to the relation edge a poem uses to
// reference it.
func relationEdgeKind(kind NodeKind) EdgeKind {
	switch kind {
	case KindTheme:
		return EdgeHasTheme
	case KindImagery:
		return EdgeContainsImagery
	case KindEmotion:
		return EdgeConveysEmotion
	case KindSoundDevice:
		return EdgeUsesSoundDevice
	}
	return ""
}

func entityKindForEdge(kind EdgeKind) NodeKind {
	switch kind {
	case EdgeHasTheme:
		return KindTheme
	case EdgeContainsImagery:
		return KindImagery
	case EdgeConveysEmotion:
		return KindEmotion
	case EdgeUsesSoundDevice:
		return KindSoundDevice
	}
	return ""
}

type Role string

const (
	RoleCore           Role = "core"
	RoleExtension      Role = "extension"
	RoleVariation      Role = "variation"
	RoleRouteGenerated Role = "route_generated"
	RoleUnassigned     Role = "unassigned"
)

// Roles lists the assignable narrative roles in display order.
var Roles = []Role{RoleCore, RoleExtension, RoleVariation, RoleRouteGenerated, RoleUnassigned}

// IsUnassigned reports whether the role denotes the "no role" state. A
// cleared role serializes as an absent attribute, so both the empty string
// and the literal "unassigned" count.
func (r Role) IsUnassigned() bool {
	return r == "" || r == RoleUnassigned
}

// Poem is a poem node. NarrativeRole may be empty, which all queries treat
// as unassigned.
type Poem struct {
	ID            string
	Title         string
	Text          string
	RouteID       string
	CreatedAt     time.Time
	NarrativeRole Role
	Meta          PoemMeta
}

// Entity is a de-duplicated theme/imagery/emotion/sound-device node.
// UsageCount increments once per AddPoem call that references the entity,
// regardless of relation type.
type Entity struct {
	ID         string
	Kind       NodeKind
	Name       string
	UsageCount int
	CreatedAt  time.Time
}

// Edge is a directed edge. Narrative is non-nil exactly when Kind is
// EdgeNarrative; relation edges carry no attributes beyond their type.
type Edge struct {
	Source    string
	Target    string
	Kind      EdgeKind
	Narrative *NarrativeAttrs
}

type NarrativeAttrs struct {
	ConnectionType string
	Strength       float64
	Notes          string
	CreatedAt      time.Time
}

// PoemMeta is the structured metadata bag attached to a poem. Extra is an
// escape hatch for analysis output that has no named field.
type PoemMeta struct {
	Structure     *StructureMeta  `json:"structure,omitempty"`
	SoundPatterns map[string]any  `json:"sound_patterns,omitempty"`
	Generation    *GenerationMeta `json:"generation,omitempty"`
	Extra         map[string]any  `json:"extra,omitempty"`
}

// StructureMeta holds free verse structure metrics. A poem carries a line
// count only when LineCount > 0; zero means the analyzer produced nothing
// and the poem is excluded from structural averages.
type StructureMeta struct {
	LineCount    int   `json:"line_count,omitempty"`
	LineLengths  []int `json:"line_lengths,omitempty"`
	StanzaBreaks []int `json:"stanza_breaks,omitempty"`
}

// GenerationMeta records how a generated poem was produced.
type GenerationMeta struct {
	Strategy       string  `json:"strategy,omitempty"`
	StoryInfluence float64 `json:"story_influence,omitempty"`
	Model          string  `json:"model,omitempty"`
	TimeOfDay      string  `json:"time_of_day,omitempty"`
	Location       string  `json:"location,omitempty"`
	PassengerCount string  `json:"passenger_count,omitempty"`
}

// EntityID derives the deterministic node id for an entity name: a
// type-specific prefix plus the lower-cased name with whitespace runs
// collapsed to underscores. This is the de-duplication key.
func EntityID(kind NodeKind, name string) string {
	return entityPrefix(kind) + "_" + slug(name)
}

func entityPrefix(kind NodeKind) string {
	switch kind {
	case KindTheme:
		return "theme"
	case KindImagery:
		return "img"
	case KindEmotion:
		return "emo"
	case KindSoundDevice:
		return "sound"
	}
	return string(kind)
}

func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
