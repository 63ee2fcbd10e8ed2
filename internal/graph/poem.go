package graph

import (
	"fmt"
	"strings"
)

// PoemInput carries everything needed to insert a poem. Empty entity lists
// are valid no-ops. A zero NarrativeRole defaults to route_generated.
type PoemInput struct {
	ID           string
	Title        string
	Text         string
	RouteID      string
	Themes       []string
	Imagery      []string
	Emotions     []string
	SoundDevices []string
	Meta         PoemMeta
	Role         Role
}

// PoemView is a poem merged with the display names of its connected
// entities and its outgoing narrative connections.
type PoemView struct {
	Poem
	Themes       []string
	Imagery      []string
	Emotions     []string
	SoundDevices []string
	Connections  []ConnectionView
}

type ConnectionView struct {
	TargetID       string
	ConnectionType string
	Strength       float64
	Notes          string
}

// AddPoem inserts a poem node and wires relation edges to its entities,
// creating or incrementing registry nodes as needed. Re-adding an existing
// poem id first clears the poem's previous relation edges, reversing their
// usage increments and dropping entities that fall to zero, so the call is
// safe to repeat. The id must not belong to an entity node.
func (g *Graph) AddPoem(in PoemInput) error {
	if in.ID == "" {
		return fmt.Errorf("poem id is required")
	}
	if _, ok := g.entities[in.ID]; ok {
		return fmt.Errorf("node %q already exists and is not a poem", in.ID)
	}

	role := in.Role
	if role == "" {
		role = RoleRouteGenerated
	}

	if existing, ok := g.poems[in.ID]; ok {
		g.clearRelations(in.ID)
		existing.Title = in.Title
		existing.Text = in.Text
		existing.RouteID = in.RouteID
		existing.NarrativeRole = role
		existing.Meta = in.Meta
	} else {
		g.poems[in.ID] = &Poem{
			ID:            in.ID,
			Title:         in.Title,
			Text:          in.Text,
			RouteID:       in.RouteID,
			CreatedAt:     g.now(),
			NarrativeRole: role,
			Meta:          in.Meta,
		}
		g.nodeOrder = append(g.nodeOrder, in.ID)
	}

	g.connectEntities(in.ID, KindTheme, in.Themes)
	g.connectEntities(in.ID, KindImagery, in.Imagery)
	g.connectEntities(in.ID, KindEmotion, in.Emotions)
	g.connectEntities(in.ID, KindSoundDevice, in.SoundDevices)
	return nil
}

// connectEntities de-duplicates the names by normalized id, then registers
// one usage and one relation edge per distinct entity. Within a single
// call, casing and spacing variants of one name yield one edge.
func (g *Graph) connectEntities(poemID string, kind NodeKind, names []string) {
	seen := make(map[string]struct{})
	for _, name := range names {
		if slug(name) == "" {
			continue
		}
		id := EntityID(kind, name)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		g.ensureEntity(kind, name)
		g.edges = append(g.edges, &Edge{Source: poemID, Target: id, Kind: relationEdgeKind(kind)})
	}
}

// clearRelations removes the poem's outgoing relation edges, decrementing
// the usage counters they contributed and removing entities left unused.
func (g *Graph) clearRelations(poemID string) {
	kept := g.edges[:0]
	var touched []string
	for _, edge := range g.edges {
		if edge.Source == poemID && edge.Kind != EdgeNarrative {
			touched = append(touched, edge.Target)
			continue
		}
		kept = append(kept, edge)
	}
	g.edges = kept

	for _, entityID := range touched {
		entity, ok := g.entities[entityID]
		if !ok {
			continue
		}
		entity.UsageCount--
		if entity.UsageCount <= 0 {
			g.removeEntity(entityID)
		}
	}
}

// GetPoem returns the poem with recomputed entity names and narrative
// connections, or nil if the id is absent or not a poem.
func (g *Graph) GetPoem(id string) *PoemView {
	poem, ok := g.poems[id]
	if !ok {
		return nil
	}
	return g.poemView(poem)
}

func (g *Graph) poemView(poem *Poem) *PoemView {
	view := &PoemView{Poem: *poem}
	for _, edge := range g.outEdges(poem.ID) {
		switch edge.Kind {
		case EdgeNarrative:
			if edge.Narrative == nil {
				continue
			}
			view.Connections = append(view.Connections, ConnectionView{
				TargetID:       edge.Target,
				ConnectionType: edge.Narrative.ConnectionType,
				Strength:       edge.Narrative.Strength,
				Notes:          edge.Narrative.Notes,
			})
		default:
			entity, ok := g.entities[edge.Target]
			if !ok {
				continue
			}
			switch entity.Kind {
			case KindTheme:
				view.Themes = append(view.Themes, entity.Name)
			case KindImagery:
				view.Imagery = append(view.Imagery, entity.Name)
			case KindEmotion:
				view.Emotions = append(view.Emotions, entity.Name)
			case KindSoundDevice:
				view.SoundDevices = append(view.SoundDevices, entity.Name)
			}
		}
	}
	return view
}

// Poems returns every poem in insertion order. An empty routeID matches all
// routes.
func (g *Graph) Poems(routeID string) []*PoemView {
	var out []*PoemView
	for _, id := range g.poemIDs(routeID) {
		out = append(out, g.poemView(g.poems[id]))
	}
	return out
}

// RemovePoem deletes a poem and every incident edge. With cleanupOrphans
// set, entities left with no poem references are removed as well; their
// usage counters are otherwise untouched. Returns false if the id is
// absent or not a poem.
func (g *Graph) RemovePoem(id string, cleanupOrphans bool) bool {
	if _, ok := g.poems[id]; !ok {
		return false
	}

	var connected []string
	if cleanupOrphans {
		for _, edge := range g.outEdges(id) {
			if edge.Kind != EdgeNarrative {
				connected = append(connected, edge.Target)
			}
		}
	}

	kept := g.edges[:0]
	for _, edge := range g.edges {
		if edge.Source == id || edge.Target == id {
			continue
		}
		kept = append(kept, edge)
	}
	g.edges = kept

	delete(g.poems, id)
	g.removeFromOrder(id)

	for _, entityID := range connected {
		if _, ok := g.entities[entityID]; ok && g.isPoemOrphan(entityID) {
			g.removeEntity(entityID)
		}
	}
	return true
}

// RelatedPoem pairs a poem with the number of entities it shares with a
// reference poem.
type RelatedPoem struct {
	Poem        *PoemView
	SharedCount int
	Shared      []string
}

// RelatedPoems ranks other poems by how many entities they share with the
// given poem, most overlap first; poems with no overlap are omitted.
func (g *Graph) RelatedPoems(id string) []RelatedPoem {
	if _, ok := g.poems[id]; !ok {
		return nil
	}

	mine := make(map[string]string)
	for _, edge := range g.outEdges(id) {
		if edge.Kind == EdgeNarrative {
			continue
		}
		if entity, ok := g.entities[edge.Target]; ok {
			mine[edge.Target] = entity.Name
		}
	}

	var related []RelatedPoem
	for _, otherID := range g.poemIDs("") {
		if otherID == id {
			continue
		}
		var shared []string
		for _, edge := range g.outEdges(otherID) {
			if edge.Kind == EdgeNarrative {
				continue
			}
			if name, ok := mine[edge.Target]; ok {
				shared = append(shared, name)
			}
		}
		if len(shared) == 0 {
			continue
		}
		related = append(related, RelatedPoem{
			Poem:        g.poemView(g.poems[otherID]),
			SharedCount: len(shared),
			Shared:      shared,
		})
	}

	for i := 1; i < len(related); i++ {
		for j := i; j > 0 && related[j].SharedCount > related[j-1].SharedCount; j-- {
			related[j], related[j-1] = related[j-1], related[j]
		}
	}
	return related
}

// SearchPoems returns poems whose title or text contains the query,
// case-insensitively, in insertion order.
func (g *Graph) SearchPoems(query string) []*PoemView {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	var out []*PoemView
	for _, id := range g.poemIDs("") {
		poem := g.poems[id]
		if containsFold(poem.Title, query) || containsFold(poem.Text, query) {
			out = append(out, g.poemView(poem))
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
