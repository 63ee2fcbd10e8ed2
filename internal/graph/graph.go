package graph

import "time"

// Graph is the in-memory multigraph. Nodes and edges keep their insertion
// order, which is the deterministic iteration order for every query.
type Graph struct {
	path string

	nodeOrder []string
	poems     map[string]*Poem
	entities  map[string]*Entity
	edges     []*Edge

	now func() time.Time
}

// New returns an empty graph with no default save path.
func New() *Graph {
	return &Graph{
		poems:    make(map[string]*Poem),
		entities: make(map[string]*Entity),
		now:      time.Now,
	}
}

// Path returns the default persistence path, if any.
func (g *Graph) Path() string { return g.path }

func (g *Graph) hasNode(id string) bool {
	if _, ok := g.poems[id]; ok {
		return true
	}
	_, ok := g.entities[id]
	return ok
}

func (g *Graph) removeFromOrder(id string) {
	for i, nodeID := range g.nodeOrder {
		if nodeID == id {
			g.nodeOrder = append(g.nodeOrder[:i], g.nodeOrder[i+1:]...)
			return
		}
	}
}

// poemIDs returns poem node ids in insertion order, optionally filtered by
// route.
func (g *Graph) poemIDs(routeID string) []string {
	ids := make([]string, 0, len(g.poems))
	for _, id := range g.nodeOrder {
		poem, ok := g.poems[id]
		if !ok {
			continue
		}
		if routeID != "" && poem.RouteID != routeID {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// entityIDs returns entity node ids of one kind in insertion order.
func (g *Graph) entityIDs(kind NodeKind) []string {
	var ids []string
	for _, id := range g.nodeOrder {
		if entity, ok := g.entities[id]; ok && entity.Kind == kind {
			ids = append(ids, id)
		}
	}
	return ids
}

// outEdges returns edges leaving a node in insertion order.
func (g *Graph) outEdges(id string) []*Edge {
	var out []*Edge
	for _, edge := range g.edges {
		if edge.Source == id {
			out = append(out, edge)
		}
	}
	return out
}

// inEdges returns edges arriving at a node in insertion order.
func (g *Graph) inEdges(id string) []*Edge {
	var in []*Edge
	for _, edge := range g.edges {
		if edge.Target == id {
			in = append(in, edge)
		}
	}
	return in
}

// poemsReferencing returns ids of poems with a relation edge to the entity,
// in insertion order of the edges.
func (g *Graph) poemsReferencing(entityID string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, edge := range g.inEdges(entityID) {
		if edge.Kind == EdgeNarrative {
			continue
		}
		if _, ok := g.poems[edge.Source]; !ok {
			continue
		}
		if _, dup := seen[edge.Source]; dup {
			continue
		}
		seen[edge.Source] = struct{}{}
		ids = append(ids, edge.Source)
	}
	return ids
}

// NodeCount and EdgeCount report graph size.
func (g *Graph) NodeCount() int { return len(g.nodeOrder) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

// EdgeView is an edge with endpoint kinds and display names resolved.
type EdgeView struct {
	SourceID       string
	TargetID       string
	SourceType     string
	TargetType     string
	ConnectionType string
	SourceName     string
	TargetName     string
}

// EdgeViews lists every edge with resolved endpoint info, in insertion
// order.
func (g *Graph) EdgeViews() []EdgeView {
	views := make([]EdgeView, 0, len(g.edges))
	for _, edge := range g.edges {
		view := EdgeView{
			SourceID:       edge.Source,
			TargetID:       edge.Target,
			ConnectionType: string(edge.Kind),
		}
		if edge.Narrative != nil && edge.Narrative.ConnectionType != "" {
			view.ConnectionType = edge.Narrative.ConnectionType
		}
		view.SourceType, view.SourceName = g.nodeInfo(edge.Source)
		view.TargetType, view.TargetName = g.nodeInfo(edge.Target)
		views = append(views, view)
	}
	return views
}

func (g *Graph) nodeInfo(id string) (kind, name string) {
	if poem, ok := g.poems[id]; ok {
		if poem.Title != "" {
			return string(KindPoem), poem.Title
		}
		return string(KindPoem), id
	}
	if entity, ok := g.entities[id]; ok {
		return string(entity.Kind), entity.Name
	}
	return "unknown", id
}

// Degree counts edges incident to a node.
func (g *Graph) Degree(id string) int {
	n := 0
	for _, edge := range g.edges {
		if edge.Source == id || edge.Target == id {
			n++
		}
	}
	return n
}
