package graph

// ensureEntity registers a usage of the named entity: if the derived id
// already exists its usage count is incremented, otherwise a new node is
// created with a count of one. The display name of the first insertion
// wins; later casing or spacing variants collapse into it. The operation
// is total.
func (g *Graph) ensureEntity(kind NodeKind, name string) string {
	id := EntityID(kind, name)
	if entity, ok := g.entities[id]; ok {
		entity.UsageCount++
		return id
	}
	g.entities[id] = &Entity{
		ID:         id,
		Kind:       kind,
		Name:       name,
		UsageCount: 1,
		CreatedAt:  g.now(),
	}
	g.nodeOrder = append(g.nodeOrder, id)
	return id
}

// Entity returns the entity node with the given id, or nil.
func (g *Graph) Entity(id string) *Entity {
	return g.entities[id]
}

// EntityByName resolves an entity by kind and display name using the same
// normalization as insertion.
func (g *Graph) EntityByName(kind NodeKind, name string) *Entity {
	return g.entities[EntityID(kind, name)]
}

// Entities returns all entity nodes of one kind in insertion order.
func (g *Graph) Entities(kind NodeKind) []*Entity {
	ids := g.entityIDs(kind)
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.entities[id])
	}
	return out
}

func (g *Graph) removeEntity(id string) {
	delete(g.entities, id)
	g.removeFromOrder(id)
}

// isPoemOrphan reports whether an entity has no remaining relation edge
// from any poem.
func (g *Graph) isPoemOrphan(entityID string) bool {
	return len(g.poemsReferencing(entityID)) == 0
}
