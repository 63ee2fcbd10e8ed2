package graph

import (
	"sort"
	"time"
)

// EntityRank is a frequency-query result: an entity annotated with the
// distinct routes whose poems reference it.
type EntityRank struct {
	ID           string
	Name         string
	UsageCount   int
	UsedByRoutes []string
	CreatedAt    time.Time
}

// EntitiesByFrequency returns entities of one kind ranked by usage count
// descending, ties broken by insertion order. A minFreq or maxFreq of zero
// means no bound on that side.
func (g *Graph) EntitiesByFrequency(kind NodeKind, minFreq, maxFreq int) []EntityRank {
	var ranked []EntityRank
	for _, entity := range g.Entities(kind) {
		if minFreq > 0 && entity.UsageCount < minFreq {
			continue
		}
		if maxFreq > 0 && entity.UsageCount > maxFreq {
			continue
		}
		ranked = append(ranked, EntityRank{
			ID:           entity.ID,
			Name:         entity.Name,
			UsageCount:   entity.UsageCount,
			UsedByRoutes: g.routesUsing(entity.ID),
			CreatedAt:    entity.CreatedAt,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UsageCount > ranked[j].UsageCount
	})
	return ranked
}

// Canonical returns entities used at least minFreq times across the corpus.
func (g *Graph) Canonical(kind NodeKind, minFreq int) []EntityRank {
	return g.EntitiesByFrequency(kind, minFreq, 0)
}

// Rare returns entities used at most maxFreq times.
func (g *Graph) Rare(kind NodeKind, maxFreq int) []EntityRank {
	return g.EntitiesByFrequency(kind, 0, maxFreq)
}

func (g *Graph) routesUsing(entityID string) []string {
	var routes []string
	seen := make(map[string]struct{})
	for _, poemID := range g.poemsReferencing(entityID) {
		routeID := g.poems[poemID].RouteID
		if routeID == "" {
			continue
		}
		if _, dup := seen[routeID]; dup {
			continue
		}
		seen[routeID] = struct{}{}
		routes = append(routes, routeID)
	}
	return routes
}

// Combination pairs two entities of different kinds.
type Combination struct {
	AID    string
	AName  string
	AUsage int
	BID    string
	BName  string
	BUsage int
}

// UnexploredCombinations enumerates up to limit (a, b) entity pairs that
// have never co-occurred on a poem, walking the product of all kindA
// entities by all kindB entities in insertion order. First found wins; no
// interestingness ranking is applied.
func (g *Graph) UnexploredCombinations(kindA, kindB NodeKind, limit int) []Combination {
	observed := make(map[[2]string]struct{})
	for _, poemID := range g.poemIDs("") {
		as := g.connectedEntityIDs(poemID, kindA)
		bs := g.connectedEntityIDs(poemID, kindB)
		for _, a := range as {
			for _, b := range bs {
				observed[[2]string{a, b}] = struct{}{}
			}
		}
	}

	var out []Combination
	for _, aID := range g.entityIDs(kindA) {
		for _, bID := range g.entityIDs(kindB) {
			if _, ok := observed[[2]string{aID, bID}]; ok {
				continue
			}
			a, b := g.entities[aID], g.entities[bID]
			out = append(out, Combination{
				AID: aID, AName: a.Name, AUsage: a.UsageCount,
				BID: bID, BName: b.Name, BUsage: b.UsageCount,
			})
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

func (g *Graph) connectedEntityIDs(poemID string, kind NodeKind) []string {
	var ids []string
	for _, edge := range g.outEdges(poemID) {
		if edge.Kind == EdgeNarrative {
			continue
		}
		if entity, ok := g.entities[edge.Target]; ok && entity.Kind == kind {
			ids = append(ids, edge.Target)
		}
	}
	return ids
}

// InversePattern returns every patternKind entity that has never
// co-occurred with the given entity on any poem, ranked by usage count
// descending. An unknown entity id yields an empty result.
func (g *Graph) InversePattern(entityID string, patternKind NodeKind) []EntityRank {
	if _, ok := g.entities[entityID]; !ok {
		return nil
	}

	used := make(map[string]struct{})
	for _, poemID := range g.poemsReferencing(entityID) {
		for _, patternID := range g.connectedEntityIDs(poemID, patternKind) {
			used[patternID] = struct{}{}
		}
	}

	var inverse []EntityRank
	for _, id := range g.entityIDs(patternKind) {
		if _, ok := used[id]; ok {
			continue
		}
		entity := g.entities[id]
		inverse = append(inverse, EntityRank{
			ID:         id,
			Name:       entity.Name,
			UsageCount: entity.UsageCount,
			CreatedAt:  entity.CreatedAt,
		})
	}
	sort.SliceStable(inverse, func(i, j int) bool {
		return inverse[i].UsageCount > inverse[j].UsageCount
	})
	return inverse
}

// SoundDeviceCooccurrence counts, over poems carrying the named theme, how
// many carry each sound device. An unknown theme yields an empty map.
func (g *Graph) SoundDeviceCooccurrence(themeName string) map[string]int {
	counts := make(map[string]int)
	themeID := EntityID(KindTheme, themeName)
	if _, ok := g.entities[themeID]; !ok {
		return counts
	}
	for _, poemID := range g.poemsReferencing(themeID) {
		for _, deviceID := range g.connectedEntityIDs(poemID, KindSoundDevice) {
			counts[g.entities[deviceID].Name]++
		}
	}
	return counts
}

// CoPair is an ordered pair of entity display names.
type CoPair struct {
	A string
	B string
}

// EntityCooccurrence counts, per poem, every (kindA, kindB) name pair that
// appears together.
func (g *Graph) EntityCooccurrence(kindA, kindB NodeKind) map[CoPair]int {
	counts := make(map[CoPair]int)
	for _, poemID := range g.poemIDs("") {
		as := g.connectedEntityIDs(poemID, kindA)
		bs := g.connectedEntityIDs(poemID, kindB)
		for _, a := range as {
			for _, b := range bs {
				counts[CoPair{A: g.entities[a].Name, B: g.entities[b].Name}]++
			}
		}
	}
	return counts
}

// PoemsWithSoundDevice returns every poem using the named device.
func (g *Graph) PoemsWithSoundDevice(deviceName string) []*PoemView {
	deviceID := EntityID(KindSoundDevice, deviceName)
	if _, ok := g.entities[deviceID]; !ok {
		return nil
	}
	var out []*PoemView
	for _, poemID := range g.poemsReferencing(deviceID) {
		out = append(out, g.poemView(g.poems[poemID]))
	}
	return out
}

// PoemsWithoutSoundDevice returns every poem that does not use the named
// device, in insertion order.
func (g *Graph) PoemsWithoutSoundDevice(deviceName string) []*PoemView {
	deviceID := EntityID(KindSoundDevice, deviceName)
	with := make(map[string]struct{})
	if _, ok := g.entities[deviceID]; ok {
		for _, poemID := range g.poemsReferencing(deviceID) {
			with[poemID] = struct{}{}
		}
	}
	var out []*PoemView
	for _, poemID := range g.poemIDs("") {
		if _, ok := with[poemID]; ok {
			continue
		}
		out = append(out, g.poemView(g.poems[poemID]))
	}
	return out
}

// PairCount is a sound-device pair with its co-occurrence count.
type PairCount struct {
	Pair  CoPair
	Count int
}

// SoundPatterns reports the ten most common sound-device pairings plus the
// canonical devices.
type SoundPatterns struct {
	CommonPairs      []PairCount
	CanonicalDevices []string
}

func (g *Graph) CommonSoundPatterns() SoundPatterns {
	counts := make(map[CoPair]int)
	var order []CoPair
	for _, poemID := range g.poemIDs("") {
		devices := g.connectedEntityIDs(poemID, KindSoundDevice)
		for i, a := range devices {
			for _, b := range devices[i+1:] {
				nameA, nameB := g.entities[a].Name, g.entities[b].Name
				if nameB < nameA {
					nameA, nameB = nameB, nameA
				}
				pair := CoPair{A: nameA, B: nameB}
				if _, ok := counts[pair]; !ok {
					order = append(order, pair)
				}
				counts[pair]++
			}
		}
	}

	pairs := make([]PairCount, 0, len(order))
	for _, pair := range order {
		pairs = append(pairs, PairCount{Pair: pair, Count: counts[pair]})
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Count > pairs[j].Count })
	if len(pairs) > 10 {
		pairs = pairs[:10]
	}

	var canonical []string
	for _, rank := range g.Canonical(KindSoundDevice, 3) {
		canonical = append(canonical, rank.Name)
	}
	return SoundPatterns{CommonPairs: pairs, CanonicalDevices: canonical}
}
