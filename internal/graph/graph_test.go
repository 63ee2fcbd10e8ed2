package graph

import (
	"testing"
	"time"
)

func testGraph() *Graph {
	g := New()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	g.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	return g
}

func addPoem(t *testing.T, g *Graph, in PoemInput) {
	t.Helper()
	if err := g.AddPoem(in); err != nil {
		t.Fatalf("AddPoem(%s): %v", in.ID, err)
	}
}

func TestAddPoem(t *testing.T) {
	t.Run("entity dedup across poems", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", Title: "One", RouteID: "R1", Themes: []string{"Urban Life"}})
		addPoem(t, g, PoemInput{ID: "p2", Title: "Two", RouteID: "R2", Themes: []string{"urban  life"}})

		entity := g.Entity("theme_urban_life")
		if entity == nil {
			t.Fatalf("expected theme_urban_life node")
		}
		if entity.UsageCount != 2 {
			t.Fatalf("expected usage count 2, got %d", entity.UsageCount)
		}
		if len(g.Entities(KindTheme)) != 1 {
			t.Fatalf("expected a single theme node, got %d", len(g.Entities(KindTheme)))
		}
	})

	t.Run("duplicate names within one call", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", Title: "T1", Text: "line one\nline two", RouteID: "R1", Themes: []string{"Loss", "loss"}})

		entity := g.Entity("theme_loss")
		if entity == nil || entity.UsageCount != 1 {
			t.Fatalf("expected theme_loss with usage 1, got %+v", entity)
		}

		view := g.GetPoem("p1")
		if view == nil {
			t.Fatalf("expected poem view")
		}
		if len(view.Themes) != 1 || view.Themes[0] != "Loss" {
			t.Fatalf("expected themes [Loss], got %v", view.Themes)
		}
	})

	t.Run("first display name wins", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"Dawn Light"}})
		addPoem(t, g, PoemInput{ID: "p2", RouteID: "R1", Themes: []string{"DAWN LIGHT"}})

		if name := g.Entity("theme_dawn_light").Name; name != "Dawn Light" {
			t.Fatalf("expected display name from first insertion, got %q", name)
		}
	})

	t.Run("default role is route_generated", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1"})
		if role := g.GetPoem("p1").NarrativeRole; role != RoleRouteGenerated {
			t.Fatalf("expected route_generated, got %q", role)
		}
	})

	t.Run("id collision with entity node", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"night"}})
		if err := g.AddPoem(PoemInput{ID: "theme_night", RouteID: "R1"}); err == nil {
			t.Fatalf("expected error for poem id colliding with entity node")
		}
	})

	t.Run("empty entity lists are a no-op", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: nil, Imagery: []string{}})
		if g.NodeCount() != 1 || g.EdgeCount() != 0 {
			t.Fatalf("expected lone poem node, got %d nodes %d edges", g.NodeCount(), g.EdgeCount())
		}
	})

	t.Run("re-adding a poem clears previous relations", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"night", "rain"}})
		addPoem(t, g, PoemInput{ID: "p2", RouteID: "R1", Themes: []string{"rain"}})
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"dawn"}})

		if g.Entity("theme_night") != nil {
			t.Fatalf("expected night theme removed after re-add dropped its only reference")
		}
		if rain := g.Entity("theme_rain"); rain == nil || rain.UsageCount != 1 {
			t.Fatalf("expected rain usage back to 1, got %+v", rain)
		}
		view := g.GetPoem("p1")
		if len(view.Themes) != 1 || view.Themes[0] != "dawn" {
			t.Fatalf("expected themes [dawn], got %v", view.Themes)
		}
	})
}

func TestGetPoem(t *testing.T) {
	g := testGraph()
	addPoem(t, g, PoemInput{
		ID: "p1", Title: "Transit", Text: "the doors open", RouteID: "R5",
		Themes:       []string{"movement"},
		Imagery:      []string{"glass"},
		Emotions:     []string{"calm"},
		SoundDevices: []string{"alliteration"},
	})
	addPoem(t, g, PoemInput{ID: "p2", Title: "Echo", RouteID: "R5"})
	if !g.CreateConnection("p1", "p2", "thematic_echo", 0.8, "shared glass imagery") {
		t.Fatalf("CreateConnection failed")
	}

	t.Run("merges entity names and connections", func(t *testing.T) {
		view := g.GetPoem("p1")
		if view == nil {
			t.Fatalf("expected poem view")
		}
		if view.Title != "Transit" || view.RouteID != "R5" {
			t.Fatalf("unexpected poem attributes: %+v", view.Poem)
		}
		if len(view.Imagery) != 1 || view.Imagery[0] != "glass" {
			t.Fatalf("expected imagery [glass], got %v", view.Imagery)
		}
		if len(view.Connections) != 1 {
			t.Fatalf("expected one connection, got %d", len(view.Connections))
		}
		conn := view.Connections[0]
		if conn.TargetID != "p2" || conn.ConnectionType != "thematic_echo" || conn.Strength != 0.8 {
			t.Fatalf("unexpected connection: %+v", conn)
		}
	})

	t.Run("absent poem returns nil", func(t *testing.T) {
		if g.GetPoem("missing") != nil {
			t.Fatalf("expected nil for missing poem")
		}
	})

	t.Run("entity id is not a poem", func(t *testing.T) {
		if g.GetPoem("theme_movement") != nil {
			t.Fatalf("expected nil for entity id")
		}
	})
}

func TestRemovePoem(t *testing.T) {
	t.Run("orphan cleanup removes unique entities", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"solitude"}})
		if !g.RemovePoem("p1", true) {
			t.Fatalf("RemovePoem returned false")
		}
		if g.Entity("theme_solitude") != nil {
			t.Fatalf("expected orphaned theme removed")
		}
	})

	t.Run("without cleanup entities survive unchanged", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"solitude"}})
		if !g.RemovePoem("p1", false) {
			t.Fatalf("RemovePoem returned false")
		}
		entity := g.Entity("theme_solitude")
		if entity == nil || entity.UsageCount != 1 {
			t.Fatalf("expected theme kept with usage 1, got %+v", entity)
		}
	})

	t.Run("shared entity survives until last reference", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"urban"}})
		addPoem(t, g, PoemInput{ID: "p2", RouteID: "R2", Themes: []string{"urban"}})

		if !g.RemovePoem("p1", true) {
			t.Fatalf("RemovePoem p1 returned false")
		}
		if g.Entity("theme_urban") == nil {
			t.Fatalf("expected theme_urban kept while p2 references it")
		}
		if !g.RemovePoem("p2", true) {
			t.Fatalf("RemovePoem p2 returned false")
		}
		if g.Entity("theme_urban") != nil {
			t.Fatalf("expected theme_urban removed with its last reference")
		}
	})

	t.Run("incident narrative edges vanish", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1"})
		addPoem(t, g, PoemInput{ID: "p2", RouteID: "R1"})
		g.CreateConnection("p1", "p2", "response", 1.0, "")
		g.CreateConnection("p2", "p1", "response", 1.0, "")

		g.RemovePoem("p2", true)
		if g.EdgeCount() != 0 {
			t.Fatalf("expected no edges after removal, got %d", g.EdgeCount())
		}
	})

	t.Run("absent or non-poem id", func(t *testing.T) {
		g := testGraph()
		addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"night"}})
		if g.RemovePoem("missing", true) {
			t.Fatalf("expected false for missing poem")
		}
		if g.RemovePoem("theme_night", true) {
			t.Fatalf("expected false for entity id")
		}
	})
}

func TestRelatedPoems(t *testing.T) {
	g := testGraph()
	addPoem(t, g, PoemInput{ID: "p1", RouteID: "R1", Themes: []string{"night", "rain"}, Imagery: []string{"neon"}})
	addPoem(t, g, PoemInput{ID: "p2", RouteID: "R2", Themes: []string{"night", "rain"}})
	addPoem(t, g, PoemInput{ID: "p3", RouteID: "R3", Themes: []string{"night"}})
	addPoem(t, g, PoemInput{ID: "p4", RouteID: "R4", Themes: []string{"dawn"}})

	related := g.RelatedPoems("p1")
	if len(related) != 2 {
		t.Fatalf("expected two related poems, got %d", len(related))
	}
	if related[0].Poem.ID != "p2" || related[0].SharedCount != 2 {
		t.Fatalf("expected p2 with two shared entities first, got %+v", related[0])
	}
	if related[1].Poem.ID != "p3" || related[1].SharedCount != 1 {
		t.Fatalf("expected p3 second, got %+v", related[1])
	}

	if got := g.RelatedPoems("missing"); got != nil {
		t.Fatalf("expected nil for missing poem, got %v", got)
	}
}

func TestSearchPoems(t *testing.T) {
	g := testGraph()
	addPoem(t, g, PoemInput{ID: "p1", Title: "Morning Commute", Text: "steel and steam", RouteID: "R1"})
	addPoem(t, g, PoemInput{ID: "p2", Title: "Night Watch", Text: "the city sleeps", RouteID: "R1"})

	if got := g.SearchPoems("COMMUTE"); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("expected title match on p1, got %v", got)
	}
	if got := g.SearchPoems("sleeps"); len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("expected text match on p2, got %v", got)
	}
	if got := g.SearchPoems("   "); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}
}
