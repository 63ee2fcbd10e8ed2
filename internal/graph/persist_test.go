package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Fatalf("expected empty graph, got %d nodes %d edges", g.NodeCount(), g.EdgeCount())
	}
	if g.Path() != path {
		t.Fatalf("expected graph bound to %s, got %s", path, g.Path())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for corrupt file")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")

	g := testGraph()
	addPoem(t, g, PoemInput{
		ID: "p1", Title: "Transit", Text: "the doors open\nonto rain", RouteID: "R5",
		Themes:       []string{"movement", "rain"},
		Imagery:      []string{"glass doors"},
		Emotions:     []string{"calm"},
		SoundDevices: []string{"alliteration"},
		Role:         RoleCore,
		Meta: PoemMeta{
			Structure: &StructureMeta{LineCount: 2, LineLengths: []int{14, 9}},
			Generation: &GenerationMeta{
				Strategy: "loyal", StoryInfluence: 0.7, Model: "gpt-4o-mini",
				TimeOfDay: "evening", Location: "Five Points", PassengerCount: "12",
			},
		},
	})
	addPoem(t, g, PoemInput{ID: "p2", Title: "Echo", RouteID: "R5", Themes: []string{"rain"}})
	g.ClearRole("p2")
	g.CreateConnection("p1", "p2", "thematic_echo", 0.0, "zero strength kept")

	if err := g.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	t.Run("counts survive", func(t *testing.T) {
		if loaded.NodeCount() != g.NodeCount() {
			t.Fatalf("node count %d != %d", loaded.NodeCount(), g.NodeCount())
		}
		if loaded.EdgeCount() != g.EdgeCount() {
			t.Fatalf("edge count %d != %d", loaded.EdgeCount(), g.EdgeCount())
		}
	})

	t.Run("poem attributes survive", func(t *testing.T) {
		before, after := g.GetPoem("p1"), loaded.GetPoem("p1")
		if after == nil {
			t.Fatalf("p1 missing after reload")
		}
		if after.Title != before.Title || after.Text != before.Text || after.RouteID != before.RouteID {
			t.Fatalf("poem attributes changed: %+v", after.Poem)
		}
		if after.NarrativeRole != RoleCore {
			t.Fatalf("expected core role, got %q", after.NarrativeRole)
		}
		if !after.CreatedAt.Equal(before.CreatedAt) {
			t.Fatalf("timestamp changed: %v != %v", after.CreatedAt, before.CreatedAt)
		}
		if after.Meta.Structure == nil || after.Meta.Structure.LineCount != 2 {
			t.Fatalf("structure metadata lost: %+v", after.Meta)
		}
		if after.Meta.Generation == nil || after.Meta.Generation.StoryInfluence != 0.7 {
			t.Fatalf("generation metadata lost: %+v", after.Meta)
		}
	})

	t.Run("cleared role stays unassigned", func(t *testing.T) {
		if role := loaded.GetPoem("p2").NarrativeRole; !role.IsUnassigned() {
			t.Fatalf("expected unassigned, got %q", role)
		}
	})

	t.Run("usage counts survive", func(t *testing.T) {
		rain := loaded.Entity("theme_rain")
		if rain == nil || rain.UsageCount != 2 {
			t.Fatalf("expected rain usage 2, got %+v", rain)
		}
	})

	t.Run("zero strength survives", func(t *testing.T) {
		conns := loaded.GetPoem("p1").Connections
		if len(conns) != 1 {
			t.Fatalf("expected one connection, got %d", len(conns))
		}
		if conns[0].Strength != 0.0 || conns[0].ConnectionType != "thematic_echo" {
			t.Fatalf("unexpected connection: %+v", conns[0])
		}
	})

	t.Run("insertion order survives", func(t *testing.T) {
		poems := loaded.Poems("")
		if len(poems) != 2 || poems[0].ID != "p1" || poems[1].ID != "p2" {
			t.Fatalf("expected [p1 p2], got %v", poemIDsOf(poems))
		}
	})

	t.Run("second save is stable", func(t *testing.T) {
		again := filepath.Join(t.TempDir(), "again.json")
		if err := loaded.Save(again); err != nil {
			t.Fatalf("Save: %v", err)
		}
		first, err := os.ReadFile(again)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		reloaded, err := Load(again)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if err := reloaded.Save(again); err != nil {
			t.Fatalf("Save: %v", err)
		}
		second, err := os.ReadFile(again)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(first) != string(second) {
			t.Fatalf("serialization not stable across load/save cycle")
		}
	})
}

func TestSaveDefaultPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := g.AddPoem(PoemInput{ID: "p1", RouteID: "R1"}); err != nil {
		t.Fatalf("AddPoem: %v", err)
	}
	if err := g.Save(""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at bound path: %v", err)
	}
}
