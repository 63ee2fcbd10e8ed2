package personality

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Personality{
		Name:           "Route 5 - Peachtree",
		Description:    "Downtown's pulse",
		LoyaltyToCanon: 0.9,
		SoundPreferences: map[string]float64{
			"alliteration": 0.95,
			"repetition":   0.8,
		},
		ThemeAffinities: map[string]float64{"urban_life": 0.95},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []struct {
		name string
		edit func(p *Personality)
	}{
		{"empty name", func(p *Personality) { p.Name = " " }},
		{"loyalty above one", func(p *Personality) { p.LoyaltyToCanon = 1.2 }},
		{"loyalty below zero", func(p *Personality) { p.LoyaltyToCanon = -0.1 }},
		{"unknown rebellious mode", func(p *Personality) { p.RebelliousMode = "burn_it_down" }},
		{"sound preference out of range", func(p *Personality) { p.SoundPreferences["alliteration"] = 1.5 }},
		{"theme affinity out of range", func(p *Personality) { p.ThemeAffinities["urban_life"] = -0.2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			p.SoundPreferences = map[string]float64{"alliteration": 0.95}
			p.ThemeAffinities = map[string]float64{"urban_life": 0.95}
			tc.edit(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	t.Run("loyal route with rebellious mode", func(t *testing.T) {
		p := Personality{Name: "R1", LoyaltyToCanon: 0.9, RebelliousMode: ModeInvert}
		if !hasWarning(p.Warnings(), "may conflict") {
			t.Fatalf("expected conflict warning, got %v", p.Warnings())
		}
	})

	t.Run("extreme loyalty", func(t *testing.T) {
		low := Personality{Name: "R1", LoyaltyToCanon: 0.05}
		if !hasWarning(low.Warnings(), "extremely rebellious") {
			t.Fatalf("expected low loyalty warning, got %v", low.Warnings())
		}
		high := Personality{Name: "R1", LoyaltyToCanon: 0.99}
		if !hasWarning(high.Warnings(), "lack variety") {
			t.Fatalf("expected high loyalty warning, got %v", high.Warnings())
		}
	})

	t.Run("balanced personality is quiet", func(t *testing.T) {
		p := Personality{Name: "R1", LoyaltyToCanon: 0.5}
		if warnings := p.Warnings(); len(warnings) != 0 {
			t.Fatalf("expected no warnings, got %v", warnings)
		}
	})
}

func hasWarning(warnings []string, fragment string) bool {
	for _, w := range warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}

func TestArchetype(t *testing.T) {
	cases := []struct {
		p    Personality
		want string
	}{
		{Personality{LoyaltyToCanon: 0.9}, "Traditionalist"},
		{Personality{LoyaltyToCanon: 0.3, RebelliousMode: ModeInvert}, "Contrarian"},
		{Personality{LoyaltyToCanon: 0.3, RebelliousMode: ModeIgnore}, "Explorer"},
		{Personality{LoyaltyToCanon: 0.3, RebelliousMode: ModeCreateNew}, "Pioneer"},
		{Personality{LoyaltyToCanon: 0.5}, "Balanced"},
		// High loyalty wins over any mode.
		{Personality{LoyaltyToCanon: 0.9, RebelliousMode: ModeIgnore}, "Traditionalist"},
	}
	for _, tc := range cases {
		if got := tc.p.Archetype(); got != tc.want {
			t.Fatalf("Archetype(%+v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestStore(t *testing.T) {
	t.Run("missing file yields empty store", func(t *testing.T) {
		s, err := LoadStore(filepath.Join(t.TempDir(), "personalities.json"))
		if err != nil {
			t.Fatalf("LoadStore: %v", err)
		}
		if s.Len() != 0 {
			t.Fatalf("expected empty store, got %d", s.Len())
		}
	})

	t.Run("unknown route falls back to default", func(t *testing.T) {
		s, err := LoadStore(filepath.Join(t.TempDir(), "personalities.json"))
		if err != nil {
			t.Fatalf("LoadStore: %v", err)
		}
		p := s.Get("42")
		if p.LoyaltyToCanon != 0.5 || p.Name != "Route 42" {
			t.Fatalf("unexpected default: %+v", p)
		}
		if s.Has("42") {
			t.Fatalf("default must not be persisted")
		}
	})

	t.Run("set validates", func(t *testing.T) {
		s, err := LoadStore(filepath.Join(t.TempDir(), "personalities.json"))
		if err != nil {
			t.Fatalf("LoadStore: %v", err)
		}
		if err := s.Set("5", Personality{Name: "R5", LoyaltyToCanon: 2.0}); err == nil {
			t.Fatalf("expected validation error")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "personalities.json")
		s, err := LoadStore(path)
		if err != nil {
			t.Fatalf("LoadStore: %v", err)
		}
		err = s.Set("5", Personality{
			Name:             "Route 5 - Peachtree",
			Description:      "Downtown's pulse, alliterative and alive",
			LoyaltyToCanon:   0.9,
			SoundPreferences: map[string]float64{"alliteration": 0.95},
			ThemeAffinities:  map[string]float64{"urban_life": 0.95},
		})
		if err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := s.Set("glenwood", Personality{Name: "Glenwood", LoyaltyToCanon: 0.2, RebelliousMode: ModeIgnore}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := s.Save(); err != nil {
			t.Fatalf("Save: %v", err)
		}

		loaded, err := LoadStore(path)
		if err != nil {
			t.Fatalf("LoadStore: %v", err)
		}
		if loaded.Len() != 2 {
			t.Fatalf("expected two personalities, got %d", loaded.Len())
		}
		p := loaded.Get("5")
		if p.LoyaltyToCanon != 0.9 || p.SoundPreferences["alliteration"] != 0.95 {
			t.Fatalf("round trip lost fields: %+v", p)
		}
		ids := loaded.RouteIDs()
		if len(ids) != 2 || ids[0] != "5" || ids[1] != "glenwood" {
			t.Fatalf("expected sorted ids, got %v", ids)
		}
	})

	t.Run("delete", func(t *testing.T) {
		s, err := LoadStore(filepath.Join(t.TempDir(), "personalities.json"))
		if err != nil {
			t.Fatalf("LoadStore: %v", err)
		}
		if err := s.Set("5", Personality{Name: "R5", LoyaltyToCanon: 0.5}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if !s.Delete("5") {
			t.Fatalf("expected delete to succeed")
		}
		if s.Delete("5") {
			t.Fatalf("expected second delete to fail")
		}
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "personalities.json")
		if err := os.WriteFile(path, []byte("["), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadStore(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid personality in file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "personalities.json")
		if err := os.WriteFile(path, []byte(`{"5": {"name": "R5", "loyalty_to_canon": 7}}`), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadStore(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}
