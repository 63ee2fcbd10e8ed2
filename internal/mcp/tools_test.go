package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/personality"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	g := graph.New()

	add := func(id, title, route string, themes, sounds []string) {
		t.Helper()
		err := g.AddPoem(graph.PoemInput{
			ID:           id,
			Title:        title,
			Text:         "the doors close softly\non the evening crowd",
			RouteID:      route,
			Themes:       themes,
			Imagery:      []string{"doors"},
			Emotions:     []string{"calm"},
			SoundDevices: sounds,
		})
		if err != nil {
			t.Fatalf("AddPoem(%s): %v", id, err)
		}
	}
	add("p1", "Evening Doors", "16", []string{"transit", "waiting"}, []string{"alliteration"})
	add("p2", "Second Wind", "16", []string{"transit"}, []string{"alliteration"})
	add("p3", "Elsewhere", "42", []string{"transit"}, []string{"alliteration"})
	g.MarkRole("p1", graph.RoleCore)

	store, err := personality.LoadStore(filepath.Join(t.TempDir(), "personalities.json"))
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if err := store.Set("16", personality.Personality{
		Name:           "Noble-Due West",
		LoyaltyToCanon: 0.9,
	}); err != nil {
		t.Fatalf("Set personality: %v", err)
	}

	return NewServer(g, store, "test")
}

func TestHandleListPoems(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	t.Run("all poems", func(t *testing.T) {
		_, out, err := s.handleListPoems(ctx, nil, ListPoemsInput{})
		if err != nil {
			t.Fatalf("handleListPoems: %v", err)
		}
		if len(out.Poems) != 3 {
			t.Fatalf("poems = %d, want 3", len(out.Poems))
		}
	})

	t.Run("route filter", func(t *testing.T) {
		_, out, err := s.handleListPoems(ctx, nil, ListPoemsInput{RouteID: "16"})
		if err != nil {
			t.Fatalf("handleListPoems: %v", err)
		}
		if len(out.Poems) != 2 {
			t.Fatalf("poems = %d, want 2 on route 16", len(out.Poems))
		}
	})

	t.Run("role filter", func(t *testing.T) {
		_, out, err := s.handleListPoems(ctx, nil, ListPoemsInput{Role: "core"})
		if err != nil {
			t.Fatalf("handleListPoems: %v", err)
		}
		if len(out.Poems) != 1 || out.Poems[0].ID != "p1" {
			t.Fatalf("poems = %v, want only p1", out.Poems)
		}
	})

	t.Run("role and route filter", func(t *testing.T) {
		_, out, err := s.handleListPoems(ctx, nil, ListPoemsInput{Role: "core", RouteID: "42"})
		if err != nil {
			t.Fatalf("handleListPoems: %v", err)
		}
		if len(out.Poems) != 0 {
			t.Fatalf("poems = %v, want none", out.Poems)
		}
	})
}

func TestHandleGetPoem(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	_, out, err := s.handleGetPoem(ctx, nil, GetPoemInput{ID: "p1"})
	if err != nil {
		t.Fatalf("handleGetPoem: %v", err)
	}
	if out.Title != "Evening Doors" || out.Role != "core" {
		t.Errorf("output = %+v", out)
	}
	if len(out.Themes) != 2 {
		t.Errorf("themes = %v, want 2", out.Themes)
	}

	if _, _, err := s.handleGetPoem(ctx, nil, GetPoemInput{ID: "missing"}); err == nil {
		t.Errorf("expected error for unknown poem")
	}
	if _, _, err := s.handleGetPoem(ctx, nil, GetPoemInput{}); err == nil {
		t.Errorf("expected error for empty id")
	}
}

func TestHandleSearchPoems(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	_, out, err := s.handleSearchPoems(ctx, nil, SearchPoemsInput{Query: "evening"})
	if err != nil {
		t.Fatalf("handleSearchPoems: %v", err)
	}
	if len(out.Poems) != 3 {
		// Every poem's text mentions the evening crowd.
		t.Fatalf("poems = %d, want 3", len(out.Poems))
	}

	if _, _, err := s.handleSearchPoems(ctx, nil, SearchPoemsInput{}); err == nil {
		t.Errorf("expected error for empty query")
	}
}

func TestHandleRelatedPoems(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	_, out, err := s.handleRelatedPoems(ctx, nil, RelatedPoemsInput{ID: "p1"})
	if err != nil {
		t.Fatalf("handleRelatedPoems: %v", err)
	}
	if len(out.Related) != 2 {
		t.Fatalf("related = %v, want p2 and p3", out.Related)
	}
	if out.Related[0].SharedCount < out.Related[1].SharedCount {
		t.Errorf("related poems not ranked by overlap")
	}

	if _, _, err := s.handleRelatedPoems(ctx, nil, RelatedPoemsInput{ID: "missing"}); err == nil {
		t.Errorf("expected error for unknown poem")
	}
}

func TestHandleGraphSummary(t *testing.T) {
	s := testServer(t)

	_, out, err := s.handleGraphSummary(context.Background(), nil, GraphSummaryInput{})
	if err != nil {
		t.Fatalf("handleGraphSummary: %v", err)
	}
	if out.TotalPoems != 3 || out.ContributingRoutes != 2 || out.NarrativeCorePoems != 1 {
		t.Errorf("summary = %+v", out)
	}
}

func TestHandleRouteStatistics(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	_, out, err := s.handleRouteStatistics(ctx, nil, RouteStatisticsInput{RouteID: "16"})
	if err != nil {
		t.Fatalf("handleRouteStatistics: %v", err)
	}
	if out.PoemCount != 2 {
		t.Errorf("poem count = %d, want 2", out.PoemCount)
	}
	if len(out.Themes) == 0 || out.Themes[0].Name != "transit" || out.Themes[0].Count != 2 {
		t.Errorf("themes = %v, want transit(2) first", out.Themes)
	}
	if len(out.SoundDevices) == 0 || out.SoundDevices[0].Name != "alliteration" {
		t.Errorf("sound devices = %v, want alliteration first", out.SoundDevices)
	}

	if _, _, err := s.handleRouteStatistics(ctx, nil, RouteStatisticsInput{}); err == nil {
		t.Errorf("expected error for empty route")
	}
}

func TestHandleCanonicalEntities(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	_, out, err := s.handleCanonicalEntities(ctx, nil, CanonicalEntitiesInput{Kind: "theme"})
	if err != nil {
		t.Fatalf("handleCanonicalEntities: %v", err)
	}
	if len(out.Entities) != 1 || out.Entities[0].Name != "transit" {
		t.Fatalf("entities = %v, want only transit at the default threshold", out.Entities)
	}
	if out.Entities[0].UsageCount != 3 || len(out.Entities[0].UsedByRoutes) != 2 {
		t.Errorf("transit rank = %+v", out.Entities[0])
	}

	_, out, err = s.handleCanonicalEntities(ctx, nil, CanonicalEntitiesInput{Kind: "theme", MinFrequency: 1})
	if err != nil {
		t.Fatalf("handleCanonicalEntities: %v", err)
	}
	if len(out.Entities) != 2 {
		t.Errorf("entities = %v, want transit and waiting", out.Entities)
	}

	if _, _, err := s.handleCanonicalEntities(ctx, nil, CanonicalEntitiesInput{Kind: "mood"}); err == nil {
		t.Errorf("expected error for unknown kind")
	}
}

func TestHandleBuildConstraints(t *testing.T) {
	s := testServer(t)
	ctx := context.Background()

	_, out, err := s.handleBuildConstraints(ctx, nil, BuildConstraintsInput{
		RouteID:   "16",
		TimeOfDay: "dusk",
	})
	if err != nil {
		t.Fatalf("handleBuildConstraints: %v", err)
	}
	if out.Constraints.Approach == "" {
		t.Errorf("constraints missing approach: %+v", out.Constraints)
	}
	if !strings.Contains(out.Prompt, "Noble-Due West") {
		t.Errorf("prompt does not mention the route personality:\n%s", out.Prompt)
	}
	if !strings.Contains(out.Prompt, "dusk") {
		t.Errorf("prompt does not carry the context time")
	}

	// Unknown routes fall back to the default personality.
	_, out, err = s.handleBuildConstraints(ctx, nil, BuildConstraintsInput{RouteID: "99"})
	if err != nil {
		t.Fatalf("handleBuildConstraints fallback: %v", err)
	}
	if out.Prompt == "" {
		t.Errorf("expected a prompt for the default personality")
	}

	if _, _, err := s.handleBuildConstraints(ctx, nil, BuildConstraintsInput{}); err == nil {
		t.Errorf("expected error for empty route id")
	}
}
