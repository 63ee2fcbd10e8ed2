package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/prompt"
)

type ListPoemsInput struct {
	RouteID string `json:"route_id,omitempty" jsonschema:"restrict to one route"`
	Role    string `json:"role,omitempty" jsonschema:"restrict to one narrative role"`
}

type GetPoemInput struct {
	ID string `json:"id" jsonschema:"poem id"`
}

type SearchPoemsInput struct {
	Query string `json:"query" jsonschema:"search terms matched against titles and text"`
}

type RelatedPoemsInput struct {
	ID string `json:"id" jsonschema:"poem id to find related poems for"`
}

type GraphSummaryInput struct{}

type RouteStatisticsInput struct {
	RouteID string `json:"route_id" jsonschema:"route to summarize"`
}

type CanonicalEntitiesInput struct {
	Kind         string `json:"kind" jsonschema:"theme, imagery, emotion, or sound_device"`
	MinFrequency int    `json:"min_frequency,omitempty" jsonschema:"minimum usage count, default 3"`
}

type BuildConstraintsInput struct {
	RouteID        string `json:"route_id" jsonschema:"route whose personality drives the constraints"`
	TimeOfDay      string `json:"time_of_day,omitempty" jsonschema:"current time of day for context"`
	Location       string `json:"location,omitempty" jsonschema:"current location for context"`
	PassengerCount int    `json:"passenger_count,omitempty" jsonschema:"current passenger count for context"`
}

type PoemSummaryOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	RouteID   string `json:"route_id"`
	Role      string `json:"narrative_role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type ListPoemsOutput struct {
	Poems []PoemSummaryOutput `json:"poems"`
}

type PoemOutput struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Text         string   `json:"text"`
	RouteID      string   `json:"route_id"`
	Role         string   `json:"narrative_role,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
	Themes       []string `json:"themes"`
	Imagery      []string `json:"imagery"`
	Emotions     []string `json:"emotions"`
	SoundDevices []string `json:"sound_devices"`
}

type RelatedPoemOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	SharedCount int      `json:"shared_count"`
	Shared      []string `json:"shared"`
}

type RelatedPoemsOutput struct {
	Related []RelatedPoemOutput `json:"related"`
}

type GraphSummaryOutput struct {
	TotalPoems           int `json:"total_poems"`
	TotalThemes          int `json:"total_themes"`
	TotalImagery         int `json:"total_imagery"`
	TotalEmotions        int `json:"total_emotions"`
	TotalSoundDevices    int `json:"total_sound_devices"`
	ContributingRoutes   int `json:"contributing_routes"`
	TotalConnections     int `json:"total_connections"`
	NarrativeCorePoems   int `json:"narrative_core_poems"`
	NarrativeConnections int `json:"narrative_connections"`
}

type NameCountOutput struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RouteStatisticsOutput struct {
	RouteID             string            `json:"route_id"`
	PoemCount           int               `json:"poem_count"`
	Themes              []NameCountOutput `json:"common_themes"`
	Imagery             []NameCountOutput `json:"common_imagery"`
	Emotions            []NameCountOutput `json:"common_emotions"`
	SoundDevices        []NameCountOutput `json:"common_sound_devices"`
	AvgLineCount        float64           `json:"avg_line_count"`
	StructuralDiversity float64           `json:"structural_diversity"`
}

type EntityRankOutput struct {
	Name         string   `json:"name"`
	UsageCount   int      `json:"usage_count"`
	UsedByRoutes []string `json:"used_by_routes"`
}

type CanonicalEntitiesOutput struct {
	Entities []EntityRankOutput `json:"entities"`
}

type BuildConstraintsOutput struct {
	Prompt      string            `json:"prompt"`
	Constraints prompt.Constraints `json:"constraints"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_poems",
		Description: "List poems, optionally filtered by route or narrative role",
	}, s.handleListPoems)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_poem",
		Description: "Retrieve a poem with its text and connected entities",
	}, s.handleGetPoem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_poems",
		Description: "Search poems by title and text",
	}, s.handleSearchPoems)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "related_poems",
		Description: "Find poems sharing thematic or sonic elements with a poem",
	}, s.handleRelatedPoems)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "graph_summary",
		Description: "Summarize the poetry graph",
	}, s.handleGraphSummary)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "route_statistics",
		Description: "Summarize one route's poems and recurring elements",
	}, s.handleRouteStatistics)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "canonical_entities",
		Description: "List frequently used entities of one kind",
	}, s.handleCanonicalEntities)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "build_constraints",
		Description: "Build a generation prompt and constraints for a route's personality",
	}, s.handleBuildConstraints)
}

func (s *Server) handleListPoems(ctx context.Context, req *sdk.CallToolRequest, input ListPoemsInput) (*sdk.CallToolResult, ListPoemsOutput, error) {
	var poems []*graph.PoemView
	if input.Role != "" {
		poems = s.graph.PoemsByRole(graph.Role(input.Role))
		if input.RouteID != "" {
			filtered := poems[:0]
			for _, poem := range poems {
				if poem.RouteID == input.RouteID {
					filtered = append(filtered, poem)
				}
			}
			poems = filtered
		}
	} else {
		poems = s.graph.Poems(input.RouteID)
	}

	output := make([]PoemSummaryOutput, 0, len(poems))
	for _, poem := range poems {
		output = append(output, poemSummaryOutput(poem))
	}
	return nil, ListPoemsOutput{Poems: output}, nil
}

func (s *Server) handleGetPoem(ctx context.Context, req *sdk.CallToolRequest, input GetPoemInput) (*sdk.CallToolResult, PoemOutput, error) {
	if input.ID == "" {
		return nil, PoemOutput{}, fmt.Errorf("id is required")
	}
	poem := s.graph.GetPoem(input.ID)
	if poem == nil {
		return nil, PoemOutput{}, fmt.Errorf("poem not found: %s", input.ID)
	}
	return nil, poemOutput(poem), nil
}

func (s *Server) handleSearchPoems(ctx context.Context, req *sdk.CallToolRequest, input SearchPoemsInput) (*sdk.CallToolResult, ListPoemsOutput, error) {
	if input.Query == "" {
		return nil, ListPoemsOutput{}, fmt.Errorf("query is required")
	}
	poems := s.graph.SearchPoems(input.Query)
	output := make([]PoemSummaryOutput, 0, len(poems))
	for _, poem := range poems {
		output = append(output, poemSummaryOutput(poem))
	}
	return nil, ListPoemsOutput{Poems: output}, nil
}

func (s *Server) handleRelatedPoems(ctx context.Context, req *sdk.CallToolRequest, input RelatedPoemsInput) (*sdk.CallToolResult, RelatedPoemsOutput, error) {
	if input.ID == "" {
		return nil, RelatedPoemsOutput{}, fmt.Errorf("id is required")
	}
	if s.graph.GetPoem(input.ID) == nil {
		return nil, RelatedPoemsOutput{}, fmt.Errorf("poem not found: %s", input.ID)
	}

	related := s.graph.RelatedPoems(input.ID)
	output := make([]RelatedPoemOutput, 0, len(related))
	for _, rel := range related {
		output = append(output, RelatedPoemOutput{
			ID:          rel.Poem.ID,
			Title:       rel.Poem.Title,
			SharedCount: rel.SharedCount,
			Shared:      rel.Shared,
		})
	}
	return nil, RelatedPoemsOutput{Related: output}, nil
}

func (s *Server) handleGraphSummary(ctx context.Context, req *sdk.CallToolRequest, input GraphSummaryInput) (*sdk.CallToolResult, GraphSummaryOutput, error) {
	summary := s.graph.Summary()
	return nil, GraphSummaryOutput{
		TotalPoems:           summary.TotalPoems,
		TotalThemes:          summary.TotalThemes,
		TotalImagery:         summary.TotalImagery,
		TotalEmotions:        summary.TotalEmotions,
		TotalSoundDevices:    summary.TotalSoundDevices,
		ContributingRoutes:   summary.ContributingRoutes,
		TotalConnections:     summary.TotalEdges,
		NarrativeCorePoems:   summary.Narrative.CorePoems,
		NarrativeConnections: summary.Narrative.Connections,
	}, nil
}

func (s *Server) handleRouteStatistics(ctx context.Context, req *sdk.CallToolRequest, input RouteStatisticsInput) (*sdk.CallToolResult, RouteStatisticsOutput, error) {
	if input.RouteID == "" {
		return nil, RouteStatisticsOutput{}, fmt.Errorf("route_id is required")
	}
	stats := s.graph.RouteStatistics(input.RouteID)
	return nil, RouteStatisticsOutput{
		RouteID:             stats.RouteID,
		PoemCount:           stats.PoemCount,
		Themes:              nameCountOutputs(stats.Themes),
		Imagery:             nameCountOutputs(stats.Imagery),
		Emotions:            nameCountOutputs(stats.Emotions),
		SoundDevices:        nameCountOutputs(stats.SoundDevices),
		AvgLineCount:        stats.Structure.AvgLineCount,
		StructuralDiversity: stats.StructuralDiversity,
	}, nil
}

func (s *Server) handleCanonicalEntities(ctx context.Context, req *sdk.CallToolRequest, input CanonicalEntitiesInput) (*sdk.CallToolResult, CanonicalEntitiesOutput, error) {
	kind, err := entityKind(input.Kind)
	if err != nil {
		return nil, CanonicalEntitiesOutput{}, err
	}
	minFreq := input.MinFrequency
	if minFreq <= 0 {
		minFreq = 3
	}

	ranks := s.graph.Canonical(kind, minFreq)
	output := make([]EntityRankOutput, 0, len(ranks))
	for _, rank := range ranks {
		output = append(output, EntityRankOutput{
			Name:         rank.Name,
			UsageCount:   rank.UsageCount,
			UsedByRoutes: rank.UsedByRoutes,
		})
	}
	return nil, CanonicalEntitiesOutput{Entities: output}, nil
}

func (s *Server) handleBuildConstraints(ctx context.Context, req *sdk.CallToolRequest, input BuildConstraintsInput) (*sdk.CallToolResult, BuildConstraintsOutput, error) {
	if input.RouteID == "" {
		return nil, BuildConstraintsOutput{}, fmt.Errorf("route_id is required")
	}

	p := s.personalities.Get(input.RouteID)
	var promptCtx *prompt.Context
	if input.TimeOfDay != "" || input.Location != "" || input.PassengerCount > 0 {
		promptCtx = &prompt.Context{
			TimeOfDay:      input.TimeOfDay,
			Location:       input.Location,
			PassengerCount: input.PassengerCount,
		}
	}

	text, constraints := s.builder.BuildForRoute(input.RouteID, p, promptCtx)
	return nil, BuildConstraintsOutput{Prompt: text, Constraints: constraints}, nil
}

func entityKind(name string) (graph.NodeKind, error) {
	for _, kind := range graph.EntityKinds {
		if string(kind) == name {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind: %q", name)
}

func poemSummaryOutput(poem *graph.PoemView) PoemSummaryOutput {
	out := PoemSummaryOutput{
		ID:      poem.ID,
		Title:   poem.Title,
		RouteID: poem.RouteID,
		Role:    string(poem.NarrativeRole),
	}
	if !poem.CreatedAt.IsZero() {
		out.CreatedAt = poem.CreatedAt.Format(time.RFC3339)
	}
	return out
}

func nameCountOutputs(counts []graph.NameCount) []NameCountOutput {
	output := make([]NameCountOutput, 0, len(counts))
	for _, item := range counts {
		output = append(output, NameCountOutput{Name: item.Name, Count: item.Count})
	}
	return output
}

func poemOutput(poem *graph.PoemView) PoemOutput {
	out := PoemOutput{
		ID:           poem.ID,
		Title:        poem.Title,
		Text:         poem.Text,
		RouteID:      poem.RouteID,
		Role:         string(poem.NarrativeRole),
		Themes:       poem.Themes,
		Imagery:      poem.Imagery,
		Emotions:     poem.Emotions,
		SoundDevices: poem.SoundDevices,
	}
	if !poem.CreatedAt.IsZero() {
		out.CreatedAt = poem.CreatedAt.Format(time.RFC3339)
	}
	return out
}
