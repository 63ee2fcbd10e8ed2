package main

import (
	"context"
	"os"

	"github.com/bohara2000/MARTA-Poetry/internal/config"
	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/llm"
	"github.com/bohara2000/MARTA-Poetry/internal/narrative"
	"github.com/bohara2000/MARTA-Poetry/internal/personality"
)

const configPath = "martapoetry.yaml"

func loadConfig() (*config.ProjectConfig, error) {
	return config.LoadProjectConfig(configPath)
}

func openGraph(cfg *config.ProjectConfig) (*graph.Graph, error) {
	return graph.Load(cfg.Graph.Path)
}

func openPersonalities(cfg *config.ProjectConfig) (*personality.Store, error) {
	return personality.LoadStore(cfg.Graph.Personalities)
}

func loadRoutes(cfg *config.ProjectConfig) (*config.RouteCatalog, error) {
	if cfg.Routes == "" {
		return nil, nil
	}
	return config.LoadRouteCatalog(cfg.Routes)
}

func newClient(cfg *config.ProjectConfig) *llm.Client {
	return llm.NewClient(llm.Config{
		BaseURL:     cfg.Generator.BaseURL,
		APIKey:      os.Getenv(cfg.Generator.APIKeyEnv),
		Model:       cfg.Generator.Model,
		Temperature: cfg.Generator.Temperature,
		MaxTokens:   cfg.Generator.MaxTokens,
	})
}

// factAnalyzer narrows a full poem analysis down to the fields adherence
// scoring reads.
type factAnalyzer struct {
	analyzer llm.Analyzer
}

func (a factAnalyzer) AnalyzePoem(ctx context.Context, title, text string) (narrative.PoemFacts, error) {
	analysis, err := a.analyzer.AnalyzePoem(ctx, title, text)
	if err != nil {
		return narrative.PoemFacts{}, err
	}
	return narrative.PoemFacts{
		Themes:   analysis.Themes,
		Imagery:  analysis.Imagery,
		Emotions: analysis.Emotions,
	}, nil
}
