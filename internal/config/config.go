package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project   string          `yaml:"project"`
	Version   int             `yaml:"version"`
	Graph     GraphConfig     `yaml:"graph"`
	Generator GeneratorConfig `yaml:"generator"`
	Reports   ReportsConfig   `yaml:"reports"`
	Routes    string          `yaml:"routes"`
}

type GraphConfig struct {
	Path          string `yaml:"path"`
	Personalities string `yaml:"personalities"`
}

type GeneratorConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Graph.Path == "" {
		cfg.Graph.Path = "poetry_graph.json"
	}
	if cfg.Graph.Personalities == "" {
		cfg.Graph.Personalities = "personalities.json"
	}
	if cfg.Reports.Dir == "" {
		cfg.Reports.Dir = "reports"
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = 0.9
	}
	if cfg.Generator.MaxTokens == 0 {
		cfg.Generator.MaxTokens = 600
	}
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = "OPENAI_API_KEY"
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if cfg.Generator.Temperature < 0 || cfg.Generator.Temperature > 2 {
		return fmt.Errorf("generator temperature out of range: %v", cfg.Generator.Temperature)
	}
	if cfg.Generator.MaxTokens < 0 {
		return fmt.Errorf("generator max_tokens must not be negative: %d", cfg.Generator.MaxTokens)
	}
	return nil
}
