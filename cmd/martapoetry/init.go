package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new martapoetry project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	routesPath := "routes.yaml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(routesPath); err == nil {
		return fmt.Errorf("%s already exists", routesPath)
	}

	configContents := fmt.Sprintf(`project: %s
version: 1

graph:
  path: poetry_graph.json
  personalities: personalities.json

generator:
  base_url: https://api.openai.com
  model: gpt-4o-mini
  api_key_env: OPENAI_API_KEY
  temperature: 0.9
  max_tokens: 600

reports:
  dir: reports

routes: routes.yaml
`, projectName)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	routesContents := `version: 1

routes:
  - id: "16"
    name: Noble-Due West
    description: Crosstown route through northwest Atlanta
    stations:
      - H.E. Holmes
      - West Lake
  - id: glenwood
    name: Glenwood
    description: East side corridor along Glenwood Avenue
    stations:
      - King Memorial
      - Inman Park
`
	if err := os.WriteFile(routesPath, []byte(routesContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", routesPath, err)
	}

	personalitiesContents := `{
  "16": {
    "name": "Noble-Due West",
    "description": "Observant and steady, watches the city change block by block",
    "loyalty_to_canon": 0.8
  },
  "glenwood": {
    "name": "Glenwood",
    "description": "Restless east-sider, bends the canon when it suits the poem",
    "loyalty_to_canon": 0.3,
    "rebellious_mode": "invert"
  }
}
`
	if _, err := os.Stat("personalities.json"); os.IsNotExist(err) {
		if err := os.WriteFile("personalities.json", []byte(personalitiesContents), 0o600); err != nil {
			return fmt.Errorf("writing personalities.json: %w", err)
		}
	}
	if err := os.MkdirAll("reports", 0o755); err != nil {
		return fmt.Errorf("creating reports dir: %w", err)
	}

	return nil
}
