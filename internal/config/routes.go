package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RouteCatalog describes the transit routes that contribute poems, loaded
// from routes.yaml.
type RouteCatalog struct {
	Version int     `yaml:"version"`
	Routes  []Route `yaml:"routes"`

	routeIndex map[string]*Route
}

type Route struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Personality string   `yaml:"personality"`
	Description string   `yaml:"description"`
	Stations    []string `yaml:"stations"`
}

func LoadRouteCatalog(path string) (*RouteCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading route catalog: %w", err)
	}

	var catalog RouteCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("loading route catalog: %w", err)
	}

	if err := validateRouteCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("loading route catalog: %w", err)
	}

	catalog.routeIndex = make(map[string]*Route)
	for i := range catalog.Routes {
		route := &catalog.Routes[i]
		catalog.routeIndex[strings.ToLower(route.ID)] = route
	}

	return &catalog, nil
}

func validateRouteCatalog(c *RouteCatalog) error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported version: %d", c.Version)
	}
	if len(c.Routes) == 0 {
		return fmt.Errorf("at least one route is required")
	}

	seen := make(map[string]struct{})
	for i, route := range c.Routes {
		if strings.TrimSpace(route.ID) == "" {
			return fmt.Errorf("route %d id is required", i)
		}
		key := strings.ToLower(route.ID)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate route id: %s", route.ID)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(route.Personality) == "" {
			return fmt.Errorf("route %s personality file is required", route.ID)
		}
	}

	return nil
}

func (c *RouteCatalog) RouteByID(id string) (*Route, bool) {
	if c == nil {
		return nil, false
	}
	route, ok := c.routeIndex[strings.ToLower(id)]
	return route, ok
}

func (c *RouteCatalog) IsValidRoute(id string) bool {
	_, ok := c.RouteByID(id)
	return ok
}
