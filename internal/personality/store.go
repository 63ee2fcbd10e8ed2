package personality

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Store keeps every route personality in one JSON file keyed by route id.
type Store struct {
	path          string
	personalities map[string]Personality
}

// LoadStore reads the personalities file. A missing file yields an empty
// store bound to the same path.
func LoadStore(path string) (*Store, error) {
	s := &Store{path: path, personalities: make(map[string]Personality)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading personalities: %w", err)
	}

	if err := json.Unmarshal(data, &s.personalities); err != nil {
		return nil, fmt.Errorf("loading personalities: %w", err)
	}
	for routeID, p := range s.personalities {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("loading personalities: route %s: %w", routeID, err)
		}
	}
	return s, nil
}

func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("saving personalities: %w", err)
		}
	}
	data, err := json.MarshalIndent(s.personalities, "", "  ")
	if err != nil {
		return fmt.Errorf("saving personalities: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("saving personalities: %w", err)
	}
	return nil
}

// Get returns the personality for a route, falling back to the balanced
// default for routes with no profile.
func (s *Store) Get(routeID string) Personality {
	if p, ok := s.personalities[routeID]; ok {
		return p
	}
	return Default(routeID)
}

func (s *Store) Has(routeID string) bool {
	_, ok := s.personalities[routeID]
	return ok
}

func (s *Store) Set(routeID string, p Personality) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("setting personality for %s: %w", routeID, err)
	}
	s.personalities[routeID] = p
	return nil
}

func (s *Store) Delete(routeID string) bool {
	if _, ok := s.personalities[routeID]; !ok {
		return false
	}
	delete(s.personalities, routeID)
	return true
}

// RouteIDs returns every route with a profile, sorted.
func (s *Store) RouteIDs() []string {
	ids := make([]string, 0, len(s.personalities))
	for id := range s.personalities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) Len() int { return len(s.personalities) }
