// Package personality manages per-route creative personalities: how loyal a
// route is to the canon, which sound devices it favors, and which rebellious
// strategy it falls back on.
package personality

import (
	"fmt"
	"strings"
)

// Rebellious modes. An empty mode means the route balances canon and novelty.
const (
	ModeIgnore    = "ignore"
	ModeInvert    = "invert"
	ModeCreateNew = "create_new"
)

// Personality describes one route's creative disposition. LoyaltyToCanon
// runs from 0.0 (rebel) to 1.0 (traditionalist); preference and affinity
// weights run 0.0 to 1.0 per entry.
type Personality struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	LoyaltyToCanon   float64            `json:"loyalty_to_canon"`
	RebelliousMode   string             `json:"rebellious_mode,omitempty"`
	SoundPreferences map[string]float64 `json:"sound_preferences,omitempty"`
	ThemeAffinities  map[string]float64 `json:"theme_affinities,omitempty"`
}

// Default returns the balanced personality used when a route has no profile.
func Default(routeID string) Personality {
	return Personality{
		Name:           "Route " + routeID,
		Description:    "An unwritten route, still finding its voice",
		LoyaltyToCanon: 0.5,
	}
}

func (p Personality) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("personality name is required")
	}
	if p.LoyaltyToCanon < 0 || p.LoyaltyToCanon > 1 {
		return fmt.Errorf("loyalty_to_canon out of range: %v", p.LoyaltyToCanon)
	}
	switch p.RebelliousMode {
	case "", ModeIgnore, ModeInvert, ModeCreateNew:
	default:
		return fmt.Errorf("unknown rebellious_mode: %s", p.RebelliousMode)
	}
	for device, weight := range p.SoundPreferences {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("sound preference %s out of range: %v", device, weight)
		}
	}
	for theme, weight := range p.ThemeAffinities {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("theme affinity %s out of range: %v", theme, weight)
		}
	}
	return nil
}

// Warnings flags configurations that are valid but likely unintended.
func (p Personality) Warnings() []string {
	var warnings []string
	if p.LoyaltyToCanon > 0.7 && p.RebelliousMode != "" {
		warnings = append(warnings, "high loyalty (>0.7) with a rebellious mode set, these may conflict")
	}
	if total := sumWeights(p.SoundPreferences); total > 5.0 {
		warnings = append(warnings, fmt.Sprintf("sound preferences sum to %.1f, consider normalizing", total))
	}
	if total := sumWeights(p.ThemeAffinities); total > 5.0 {
		warnings = append(warnings, fmt.Sprintf("theme affinities sum to %.1f, consider normalizing", total))
	}
	if p.LoyaltyToCanon < 0.1 {
		warnings = append(warnings, "very low loyalty (<0.1), route will be extremely rebellious")
	}
	if p.LoyaltyToCanon > 0.95 {
		warnings = append(warnings, "very high loyalty (>0.95), route may lack variety")
	}
	return warnings
}

// Archetype classifies the personality for display.
func (p Personality) Archetype() string {
	switch {
	case p.LoyaltyToCanon > 0.8:
		return "Traditionalist"
	case p.RebelliousMode == ModeInvert:
		return "Contrarian"
	case p.RebelliousMode == ModeIgnore:
		return "Explorer"
	case p.RebelliousMode == ModeCreateNew:
		return "Pioneer"
	default:
		return "Balanced"
	}
}

func sumWeights(weights map[string]float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	return total
}
