package prompt

import (
	"fmt"
	"strings"

	"github.com/bohara2000/MARTA-Poetry/internal/personality"
)

// Context carries the transient conditions a poem is written under.
type Context struct {
	TimeOfDay      string
	Location       string
	PassengerCount int
}

// BuildForRoute assembles the complete generation prompt for a route.
func (b *Builder) BuildForRoute(routeID string, p personality.Personality, ctx *Context) (string, Constraints) {
	constraints := b.ConstraintsFor(p)
	return assemble(routeID, p, constraints, ctx), constraints
}

func assemble(routeID string, p personality.Personality, constraints Constraints, ctx *Context) string {
	name := p.Name
	if name == "" {
		name = routeID
	}
	description := p.Description
	if description == "" {
		description = "A MARTA route with its own voice"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are writing a poem for %s.\n\n", name)
	fmt.Fprintf(&sb, "Route Character:\n%s\n\n", description)

	sb.WriteString("Relationship to The Homunculus (the poetry canon):\n")
	fmt.Fprintf(&sb, "- Loyalty to canon: %.0f%%\n", p.LoyaltyToCanon*100)
	fmt.Fprintf(&sb, "- Strategy: %s\n", constraints.Strategy)
	rationale := constraints.Rationale
	if rationale == "" {
		rationale = "Creating distinctive voice"
	}
	fmt.Fprintf(&sb, "- %s\n\n", rationale)

	sb.WriteString("Creative Constraints from the Knowledge Graph:\n")
	sb.WriteString(formatConstraints(constraints))

	if contextText := formatContext(ctx); contextText != "" {
		sb.WriteString(contextText)
	}

	sb.WriteString("\n\nVoice Guidelines:\n")
	sb.WriteString("- Write in free verse (no formal meter or rhyme scheme)\n")
	sb.WriteString("- Length: 8-16 lines\n")
	sb.WriteString("- Create a distinctive voice for this route\n")
	if p.LoyaltyToCanon > 0.7 {
		sb.WriteString("- Stay true to established patterns\n")
	} else {
		sb.WriteString("- Feel free to break conventions\n")
	}

	sb.WriteString("\nWrite the poem now:")
	return sb.String()
}

func formatConstraints(c Constraints) string {
	var lines []string
	if len(c.Themes) > 0 {
		lines = append(lines, "- Themes: "+strings.Join(c.Themes, ", "))
	}
	if len(c.SoundDevices) > 0 {
		lines = append(lines, "- Sound devices: "+strings.Join(c.SoundDevices, ", "))
	}
	if len(c.InverseEmotions) > 0 {
		lines = append(lines, "- Emotions (unexpected pairing): "+strings.Join(c.InverseEmotions, ", "))
	}
	if len(c.UnexploredImagery) > 0 {
		lines = append(lines, "- Fresh imagery to explore: "+strings.Join(c.UnexploredImagery, ", "))
	}
	if c.Avoid != "" {
		lines = append(lines, "- Avoid: "+c.Avoid)
	}
	if c.Structure.AvgLineCount > 0 {
		lines = append(lines, fmt.Sprintf("- Typical length: ~%.0f lines", c.Structure.AvgLineCount))
	}
	switch {
	case c.Structure.Experimental:
		lines = append(lines, "- Experiment with structure (vary line lengths, unexpected breaks)")
	case c.Structure.VaryFromNorm:
		lines = append(lines, "- Structure: vary from typical patterns")
	case c.Structure.ContrastWithNorm:
		lines = append(lines, "- Structure: contrast with canonical forms")
	}
	if c.EncourageNew {
		lines = append(lines, "- Feel free to introduce entirely new themes or imagery")
	}

	if len(lines) == 0 {
		return "- No specific constraints (pure creative freedom)"
	}
	return strings.Join(lines, "\n")
}

func formatContext(ctx *Context) string {
	if ctx == nil {
		return ""
	}
	var parts []string
	if ctx.TimeOfDay != "" {
		parts = append(parts, "Time: "+ctx.TimeOfDay)
	}
	if ctx.Location != "" {
		parts = append(parts, "Location: "+ctx.Location)
	}
	if ctx.PassengerCount > 0 {
		parts = append(parts, fmt.Sprintf("Passengers: %d", ctx.PassengerCount))
	}
	if len(parts) == 0 {
		return ""
	}
	for i, p := range parts {
		parts[i] = "- " + p
	}
	return "\n\nCurrent Context:\n" + strings.Join(parts, "\n")
}
