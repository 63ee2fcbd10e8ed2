package llm

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces a poem from an assembled prompt.
type Generator interface {
	GeneratePoem(ctx context.Context, prompt string) (GeneratedPoem, error)
}

// GeneratedPoem is a finished poem with its title split out.
type GeneratedPoem struct {
	Title string
	Text  string
	Model string
}

const generatorPersona = "You are a poet writing in the voice of an Atlanta transit route. " +
	"Respond with the poem only: first line is the title, then a blank line, then the poem."

// GeneratePoem asks the model for a poem and splits the title from the body.
func (c *Client) GeneratePoem(ctx context.Context, prompt string) (GeneratedPoem, error) {
	content, err := c.Chat(ctx, ChatRequest{
		Messages: []Message{
			{Role: "system", Content: generatorPersona},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return GeneratedPoem{}, fmt.Errorf("generating poem: %w", err)
	}

	title, text := SplitTitle(content)
	if text == "" {
		return GeneratedPoem{}, fmt.Errorf("generating poem: empty response")
	}
	return GeneratedPoem{Title: title, Text: text, Model: c.cfg.Model}, nil
}

// SplitTitle treats the first non-empty line as the title when a blank line
// follows it; otherwise the whole content is the poem body.
func SplitTitle(content string) (title, text string) {
	content = strings.TrimSpace(content)
	lines := strings.Split(content, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[1]) == "" {
		title = strings.Trim(strings.TrimSpace(lines[0]), `"#* `)
		text = strings.TrimSpace(strings.Join(lines[2:], "\n"))
		return title, text
	}
	return "", content
}
