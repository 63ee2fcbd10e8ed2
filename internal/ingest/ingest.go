// Package ingest bulk-imports poems from a directory of text and JSON
// files into the graph, analyzing each one when an analyzer is available.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bohara2000/MARTA-Poetry/internal/graph"
	"github.com/bohara2000/MARTA-Poetry/internal/llm"
)

// Run imports every poem file under dir. Existing poem ids are skipped
// unless options.Overwrite is set. File-level failures are collected in the
// result rather than aborting the run.
func Run(ctx context.Context, g *graph.Graph, analyzer llm.Analyzer, dir string, options Options) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("graph is required")
	}

	files, err := walkPoemFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("walking poem files: %w", err)
	}

	result := &Result{}
	for _, path := range files {
		poem, err := parsePoemFile(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}
		if poem.Text == "" {
			result.FilesSkipped++
			continue
		}
		if poem.RouteID == "" {
			poem.RouteID = options.DefaultRouteID
		}
		if poem.RouteID == "" {
			poem.RouteID = ManualRouteID
		}

		if existing := g.GetPoem(poem.ID); existing != nil && !options.Overwrite {
			result.FilesSkipped++
			continue
		}

		if err := addPoem(ctx, g, analyzer, poem, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("adding %s: %w", path, err))
			continue
		}
		result.PoemsAdded++
	}

	return result, nil
}

func addPoem(ctx context.Context, g *graph.Graph, analyzer llm.Analyzer, poem poemFile, result *Result) error {
	input := graph.PoemInput{
		ID:      poem.ID,
		Title:   poem.Title,
		Text:    poem.Text,
		RouteID: poem.RouteID,
		Role:    roleForRoute(poem.RouteID),
	}

	if analyzer != nil {
		analysis, err := analyzer.AnalyzePoem(ctx, poem.Title, poem.Text)
		if err != nil {
			// Keep the poem; the analysis can be redone later.
			result.Errors = append(result.Errors, fmt.Errorf("analyzing %s: %w", poem.ID, err))
		} else {
			input.Themes = analysis.Themes
			input.Imagery = analysis.Imagery
			input.Emotions = analysis.Emotions
			input.SoundDevices = analysis.SoundDevices
			input.Meta = metaFromAnalysis(analysis)
			result.PoemsAnalyzed++
		}
	}

	return g.AddPoem(input)
}

// Manually curated poems carry the core narrative; everything else came off
// a route.
func roleForRoute(routeID string) graph.Role {
	if routeID == ManualRouteID {
		return graph.RoleCore
	}
	return graph.RoleRouteGenerated
}

func metaFromAnalysis(analysis llm.Analysis) graph.PoemMeta {
	meta := graph.PoemMeta{SoundPatterns: analysis.SoundMetadata}
	if analysis.Structure.LineCount > 0 {
		meta.Structure = &graph.StructureMeta{
			LineCount:    analysis.Structure.LineCount,
			LineLengths:  analysis.Structure.LineLengths,
			StanzaBreaks: analysis.Structure.StanzaBreaks,
		}
	}
	return meta
}

func walkPoemFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(filepath.Clean(dir), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".txt", ".md", ".json":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func parsePoemFile(path string) (poemFile, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSONPoem(path)
	}
	return parseTextPoem(path)
}

func parseJSONPoem(path string) (poemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return poemFile{}, err
	}

	var record struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Text    string `json:"text"`
		Content string `json:"content"`
		RouteID string `json:"route_id"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return poemFile{}, err
	}

	stem := fileStem(path)
	poem := poemFile{
		ID:      record.ID,
		Title:   record.Title,
		Text:    record.Text,
		RouteID: record.RouteID,
	}
	if poem.ID == "" {
		poem.ID = stem
	}
	if poem.Title == "" {
		poem.Title = stem
	}
	if poem.Text == "" {
		poem.Text = record.Content
	}
	return poem, nil
}

func parseTextPoem(path string) (poemFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return poemFile{}, err
	}

	content := strings.TrimSpace(string(data))
	stem := fileStem(path)
	poem := poemFile{ID: stem, Title: stem, Text: content}

	// A short first line that doesn't read like a sentence is the title.
	lines := strings.Split(content, "\n")
	if len(lines) > 1 && len(lines[0]) < 100 && !strings.HasSuffix(lines[0], ".") {
		poem.Title = strings.TrimSpace(lines[0])
		poem.Text = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return poem, nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
