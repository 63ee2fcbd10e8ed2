package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// document is the persisted node-link form of the graph. Parallel edges
// between one ordered pair survive as separate entries distinguished by
// their attributes; no multigraph key is emitted.
type document struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

type nodeRecord struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	// poem attributes
	Title         string    `json:"title,omitempty"`
	Text          string    `json:"text,omitempty"`
	RouteID       string    `json:"route_id,omitempty"`
	NarrativeRole string    `json:"narrative_role,omitempty"`
	Metadata      *PoemMeta `json:"metadata,omitempty"`

	// entity attributes
	Name       string `json:"name,omitempty"`
	UsageCount int    `json:"usage_count,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

type edgeRecord struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`

	// narrative_connection attributes
	ConnectionType string   `json:"connection_type,omitempty"`
	Strength       *float64 `json:"strength,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// Load reads a graph from path. A missing file is the valid first-run
// condition and yields a fresh graph bound to the path; an unreadable or
// unparsable file is a hard error.
func Load(path string) (*Graph, error) {
	g := New()
	g.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph file %s: %w", path, err)
	}
	if err := g.fromDocument(&doc); err != nil {
		return nil, fmt.Errorf("reconstructing graph from %s: %w", path, err)
	}
	return g, nil
}

// Save writes the whole graph to path as one JSON document. An empty path
// falls back to the path the graph was loaded from.
func (g *Graph) Save(path string) error {
	if path == "" {
		path = g.path
	}
	if path == "" {
		return fmt.Errorf("no save path provided and no default path set")
	}

	data, err := json.MarshalIndent(g.toDocument(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing graph file: %w", err)
	}
	g.path = path
	return nil
}

func (g *Graph) toDocument() *document {
	doc := &document{
		Nodes: make([]nodeRecord, 0, len(g.nodeOrder)),
		Edges: make([]edgeRecord, 0, len(g.edges)),
	}

	for _, id := range g.nodeOrder {
		if poem, ok := g.poems[id]; ok {
			record := nodeRecord{
				ID:            poem.ID,
				Type:          string(KindPoem),
				Title:         poem.Title,
				Text:          poem.Text,
				RouteID:       poem.RouteID,
				NarrativeRole: string(poem.NarrativeRole),
				CreatedAt:     formatTime(poem.CreatedAt),
			}
			if !poem.Meta.isZero() {
				meta := poem.Meta
				record.Metadata = &meta
			}
			doc.Nodes = append(doc.Nodes, record)
			continue
		}
		entity := g.entities[id]
		doc.Nodes = append(doc.Nodes, nodeRecord{
			ID:         entity.ID,
			Type:       string(entity.Kind),
			Name:       entity.Name,
			UsageCount: entity.UsageCount,
			CreatedAt:  formatTime(entity.CreatedAt),
		})
	}

	for _, edge := range g.edges {
		record := edgeRecord{
			Source: edge.Source,
			Target: edge.Target,
			Type:   string(edge.Kind),
		}
		if edge.Narrative != nil {
			strength := edge.Narrative.Strength
			record.ConnectionType = edge.Narrative.ConnectionType
			record.Strength = &strength
			record.Notes = edge.Narrative.Notes
			record.CreatedAt = formatTime(edge.Narrative.CreatedAt)
		}
		doc.Edges = append(doc.Edges, record)
	}
	return doc
}

func (g *Graph) fromDocument(doc *document) error {
	for _, record := range doc.Nodes {
		createdAt, err := parseTime(record.CreatedAt)
		if err != nil {
			return fmt.Errorf("node %s: %w", record.ID, err)
		}
		switch NodeKind(record.Type) {
		case KindPoem:
			poem := &Poem{
				ID:            record.ID,
				Title:         record.Title,
				Text:          record.Text,
				RouteID:       record.RouteID,
				CreatedAt:     createdAt,
				NarrativeRole: Role(record.NarrativeRole),
			}
			if record.Metadata != nil {
				poem.Meta = *record.Metadata
			}
			g.poems[record.ID] = poem
		case KindTheme, KindImagery, KindEmotion, KindSoundDevice:
			g.entities[record.ID] = &Entity{
				ID:         record.ID,
				Kind:       NodeKind(record.Type),
				Name:       record.Name,
				UsageCount: record.UsageCount,
				CreatedAt:  createdAt,
			}
		default:
			return fmt.Errorf("node %s has unknown type %q", record.ID, record.Type)
		}
		g.nodeOrder = append(g.nodeOrder, record.ID)
	}

	for _, record := range doc.Edges {
		edge := &Edge{
			Source: record.Source,
			Target: record.Target,
			Kind:   EdgeKind(record.Type),
		}
		if edge.Kind == EdgeNarrative {
			createdAt, err := parseTime(record.CreatedAt)
			if err != nil {
				return fmt.Errorf("edge %s -> %s: %w", record.Source, record.Target, err)
			}
			attrs := &NarrativeAttrs{
				ConnectionType: record.ConnectionType,
				Notes:          record.Notes,
				CreatedAt:      createdAt,
			}
			if record.Strength != nil {
				attrs.Strength = *record.Strength
			}
			edge.Narrative = attrs
		}
		g.edges = append(g.edges, edge)
	}
	return nil
}

func (m PoemMeta) isZero() bool {
	return m.Structure == nil && len(m.SoundPatterns) == 0 && m.Generation == nil && len(m.Extra) == 0
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing created_at %q: %w", value, err)
	}
	return t, nil
}
