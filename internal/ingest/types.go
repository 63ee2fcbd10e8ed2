package ingest

// ManualRouteID marks poems imported by hand rather than generated on a
// route.
const ManualRouteID = "MANUAL"

// Options controls an import run.
type Options struct {
	// DefaultRouteID is assigned to files that don't name a route.
	// Empty means ManualRouteID.
	DefaultRouteID string
	// Overwrite re-imports poems whose ids already exist in the graph.
	Overwrite bool
}

// Result accumulates what one run did. Errors holds per-file failures; the
// run continues past them.
type Result struct {
	PoemsAdded    int
	PoemsAnalyzed int
	FilesSkipped  int
	Errors        []error
}

type poemFile struct {
	ID      string
	Title   string
	Text    string
	RouteID string
}
