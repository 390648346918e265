package entities

import "sort"

// OmitReason records why a tree occurrence was not kept by conflict resolution.
type OmitReason string

const (
	OmitNone      OmitReason = ""
	OmitConflict  OmitReason = "conflict"
	OmitDuplicate OmitReason = "duplicate"
	OmitCycle     OmitReason = "cycle"
)

// DependencyNode is one occurrence of a coordinate within the dependency tree.
// Multiple nodes may share the same coordinate when it is reached via
// different parents; each occurrence keeps its own provenance.
type DependencyNode struct {
	Coordinate Coordinate
	Scope      Scope
	Depth      int // 0 = direct dependency
	Parent     *DependencyNode

	Omit       OmitReason
	OmitWinner string // version that superseded this occurrence
	Excluded   bool
	Optional   bool

	// Supplemental provenance from annotations and the effective model.
	ManagedVersion string
	ManagedScope   string

	order int // document order, assigned by the graph
}

// Omitted reports whether conflict resolution dropped this occurrence.
func (n *DependencyNode) Omitted() bool {
	return n.Omit != OmitNone
}

// Chain returns the introduction path from the direct dependency down to n,
// as coordinate keys.
func (n *DependencyNode) Chain() []string {
	var rev []string
	for cur := n; cur != nil; cur = cur.Parent {
		rev = append(rev, cur.Coordinate.Key())
	}
	chain := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		chain = append(chain, rev[i])
	}
	return chain
}

// StronglyReachable reports whether every ancestor edge from a direct
// dependency to n is non-omitted, non-excluded and non-optional.
func (n *DependencyNode) StronglyReachable() bool {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Omitted() || cur.Excluded || cur.Optional {
			return false
		}
	}
	return true
}

// ParseWarning records a tree line that could not be tokenized. Warnings are
// accumulated and surfaced, never fatal.
type ParseWarning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// DependencyGraph is the unified in-memory model built from the verbose
// dependency tree. It tracks every occurrence per coordinate plus one
// canonical (kept) node per coordinate, established by Resolve.
// The graph is read-only after Resolve.
type DependencyGraph struct {
	project     Coordinate
	hasProject  bool
	occurrences map[string][]*DependencyNode // Key() -> occurrences
	byGA        map[string][]*DependencyNode // GA() -> occurrences of any version
	canonical   map[string]*DependencyNode
	roots       []*DependencyNode
	warnings    []ParseWarning
	order       int
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		occurrences: make(map[string][]*DependencyNode),
		byGA:        make(map[string][]*DependencyNode),
		canonical:   make(map[string]*DependencyNode),
	}
}

// SetProject records the project root coordinate (the depth-less header line
// of the tree output). The project itself is not a dependency node.
func (g *DependencyGraph) SetProject(c Coordinate) {
	g.project = c
	g.hasProject = true
}

// Project returns the project root coordinate, if one was seen.
func (g *DependencyGraph) Project() (Coordinate, bool) {
	return g.project, g.hasProject
}

// Add inserts an occurrence into the graph, assigning its document order.
func (g *DependencyGraph) Add(n *DependencyNode) {
	n.order = g.order
	g.order++

	key := n.Coordinate.Key()
	g.occurrences[key] = append(g.occurrences[key], n)
	g.byGA[n.Coordinate.GA()] = append(g.byGA[n.Coordinate.GA()], n)
	if n.Depth == 0 {
		g.roots = append(g.roots, n)
	}
}

// AddWarning records a line that failed to tokenize.
func (g *DependencyGraph) AddWarning(w ParseWarning) {
	g.warnings = append(g.warnings, w)
}

// Warnings returns the accumulated parse warnings.
func (g *DependencyGraph) Warnings() []ParseWarning {
	return g.warnings
}

// Resolve runs the canonical post-pass: for every coordinate, the canonical
// node is the non-omitted occurrence with the smallest depth, first
// encountered in document order. Coordinates whose occurrences are all
// omitted get no canonical node.
func (g *DependencyGraph) Resolve() {
	for key, occs := range g.occurrences {
		var best *DependencyNode
		for _, n := range occs {
			if n.Omitted() {
				continue
			}
			if best == nil || n.Depth < best.Depth ||
				(n.Depth == best.Depth && n.order < best.order) {
				best = n
			}
		}
		if best != nil {
			g.canonical[key] = best
		}
	}
}

// Canonical returns the kept node for a coordinate key, or nil.
func (g *DependencyGraph) Canonical(key string) *DependencyNode {
	return g.canonical[key]
}

// CanonicalNodes returns every kept node in document order.
func (g *DependencyGraph) CanonicalNodes() []*DependencyNode {
	nodes := make([]*DependencyNode, 0, len(g.canonical))
	for _, n := range g.canonical {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].order < nodes[j].order })
	return nodes
}

// Occurrences returns every occurrence for a coordinate key, in document order.
func (g *DependencyGraph) Occurrences(key string) []*DependencyNode {
	return g.occurrences[key]
}

// OccurrencesGA returns every occurrence of any version of group:artifact.
func (g *DependencyGraph) OccurrencesGA(ga string) []*DependencyNode {
	return g.byGA[ga]
}

// Roots returns the direct dependencies in document order.
func (g *DependencyGraph) Roots() []*DependencyNode {
	return g.roots
}

// Len returns the number of distinct coordinates in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.occurrences)
}

// OmittedCount returns the number of coordinates with no canonical node.
func (g *DependencyGraph) OmittedCount() int {
	return len(g.occurrences) - len(g.canonical)
}

// AnnotateManaged attaches managed version/scope provenance from the
// effective model onto matching occurrences. The tree result stays
// authoritative: only empty fields are filled.
func (g *DependencyGraph) AnnotateManaged(set ManagedSet) {
	for ga, nodes := range g.byGA {
		entry, ok := set[ga]
		if !ok {
			continue
		}
		for _, n := range nodes {
			if n.ManagedVersion == "" && entry.Version != "" {
				n.ManagedVersion = entry.Version
			}
			if n.ManagedScope == "" && entry.Scope != "" {
				n.ManagedScope = string(entry.Scope)
			}
			if n.Scope == "" && entry.Scope != "" {
				n.Scope = entry.Scope
			}
		}
	}
}
