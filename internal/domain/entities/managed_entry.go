package entities

// ManagedEntry is one group:artifact row from the effective model. It
// explains why a version or scope was chosen; it never overrides the tree.
type ManagedEntry struct {
	GA               string
	Version          string
	Scope            Scope
	Optional         bool
	FromDependencies bool // declared in dependencyManagement or project dependencies
	FromPlugins      bool // declared in a plugin section
}

// ManagedSet maps version-less coordinates to their managed entries.
type ManagedSet map[string]ManagedEntry

// Merge folds an entry into the set, combining provenance flags and keeping
// the first non-empty version and scope seen.
func (s ManagedSet) Merge(e ManagedEntry) {
	cur, ok := s[e.GA]
	if !ok {
		s[e.GA] = e
		return
	}
	if cur.Version == "" {
		cur.Version = e.Version
	}
	if cur.Scope == "" {
		cur.Scope = e.Scope
	}
	cur.Optional = cur.Optional || e.Optional
	cur.FromDependencies = cur.FromDependencies || e.FromDependencies
	cur.FromPlugins = cur.FromPlugins || e.FromPlugins
	s[e.GA] = cur
}

// PluginOnly reports whether the coordinate appears exclusively in plugin
// sections, never as a project dependency.
func (s ManagedSet) PluginOnly(ga string) bool {
	e, ok := s[ga]
	return ok && e.FromPlugins && !e.FromDependencies
}
