// Package classify assigns a category to every artifact that failed to copy,
// by reasoning over the dependency graph and the managed-entry set. It is a
// pure function of its inputs: identical (failures, graph, managed) always
// yield identical classifications, and the graph is never mutated.
package classify

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
)

// Classify assigns a category, rationale and suggested action to each failed
// copy result. When a coordinate has occurrences with different per-path
// classifications, the least omittable category wins.
func Classify(
	failures []entities.CopyResult,
	graph *entities.DependencyGraph,
	managed entities.ManagedSet,
) []entities.Classification {
	out := make([]entities.Classification, 0, len(failures))
	for _, f := range failures {
		out = append(out, classifyOne(f, graph, managed))
	}
	return out
}

func classifyOne(
	failure entities.CopyResult,
	graph *entities.DependencyGraph,
	managed entities.ManagedSet,
) entities.Classification {
	coord := failure.Coordinate
	occs := graph.Occurrences(coord.Key())
	if len(occs) == 0 {
		// The exact version never appeared; fall back to any version of the
		// same module so side artifacts still inherit graph context.
		occs = graph.OccurrencesGA(coord.GA())
	}

	if len(occs) == 0 {
		return classifyAbsent(coord, managed)
	}

	category := entities.CategoryUnknown
	var winner *entities.DependencyNode
	for _, n := range occs {
		c := classifyOccurrence(n)
		if winner == nil || entities.Stronger(c, category) != category {
			category = entities.Stronger(c, category)
			winner = n
		}
	}

	cls := entities.Classification{
		Coordinate: coord,
		Category:   category,
		Chain:      winner.Chain(),
	}
	cls.Rationale, cls.SuggestedAction = explain(category, coord, winner)
	return cls
}

// classifyOccurrence evaluates one tree occurrence in priority order.
func classifyOccurrence(n *entities.DependencyNode) entities.Category {
	switch {
	case n.Omitted():
		return entities.CategoryConflictSuperseded
	case n.Coordinate.Packaging == entities.PackagingPlugin:
		return entities.CategoryPlugin
	case n.Scope == entities.ScopeProvided:
		return entities.CategoryProvided
	case n.Optional:
		return entities.CategoryOptional
	case n.StronglyReachable() && buildRelevant(n.Scope):
		return entities.CategoryEssential
	default:
		// Neither omitted, provided nor optional, but the introduction path
		// is weak. Inclusion cost is near zero and exclusion risk is high,
		// so stay conservative.
		return entities.CategoryEssential
	}
}

func buildRelevant(s entities.Scope) bool {
	switch s {
	case entities.ScopeCompile, entities.ScopeRuntime, entities.ScopeTest:
		return true
	default:
		return false
	}
}

// classifyAbsent handles a failure whose coordinate never appears in the tree.
func classifyAbsent(coord entities.Coordinate, managed entities.ManagedSet) entities.Classification {
	if managed.PluginOnly(coord.GA()) {
		return entities.Classification{
			Coordinate: coord,
			Category:   entities.CategoryPlugin,
			Rationale: "declared only in the build tool's plugin configuration, " +
				"never on the project's dependency path",
			SuggestedAction: "needed only for build-tool execution; copy it if the " +
				"build itself must run offline",
		}
	}
	return entities.Classification{
		Coordinate: coord,
		Category:   entities.CategoryUnknown,
		Rationale:  "not modeled by the dependency tree; flagged for manual review",
	}
}

func explain(
	category entities.Category,
	coord entities.Coordinate,
	node *entities.DependencyNode,
) (string, string) {
	switch category {
	case entities.CategoryConflictSuperseded:
		winner := node.OmitWinner
		if winner == "" {
			winner = "another version"
		}
		return fmt.Sprintf(
				"every occurrence was omitted by conflict resolution; version %s of %s satisfies the build",
				winner, coord.GA(),
			),
			"no action needed; the superseding version is the one that matters"
	case entities.CategoryPlugin:
		return "a build-tool plugin, not part of the project's runtime dependency path",
			"update the build tool or pin the plugin version explicitly"
	case entities.CategoryProvided:
		return "provided scope: supplied by the target runtime container, not bundled",
			"only relevant when compiling against it locally"
	case entities.CategoryOptional:
		return fmt.Sprintf(
				"declared optional by %s; typically safe to omit",
				introducer(node),
			),
			"omit unless a feature that needs it is exercised"
	case entities.CategoryEssential:
		return fmt.Sprintf(
				"reachable from a direct dependency (%s) with scope %s; required for the declared build",
				strings.Join(node.Chain(), " -> "), node.Scope,
			),
			"locate the artifact in a reachable repository and install it into the source store"
	default:
		return "", ""
	}
}

func introducer(n *entities.DependencyNode) string {
	if n.Parent != nil {
		return n.Parent.Coordinate.GA()
	}
	return "the project itself"
}
