// Package tree parses the verbose dependency-tree text produced by the build
// tool into a DependencyGraph. The text is line-oriented: each line encodes
// its depth through a repeating connector prefix and its payload through the
// coordinate grammar group:artifact:packaging[:classifier]:version[:scope],
// optionally annotated in parentheses.
package tree

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
)

const (
	minCoordinateFields = 4
	maxCoordinateFields = 6
)

// versionLike matches tokens that start with a digit group, the heuristic the
// original tooling used to detect a version sitting in the packaging slot.
var versionLike = regexp.MustCompile(`^\d+(\.\d+)*`)

// Parse converts dependency-tree text into a resolved DependencyGraph.
// Lines that cannot be tokenized become parse warnings; banner and
// plugin-output lines without tree connectors are ignored silently.
func Parse(text string) *entities.DependencyGraph {
	graph := entities.NewDependencyGraph()

	// Stack of ancestors indexed by depth; stack[d] is the most recent
	// non-annotated node at depth d.
	var stack []*entities.DependencyNode

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripLogPrefix(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth, payload, connected := splitPrefix(line)
		if !connected {
			// No tree connector: either the project header line or noise.
			coord, scope, _, err := tokenize(strings.TrimSpace(line))
			if err == nil && scope == "" {
				graph.SetProject(coord)
				stack = stack[:0]
			}
			continue
		}

		node, warn := parseNode(payload)
		if warn != "" {
			graph.AddWarning(entities.ParseWarning{Line: lineNo, Text: line, Reason: warn})
			continue
		}

		// Connector depth 1 sits directly under the project header, so the
		// normalized dependency depth starts at zero.
		node.Depth = depth - 1
		if node.Depth < 0 {
			node.Depth = 0
		}

		if node.Depth > len(stack) {
			// A child deeper than its closest ancestor plus one means the
			// tree skipped a level; treat the current top as the parent.
			node.Depth = len(stack)
		}
		stack = stack[:node.Depth]
		if len(stack) > 0 {
			node.Parent = stack[len(stack)-1]
		}

		graph.Add(node)

		// Annotated omitted/excluded lines carry no children.
		if !node.Omitted() && !node.Excluded {
			stack = append(stack, node)
		}
	}

	graph.Resolve()
	return graph
}

// stripLogPrefix removes the build tool's "[INFO] " style prefix.
func stripLogPrefix(line string) string {
	for _, prefix := range []string{"[INFO] ", "[INFO]", "[WARNING] "} {
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):]
		}
	}
	return line
}

// splitPrefix consumes the indentation/connector prefix, counting each
// recognized token as exactly one depth unit regardless of its rendered
// width. It returns the remaining payload and whether a connector ("+-" or
// "\-") terminated the prefix.
func splitPrefix(line string) (int, string, bool) {
	depth := 0
	rest := line
	for {
		switch {
		case strings.HasPrefix(rest, "+- "):
			return depth + 1, rest[3:], true
		case strings.HasPrefix(rest, `\- `):
			return depth + 1, rest[3:], true
		case strings.HasPrefix(rest, "+-"):
			return depth + 1, strings.TrimLeft(rest[2:], " "), true
		case strings.HasPrefix(rest, `\-`):
			return depth + 1, strings.TrimLeft(rest[2:], " "), true
		case strings.HasPrefix(rest, "|  "):
			depth++
			rest = rest[3:]
		case strings.HasPrefix(rest, "| "):
			depth++
			rest = rest[2:]
		case strings.HasPrefix(rest, "   "):
			depth++
			rest = rest[3:]
		default:
			return depth, rest, false
		}
	}
}

// parseNode tokenizes a payload into a DependencyNode. It returns a non-empty
// warning reason instead of a node when the payload does not match the
// coordinate grammar.
func parseNode(payload string) (*entities.DependencyNode, string) {
	payload = strings.TrimSpace(payload)

	// Verbose output prints superseded entries fully parenthesized:
	//   (group:artifact:jar:1.0:compile - omitted for conflict with 2.0)
	wrapped := strings.HasPrefix(payload, "(") && strings.HasSuffix(payload, ")")
	if wrapped {
		payload = payload[1 : len(payload)-1]
	}

	coordPart := payload
	annotation := ""
	if before, after, found := strings.Cut(payload, " - "); found && wrapped {
		coordPart = before
		annotation = after
	} else if idx := strings.LastIndex(payload, " ("); idx >= 0 && strings.HasSuffix(payload, ")") {
		// Trailing annotation form: coord (version managed from X; ...)
		coordPart = payload[:idx]
		annotation = payload[idx+2 : len(payload)-1]
	}

	coord, scope, optional, err := tokenize(strings.TrimSpace(coordPart))
	if err != nil {
		return nil, err.Error()
	}

	node := &entities.DependencyNode{
		Coordinate: coord,
		Scope:      scope,
		Optional:   optional,
	}
	if node.Scope == "" {
		node.Scope = entities.ScopeCompile
	}

	applyAnnotation(node, annotation)
	return node, ""
}

// tokenize splits a coordinate string on colons and assigns the fields.
// The five-field form is ambiguous between a trailing scope and an embedded
// classifier; a known scope token in the last position decides it.
func tokenize(coordPart string) (entities.Coordinate, entities.Scope, bool, error) {
	var coord entities.Coordinate

	optional := false
	if strings.HasSuffix(coordPart, " (optional)") {
		optional = true
		coordPart = strings.TrimSuffix(coordPart, " (optional)")
	}

	fields := strings.Split(coordPart, ":")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < minCoordinateFields || len(fields) > maxCoordinateFields {
		return coord, "", false, fmt.Errorf(
			"expected %d-%d coordinate fields, got %d",
			minCoordinateFields, maxCoordinateFields, len(fields),
		)
	}
	for i, f := range fields {
		if f == "" {
			return coord, "", false, fmt.Errorf("empty coordinate field %d", i+1)
		}
	}

	coord.GroupID = fields[0]
	coord.ArtifactID = fields[1]

	var scope entities.Scope
	switch len(fields) {
	case 4: //nolint:mnd // group:artifact:packaging:version
		coord.Packaging = fields[2]
		coord.Version = fields[3]
		if entities.KnownScope(fields[3]) && versionLike.MatchString(fields[2]) {
			// Degenerate form group:artifact:version:scope seen in some
			// plugin output; the packaging slot holds the version.
			coord.Packaging = "jar"
			coord.Version = fields[2]
			scope = entities.Scope(fields[3])
		}
	case 5: //nolint:mnd // with scope, or with classifier and no scope
		if entities.KnownScope(fields[4]) {
			coord.Packaging = fields[2]
			coord.Version = fields[3]
			scope = entities.Scope(fields[4])
		} else {
			coord.Packaging = fields[2]
			coord.Classifier = fields[3]
			coord.Version = fields[4]
		}
	case 6: //nolint:mnd // group:artifact:packaging:classifier:version:scope
		coord.Packaging = fields[2]
		coord.Classifier = fields[3]
		coord.Version = fields[4]
		scope = entities.Scope(fields[5])
	}

	return coord, scope, optional, nil
}

// applyAnnotation interprets the parenthesized notes attached to a line.
// Multiple notes are separated by "; ".
func applyAnnotation(node *entities.DependencyNode, annotation string) {
	if annotation == "" {
		return
	}

	for _, part := range strings.Split(annotation, ";") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "omitted for conflict with "):
			node.Omit = entities.OmitConflict
			node.OmitWinner = strings.TrimPrefix(part, "omitted for conflict with ")
		case strings.HasPrefix(part, "omitted for duplicate"):
			node.Omit = entities.OmitDuplicate
		case strings.HasPrefix(part, "omitted for cycle"):
			node.Omit = entities.OmitCycle
		case strings.HasPrefix(part, "version managed from "):
			node.ManagedVersion = strings.TrimPrefix(part, "version managed from ")
		case strings.HasPrefix(part, "scope managed from "):
			node.ManagedScope = strings.TrimPrefix(part, "scope managed from ")
		case part == "optional":
			node.Optional = true
		case part == "exclusion" || strings.HasPrefix(part, "excluded"):
			node.Excluded = true
		}
	}
}
