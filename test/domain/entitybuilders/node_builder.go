//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// NodeBuilder helps create test dependency nodes with a fluent interface.
type NodeBuilder struct {
	*testkit.BaseBuilder
	groupID    string
	artifactID string
	version    string
	packaging  string
	classifier string
	scope      entities.Scope
	depth      int
	optional   bool
	omit       entities.OmitReason
	omitWinner string
	parent     *entities.DependencyNode
}

// NewNodeBuilder creates a new node builder with sensible defaults.
func NewNodeBuilder() *NodeBuilder {
	return &NodeBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		groupID:     "com.example",
		artifactID:  "test-artifact",
		version:     "1.0.0",
		packaging:   "jar",
		scope:       entities.ScopeCompile,
	}
}

// WithGroupID sets the group identifier.
func (b *NodeBuilder) WithGroupID(groupID string) *NodeBuilder {
	b.groupID = groupID
	return b
}

// WithArtifactID sets the artifact identifier.
func (b *NodeBuilder) WithArtifactID(artifactID string) *NodeBuilder {
	b.artifactID = artifactID
	return b
}

// WithVersion sets the version.
func (b *NodeBuilder) WithVersion(version string) *NodeBuilder {
	b.version = version
	return b
}

// WithPackaging sets the packaging.
func (b *NodeBuilder) WithPackaging(packaging string) *NodeBuilder {
	b.packaging = packaging
	return b
}

// WithClassifier sets the classifier.
func (b *NodeBuilder) WithClassifier(classifier string) *NodeBuilder {
	b.classifier = classifier
	return b
}

// WithScope sets the dependency scope.
func (b *NodeBuilder) WithScope(scope entities.Scope) *NodeBuilder {
	b.scope = scope
	return b
}

// WithDepth sets the tree depth.
func (b *NodeBuilder) WithDepth(depth int) *NodeBuilder {
	b.depth = depth
	return b
}

// WithOptional marks the node optional.
func (b *NodeBuilder) WithOptional() *NodeBuilder {
	b.optional = true
	return b
}

// WithOmit sets the omission reason and superseding version.
func (b *NodeBuilder) WithOmit(reason entities.OmitReason, winner string) *NodeBuilder {
	b.omit = reason
	b.omitWinner = winner
	return b
}

// WithParent sets the parent occurrence.
func (b *NodeBuilder) WithParent(parent *entities.DependencyNode) *NodeBuilder {
	b.parent = parent
	return b
}

// Build creates the node (satisfies testkit.Builder interface).
func (b *NodeBuilder) Build() interface{} {
	return b.BuildNode()
}

// BuildNode creates the node with a concrete return type.
func (b *NodeBuilder) BuildNode() *entities.DependencyNode {
	return &entities.DependencyNode{
		Coordinate: entities.Coordinate{
			GroupID:    b.groupID,
			ArtifactID: b.artifactID,
			Version:    b.version,
			Packaging:  b.packaging,
			Classifier: b.classifier,
		},
		Scope:      b.scope,
		Depth:      b.depth,
		Parent:     b.parent,
		Omit:       b.omit,
		OmitWinner: b.omitWinner,
		Optional:   b.optional,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *NodeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.groupID = "com.example"
	b.artifactID = "test-artifact"
	b.version = "1.0.0"
	b.packaging = "jar"
	b.classifier = ""
	b.scope = entities.ScopeCompile
	b.depth = 0
	b.optional = false
	b.omit = entities.OmitNone
	b.omitWinner = ""
	b.parent = nil
	return b
}

// Clone creates a deep copy of the NodeBuilder.
func (b *NodeBuilder) Clone() testkit.Builder {
	return &NodeBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		groupID:     b.groupID,
		artifactID:  b.artifactID,
		version:     b.version,
		packaging:   b.packaging,
		classifier:  b.classifier,
		scope:       b.scope,
		depth:       b.depth,
		optional:    b.optional,
		omit:        b.omit,
		omitWinner:  b.omitWinner,
		parent:      b.parent,
	}
}
