//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/test/domain/entitybuilders"
)

func TestCoordinate(t *testing.T) {
	t.Parallel()

	t.Run("should build keys with and without a classifier", func(t *testing.T) {
		t.Parallel()

		// given
		plain := entities.Coordinate{
			GroupID: "com.example", ArtifactID: "lib", Packaging: "jar", Version: "1.0",
		}
		classified := entities.Coordinate{
			GroupID: "io.netty", ArtifactID: "netty", Packaging: "jar",
			Classifier: "linux-x86_64", Version: "4.1.77",
		}

		// then
		assert.Equal(t, "com.example:lib:jar:1.0", plain.Key())
		assert.Equal(t, "io.netty:netty:jar:linux-x86_64:4.1.77", classified.Key())
	})

	t.Run("should map group dots to repository path segments", func(t *testing.T) {
		t.Parallel()

		// given
		coord := entities.Coordinate{
			GroupID: "org.apache.commons", ArtifactID: "commons-lang3", Version: "3.12.0",
		}

		// then
		assert.Equal(t, "org/apache/commons/commons-lang3/3.12.0", coord.Path())
	})

	t.Run("should resolve package file extensions", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "jar",
			entities.Coordinate{Packaging: "maven-plugin"}.FileExtension())
		assert.Equal(t, "jar", entities.Coordinate{Packaging: "bundle"}.FileExtension())
		assert.Equal(t, "war", entities.Coordinate{Packaging: "war"}.FileExtension())
		assert.Equal(t, "pom", entities.Coordinate{Packaging: "pom"}.FileExtension())
	})
}

func TestDependencyGraph(t *testing.T) {
	t.Parallel()

	t.Run("should keep every occurrence but resolve one canonical node", func(t *testing.T) {
		t.Parallel()

		// given
		graph := entities.NewDependencyGraph()
		deep := entitybuilders.NewNodeBuilder().
			WithArtifactID("shared").WithVersion("2.0").WithDepth(2).BuildNode()
		shallow := entitybuilders.NewNodeBuilder().
			WithArtifactID("shared").WithVersion("2.0").WithDepth(1).BuildNode()
		graph.Add(deep)
		graph.Add(shallow)

		// when
		graph.Resolve()

		// then
		assert.Len(t, graph.Occurrences("com.example:shared:jar:2.0"), 2)
		canonical := graph.Canonical("com.example:shared:jar:2.0")
		require.NotNil(t, canonical)
		assert.Equal(t, 1, canonical.Depth)
	})

	t.Run("should leave fully omitted coordinates without a canonical node", func(t *testing.T) {
		t.Parallel()

		// given
		graph := entities.NewDependencyGraph()
		graph.Add(entitybuilders.NewNodeBuilder().
			WithArtifactID("loser").WithOmit(entities.OmitConflict, "2.0").BuildNode())

		// when
		graph.Resolve()

		// then
		assert.Nil(t, graph.Canonical("com.example:loser:jar:1.0.0"))
		assert.Equal(t, 1, graph.OmittedCount())
	})

	t.Run("should fill only missing fields from the managed set", func(t *testing.T) {
		t.Parallel()

		// given
		graph := entities.NewDependencyGraph()
		node := entitybuilders.NewNodeBuilder().WithArtifactID("managed").BuildNode()
		graph.Add(node)
		graph.Resolve()
		managed := entities.ManagedSet{}
		managed.Merge(entities.ManagedEntry{
			GA:               "com.example:managed",
			Version:          "9.9",
			Scope:            entities.ScopeRuntime,
			FromDependencies: true,
		})

		// when
		graph.AnnotateManaged(managed)

		// then
		assert.Equal(t, "9.9", node.ManagedVersion)
		assert.Equal(t, "runtime", node.ManagedScope)
		// the tree stays authoritative
		assert.Equal(t, "1.0.0", node.Coordinate.Version)
		assert.Equal(t, entities.ScopeCompile, node.Scope)
	})

	t.Run("should report chains from the direct dependency downward", func(t *testing.T) {
		t.Parallel()

		// given
		root := entitybuilders.NewNodeBuilder().WithArtifactID("root").BuildNode()
		leaf := entitybuilders.NewNodeBuilder().
			WithArtifactID("leaf").WithDepth(1).WithParent(root).BuildNode()

		// then
		assert.Equal(t,
			[]string{"com.example:root:jar:1.0.0", "com.example:leaf:jar:1.0.0"},
			leaf.Chain())
	})

	t.Run("should weaken reachability through optional ancestors", func(t *testing.T) {
		t.Parallel()

		// given
		optionalParent := entitybuilders.NewNodeBuilder().
			WithArtifactID("opt").WithOptional().BuildNode()
		child := entitybuilders.NewNodeBuilder().
			WithArtifactID("child").WithDepth(1).WithParent(optionalParent).BuildNode()

		// then
		assert.True(t, optionalParent.StronglyReachable())
		assert.False(t, child.StronglyReachable())
	})
}

func TestCategory(t *testing.T) {
	t.Parallel()

	t.Run("should rank essential as the least omittable", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, entities.CategoryEssential,
			entities.Stronger(entities.CategoryEssential, entities.CategoryOptional))
		assert.Equal(t, entities.CategoryPlugin,
			entities.Stronger(entities.CategoryConflictSuperseded, entities.CategoryPlugin))
	})

	t.Run("should mark only essential and plugin as critical", func(t *testing.T) {
		t.Parallel()

		assert.True(t, entities.CategoryEssential.Critical())
		assert.True(t, entities.CategoryPlugin.Critical())
		assert.False(t, entities.CategoryProvided.Critical())
		assert.False(t, entities.CategoryOptional.Critical())
		assert.False(t, entities.CategoryConflictSuperseded.Critical())
		assert.False(t, entities.CategoryUnknown.Critical())
	})

	t.Run("should serialize categories by name", func(t *testing.T) {
		t.Parallel()

		// when
		data, err := entities.CategoryConflictSuperseded.MarshalJSON()

		// then
		require.NoError(t, err)
		assert.Equal(t, `"conflict-superseded"`, string(data))
	})
}
