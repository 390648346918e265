//go:build unit

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/internal/tree"
)

const verboseTree = `[INFO] --- dependency:3.6.0:tree (default-cli) @ app ---
[INFO] com.example:app:jar:1.0.0
[INFO] +- org.springframework:spring-core:jar:5.3.20:compile
[INFO] |  \- org.springframework:spring-jcl:jar:5.3.20:compile
[INFO] +- com.google.guava:guava:jar:31.1-jre:compile
[INFO] |  +- com.google.guava:failureaccess:jar:1.0.1:compile
[INFO] |  \- (com.google.code.findbugs:jsr305:jar:3.0.2:compile - omitted for conflict with 3.0.1)
[INFO] \- junit:junit:jar:4.13.2:test
[INFO]    \- org.hamcrest:hamcrest-core:jar:1.3:test
`

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("should record the project header as the graph root", func(t *testing.T) {
		t.Parallel()

		// given
		text := verboseTree

		// when
		graph := tree.Parse(text)

		// then
		project, ok := graph.Project()
		require.True(t, ok)
		assert.Equal(t, "com.example", project.GroupID)
		assert.Equal(t, "app", project.ArtifactID)
		assert.Equal(t, "1.0.0", project.Version)
	})

	t.Run("should normalize depth and parents from connector prefixes", func(t *testing.T) {
		t.Parallel()

		// when
		graph := tree.Parse(verboseTree)

		// then
		jcl := graph.Canonical("org.springframework:spring-jcl:jar:5.3.20")
		require.NotNil(t, jcl)
		assert.Equal(t, 1, jcl.Depth)
		require.NotNil(t, jcl.Parent)
		assert.Equal(t, "spring-core", jcl.Parent.Coordinate.ArtifactID)

		hamcrest := graph.Canonical("org.hamcrest:hamcrest-core:jar:1.3")
		require.NotNil(t, hamcrest)
		assert.Equal(t, 1, hamcrest.Depth)
		require.NotNil(t, hamcrest.Parent)
		assert.Equal(t, "junit", hamcrest.Parent.Coordinate.ArtifactID)
	})

	t.Run("should keep child depth within one of its parent", func(t *testing.T) {
		t.Parallel()

		// when
		graph := tree.Parse(verboseTree)

		// then
		for _, node := range graph.CanonicalNodes() {
			if node.Parent != nil {
				assert.Equal(t, node.Parent.Depth+1, node.Depth)
			} else {
				assert.Equal(t, 0, node.Depth)
			}
		}
	})

	t.Run("should mark conflict-omitted occurrences and keep the winner", func(t *testing.T) {
		t.Parallel()

		// when
		graph := tree.Parse(verboseTree)

		// then
		occs := graph.Occurrences("com.google.code.findbugs:jsr305:jar:3.0.2")
		require.Len(t, occs, 1)
		assert.Equal(t, entities.OmitConflict, occs[0].Omit)
		assert.Equal(t, "3.0.1", occs[0].OmitWinner)
		assert.Nil(t, graph.Canonical("com.google.code.findbugs:jsr305:jar:3.0.2"))
		assert.Equal(t, 1, graph.OmittedCount())
	})

	t.Run("should never attach children to an omitted occurrence", func(t *testing.T) {
		t.Parallel()

		// given
		text := `com.example:app:jar:1.0.0
+- com.example:lib:jar:1.0:compile
|  +- (com.example:old:jar:0.9:compile - omitted for conflict with 1.0)
|  |  \- com.example:ghost:jar:1.0:compile
`

		// when
		graph := tree.Parse(text)

		// then
		ghost := graph.Canonical("com.example:ghost:jar:1.0")
		require.NotNil(t, ghost)
		require.NotNil(t, ghost.Parent)
		assert.Equal(t, "lib", ghost.Parent.Coordinate.ArtifactID)
	})

	t.Run("should pick the shallowest non-omitted occurrence as canonical", func(t *testing.T) {
		t.Parallel()

		// given
		text := `com.example:app:jar:1.0.0
+- com.example:alpha:jar:1.0:compile
|  \- com.example:shared:jar:2.0:compile
\- com.example:shared:jar:2.0:compile
`

		// when
		graph := tree.Parse(text)

		// then
		shared := graph.Canonical("com.example:shared:jar:2.0")
		require.NotNil(t, shared)
		assert.Equal(t, 0, shared.Depth)
		assert.Len(t, graph.Occurrences("com.example:shared:jar:2.0"), 2)
	})

	t.Run("should warn on malformed lines and keep parsing", func(t *testing.T) {
		t.Parallel()

		// given
		text := `com.example:app:jar:1.0.0
+- com.example:good:jar:1.0:compile
+- not-a-coordinate
+- com.example:also-good:jar:1.0:compile
`

		// when
		graph := tree.Parse(text)

		// then
		require.Len(t, graph.Warnings(), 1)
		assert.Equal(t, 3, graph.Warnings()[0].Line)
		assert.NotNil(t, graph.Canonical("com.example:good:jar:1.0"))
		assert.NotNil(t, graph.Canonical("com.example:also-good:jar:1.0"))
	})

	t.Run("should parse classifier coordinates", func(t *testing.T) {
		t.Parallel()

		// given
		text := `com.example:app:jar:1.0.0
+- io.netty:netty-transport-native-epoll:jar:linux-x86_64:4.1.77.Final:compile
`

		// when
		graph := tree.Parse(text)

		// then
		node := graph.Canonical("io.netty:netty-transport-native-epoll:jar:linux-x86_64:4.1.77.Final")
		require.NotNil(t, node)
		assert.Equal(t, "linux-x86_64", node.Coordinate.Classifier)
		assert.Equal(t, entities.ScopeCompile, node.Scope)
	})

	t.Run("should repair the degenerate version-in-packaging form", func(t *testing.T) {
		t.Parallel()

		// given
		text := `com.example:app:jar:1.0.0
+- com.example:odd:1.2.3:runtime
`

		// when
		graph := tree.Parse(text)

		// then
		node := graph.Canonical("com.example:odd:jar:1.2.3")
		require.NotNil(t, node)
		assert.Equal(t, "jar", node.Coordinate.Packaging)
		assert.Equal(t, "1.2.3", node.Coordinate.Version)
		assert.Equal(t, entities.ScopeRuntime, node.Scope)
	})

	t.Run("should read managed-version annotations in trailing form", func(t *testing.T) {
		t.Parallel()

		// given
		text := `com.example:app:jar:1.0.0
+- com.example:managed:jar:2.5:compile (version managed from 2.0; scope managed from runtime)
`

		// when
		graph := tree.Parse(text)

		// then
		node := graph.Canonical("com.example:managed:jar:2.5")
		require.NotNil(t, node)
		assert.Equal(t, "2.0", node.ManagedVersion)
		assert.Equal(t, "runtime", node.ManagedScope)
	})

	t.Run("should default a missing scope to compile", func(t *testing.T) {
		t.Parallel()

		// given
		text := `com.example:app:jar:1.0.0
+- com.example:noscope:jar:1.0
`

		// when
		graph := tree.Parse(text)

		// then
		node := graph.Canonical("com.example:noscope:jar:1.0")
		require.NotNil(t, node)
		assert.Equal(t, entities.ScopeCompile, node.Scope)
	})

	t.Run("should ignore banner lines without connectors", func(t *testing.T) {
		t.Parallel()

		// given
		text := `[INFO] Scanning for projects...
[INFO] BUILD SUCCESS
com.example:app:jar:1.0.0
+- com.example:lib:jar:1.0:compile
`

		// when
		graph := tree.Parse(text)

		// then
		assert.Empty(t, graph.Warnings())
		assert.Equal(t, 1, graph.Len())
	})
}
