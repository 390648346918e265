package entities

import "strings"

// Scope is the build-phase applicability of a dependency.
type Scope string

const (
	ScopeCompile  Scope = "compile"
	ScopeRuntime  Scope = "runtime"
	ScopeProvided Scope = "provided"
	ScopeTest     Scope = "test"
	ScopeSystem   Scope = "system"
	ScopeImport   Scope = "import"
)

// KnownScope reports whether the token is one of Maven's dependency scopes.
func KnownScope(token string) bool {
	switch Scope(token) {
	case ScopeCompile, ScopeRuntime, ScopeProvided, ScopeTest, ScopeSystem, ScopeImport:
		return true
	default:
		return false
	}
}

// PackagingPlugin is the packaging type Maven uses for its own plugins.
const PackagingPlugin = "maven-plugin"

// Coordinate uniquely identifies a Maven module version. The classifier
// distinguishes side artifacts such as test-jars. Immutable once parsed.
type Coordinate struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
	Packaging  string `json:"packaging"`
	Classifier string `json:"classifier,omitempty"`
}

// GA returns the version-less "group:artifact" identity.
func (c Coordinate) GA() string {
	return c.GroupID + ":" + c.ArtifactID
}

// Key returns the full identity used to deduplicate occurrences:
// group:artifact:packaging[:classifier]:version.
func (c Coordinate) Key() string {
	parts := []string{c.GroupID, c.ArtifactID, c.Packaging}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	parts = append(parts, c.Version)
	return strings.Join(parts, ":")
}

// String returns the same representation as Key.
func (c Coordinate) String() string {
	return c.Key()
}

// Path returns the repository-relative directory for this coordinate
// (slash-separated; callers convert for the local filesystem).
func (c Coordinate) Path() string {
	return strings.ReplaceAll(c.GroupID, ".", "/") + "/" + c.ArtifactID + "/" + c.Version
}

// FileExtension returns the artifact file extension for the packaging type.
func (c Coordinate) FileExtension() string {
	switch c.Packaging {
	case "", "bundle", PackagingPlugin:
		return "jar"
	default:
		return c.Packaging
	}
}
