package repositories

import (
	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
)

// CandidateKind distinguishes the files a source store yields per coordinate.
type CandidateKind string

const (
	CandidateArtifact   CandidateKind = "artifact"
	CandidateDescriptor CandidateKind = "descriptor"
	CandidateMetadata   CandidateKind = "metadata"
	CandidateOther      CandidateKind = "other"
)

// Candidate is one file the source store located for a coordinate.
type Candidate struct {
	Path string // absolute path in the source store
	Name string // file name, used as the destination name
	Kind CandidateKind
}

// SourceStore locates artifact files for coordinates. It is read-only from
// all workers.
type SourceStore interface {
	// Locate returns the directory tried and the candidate files found for
	// the coordinate. An empty candidate list with a nil error means the
	// directory exists but holds nothing usable.
	Locate(coord entities.Coordinate) (string, []Candidate, error)

	// SimilarVersions lists other locally available versions of the module,
	// newest first. Used for report suggestions only.
	SimilarVersions(groupID, artifactID string) []string
}

// TargetStore accepts files into the offline repository. Writes are
// append-only across coordinates; no destination is ever shared by two
// coordinates.
type TargetStore interface {
	// Write copies the source file to relDir/name under the store root,
	// creating parent directories. Implementations write to a temporary
	// path and rename on success.
	Write(relDir, name, sourcePath string) error

	// Root returns the store's base directory.
	Root() string
}

// SourceStoreFactory creates a source store rooted at the given repository path.
type SourceStoreFactory func(root string) SourceStore

// TargetStoreFactory creates a target store rooted at the given repository path.
type TargetStoreFactory func(root string) TargetStore
