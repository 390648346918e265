package repositories

import "context"

// CleanOptions controls a repository cache cleanup run.
type CleanOptions struct {
	DryRun          bool
	Workers         int
	RemoveEmptyDirs bool
}

// CleanReport summarizes one cleanup run.
type CleanReport struct {
	FilesRemoved     int
	CacheDirsRemoved int
	EmptyDirsRemoved int
	Removed          []string
	Errors           []string
	ByMatch          map[string]int // match kind -> count
}

// CacheCleaner removes remote-resolution cache files from a repository so it
// can be used offline.
type CacheCleaner interface {
	Clean(ctx context.Context, repoDir string, opts CleanOptions) (*CleanReport, error)
}
