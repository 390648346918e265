package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

// Resolver bookkeeping that pins remote repository identities and forces
// re-resolution attempts when a build runs offline.
var (
	staleFileNames = map[string]bool{
		"_remote.repositories":       true,
		"resolver-status.properties": true,
		".lastUpdated":               true,
	}
	staleSuffixes = []string{".lastUpdated", ".repositories"}
	staleDirNames = map[string]bool{
		".cache": true,
		".meta":  true,
	}
)

// LocalCacheCleaner removes resolver cache state from a repository on disk.
type LocalCacheCleaner struct{}

// NewLocalCacheCleaner creates a cleaner for local repositories.
func NewLocalCacheCleaner() repositories.CacheCleaner {
	return &LocalCacheCleaner{}
}

// Clean walks the repository, removes stale cache files and directories, and
// optionally prunes directories the removal left empty. With DryRun set it
// only reports what would be removed.
func (it *LocalCacheCleaner) Clean(
	ctx context.Context, repoDir string, opts repositories.CleanOptions,
) (*repositories.CleanReport, error) {
	info, err := os.Stat(repoDir)
	if err != nil {
		return nil, fmt.Errorf("repository not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository path %s is not a directory", repoDir)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	report := &repositories.CleanReport{ByMatch: map[string]int{}}
	var staleFiles []string
	var staleDirs []string

	walkErr := filepath.WalkDir(repoDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", path, err))
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != repoDir && staleDirNames[name] {
				staleDirs = append(staleDirs, path)
				report.ByMatch[name]++
				return filepath.SkipDir
			}
			return nil
		}
		if match, pattern := isStaleFile(name); match {
			staleFiles = append(staleFiles, path)
			report.ByMatch[pattern]++
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	report.Removed = append(append([]string{}, staleDirs...), staleFiles...)
	sort.Strings(report.Removed)
	report.FilesRemoved = len(staleFiles)
	report.CacheDirsRemoved = len(staleDirs)

	if opts.DryRun {
		return report, nil
	}

	var mutex sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, path := range staleFiles {
		group.Go(func() error {
			if ctxErr := groupCtx.Err(); ctxErr != nil {
				return ctxErr
			}
			if removeErr := os.Remove(path); removeErr != nil {
				mutex.Lock()
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", path, removeErr))
				report.FilesRemoved--
				mutex.Unlock()
			}
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return report, waitErr
	}

	for _, dir := range staleDirs {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", dir, removeErr))
			report.CacheDirsRemoved--
		}
	}

	if opts.RemoveEmptyDirs {
		it.pruneEmptyDirs(repoDir, report)
	}

	logger.Debugf("[clean] Removed %d files and %d cache directories",
		report.FilesRemoved, report.CacheDirsRemoved)
	return report, nil
}

func isStaleFile(name string) (bool, string) {
	if staleFileNames[name] {
		return true, name
	}
	for _, suffix := range staleSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true, "*" + suffix
		}
	}
	if strings.Contains(name, "lastUpdated") {
		return true, "*lastUpdated*"
	}
	return false, ""
}

// pruneEmptyDirs removes directories left empty by the cleanup, deepest
// first so emptied parents are caught in the same pass.
func (it *LocalCacheCleaner) pruneEmptyDirs(repoDir string, report *repositories.CleanReport) {
	var dirs []string
	_ = filepath.WalkDir(repoDir, func(path string, entry fs.DirEntry, err error) error {
		if err == nil && entry.IsDir() && path != repoDir {
			dirs = append(dirs, path)
		}
		return nil
	})

	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if removeErr := os.Remove(dir); removeErr == nil {
			report.EmptyDirsRemoved++
		}
	}
}
