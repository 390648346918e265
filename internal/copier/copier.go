// Package copier decides which graph nodes are copy-eligible and drives the
// per-coordinate copy through a fixed-size worker pool. Each unit of work is
// keyed by a unique coordinate, writes only its own result slot, and never
// aborts the batch; aggregation happens after the pool joins.
package copier

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/mvnoffline/internal/domain/entities"
	"github.com/rios0rios0/mvnoffline/internal/domain/repositories"
)

// Options controls a copy run.
type Options struct {
	Workers int
	// Only, when non-nil, restricts the run to the listed coordinate keys.
	Only map[string]bool
}

// Eligible returns the canonical nodes that qualify for copying: not
// excluded and not system scope (system dependencies reference a local
// filesystem path directly).
func Eligible(graph *entities.DependencyGraph) []*entities.DependencyNode {
	var out []*entities.DependencyNode
	for _, n := range graph.CanonicalNodes() {
		if n.Excluded || n.Scope == entities.ScopeSystem {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Run copies every eligible coordinate from the source store to the target
// store and returns one CopyResult per coordinate. Individual failures are
// recorded, never propagated; the only error returned is a context
// cancellation, and even then the partial summary is valid.
func Run(
	ctx context.Context,
	graph *entities.DependencyGraph,
	source repositories.SourceStore,
	target repositories.TargetStore,
	opts Options,
) (*entities.CopySummary, error) {
	nodes := Eligible(graph)
	if opts.Only != nil {
		var filtered []*entities.DependencyNode
		for _, n := range nodes {
			if opts.Only[n.Coordinate.Key()] {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	logger.Infof("[copy] Copying %d eligible coordinates with %d workers", len(nodes), workers)

	results := make([]entities.CopyResult, len(nodes))
	pool, poolCtx := errgroup.WithContext(ctx)
	pool.SetLimit(workers)

	for i, node := range nodes {
		pool.Go(func() error {
			if err := poolCtx.Err(); err != nil {
				results[i] = entities.CopyResult{
					Coordinate: node.Coordinate,
					ErrorKind:  entities.CopyErrWrite,
					Error:      err.Error(),
				}
				return nil
			}
			results[i] = copyOne(node.Coordinate, source, target)
			return nil // failures feed classification, never abort the batch
		})
	}
	_ = pool.Wait()

	summary := entities.Summarize(results)
	logger.Infof("[copy] Done: %d copied, %d failed (%d files)",
		summary.Copied, summary.Failed, summary.FilesCopied)
	return summary, ctx.Err()
}

// copyOne attempts the artifact and descriptor files for one coordinate.
// A coordinate succeeds only when both an artifact and a descriptor landed;
// anything in between is a partial failure.
func copyOne(
	coord entities.Coordinate,
	source repositories.SourceStore,
	target repositories.TargetStore,
) entities.CopyResult {
	result := entities.CopyResult{Coordinate: coord}

	if coord.Version == "" || coord.Version == "LATEST" {
		result.ErrorKind = entities.CopyErrVersionMissing
		result.Error = "no resolvable version for coordinate"
		return result
	}

	dir, candidates, err := source.Locate(coord)
	result.SourceTried = dir
	if err != nil {
		result.ErrorKind = entities.CopyErrSourceMissing
		result.Error = err.Error()
		return result
	}
	if len(candidates) == 0 {
		result.ErrorKind = entities.CopyErrSourceMissing
		result.Error = fmt.Sprintf("no files found under %s", dir)
		return result
	}

	artifactSeen := false
	descriptorSeen := false
	var firstErr error
	for _, cand := range candidates {
		destDir := coord.Path()
		if cand.Kind == repositories.CandidateMetadata {
			// Repository metadata lives one level up, beside the version dirs.
			destDir = parentDir(destDir)
		}
		if writeErr := target.Write(destDir, cand.Name, cand.Path); writeErr != nil {
			if firstErr == nil {
				firstErr = writeErr
			}
			logger.Debugf("[copy] %s: %v", coord, writeErr)
			continue
		}
		result.FilesCopied++
		switch cand.Kind {
		case repositories.CandidateArtifact:
			artifactSeen = true
		case repositories.CandidateDescriptor:
			descriptorSeen = true
			if coord.Packaging == "pom" {
				artifactSeen = true
			}
		}
	}

	switch {
	case artifactSeen && descriptorSeen && firstErr == nil:
		result.Succeeded = true
	case result.FilesCopied == 0 && firstErr != nil:
		result.ErrorKind = entities.CopyErrWrite
		result.Error = firstErr.Error()
	default:
		result.ErrorKind = entities.CopyErrPartial
		result.Error = partialReason(artifactSeen, descriptorSeen, firstErr)
	}
	return result
}

func partialReason(artifactSeen, descriptorSeen bool, writeErr error) string {
	switch {
	case writeErr != nil:
		return "some files failed to copy: " + writeErr.Error()
	case !artifactSeen && !descriptorSeen:
		return "neither artifact nor descriptor found"
	case !artifactSeen:
		return "descriptor copied but artifact missing"
	default:
		return "artifact copied but descriptor missing"
	}
}

func parentDir(rel string) string {
	for i := len(rel) - 1; i >= 0; i-- {
		if rel[i] == '/' {
			return rel[:i]
		}
	}
	return rel
}
