package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// acquire clones or reopens the repository, resolves metadata, detects
// changes in incremental mode, and records the working file set.
func (ex *execution) acquire(ctx context.Context) PhaseResult {
	record := ex.record
	record.Phase = analysis.PhaseCloning

	record.RepoName, record.RepoDescription = ex.runner.meta.RepoInfo(ctx, record.RepoURL, record.AuthToken)

	repo, rev, err := ex.runner.opener.Open(ctx, record.RepoURL, record.RepoID, record.Branch, record.AuthToken)
	if err != nil {
		return phaseFail(err)
	}

	ex.repo = repo
	record.LocalPath = repo.LocalPath()
	record.CurrentRevision = rev

	if record.Incremental {
		if halt, err := ex.resolveChanges(ctx); err != nil {
			return phaseFail(err)
		} else if halt {
			return phaseHalt()
		}
	}

	files, warnings, err := repo.ListFiles()
	if err != nil {
		return phaseFail(err)
	}
	for _, w := range warnings {
		record.AddWarning(w)
	}

	if record.Incremental && record.Changes != nil {
		files = filterChanged(files, record.Changes)
		ex.logger.Info("incremental mode",
			slog.Int("changed_files", len(files)))
	}

	record.SetFiles(files)
	record.FileTree = analysis.BuildFileTree(files)

	if max := ex.runner.maxRepoBytes; max > 0 && record.TotalSizeBytes > max {
		record.AddWarning(fmt.Sprintf("repository size %d bytes exceeds limit of %d", record.TotalSizeBytes, max))
	}

	record.Phase = analysis.PhaseCloned
	return phaseOK()
}

// resolveChanges pulls the latest revision and computes the change set. It
// reports halt when the pull was a no-op: there is nothing to analyze.
func (ex *execution) resolveChanges(ctx context.Context) (bool, error) {
	record := ex.record

	newRev, changed, err := ex.repo.Pull(ctx)
	if err != nil {
		return false, err
	}
	record.CurrentRevision = newRev

	if !changed {
		record.AddWarning("no changes detected in repository")
		return true, nil
	}

	if record.PreviousRevision == "" {
		return false, nil
	}

	changes, err := ex.repo.Diff(ctx, record.PreviousRevision, newRev)
	if err != nil {
		return false, err
	}
	record.Changes = &changes

	ex.logger.Info("change set resolved",
		slog.Int("added", len(changes.Added)),
		slog.Int("modified", len(changes.Modified)),
		slog.Int("deleted", len(changes.Deleted)))

	return false, nil
}

// filterChanged narrows the listing to added and modified paths. Deleted
// paths are absent from the listing already and never re-enter it.
func filterChanged(files []analysis.FileInfo, changes *analysis.ChangeSet) []analysis.FileInfo {
	changedPaths := changes.ChangedPaths()

	kept := make([]analysis.FileInfo, 0, len(changedPaths))
	for _, f := range files {
		if _, ok := changedPaths[f.Path]; ok {
			kept = append(kept, f)
		}
	}

	return kept
}
