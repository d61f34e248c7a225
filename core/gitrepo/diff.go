package gitrepo

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// Diff computes the change set between two revisions. Rename detection is
// enabled, so a renamed file appears once, classified as modified under its
// destination path, never as an add/delete pair.
func (c *Client) Diff(ctx context.Context, oldRev, newRev string) (analysis.ChangeSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	changes := analysis.ChangeSet{
		OldRevision: oldRev,
		NewRevision: newRev,
		Added:       []string{},
		Modified:    []string{},
		Deleted:     []string{},
	}

	oldTree, err := c.revisionTree(oldRev)
	if err != nil {
		return changes, err
	}
	newTree, err := c.revisionTree(newRev)
	if err != nil {
		return changes, err
	}

	diff, err := object.DiffTreeWithOptions(ctx, oldTree, newTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return changes, fmt.Errorf("failed to diff %s..%s: %w", oldRev, newRev, err)
	}

	for _, change := range diff {
		action, err := change.Action()
		if err != nil {
			return changes, fmt.Errorf("failed to classify change: %w", err)
		}

		switch action {
		case merkletrie.Insert:
			changes.Added = append(changes.Added, change.To.Name)
		case merkletrie.Delete:
			changes.Deleted = append(changes.Deleted, change.From.Name)
		case merkletrie.Modify:
			changes.Modified = append(changes.Modified, change.To.Name)
		}
	}

	return changes, nil
}

// revisionTree resolves a revision identifier to its commit tree.
func (c *Client) revisionTree(rev string) (*object.Tree, error) {
	hash, err := c.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRevision, rev)
	}

	commit, err := c.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRevision, rev)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree for %s: %w", rev, err)
	}

	return tree, nil
}
