// Package gitrepo implements the repository provider: it clones or reopens a
// working copy, lists and reads its files within configured limits, pulls
// new revisions, computes revision-to-revision change sets, and fetches
// best-effort remote metadata. The analysis core consumes this package
// through narrow interfaces and never touches version control directly.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultContentCacheSize bounds the read cache; analysis and insight phases
// read the same files, so repeated reads are the common case.
const defaultContentCacheSize = 256

// Options configures a repository client.
type Options struct {
	// TempDir is the root directory for cloned working copies.
	TempDir string

	// MaxFiles truncates the file listing to an order-preserving prefix.
	MaxFiles int

	// MaxFileSizeBytes excludes larger files from the listing with a warning.
	MaxFileSizeBytes int64

	// ExcludeGlobs are additional path patterns removed from the listing.
	ExcludeGlobs []string

	// CacheSize overrides the file-content cache capacity.
	CacheSize int
}

// Client provides operations on one cloned repository working copy.
type Client struct {
	mu sync.RWMutex

	repoID    string
	url       string
	branch    string
	localPath string

	repo  *gogit.Repository
	opts  Options
	globs []glob.Glob
	cache *lru.Cache[string, string]
}

// Open clones the repository into the temp workspace, or reopens an existing
// working copy for the same id. It returns the client and the current HEAD
// revision.
func Open(ctx context.Context, url, repoID, branch, authToken string, opts Options) (*Client, string, error) {
	if url == "" {
		return nil, "", ErrEmptyURL
	}
	if repoID == "" {
		return nil, "", ErrEmptyRepoID
	}

	globs, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, "", err
	}

	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultContentCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, "", err
	}

	localPath := filepath.Join(opts.TempDir, repoID)

	repo, err := openOrClone(ctx, url, localPath, branch, authToken)
	if err != nil {
		return nil, "", err
	}

	client := &Client{
		repoID:    repoID,
		url:       url,
		branch:    branch,
		localPath: localPath,
		repo:      repo,
		opts:      opts,
		globs:     globs,
		cache:     cache,
	}

	rev, err := client.Head()
	if err != nil {
		return nil, "", err
	}

	return client, rev, nil
}

// openOrClone reuses an existing working copy when present, otherwise
// performs a shallow single-branch clone.
func openOrClone(ctx context.Context, url, localPath, branch, authToken string) (*gogit.Repository, error) {
	if repo, err := gogit.PlainOpen(localPath); err == nil {
		return repo, nil
	}

	cloneOpts := &gogit.CloneOptions{
		URL:          cloneURL(url, authToken),
		SingleBranch: true,
		Depth:        1,
	}
	if branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	repo, err := gogit.PlainCloneContext(ctx, localPath, false, cloneOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	return repo, nil
}

// cloneURL injects the auth token into https URLs for the known hosts.
func cloneURL(url, authToken string) string {
	if authToken == "" {
		return url
	}

	switch {
	case strings.Contains(url, "github.com"):
		return strings.Replace(url, "https://", "https://"+authToken+"@", 1)
	case strings.Contains(url, "gitlab.com"):
		return strings.Replace(url, "https://", "https://oauth2:"+authToken+"@", 1)
	}

	return url
}

// compileGlobs compiles the configured exclude patterns.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	return globs, nil
}

// RepoID returns the repository id this client serves.
func (c *Client) RepoID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.repoID
}

// LocalPath returns the working-copy directory.
func (c *Client) LocalPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.localPath
}

// Head returns the current HEAD revision identifier.
func (c *Client) Head() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ref, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	return ref.Hash().String(), nil
}

// Pull fetches and integrates the latest changes from origin. The changed
// flag is false iff the HEAD revision is identical before and after.
func (c *Client) Pull(ctx context.Context) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	oldRef, err := c.repo.Head()
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	worktree, err := c.repo.Worktree()
	if err != nil {
		return "", false, fmt.Errorf("failed to open worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &gogit.PullOptions{RemoteName: "origin"})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return "", false, fmt.Errorf("failed to pull changes: %w", err)
	}

	newRef, err := c.repo.Head()
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	newRev := newRef.Hash().String()
	return newRev, newRev != oldRef.Hash().String(), nil
}

// Cleanup removes the on-disk working copy. Safe to call multiple times.
func (c *Client) Cleanup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
	return os.RemoveAll(c.localPath)
}
