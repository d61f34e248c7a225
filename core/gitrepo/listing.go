package gitrepo

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// excludedDirs are version-control internals, dependency directories, and
// build output directories never presented to analysis.
var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"venv":         true,
	"env":          true,
	".venv":        true,
	"dist":         true,
	"build":        true,
}

// ListFiles walks the working copy and returns the analyzable file listing.
// Files above the size ceiling are dropped with a warning, configured glob
// patterns are excluded, and a listing above the file-count limit is
// truncated to an order-preserving prefix. The returned warnings describe
// every exclusion the caller should surface.
func (c *Client) ListFiles() ([]analysis.FileInfo, []string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var files []analysis.FileInfo
	var warnings []string

	err := filepath.WalkDir(c.localPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if excludedDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(c.localPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if c.matchesExcludeGlob(rel) {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		if c.opts.MaxFileSizeBytes > 0 && info.Size() > c.opts.MaxFileSizeBytes {
			warnings = append(warnings, fmt.Sprintf("skipping large file: %s (%d bytes)", rel, info.Size()))
			return nil
		}

		files = append(files, analysis.FileInfo{
			Path:      rel,
			Size:      info.Size(),
			Extension: strings.ToLower(filepath.Ext(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk working copy: %w", err)
	}

	if c.opts.MaxFiles > 0 && len(files) > c.opts.MaxFiles {
		warnings = append(warnings, fmt.Sprintf("repository has %d files, truncating to %d", len(files), c.opts.MaxFiles))
		files = files[:c.opts.MaxFiles]
	}

	return files, warnings, nil
}

// matchesExcludeGlob reports whether a relative path matches any configured
// exclude pattern.
func (c *Client) matchesExcludeGlob(rel string) bool {
	for _, g := range c.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}
