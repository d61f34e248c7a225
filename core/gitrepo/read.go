package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ReadFile returns the decoded text of a working-copy file. UTF-8 is tried
// first; invalid input falls back to a permissive latin-1 decode so a
// readable file never fails on encoding. Contents are cached because the
// insight phase re-reads files the analysis phase already read.
func (c *Client) ReadFile(path string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if content, ok := c.cache.Get(path); ok {
		return content, nil
	}

	full := filepath.Join(c.localPath, filepath.FromSlash(path))
	raw, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := decodeText(raw)
	c.cache.Add(path, content)

	return content, nil
}

// decodeText decodes bytes as UTF-8 when valid, otherwise latin-1 where
// every byte maps to the code point of the same value.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}
