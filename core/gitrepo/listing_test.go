package gitrepo

import (
	"strings"
	"testing"
)

func listingPaths(t *testing.T, client *Client) []string {
	t.Helper()

	files, _, err := client.ListFiles()
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

func containsPath(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}
	return false
}

func TestListFilesExcludesInternalDirs(t *testing.T) {
	client, _ := fixtureClient(t, Options{}, map[string]string{
		"main.py":                   "print('hello')\n",
		"src/app.js":                "const x = 1;\n",
		"node_modules/pkg/index.js": "module.exports = {};\n",
		"__pycache__/main.pyc":      "bytecode",
		"dist/bundle.js":            "bundled",
	})

	paths := listingPaths(t, client)

	if !containsPath(paths, "main.py") || !containsPath(paths, "src/app.js") {
		t.Fatalf("expected retained files in %v", paths)
	}
	for _, p := range paths {
		if strings.HasPrefix(p, "node_modules/") ||
			strings.HasPrefix(p, "__pycache__/") ||
			strings.HasPrefix(p, "dist/") ||
			strings.HasPrefix(p, ".git/") {
			t.Fatalf("excluded path leaked into listing: %s", p)
		}
	}
}

func TestListFilesDropsLargeFilesWithWarning(t *testing.T) {
	client, _ := fixtureClient(t, Options{MaxFileSizeBytes: 64}, map[string]string{
		"main.py": "print('hello')\n",
		"big.bin": strings.Repeat("x", 200),
	})

	files, warnings, err := client.ListFiles()
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}

	for _, f := range files {
		if f.Path == "big.bin" {
			t.Fatal("oversized file retained in listing")
		}
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "skipping large file: big.bin") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected large-file warning, got %v", warnings)
	}
}

func TestListFilesAppliesExcludeGlobs(t *testing.T) {
	client, _ := fixtureClient(t, Options{ExcludeGlobs: []string{"docs/*", "*.lock"}}, map[string]string{
		"main.py":        "print('hello')\n",
		"docs/readme.md": "# readme\n",
		"poetry.lock":    "locked\n",
	})

	paths := listingPaths(t, client)

	if containsPath(paths, "docs/readme.md") || containsPath(paths, "poetry.lock") {
		t.Fatalf("glob-excluded path leaked into listing: %v", paths)
	}
	if !containsPath(paths, "main.py") {
		t.Fatalf("expected main.py in listing: %v", paths)
	}
}

func TestListFilesTruncatesWithWarning(t *testing.T) {
	client, _ := fixtureClient(t, Options{MaxFiles: 2}, map[string]string{
		"a.py": "pass\n",
		"b.py": "pass\n",
		"c.py": "pass\n",
	})

	files, warnings, err := client.ListFiles()
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("listing length = %d, want 2", len(files))
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w, "truncating to 2") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected truncation warning, got %v", warnings)
	}
}

func TestListFilesRecordsExtension(t *testing.T) {
	client, _ := fixtureClient(t, Options{}, map[string]string{
		"Main.PY": "pass\n",
	})

	files, _, err := client.ListFiles()
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}

	for _, f := range files {
		if f.Path == "Main.PY" {
			if f.Extension != ".py" {
				t.Fatalf("extension = %s, want .py", f.Extension)
			}
			if f.Size == 0 {
				t.Fatal("expected non-zero size")
			}
			return
		}
	}
	t.Fatal("Main.PY missing from listing")
}
