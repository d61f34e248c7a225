package gitrepo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRepoInfoFetchesNameAndDescription(t *testing.T) {
	var gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"name": "widgets", "description": "A widget factory"}`)
	}))
	defer srv.Close()

	client := &MetadataClient{BaseURL: srv.URL}

	name, desc := client.RepoInfo(context.Background(), "https://github.com/acme/widgets.git", "tok-123")

	if name != "widgets" {
		t.Fatalf("name = %s, want widgets", name)
	}
	if desc != "A widget factory" {
		t.Fatalf("description = %s", desc)
	}
	if gotPath != "/repos/acme/widgets" {
		t.Fatalf("path = %s, want /repos/acme/widgets", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization = %s", gotAuth)
	}
}

func TestRepoInfoFallsBackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &MetadataClient{BaseURL: srv.URL}

	name, desc := client.RepoInfo(context.Background(), "https://github.com/acme/widgets.git", "")

	if name != "widgets" {
		t.Fatalf("name = %s, want url-derived widgets", name)
	}
	if desc != "" {
		t.Fatalf("description = %s, want empty", desc)
	}
}

func TestRepoInfoFallsBackOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := &MetadataClient{BaseURL: srv.URL}

	name, desc := client.RepoInfo(context.Background(), "https://github.com/acme/widgets", "")

	if name != "widgets" || desc != "" {
		t.Fatalf("fallback = (%s, %s)", name, desc)
	}
}

func TestRepoNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/widgets.git", "widgets"},
		{"https://github.com/acme/widgets", "widgets"},
		{"https://github.com/acme/widgets/", "widgets"},
		{"https://gitlab.com/group/sub/project.git", "project"},
	}

	for _, tc := range tests {
		if got := RepoNameFromURL(tc.url); got != tc.want {
			t.Errorf("RepoNameFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestSplitOwnerRepo(t *testing.T) {
	owner, repo, ok := splitOwnerRepo("https://github.com/acme/widgets.git")
	if !ok || owner != "acme" || repo != "widgets" {
		t.Fatalf("split = (%s, %s, %v)", owner, repo, ok)
	}

	if _, _, ok := splitOwnerRepo("widgets"); ok {
		t.Fatal("expected failure for url without owner segment")
	}
}
