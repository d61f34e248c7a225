package gitrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// MetadataClient fetches repository name and description from the GitHub
// API. Lookups are best-effort: any failure yields the URL-derived name and
// an empty description rather than an error, so metadata never fails a run.
type MetadataClient struct {
	// BaseURL defaults to the public GitHub API.
	BaseURL string

	// HTTPClient defaults to a client with a short timeout.
	HTTPClient *http.Client
}

// repoInfoResponse is the subset of the GitHub repository payload we use.
type repoInfoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RepoInfo returns the repository's name and description.
func (m *MetadataClient) RepoInfo(ctx context.Context, url, token string) (string, string) {
	owner, repo, ok := splitOwnerRepo(url)
	if !ok {
		return RepoNameFromURL(url), ""
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s", m.baseURL(), owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return RepoNameFromURL(url), ""
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := m.httpClient().Do(req)
	if err != nil {
		return RepoNameFromURL(url), ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RepoNameFromURL(url), ""
	}

	var info repoInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return RepoNameFromURL(url), ""
	}
	if info.Name == "" {
		info.Name = RepoNameFromURL(url)
	}

	return info.Name, info.Description
}

func (m *MetadataClient) baseURL() string {
	if m.BaseURL != "" {
		return strings.TrimRight(m.BaseURL, "/")
	}
	return "https://api.github.com"
}

func (m *MetadataClient) httpClient() *http.Client {
	if m.HTTPClient != nil {
		return m.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// RepoNameFromURL derives a repository name from the final URL segment,
// dropping any .git suffix.
func RepoNameFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	name := trimmed[strings.LastIndex(trimmed, "/")+1:]
	return strings.TrimSuffix(name, ".git")
}

// splitOwnerRepo extracts the owner and repository segments from a hosting
// URL. Returns false when the URL has no recognizable owner/repo tail.
func splitOwnerRepo(url string) (string, string, bool) {
	trimmed := strings.TrimRight(url, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", "", false
	}

	owner := parts[len(parts)-2]
	repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
	if owner == "" || repo == "" || strings.Contains(owner, ":") {
		return "", "", false
	}

	return owner, repo, true
}
