// Package analysis defines the data model threaded through the repository
// analysis workflow: the mutable AnalysisRecord, per-file extraction results,
// the aggregated technology stack, and revision-to-revision change sets.
package analysis

// =============================================================================
// Phase
// =============================================================================

// Phase identifies the workflow stage an analysis record is in.
type Phase string

// Workflow phases in execution order, plus the two terminal values.
const (
	PhaseInitialized             Phase = "initialized"
	PhaseCloning                 Phase = "cloning"
	PhaseCloned                  Phase = "cloned"
	PhaseAnalyzing               Phase = "analyzing"
	PhaseAnalyzed                Phase = "analyzed"
	PhaseGeneratingInsights      Phase = "generating_insights"
	PhaseInsightsGenerated       Phase = "insights_generated"
	PhaseGeneratingDocumentation Phase = "generating_documentation"
	PhaseCompleted               Phase = "completed"
	PhaseFailed                  Phase = "failed"
)

// Terminal reports whether the phase is a terminal value.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// =============================================================================
// File types
// =============================================================================

// FileInfo describes a single file discovered in the working copy.
type FileInfo struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	Extension string `json:"extension"`
}

// FileAnalysis holds the structural facts extracted from one source file.
// It is created once during code analysis and never mutated afterwards.
type FileAnalysis struct {
	Path       string   `json:"path"`
	Size       int64    `json:"size"`
	Language   string   `json:"language"`
	Functions  []string `json:"functions"`
	Classes    []string `json:"classes"`
	Imports    []string `json:"imports"`
	Complexity int      `json:"complexity"`
	Lines      int      `json:"lines_of_code"`
}

// FileSummary pairs a file with its generated natural-language summary.
type FileSummary struct {
	Path      string   `json:"path"`
	Summary   string   `json:"summary"`
	Language  string   `json:"language"`
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
}

// =============================================================================
// TechStack
// =============================================================================

// TechStack is the aggregated, deduplicated technology classification for a
// repository. Each slice is lexicographically sorted. It is derived from the
// file-analysis list and recomputed whenever that list changes.
type TechStack struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
}

// =============================================================================
// ChangeSet
// =============================================================================

// ChangeSet records the paths changed between two revisions. The three sets
// are disjoint; renames appear once, as modified under the destination path.
// A ChangeSet is immutable after creation.
type ChangeSet struct {
	OldRevision string   `json:"old_revision"`
	NewRevision string   `json:"new_revision"`
	Added       []string `json:"added"`
	Modified    []string `json:"modified"`
	Deleted     []string `json:"deleted"`
}

// ChangedPaths returns the union of added and modified paths. Deleted paths
// are excluded: they no longer exist and are never submitted for extraction.
func (c *ChangeSet) ChangedPaths() map[string]struct{} {
	paths := make(map[string]struct{}, len(c.Added)+len(c.Modified))
	for _, p := range c.Added {
		paths[p] = struct{}{}
	}
	for _, p := range c.Modified {
		paths[p] = struct{}{}
	}
	return paths
}

// =============================================================================
// Record
// =============================================================================

// Record is the single mutable analysis state threaded through the workflow.
// Each phase takes exclusive ownership of the record for its duration,
// mutates it additively, and returns it. Fields are only ever set or
// appended to, never rolled back.
type Record struct {
	// Repository identity.
	RepoURL         string `json:"repo_url"`
	RepoID          string `json:"repo_id"`
	RepoName        string `json:"repo_name"`
	RepoDescription string `json:"repo_description"`
	Branch          string `json:"branch"`
	AuthToken       string `json:"-"`

	// Acquisition results.
	LocalPath        string     `json:"local_path"`
	CurrentRevision  string     `json:"current_revision"`
	PreviousRevision string     `json:"previous_revision"`
	Files            []FileInfo `json:"files"`
	FileTree         *TreeNode  `json:"file_tree"`
	TotalFiles       int        `json:"total_files"`
	TotalSizeBytes   int64      `json:"total_size_bytes"`

	// Analysis results.
	FileAnalyses     []FileAnalysis `json:"file_analyses"`
	TotalLines       int            `json:"total_lines_of_code"`
	TotalComplexity  int            `json:"total_complexity"`
	Stack            TechStack      `json:"tech_stack"`
	Integrations     []string       `json:"integrations"`

	// Insight results.
	FileSummaries []FileSummary `json:"file_summaries"`
	Features      []string      `json:"features"`
	UseCases      []string      `json:"use_cases"`

	// Documentation results.
	ExecutiveSummary    string   `json:"executive_summary"`
	ProductOverview     string   `json:"product_overview"`
	ArchitectureDiagram string   `json:"architecture_diagram"`
	MarketingPoints     []string `json:"marketing_points"`

	// Workflow control.
	Phase       Phase      `json:"phase"`
	Incremental bool       `json:"incremental"`
	Changes     *ChangeSet `json:"changes,omitempty"`
	Warnings    []string   `json:"warnings"`
	Errors      []string   `json:"errors"`
}

// NewRecord creates the initial record for a workflow run with all
// accumulating fields empty and the phase set to initialized.
func NewRecord(url, repoID, branch, authToken string, incremental bool, previousRevision string) *Record {
	return &Record{
		RepoURL:          url,
		RepoID:           repoID,
		Branch:           branch,
		AuthToken:        authToken,
		PreviousRevision: previousRevision,
		Files:            []FileInfo{},
		FileAnalyses:     []FileAnalysis{},
		Integrations:     []string{},
		FileSummaries:    []FileSummary{},
		Features:         []string{},
		UseCases:         []string{},
		MarketingPoints:  []string{},
		Phase:            PhaseInitialized,
		Incremental:      incremental,
		Warnings:         []string{},
		Errors:           []string{},
	}
}

// AddError appends a hard error and forces the phase to failed. Once a hard
// error is recorded no further phase runs.
func (r *Record) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Phase = PhaseFailed
}

// AddWarning appends a recoverable warning. Warnings never change the phase.
func (r *Record) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Failed reports whether a hard error has been recorded. A non-empty error
// list is the sole failure signal for callers.
func (r *Record) Failed() bool {
	return len(r.Errors) > 0
}

// SetFiles records the discovered file list and keeps the total-count and
// total-size fields consistent with it.
func (r *Record) SetFiles(files []FileInfo) {
	r.Files = files
	r.TotalFiles = len(files)

	var size int64
	for _, f := range files {
		size += f.Size
	}
	r.TotalSizeBytes = size
}
