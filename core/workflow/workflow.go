// Package workflow drives a repository through the ordered analysis phases:
// repository acquisition, code analysis, insight generation, and
// documentation compilation. A single analysis record is threaded through
// the phases; each phase takes exclusive ownership, mutates the record
// additively, and reports an explicit outcome. No fault crosses a phase
// boundary as a panic: every boundary converts faults into recorded errors
// and a failed terminal phase.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adalundhe/repoprofile/core/analysis"
	"github.com/adalundhe/repoprofile/core/llm"
	"github.com/adalundhe/repoprofile/core/pool"
)

// =============================================================================
// Collaborator interfaces
// =============================================================================

// Repository is the working-copy surface the phases consume. Implemented by
// gitrepo.Client; the workflow never reimplements version control.
type Repository interface {
	LocalPath() string
	Head() (string, error)
	Pull(ctx context.Context) (string, bool, error)
	Diff(ctx context.Context, oldRev, newRev string) (analysis.ChangeSet, error)
	ListFiles() ([]analysis.FileInfo, []string, error)
	ReadFile(path string) (string, error)
}

// Opener acquires a repository working copy and returns its HEAD revision.
type Opener interface {
	Open(ctx context.Context, url, repoID, branch, authToken string) (Repository, string, error)
}

// Metadata resolves a repository's display name and description.
// Implementations are best-effort and never fail the run.
type Metadata interface {
	RepoInfo(ctx context.Context, url, token string) (name, description string)
}

// =============================================================================
// Runner
// =============================================================================

// Request identifies one analysis run.
type Request struct {
	URL              string
	RepoID           string
	Branch           string
	AuthToken        string
	Incremental      bool
	PreviousRevision string
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Opener    Opener
	Metadata  Metadata
	Generator llm.Generator // optional; insight text is skipped when nil
	Pool      pool.Config
	// MaxRepoSizeBytes warns when the retained listing exceeds this total.
	MaxRepoSizeBytes int64
	Logger           *slog.Logger
}

// Runner executes analysis workflows. It is safe for concurrent use; all
// per-run state lives on the execution, never on the Runner.
type Runner struct {
	opener       Opener
	meta         Metadata
	gen          llm.Generator
	poolCfg      pool.Config
	maxRepoBytes int64
	logger       *slog.Logger
}

// NewRunner creates a workflow runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		opener:       opts.Opener,
		meta:         opts.Metadata,
		gen:          opts.Generator,
		poolCfg:      opts.Pool,
		maxRepoBytes: opts.MaxRepoSizeBytes,
		logger:       logger,
	}
}

// =============================================================================
// Phase outcome
// =============================================================================

// PhaseResult is the explicit routing contract between a phase and the
// controller: an error forces the failed terminal state; Halt terminates the
// workflow successfully without running later phases.
type PhaseResult struct {
	Err  error
	Halt bool
}

func phaseOK() PhaseResult            { return PhaseResult{} }
func phaseHalt() PhaseResult          { return PhaseResult{Halt: true} }
func phaseFail(err error) PhaseResult { return PhaseResult{Err: err} }

// namedPhase pairs a phase function with its log name.
type namedPhase struct {
	name string
	run  func(ctx context.Context) PhaseResult
}

// =============================================================================
// Run loop
// =============================================================================

// Run drives one repository through the full phase sequence and returns the
// accumulated record. Callers must treat a non-empty Errors list as the sole
// failure signal.
func (r *Runner) Run(ctx context.Context, req Request) *analysis.Record {
	record := analysis.NewRecord(req.URL, req.RepoID, req.Branch, req.AuthToken, req.Incremental, req.PreviousRevision)

	ex := &execution{
		runner: r,
		record: record,
		logger: r.logger.With(slog.String("repo_id", req.RepoID)),
	}

	phases := []namedPhase{
		{"repository_acquisition", ex.acquire},
		{"code_analysis", ex.analyze},
		{"insight_generation", ex.insights},
		{"documentation_compilation", ex.document},
	}

	for _, phase := range phases {
		ex.logger.Info("phase started",
			slog.String("phase", phase.name),
			slog.Int("total_files", record.TotalFiles))

		result := runPhase(ctx, phase.run)

		if result.Err != nil {
			record.AddError(fmt.Sprintf("%s failed: %v", phase.name, result.Err))
			ex.logger.Error("phase failed",
				slog.String("phase", phase.name),
				slog.String("error", result.Err.Error()))
			break
		}

		if result.Halt {
			record.Phase = analysis.PhaseCompleted
			ex.logger.Info("workflow terminated early",
				slog.String("phase", phase.name),
				slog.Int("warnings", len(record.Warnings)))
			break
		}

		// Nothing to analyze after acquisition: terminate successfully.
		if record.Phase == analysis.PhaseCloned && record.TotalFiles == 0 {
			record.AddWarning("no analyzable files found")
			record.Phase = analysis.PhaseCompleted
			ex.logger.Warn("no analyzable files", slog.String("repo", record.RepoURL))
			break
		}

		ex.logger.Info("phase completed",
			slog.String("phase", phase.name),
			slog.String("state", string(record.Phase)))
	}

	return record
}

// runPhase executes a phase with panic recovery at the boundary.
func runPhase(ctx context.Context, run func(ctx context.Context) PhaseResult) (result PhaseResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = phaseFail(fmt.Errorf("panic: %v", rec))
		}
	}()

	return run(ctx)
}

// execution holds the state of one workflow run.
type execution struct {
	runner *Runner
	record *analysis.Record
	repo   Repository
	logger *slog.Logger
}
