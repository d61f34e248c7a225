// Package cmd provides CLI commands for the repoprofile application.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/adalundhe/repoprofile/core/analysis"
	"github.com/adalundhe/repoprofile/core/config"
	"github.com/adalundhe/repoprofile/core/gitrepo"
	"github.com/adalundhe/repoprofile/core/llm"
	"github.com/adalundhe/repoprofile/core/pool"
	"github.com/adalundhe/repoprofile/core/workflow"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// =============================================================================
// Output Format Type
// =============================================================================

// AnalyzeOutputFormat represents the output format for the analyze command.
type AnalyzeOutputFormat string

const (
	// AnalyzeOutputTable outputs a formatted summary table.
	AnalyzeOutputTable AnalyzeOutputFormat = "table"
	// AnalyzeOutputJSON outputs the full analysis record as JSON.
	AnalyzeOutputJSON AnalyzeOutputFormat = "json"
)

// =============================================================================
// Analyze Command Flags
// =============================================================================

var (
	analyzeFormat      string
	analyzeBranch      string
	analyzeRepoID      string
	analyzeToken       string
	analyzeTokenEnv    string
	analyzeConfigPath  string
	analyzeIncremental bool
	analyzePrevRev     string
)

// =============================================================================
// Analyze Command
// =============================================================================

var analyzeCmd = &cobra.Command{
	Use:   "analyze <repo-url>",
	Short: "Analyze a git repository",
	Long: `Clone a git repository, extract functions, classes, imports, and
complexity from every supported source file, and classify the technology
stack and external integrations.

With --incremental, an existing working copy is pulled instead of recloned
and the analysis is narrowed to the files changed since --previous-rev.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

// =============================================================================
// Init
// =============================================================================

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "Output format (table, json)")
	analyzeCmd.Flags().StringVarP(&analyzeBranch, "branch", "b", "", "Branch to analyze (default: remote HEAD)")
	analyzeCmd.Flags().StringVar(&analyzeRepoID, "repo-id", "", "Stable repository id for working-copy reuse (default: random)")
	analyzeCmd.Flags().StringVar(&analyzeToken, "token", "", "Access token for private repositories")
	analyzeCmd.Flags().StringVar(&analyzeTokenEnv, "token-env", "", "Environment variable holding the access token")
	analyzeCmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "", "Path to a yaml config file")
	analyzeCmd.Flags().BoolVar(&analyzeIncremental, "incremental", false, "Pull an existing working copy and analyze only changed files")
	analyzeCmd.Flags().StringVar(&analyzePrevRev, "previous-rev", "", "Revision to diff against in incremental mode")
}

// =============================================================================
// Analyze Command
// =============================================================================

func runAnalyze(cmd *cobra.Command, args []string) error {
	config.LoadEnv(".env")

	cfg, err := config.Load(analyzeConfigPath)
	if err != nil {
		return err
	}

	repoID := analyzeRepoID
	if repoID == "" {
		repoID = uuid.NewString()
	}

	token := analyzeToken
	if token == "" && analyzeTokenEnv != "" {
		token = os.Getenv(analyzeTokenEnv)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	runner := workflow.NewRunner(workflow.RunnerOptions{
		Opener:    &repoOpener{opts: repoOptions(cfg)},
		Metadata:  &gitrepo.MetadataClient{},
		Generator: buildGenerator(cfg, logger),
		Pool: pool.Config{
			Workers:   cfg.Analysis.Workers,
			QueueSize: cfg.Analysis.QueueSize,
		},
		MaxRepoSizeBytes: cfg.MaxRepoSizeBytes(),
		Logger:           logger,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	record := runner.Run(ctx, workflow.Request{
		URL:              args[0],
		RepoID:           repoID,
		Branch:           analyzeBranch,
		AuthToken:        token,
		Incremental:      analyzeIncremental,
		PreviousRevision: analyzePrevRev,
	})

	if err := formatAnalyzeOutput(record, parseAnalyzeFormat(analyzeFormat)); err != nil {
		return err
	}

	if record.Failed() {
		return fmt.Errorf("analysis failed: %s", strings.Join(record.Errors, "; "))
	}

	return nil
}

// repoOptions maps the loaded config onto repository client options.
func repoOptions(cfg *config.Config) gitrepo.Options {
	return gitrepo.Options{
		TempDir:          cfg.Repo.TempDir,
		MaxFiles:         cfg.Repo.MaxFiles,
		MaxFileSizeBytes: cfg.MaxFileSizeBytes(),
		ExcludeGlobs:     cfg.Repo.ExcludeGlobs,
		CacheSize:        cfg.Repo.ContentCacheSize,
	}
}

// buildGenerator creates the LLM generator when an API key is configured.
// Without a key the insight phase is skipped rather than failed.
func buildGenerator(cfg *config.Config, logger *slog.Logger) llm.Generator {
	key := cfg.APIKey()
	if key == "" {
		logger.Info("no llm api key configured, insight generation disabled",
			slog.String("env", cfg.LLM.APIKeyEnv))
		return nil
	}

	gen, err := llm.NewOpenAIGenerator(llm.OpenAIConfig{
		BaseURL:   cfg.LLM.BaseURL,
		APIKey:    key,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		logger.Warn("llm generator unavailable", slog.String("error", err.Error()))
		return nil
	}

	return gen
}

// repoOpener adapts gitrepo.Open to the workflow's Opener interface.
type repoOpener struct {
	opts gitrepo.Options
}

func (o *repoOpener) Open(ctx context.Context, url, repoID, branch, authToken string) (workflow.Repository, string, error) {
	client, rev, err := gitrepo.Open(ctx, url, repoID, branch, authToken, o.opts)
	if err != nil {
		return nil, "", err
	}
	return client, rev, nil
}

// =============================================================================
// Output
// =============================================================================

func formatAnalyzeOutput(record *analysis.Record, format AnalyzeOutputFormat) error {
	switch format {
	case AnalyzeOutputJSON:
		return outputAnalysisJSON(record)
	default:
		return outputAnalysisTable(record)
	}
}

func outputAnalysisJSON(record *analysis.Record) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}

func outputAnalysisTable(record *analysis.Record) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Repository:\t%s\n", record.RepoName)
	fmt.Fprintf(w, "Revision:\t%s\n", record.CurrentRevision)
	fmt.Fprintf(w, "Phase:\t%s\n", record.Phase)
	fmt.Fprintf(w, "Files analyzed:\t%d\n", len(record.FileAnalyses))
	fmt.Fprintf(w, "Total lines:\t%d\n", record.TotalLines)
	fmt.Fprintf(w, "Total complexity:\t%d\n", record.TotalComplexity)
	fmt.Fprintf(w, "Languages:\t%s\n", strings.Join(record.Stack.Languages, ", "))
	fmt.Fprintf(w, "Frameworks:\t%s\n", strings.Join(record.Stack.Frameworks, ", "))
	fmt.Fprintf(w, "Databases:\t%s\n", strings.Join(record.Stack.Databases, ", "))
	fmt.Fprintf(w, "Integrations:\t%s\n", strings.Join(record.Integrations, ", "))

	if record.Changes != nil {
		fmt.Fprintf(w, "Changed files:\t+%d ~%d -%d\n",
			len(record.Changes.Added), len(record.Changes.Modified), len(record.Changes.Deleted))
	}

	for _, warning := range record.Warnings {
		fmt.Fprintf(w, "Warning:\t%s\n", warning)
	}
	for _, errMsg := range record.Errors {
		fmt.Fprintf(w, "Error:\t%s\n", errMsg)
	}

	if record.ExecutiveSummary != "" {
		fmt.Fprintf(w, "\nSummary:\t%s\n", record.ExecutiveSummary)
	}

	return w.Flush()
}

func parseAnalyzeFormat(s string) AnalyzeOutputFormat {
	if strings.EqualFold(s, "json") {
		return AnalyzeOutputJSON
	}
	return AnalyzeOutputTable
}
