package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// keyFileLimit caps how many files are summarized per run.
const keyFileLimit = 10

// insights generates natural-language insight text through the configured
// generator: per-file summaries for the key files, the feature list, use
// cases, the executive summary, and marketing points. With no generator
// configured the phase transitions without producing text.
func (ex *execution) insights(ctx context.Context) PhaseResult {
	record := ex.record
	record.Phase = analysis.PhaseGeneratingInsights

	gen := ex.runner.gen
	if gen == nil {
		ex.logger.Info("insight generation skipped: no generator configured")
		record.Phase = analysis.PhaseInsightsGenerated
		return phaseOK()
	}

	keyFiles := topFiles(record.FileAnalyses, keyFileLimit)

	for _, fa := range keyFiles {
		content, err := ex.repo.ReadFile(fa.Path)
		if err != nil {
			ex.logger.Warn("summary skipped", slog.String("path", fa.Path), slog.String("error", err.Error()))
			continue
		}

		summary, err := gen.Summarize(ctx, content, fa.Language, fa.Path)
		if err != nil {
			ex.logger.Warn("summary skipped", slog.String("path", fa.Path), slog.String("error", err.Error()))
			continue
		}

		record.FileSummaries = append(record.FileSummaries, analysis.FileSummary{
			Path:      fa.Path,
			Summary:   summary,
			Language:  fa.Language,
			Functions: fa.Functions,
			Classes:   fa.Classes,
		})
	}

	features, err := gen.GenerateList(ctx, featuresPrompt(record, keyFiles))
	if err != nil {
		return phaseFail(err)
	}
	record.Features = features

	useCases, err := gen.GenerateList(ctx, useCasesPrompt(features, record.Stack))
	if err != nil {
		return phaseFail(err)
	}
	record.UseCases = useCases

	executive, err := gen.Generate(ctx, executiveSummaryPrompt(record))
	if err != nil {
		return phaseFail(err)
	}
	record.ExecutiveSummary = executive

	marketing, err := gen.GenerateList(ctx, marketingPrompt(record))
	if err != nil {
		return phaseFail(err)
	}
	record.MarketingPoints = marketing

	record.Phase = analysis.PhaseInsightsGenerated
	return phaseOK()
}

// topFiles returns up to limit files ordered by complexity then line count,
// descending. The input list is not reordered.
func topFiles(files []analysis.FileAnalysis, limit int) []analysis.FileAnalysis {
	sorted := make([]analysis.FileAnalysis, len(files))
	copy(sorted, files)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Complexity != sorted[j].Complexity {
			return sorted[i].Complexity > sorted[j].Complexity
		}
		return sorted[i].Lines > sorted[j].Lines
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// featuresPrompt asks for user-facing product features from the analysis
// digest, as a "- " bulleted list.
func featuresPrompt(record *analysis.Record, keyFiles []analysis.FileAnalysis) string {
	var b strings.Builder

	b.WriteString("Extract 5-7 user-facing product features from this code analysis. ")
	b.WriteString("Return only a list, one feature per line, each starting with \"- \".\n\n")
	fmt.Fprintf(&b, "Languages: %s\n", strings.Join(record.Stack.Languages, ", "))
	fmt.Fprintf(&b, "Frameworks: %s\n", strings.Join(record.Stack.Frameworks, ", "))
	fmt.Fprintf(&b, "Integrations: %s\n", strings.Join(record.Integrations, ", "))

	for _, fa := range keyFiles {
		fmt.Fprintf(&b, "File %s (%s): functions %s; classes %s\n",
			fa.Path, fa.Language,
			strings.Join(head(fa.Functions, 5), ", "),
			strings.Join(head(fa.Classes, 5), ", "))
	}

	return b.String()
}

// useCasesPrompt asks for realistic use cases as a "- " bulleted list.
func useCasesPrompt(features []string, stack analysis.TechStack) string {
	var b strings.Builder

	b.WriteString("Generate 4-5 realistic, specific use cases for this product. ")
	b.WriteString("Return only a list, one use case per line, each starting with \"- \".\n\n")
	b.WriteString("Features:\n")
	for _, f := range features {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(stack.Languages, ", "))

	return b.String()
}

// executiveSummaryPrompt asks for a 3-4 sentence executive summary.
func executiveSummaryPrompt(record *analysis.Record) string {
	return fmt.Sprintf(
		"Write a 3-4 sentence executive summary for the software product %q (%s). Tech stack: %s. Key features: %s.",
		record.RepoName,
		record.RepoDescription,
		strings.Join(record.Stack.Languages, ", "),
		strings.Join(head(record.Features, 5), "; "),
	)
}

// marketingPrompt asks for marketing talking points as a "- " bulleted list.
func marketingPrompt(record *analysis.Record) string {
	return fmt.Sprintf(
		"Create 5-6 marketing talking points for %q. Features: %s. Return only a list, one point per line, each starting with \"- \".",
		record.RepoName,
		strings.Join(record.Features, "; "),
	)
}

// head returns the first n items of a list.
func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
