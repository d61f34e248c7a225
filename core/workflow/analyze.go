package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adalundhe/repoprofile/core/analysis"
	"github.com/adalundhe/repoprofile/core/parser"
	"github.com/adalundhe/repoprofile/core/pool"
	"github.com/adalundhe/repoprofile/core/stack"
)

// fileSlot is one file's extraction outcome. Each pool job writes only its
// own slot, so the map over files shares no mutable state; warnings and
// aggregate sums are reduced after all jobs settle.
type fileSlot struct {
	result  *analysis.FileAnalysis
	warning string
}

// analyze extracts structural facts from every retained file and aggregates
// them into the record's metrics, tech stack, and integrations.
func (ex *execution) analyze(ctx context.Context) PhaseResult {
	record := ex.record
	record.Phase = analysis.PhaseAnalyzing

	slots := make([]fileSlot, len(record.Files))
	workers := pool.New(ex.runner.poolCfg)
	// Wait is idempotent; the deferred call tears the workers down on every
	// exit path, including an early return before the explicit Wait below.
	defer workers.Wait()

	for i := range record.Files {
		file := record.Files[i]

		// Files with unsupported extensions are skipped silently: they
		// contribute to no per-file or aggregate metric, and no warning.
		if _, ok := parser.DetectLanguage(file.Path); !ok {
			continue
		}

		slot := &slots[i]
		if err := workers.Submit(func() {
			ex.extractFile(file, slot)
		}); err != nil {
			return phaseFail(err)
		}
	}

	workers.Wait()

	if err := ctx.Err(); err != nil {
		return phaseFail(err)
	}

	for i := range slots {
		if slots[i].warning != "" {
			record.AddWarning(slots[i].warning)
		}
		if slots[i].result == nil {
			continue
		}

		fa := *slots[i].result
		record.FileAnalyses = append(record.FileAnalyses, fa)
		record.TotalLines += fa.Lines
		record.TotalComplexity += fa.Complexity
	}

	record.Stack = stack.Classify(record.FileAnalyses)
	record.Integrations = stack.Integrations(allImports(record.FileAnalyses))

	ex.logger.Info("code analysis aggregated",
		slog.Int("analyzed_files", len(record.FileAnalyses)),
		slog.Int("total_lines", record.TotalLines),
		slog.Int("total_complexity", record.TotalComplexity))

	record.Phase = analysis.PhaseAnalyzed
	return phaseOK()
}

// extractFile reads and extracts one file into its slot. Any per-file fault,
// including a panic, becomes a skip-with-warning, never a workflow failure.
func (ex *execution) extractFile(file analysis.FileInfo, slot *fileSlot) {
	defer func() {
		if rec := recover(); rec != nil {
			slot.result = nil
			slot.warning = fmt.Sprintf("failed to analyze %s", file.Path)
		}
	}()

	content, err := ex.repo.ReadFile(file.Path)
	if err != nil {
		slot.warning = fmt.Sprintf("failed to analyze %s", file.Path)
		return
	}

	fa := parser.Extract(file.Path, content)
	fa.Path = file.Path
	fa.Size = file.Size
	slot.result = &fa
}

// allImports concatenates every file's import references in listing order.
func allImports(files []analysis.FileAnalysis) []string {
	var imports []string
	for _, f := range files {
		imports = append(imports, f.Imports...)
	}
	return imports
}
