package workflow

import (
	"context"
	"strings"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// document compiles the final documentation fields from the accumulated
// insight results and marks the record complete. Rendering of long-form
// documentation and diagram drawing are external concerns; the record only
// carries the compiled fields.
func (ex *execution) document(ctx context.Context) PhaseResult {
	record := ex.record
	record.Phase = analysis.PhaseGeneratingDocumentation

	if err := ctx.Err(); err != nil {
		return phaseFail(err)
	}

	record.ProductOverview = compileProductOverview(record.ExecutiveSummary, record.Features)

	record.Phase = analysis.PhaseCompleted
	return phaseOK()
}

// compileProductOverview joins the executive summary with the leading
// features as a capability list.
func compileProductOverview(executiveSummary string, features []string) string {
	if executiveSummary == "" && len(features) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(executiveSummary)

	if len(features) > 0 {
		b.WriteString("\n\nKey Capabilities:\n")
		for _, f := range head(features, 5) {
			b.WriteString("• ")
			b.WriteString(f)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
