package parser

import (
	"regexp"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// Generic fallback patterns for languages without a tuned extractor:
// routine keywords across several languages, a single class keyword, and
// import-like statements. No complexity heuristic exists for this path, so
// the score is fixed at zero.
var (
	genericFunctionPattern = regexp.MustCompile(`(?:def|function|func|fn)\s+(\w+)`)
	genericClassPattern    = regexp.MustCompile(`class\s+(\w+)`)
	genericImportPattern   = regexp.MustCompile(`(?:import|include|require|use)\s+['"]?([^\s'"]+)`)
)

// extractGeneric extracts structural facts with the loose fallback patterns.
// It also serves as the degradation path for malformed Python files, in
// which case the original language label is preserved.
func extractGeneric(content, language string) analysis.FileAnalysis {
	return analysis.FileAnalysis{
		Language:   language,
		Functions:  allSingleGroupMatches(genericFunctionPattern, content),
		Classes:    allSingleGroupMatches(genericClassPattern, content),
		Imports:    dedupe(allSingleGroupMatches(genericImportPattern, content)),
		Complexity: 0,
		Lines:      countLines(content),
	}
}
