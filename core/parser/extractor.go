package parser

import (
	"strings"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// Extract parses a source file and returns its structural facts. Dispatch is
// decided once from the classified language: Python uses the structural
// tree-sitter extractor, the JavaScript family uses tuned patterns, and
// everything else (including files with unsupported extensions) uses the
// generic fallback. Extract never fails for readable text; a malformed
// Python file degrades to the fallback patterns instead of erroring.
func Extract(path, content string) analysis.FileAnalysis {
	language, ok := DetectLanguage(path)
	if !ok {
		return extractGeneric(content, LanguageUnknown)
	}

	switch {
	case language == "Python":
		return extractPython(content)
	case isJavaScriptFamily(language):
		return extractJavaScript(content, language)
	default:
		return extractGeneric(content, language)
	}
}

// countLines returns the newline-delimited line count of the raw text. Empty
// text counts as one line.
func countLines(content string) int {
	return strings.Count(content, "\n") + 1
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
