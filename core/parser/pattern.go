package parser

import (
	"regexp"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// Pattern set tuned for the JavaScript family (JavaScript, TypeScript, and
// the two React dialects). Function names come from declarations and from
// callable assignments; imports from ES import and CommonJS require forms.
var (
	jsFunctionPattern = regexp.MustCompile(`(?:function\s+(\w+)|(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s*)?\()`)
	jsClassPattern    = regexp.MustCompile(`class\s+(\w+)`)
	jsImportPattern   = regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]|require\(['"]([^'"]+)['"]\)`)

	jsIfPattern     = regexp.MustCompile(`\bif\s*\(`)
	jsForPattern    = regexp.MustCompile(`\bfor\s*\(`)
	jsWhilePattern  = regexp.MustCompile(`\bwhile\s*\(`)
	jsSwitchPattern = regexp.MustCompile(`\bswitch\s*\(`)
)

// extractJavaScript extracts structural facts from a JavaScript-family file
// using the tuned pattern set. Complexity counts if/for/while/switch
// occurrences; the score is comparable within this family only.
func extractJavaScript(content, language string) analysis.FileAnalysis {
	return analysis.FileAnalysis{
		Language:   language,
		Functions:  firstGroupMatches(jsFunctionPattern, content),
		Classes:    allSingleGroupMatches(jsClassPattern, content),
		Imports:    dedupe(firstGroupMatches(jsImportPattern, content)),
		Complexity: countMatches(content, jsIfPattern, jsForPattern, jsWhilePattern, jsSwitchPattern),
		Lines:      countLines(content),
	}
}

// firstGroupMatches returns the first non-empty capture group of every match.
func firstGroupMatches(pattern *regexp.Regexp, content string) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)
	out := make([]string, 0, len(matches))

	for _, m := range matches {
		for _, group := range m[1:] {
			if group != "" {
				out = append(out, group)
				break
			}
		}
	}

	return out
}

// allSingleGroupMatches returns the single capture group of every match.
func allSingleGroupMatches(pattern *regexp.Regexp, content string) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)
	out := make([]string, 0, len(matches))

	for _, m := range matches {
		if m[1] != "" {
			out = append(out, m[1])
		}
	}

	return out
}

// countMatches sums match counts across the given patterns.
func countMatches(content string, patterns ...*regexp.Regexp) int {
	total := 0
	for _, p := range patterns {
		total += len(p.FindAllStringIndex(content, -1))
	}
	return total
}
