// Package parser extracts structural facts (functions, classes, imports, a
// complexity score, line counts) from source text. Python files go through a
// precise tree-sitter extraction; the JavaScript family goes through tuned
// regular-expression patterns; everything else falls back to a generic
// pattern extractor.
package parser

import (
	"path/filepath"
	"strings"
)

// LanguageUnknown labels files whose extension is not in the language table
// when extraction is forced on them anyway.
const LanguageUnknown = "Unknown"

// languageByExtension maps a file extension to its declared language. One
// language per extension; no content sniffing.
var languageByExtension = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".jsx":   "React",
	".tsx":   "React TypeScript",
	".java":  "Java",
	".go":    "Go",
	".rs":    "Rust",
	".cpp":   "C++",
	".c":     "C",
	".cs":    "C#",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
}

// DetectLanguage maps a file path to its declared language from the
// extension alone. The second return value is false for unsupported
// extensions; the pipeline skips such files entirely.
func DetectLanguage(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := languageByExtension[ext]
	return lang, ok
}

// isJavaScriptFamily reports whether the language uses the tuned
// JavaScript/TypeScript pattern extractor.
func isJavaScriptFamily(language string) bool {
	switch language {
	case "JavaScript", "TypeScript", "React", "React TypeScript":
		return true
	}
	return false
}
