// Package llm is the text-generation collaborator boundary. The analysis
// core depends only on the Generator interface: a per-file summary call and
// a structured list call whose responses are parsed from "- "-prefixed
// bullet lines. Generation strategy is the provider's concern.
package llm

import (
	"context"
	"strings"
)

// Generator produces natural-language text from extracted facts.
type Generator interface {
	// Summarize returns a short natural-language summary of one source file.
	Summarize(ctx context.Context, code, language, path string) (string, error)

	// Generate returns free-form text for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateList returns the items of a bulleted response to a prompt.
	GenerateList(ctx context.Context, prompt string) ([]string, error)
}

// ParseBulletList extracts the items of a "- "-prefixed bulleted response.
// Non-bullet lines are ignored.
func ParseBulletList(response string) []string {
	items := []string{}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		item := strings.TrimSpace(strings.TrimLeft(line, "- "))
		if item != "" {
			items = append(items, item)
		}
	}

	return items
}
