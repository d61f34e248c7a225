// Package stack rolls per-file extraction results into a deduplicated
// technology-stack classification and a third-party integration list.
// Membership is a pure substring test over the lowercase-folded
// concatenation of all import references: a keyword hit anywhere is
// sufficient, and false positives are an accepted cost of the design.
package stack

import (
	"sort"
	"strings"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// keyword maps a lowercase match token to its canonical display name.
type keyword struct {
	token string
	name  string
}

// frameworkKeywords covers the recognized application frameworks.
var frameworkKeywords = []keyword{
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
	{"sqlalchemy", "SQLAlchemy"},
	{"pandas", "Pandas"},
	{"numpy", "NumPy"},
	{"tensorflow", "TensorFlow"},
	{"pytorch", "PyTorch"},
	{"scikit", "Scikit-learn"},
	{"react", "React"},
	{"vue", "Vue.js"},
	{"angular", "Angular"},
	{"next", "Next.js"},
	{"express", "Express.js"},
	{"nestjs", "NestJS"},
	{"svelte", "Svelte"},
	{"spring", "Spring Framework"},
	{"laravel", "Laravel"},
	{"rails", "Ruby on Rails"},
}

// databaseKeywords covers the recognized database engines.
var databaseKeywords = []keyword{
	{"mongodb", "MongoDB"},
	{"postgresql", "PostgreSQL"},
	{"mysql", "MySQL"},
	{"redis", "Redis"},
	{"sqlite", "SQLite"},
	{"cassandra", "Cassandra"},
	{"dynamodb", "DynamoDB"},
}

// integrationKeywords covers recognized third-party services and protocols.
// Order matters: the integration list preserves table definition order.
var integrationKeywords = []keyword{
	{"stripe", "Stripe Payment Processing"},
	{"paypal", "PayPal Integration"},
	{"aws", "Amazon Web Services (AWS)"},
	{"azure", "Microsoft Azure"},
	{"gcp", "Google Cloud Platform"},
	{"firebase", "Firebase"},
	{"mongodb", "MongoDB Database"},
	{"postgresql", "PostgreSQL Database"},
	{"redis", "Redis Cache"},
	{"elasticsearch", "Elasticsearch"},
	{"sendgrid", "SendGrid Email"},
	{"twilio", "Twilio Communications"},
	{"slack", "Slack Integration"},
	{"github", "GitHub Integration"},
	{"gitlab", "GitLab Integration"},
	{"docker", "Docker Containerization"},
	{"kubernetes", "Kubernetes Orchestration"},
	{"oauth", "OAuth Authentication"},
	{"jwt", "JWT Authentication"},
	{"graphql", "GraphQL API"},
	{"rest", "REST API"},
	{"websocket", "WebSocket Real-time"},
}

// Classify aggregates all per-file results into a TechStack. Languages come
// from the per-file classifications (unknown files excluded); frameworks and
// databases from keyword matching over the combined import list. All three
// collections are deduplicated and sorted, so the result is independent of
// input order.
func Classify(files []analysis.FileAnalysis) analysis.TechStack {
	languages := make(map[string]struct{})
	var imports []string

	for _, f := range files {
		if f.Language != "" && f.Language != "Unknown" {
			languages[f.Language] = struct{}{}
		}
		imports = append(imports, f.Imports...)
	}

	joined := foldImports(imports)

	return analysis.TechStack{
		Languages:  sortedKeys(languages),
		Frameworks: matchSorted(frameworkKeywords, joined),
		Databases:  matchSorted(databaseKeywords, joined),
	}
}

// Frameworks returns the canonical framework names matched by the import
// list, sorted.
func Frameworks(imports []string) []string {
	return matchSorted(frameworkKeywords, foldImports(imports))
}

// Integrations returns the canonical integration names matched by the import
// list, in keyword-table definition order.
func Integrations(imports []string) []string {
	joined := foldImports(imports)
	matched := []string{}

	for _, kw := range integrationKeywords {
		if strings.Contains(joined, kw.token) {
			matched = append(matched, kw.name)
		}
	}

	return matched
}

// foldImports lowercases and space-joins the import references into the
// single text the substring tests run against.
func foldImports(imports []string) string {
	return strings.ToLower(strings.Join(imports, " "))
}

// matchSorted returns the sorted canonical names whose tokens appear in the
// folded import text.
func matchSorted(keywords []keyword, joined string) []string {
	matched := []string{}

	for _, kw := range keywords {
		if strings.Contains(joined, kw.token) {
			matched = append(matched, kw.name)
		}
	}

	sort.Strings(matched)
	return matched
}

// sortedKeys returns the map keys in lexicographic order.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
