package parser

import (
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/adalundhe/repoprofile/core/analysis"
)

// pythonLanguage is the statically linked tree-sitter grammar for Python.
var (
	pythonLanguage     *sitter.Language
	pythonLanguageOnce sync.Once
)

// complexity counts one per branching, looping, exception-handling, or
// resource-scope statement anywhere in the tree. An if/elif chain is one
// if_statement node carrying one elif_clause per branch, so each branch
// contributes its own unit.
var pythonComplexityKinds = map[string]bool{
	"if_statement":    true,
	"elif_clause":     true,
	"for_statement":   true,
	"while_statement": true,
	"try_statement":   true,
	"with_statement":  true,
}

// loadPythonLanguage initializes the grammar once; parsers are per-call
// since a tree-sitter parser is not safe for concurrent use.
func loadPythonLanguage() *sitter.Language {
	pythonLanguageOnce.Do(func() {
		pythonLanguage = sitter.NewLanguage(tspython.Language())
	})
	return pythonLanguage
}

// extractPython performs exact structural extraction of a Python file. A
// file that does not parse cleanly degrades to the generic pattern fallback
// with the Python label preserved.
func extractPython(content string) analysis.FileAnalysis {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(loadPythonLanguage()); err != nil {
		return extractGeneric(content, "Python")
	}

	source := []byte(content)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return extractGeneric(content, "Python")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return extractGeneric(content, "Python")
	}

	result := analysis.FileAnalysis{
		Language:  "Python",
		Functions: []string{},
		Classes:   []string{},
		Lines:     countLines(content),
	}

	var imports []string
	walkPythonTree(root, source, &result, &imports)
	result.Imports = dedupe(imports)

	return result
}

// walkPythonTree visits every node in the tree, collecting named routine and
// type definitions (nested ones included), import references, and the
// complexity construct count.
func walkPythonTree(node *sitter.Node, source []byte, result *analysis.FileAnalysis, imports *[]string) {
	switch node.Kind() {
	case "function_definition":
		if name := fieldText(node, "name", source); name != "" {
			result.Functions = append(result.Functions, name)
		}
	case "class_definition":
		if name := fieldText(node, "name", source); name != "" {
			result.Classes = append(result.Classes, name)
		}
	case "import_statement":
		*imports = append(*imports, pythonImportNames(node, source)...)
	case "import_from_statement":
		if module := pythonFromModule(node, source); module != "" {
			*imports = append(*imports, module)
		}
	}

	if pythonComplexityKinds[node.Kind()] {
		result.Complexity++
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		walkPythonTree(child, source, result, imports)
	}
}

// pythonImportNames collects the dotted module names of one import
// statement, resolving "import a.b as c" to "a.b".
func pythonImportNames(node *sitter.Node, source []byte) []string {
	var names []string

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			names = append(names, child.Utf8Text(source))
		case "aliased_import":
			if name := fieldText(child, "name", source); name != "" {
				names = append(names, name)
			}
		}
	}

	return names
}

// pythonFromModule returns the module of a from-import. Purely relative
// imports ("from . import x") have no module name and yield "".
func pythonFromModule(node *sitter.Node, source []byte) string {
	module := node.ChildByFieldName("module_name")
	if module == nil {
		return ""
	}

	switch module.Kind() {
	case "dotted_name":
		return module.Utf8Text(source)
	case "relative_import":
		for i := uint(0); i < module.NamedChildCount(); i++ {
			child := module.NamedChild(i)
			if child != nil && child.Kind() == "dotted_name" {
				return child.Utf8Text(source)
			}
		}
	}

	return ""
}

// fieldText returns the source text of a named field, or "" if absent.
func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Utf8Text(source)
}
