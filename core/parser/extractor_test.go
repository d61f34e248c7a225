package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		language string
		ok       bool
	}{
		{"src/main.py", "Python", true},
		{"app.js", "JavaScript", true},
		{"app.ts", "TypeScript", true},
		{"App.jsx", "React", true},
		{"App.tsx", "React TypeScript", true},
		{"Main.java", "Java", true},
		{"main.go", "Go", true},
		{"lib.rs", "Rust", true},
		{"MAIN.PY", "Python", true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}

	for _, tc := range tests {
		lang, ok := DetectLanguage(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.language, lang, tc.path)
	}
}

func TestExtractPythonStructural(t *testing.T) {
	content := `import os
import os
import numpy as np
from django.db import models
from . import siblings
from .handlers import dispatch


class UserStore:
    def save(self, user):
        if user:
            for attempt in range(3):
                try:
                    self.db.write(user)
                except IOError:
                    pass


def main():
    with open("state") as f:
        while True:
            break
`

	result := Extract("store.py", content)

	assert.Equal(t, "Python", result.Language)
	assert.Equal(t, []string{"save", "main"}, result.Functions)
	assert.Equal(t, []string{"UserStore"}, result.Classes)
	assert.Equal(t, []string{"os", "numpy", "django.db", "handlers"}, result.Imports)
	assert.Equal(t, 5, result.Complexity)
	assert.Equal(t, 23, result.Lines)
}

func TestExtractPythonCountsEachElifBranch(t *testing.T) {
	content := `def route(x):
    if x == 1:
        return "a"
    elif x == 2:
        return "b"
    elif x == 3:
        return "c"
    else:
        return "d"
`

	result := Extract("route.py", content)

	// One unit for the if plus one per elif branch; the else adds nothing.
	assert.Equal(t, 3, result.Complexity)
}

func TestExtractPythonNestedDefinitions(t *testing.T) {
	content := `def outer():
    def inner():
        pass

    class Local:
        def method(self):
            pass
`

	result := Extract("nested.py", content)

	assert.Equal(t, []string{"outer", "inner", "method"}, result.Functions)
	assert.Equal(t, []string{"Local"}, result.Classes)
}

func TestExtractPythonMalformedFallsBack(t *testing.T) {
	content := "def broken(:\n    pass\n\nclass Dangling\n"

	result := Extract("broken.py", content)

	assert.Equal(t, "Python", result.Language)
	assert.Contains(t, result.Functions, "broken")
	assert.Contains(t, result.Classes, "Dangling")
	assert.Equal(t, 0, result.Complexity)
}

func TestExtractJavaScript(t *testing.T) {
	content := `import React from 'react';
const api = require('axios');

class Widget {}

function render(props) {
  if (props.visible) {
    for (let i = 0; i < 3; i++) {}
  }
  switch (props.kind) {}
}

const fetchData = async (url) => api.get(url);
`

	result := Extract("widget.js", content)

	assert.Equal(t, "JavaScript", result.Language)
	assert.Equal(t, []string{"render", "fetchData"}, result.Functions)
	assert.Equal(t, []string{"Widget"}, result.Classes)
	assert.Equal(t, []string{"react", "axios"}, result.Imports)
	assert.Equal(t, 3, result.Complexity)
}

func TestExtractTypeScriptReactUsesPatternExtractor(t *testing.T) {
	content := `import { useState } from 'react';

const Counter = (props) => {
  if (props.start) {}
};
`

	result := Extract("Counter.tsx", content)

	assert.Equal(t, "React TypeScript", result.Language)
	assert.Equal(t, []string{"Counter"}, result.Functions)
	assert.Equal(t, []string{"react"}, result.Imports)
	assert.Equal(t, 1, result.Complexity)
}

func TestExtractGenericForTunedLanguageWithoutExtractor(t *testing.T) {
	content := `package main

import "fmt"

func main() {
	fmt.Println("hi")
}
`

	result := Extract("main.go", content)

	assert.Equal(t, "Go", result.Language)
	assert.Equal(t, []string{"main"}, result.Functions)
	assert.Equal(t, []string{"fmt"}, result.Imports)
	assert.Equal(t, 0, result.Complexity)
}

func TestExtractUnknownExtensionUsesGenericUnknown(t *testing.T) {
	result := Extract("notes.txt", "just some text\n")

	assert.Equal(t, LanguageUnknown, result.Language)
	assert.Empty(t, result.Functions)
	assert.Equal(t, 2, result.Lines)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 1, countLines(""))
	assert.Equal(t, 1, countLines("one line"))
	assert.Equal(t, 3, countLines("a\nb\nc"))
	assert.Equal(t, 4, countLines("a\nb\nc\n"))
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	out := dedupe([]string{"b", "a", "b", "c", "a"})

	require.Equal(t, []string{"b", "a", "c"}, out)
}
