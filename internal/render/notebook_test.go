package render

import (
	"strings"
	"testing"
)

const sampleNotebook = `{
  "cells": [
    {
      "cell_type": "markdown",
      "source": ["# Analysis\n", "\n", "See [notes](./notes.md)."]
    },
    {
      "cell_type": "code",
      "source": "print('hi')",
      "outputs": [
        {"output_type": "stream", "text": ["hi\n"]},
        {"output_type": "execute_result", "data": {"text/plain": ["42"]}}
      ]
    },
    {
      "cell_type": "raw",
      "source": ["<not rendered>"]
    }
  ],
  "metadata": {
    "kernelspec": {"language": "python"},
    "language_info": {"name": "python"}
  },
  "nbformat": 4
}`

func TestNotebookRendersCells(t *testing.T) {
	r := New()
	out, err := r.notebookHTML(directContext("/api/file/lab/analysis.ipynb"), []byte(sampleNotebook))
	if err != nil {
		t.Fatalf("notebookHTML: %v", err)
	}

	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Analysis") {
		t.Errorf("markdown cell not rendered:\n%s", out)
	}
	if !strings.Contains(out, `class="nb-cell nb-code"`) {
		t.Errorf("code cell missing:\n%s", out)
	}
	if !strings.Contains(out, `<pre class="nb-output">hi`) {
		t.Errorf("stream output missing:\n%s", out)
	}
	if !strings.Contains(out, "42") {
		t.Errorf("execute_result output missing:\n%s", out)
	}
	if !strings.Contains(out, "&lt;not rendered&gt;") {
		t.Errorf("raw cell not escaped:\n%s", out)
	}
}

func TestNotebookMarkdownLinksResolveAgainstDocument(t *testing.T) {
	r := New()
	out, err := r.notebookHTML(ingressContext("/api/file/lab/analysis.ipynb"), []byte(sampleNotebook))
	if err != nil {
		t.Fatalf("notebookHTML: %v", err)
	}
	want := `href="?route=%2Ffiles%2Flab%2Fnotes.md"`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %s:\n%s", want, out)
	}
}

func TestNotebookSourceAcceptsBothEncodings(t *testing.T) {
	var s sourceLines
	if err := s.UnmarshalJSON([]byte(`"one line"`)); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if s.String() != "one line" {
		t.Errorf("string form = %q", s.String())
	}
	if err := s.UnmarshalJSON([]byte(`["a\n", "b"]`)); err != nil {
		t.Fatalf("list form: %v", err)
	}
	if s.String() != "a\nb" {
		t.Errorf("list form = %q", s.String())
	}
}

func TestNotebookRejectsInvalidJSON(t *testing.T) {
	r := New()
	if _, err := r.notebookHTML(directContext("/api/file/x.ipynb"), []byte("not json")); err == nil {
		t.Fatal("expected error for invalid notebook")
	}
}
