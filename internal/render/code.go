package render

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// chromaStyle is shared between fenced-block highlighting and whole-file
// source rendering so both look the same.
const chromaStyle = "github"

// highlightFile renders a source file with a lexer chosen from its name.
func highlightFile(w io.Writer, filename, source string) error {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	return highlight(w, lexer, source)
}

// highlightLanguage renders source with a lexer chosen by language name,
// used for notebook code cells.
func highlightLanguage(w io.Writer, language, source string) error {
	return highlight(w, lexers.Get(language), source)
}

func highlight(w io.Writer, lexer chroma.Lexer, source string) error {
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(chromaStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("tokenising source: %w", err)
	}

	formatter := chromahtml.New(
		chromahtml.WithLineNumbers(true),
	)
	if err := formatter.Format(w, style, iterator); err != nil {
		return fmt.Errorf("formatting source: %w", err)
	}
	return nil
}
