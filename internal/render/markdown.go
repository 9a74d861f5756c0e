package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// newMarkdown builds the goldmark instance shared by the markdown and
// notebook renderers. The link rewriter runs as an AST transformer so every
// destination passes through the canonical ingress pair before rendering.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(chromaStyle),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(linkRewriter{}, 900),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// markdown converts markdown source to HTML with links resolved against rc.
func (r *Renderer) markdown(rc Context, source []byte) (string, error) {
	pc := parser.NewContext()
	withLinkContext(pc, &LinkContext{Probe: rc.Probe, Doc: rc.Doc})

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// extractTitle pulls the first # heading from markdown content, or falls
// back to the file name.
func extractTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return fallback
}
