package render

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/hadocs/docs-addon/internal/ingress"
)

var linkContextKey = parser.NewContextKey()

// LinkContext carries the environment the link rewriter needs: the ingress
// probe for URL transformation and the document context relative links
// resolve against.
type LinkContext struct {
	Probe ingress.Probe
	Doc   *ingress.DocContext
}

// withLinkContext attaches lc to a goldmark parser context.
func withLinkContext(pc parser.Context, lc *LinkContext) {
	pc.Set(linkContextKey, lc)
}

// linkRewriter walks the parsed document and rewrites every link and image
// destination through the one canonical transformer/resolver pair. Renderers
// never do their own path math.
type linkRewriter struct{}

func (linkRewriter) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	lc, ok := pc.Get(linkContextKey).(*LinkContext)
	if !ok {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = []byte(lc.rewriteHref(string(v.Destination)))
		case *ast.Image:
			v.Destination = []byte(lc.rewriteResource(string(v.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// rewriteHref maps an author-written link target to a navigable URL.
// Internal markdown links become display URLs handled by the viewer;
// other relative targets are fetched through the file API; anchors and
// external URLs pass through (the transformer leaves foreign origins alone).
func (lc *LinkContext) rewriteHref(raw string) string {
	if raw == "" || strings.HasPrefix(raw, "#") {
		return raw
	}
	if ingress.ClassifyLink(raw) == ingress.LinkInternal {
		logical := lc.Doc.Resolve(raw)
		return ingress.TransformURL(lc.Probe, ingress.DisplayURL(logical))
	}
	return lc.rewriteResource(raw)
}

// rewriteResource maps an embedded resource reference (image src, PDF link)
// to its fetchable URL.
func (lc *LinkContext) rewriteResource(raw string) string {
	if raw == "" || strings.HasPrefix(raw, "#") {
		return raw
	}
	if isRelativeTarget(raw) {
		raw = lc.Doc.Resolve(raw)
	}
	return ingress.TransformURL(lc.Probe, raw)
}

// isRelativeTarget reports whether the raw attribute is relative to the
// current document rather than site-rooted or scheme-qualified.
func isRelativeTarget(raw string) bool {
	if strings.HasPrefix(raw, "/") {
		return false
	}
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "data:") {
		return false
	}
	return true
}
