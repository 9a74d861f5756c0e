package ingress

import "strings"

// DefaultDocument is the logical path shown when no navigation has happened.
const DefaultDocument = APIFilePrefix + "index.md"

// LinkClass says whether the viewer handles a link itself or leaves it to the
// browser.
type LinkClass int

const (
	// LinkExternal links are left to default browser navigation.
	LinkExternal LinkClass = iota
	// LinkInternal links are resolved and rendered by the viewer.
	LinkInternal
)

// ClassifyLink decides, from the raw author-written href attribute, whether a
// link is an internal markdown navigation. Only the raw attribute is reliable
// here: a browser-resolved href is always absolute and would misclassify
// every relative link.
//
// Internal links end in ".md" and are either explicitly relative ("./x.md",
// "../x.md") or a bare file name with no separator and no scheme. Anything
// else — foreign origins, images, deep site paths — is not intercepted.
func ClassifyLink(rawHref string) LinkClass {
	if !strings.HasSuffix(rawHref, ".md") {
		return LinkExternal
	}
	if strings.HasPrefix(rawHref, "./") || strings.HasPrefix(rawHref, "../") {
		return LinkInternal
	}
	if !strings.ContainsRune(rawHref, '/') && !isAbsoluteURL(rawHref) {
		return LinkInternal
	}
	return LinkExternal
}

// DocContext tracks the logical path of the document currently displayed. It
// is the base every relative link inside that document resolves against, and
// it is overwritten — never cleared — on each successful navigation.
type DocContext struct {
	path string
}

// NewDocContext returns a context pointing at the default document.
func NewDocContext() *DocContext {
	return &DocContext{path: DefaultDocument}
}

// Path returns the logical path of the current document.
func (c *DocContext) Path() string { return c.path }

// Set records a navigation. Transformed paths are decoded so the context
// always holds a logical path.
func (c *DocContext) Set(path string) {
	if decoded, ok := DecodeRoute(path); ok {
		path = decoded
	}
	if path == "" {
		path = DefaultDocument
	}
	c.path = path
}

// Resolve maps a raw in-document href to the logical path of its target.
func (c *DocContext) Resolve(rawHref string) string {
	return ResolveRelativePath(rawHref, c.path)
}

// DisplayURL is the human-readable history URL for the current document.
func (c *DocContext) DisplayURL() string {
	return DisplayURL(c.path)
}

// DisplayURL converts a logical file path into the browser-visible
// /files/<path> form pushed to history. The display URL is never fetched
// directly; rendering always uses the tracked logical path.
func DisplayURL(logicalPath string) string {
	_, rest := splitAPIPrefix(logicalPath)
	return "/files/" + rest
}

// LogicalFromDisplay is the inverse of DisplayURL: it recovers the logical
// API file path named by a /files/<path> URL.
func LogicalFromDisplay(displayPath string) string {
	rest := strings.TrimPrefix(displayPath, "/files")
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return DefaultDocument
	}
	return APIFilePrefix + rest
}
