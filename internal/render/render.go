package render

import (
	"fmt"
	"html"
	"html/template"
	"path"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/hadocs/docs-addon/internal/ingress"
)

// Renderer turns raw document bytes into viewer-ready HTML fragments.
type Renderer struct {
	md goldmark.Markdown
}

func New() *Renderer {
	return &Renderer{md: newMarkdown()}
}

// Context is the per-request environment a render runs in.
type Context struct {
	Probe ingress.Probe
	Doc   *ingress.DocContext
}

// Page is a rendered document ready for template injection.
type Page struct {
	Title string
	Body  template.HTML
}

var (
	imageExts = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".svg": true, ".webp": true, ".bmp": true, ".ico": true,
	}
	audioExts = map[string]bool{
		".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".flac": true,
	}
	sourceExts = map[string]bool{
		".go": true, ".py": true, ".js": true, ".ts": true, ".jsx": true,
		".tsx": true, ".rs": true, ".c": true, ".h": true, ".cpp": true,
		".hpp": true, ".java": true, ".kt": true, ".rb": true, ".php": true,
		".sh": true, ".bash": true, ".zsh": true, ".sql": true, ".yaml": true,
		".yml": true, ".toml": true, ".ini": true, ".json": true, ".xml": true,
		".css": true, ".scss": true, ".dockerfile": true, ".tf": true,
		".txt": true, ".log": true, ".csv": true, ".conf": true,
	}
)

// Page renders the document at relPath. Dispatch is by file extension:
// markdown and notebooks get full pipelines, media types get a viewer
// element whose source URL goes through the transformer, and anything
// else falls back to highlighted or escaped text.
func (r *Renderer) Page(rc Context, relPath string, content []byte) (Page, error) {
	name := path.Base(relPath)
	ext := strings.ToLower(path.Ext(relPath))
	fileURL := ingress.TransformURL(rc.Probe, ingress.APIFilePrefix+relPath)

	switch {
	case ext == ".md" || ext == ".markdown":
		body, err := r.markdown(rc, content)
		if err != nil {
			return Page{}, err
		}
		return Page{
			Title: extractTitle(string(content), name),
			Body:  template.HTML(body),
		}, nil

	case ext == ".ipynb":
		body, err := r.notebookHTML(rc, content)
		if err != nil {
			return Page{}, err
		}
		return Page{Title: name, Body: template.HTML(body)}, nil

	case imageExts[ext]:
		body := fmt.Sprintf(`<img class="doc-image" src=%q alt=%q>`, fileURL, name)
		return Page{Title: name, Body: template.HTML(body)}, nil

	case ext == ".pdf":
		body := fmt.Sprintf(`<embed class="doc-pdf" src=%q type="application/pdf">`, fileURL)
		return Page{Title: name, Body: template.HTML(body)}, nil

	case audioExts[ext]:
		body := fmt.Sprintf(`<audio class="doc-audio" controls src=%q></audio>`, fileURL)
		return Page{Title: name, Body: template.HTML(body)}, nil

	case ext == ".html" || ext == ".htm":
		body := fmt.Sprintf(`<iframe class="doc-frame" src=%q sandbox="allow-same-origin"></iframe>`, fileURL)
		return Page{Title: name, Body: template.HTML(body)}, nil

	case sourceExts[ext] || isTextual(content):
		var b strings.Builder
		if err := highlightFile(&b, name, string(content)); err != nil {
			return Page{}, err
		}
		return Page{Title: name, Body: template.HTML(b.String())}, nil

	default:
		body := fmt.Sprintf(`<p>No preview available for <code>%s</code>. <a href=%q>Download</a></p>`,
			html.EscapeString(name), fileURL)
		return Page{Title: name, Body: template.HTML(body)}, nil
	}
}

// isTextual applies a cheap binary sniff so unknown extensions with text
// content still get the source view instead of the download fallback.
func isTextual(content []byte) bool {
	limit := len(content)
	if limit > 1024 {
		limit = 1024
	}
	for _, b := range content[:limit] {
		if b == 0 {
			return false
		}
	}
	return true
}
