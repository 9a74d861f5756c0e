package server

import (
	_ "embed"
	"html/template"
)

//go:embed viewer.html
var viewerHTML string

var viewerTmpl = template.Must(template.New("viewer").Parse(viewerHTML))

// viewerData feeds viewer.html. Sidebar and Body are pre-rendered fragments.
type viewerData struct {
	Title     string
	Sidebar   template.HTML
	Body      template.HTML
	Home      string
	UploadURL string // "" when uploads are disabled
}
