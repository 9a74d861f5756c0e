package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hadocs/docs-addon/internal/docs"
	"github.com/hadocs/docs-addon/internal/ingress"
	"github.com/hadocs/docs-addon/internal/render"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathParam returns the unescaped wildcard tail of the matched route.
func pathParam(r *http.Request) string {
	raw := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return raw
}

// handleFolder returns the listing of one folder as JSON.
func (s *Server) handleFolder(w http.ResponseWriter, r *http.Request) {
	rel := "."
	if raw := pathParam(r); raw != "" {
		var err error
		rel, err = docs.SanitizeRelativePath(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	folder, err := s.store.ListFolder(rel)
	if err != nil {
		if errors.Is(err, docs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "folder not found")
			return
		}
		s.log.Error("listing folder", "path", rel, "error", err)
		writeError(w, http.StatusInternalServerError, "listing folder failed")
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// handleFile serves the raw bytes of one document.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	rel, err := docs.SanitizeRelativePath(pathParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := s.store.ReadFile(rel)
	if err != nil {
		if errors.Is(err, docs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.log.Error("reading file", "path", rel, "error", err)
		writeError(w, http.StatusInternalServerError, "reading file failed")
		return
	}

	ctype := mime.TypeByExtension(path.Ext(rel))
	if ctype == "" {
		ctype = http.DetectContentType(content)
	}
	w.Header().Set("Content-Type", ctype)
	w.Write(content)
}

// handleUpload accepts a multipart form with a "target_path" field naming
// the destination folder and one or more "files" parts, and writes them
// into the docs root.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.UploadEnabled {
		writeError(w, http.StatusForbidden, "uploads are disabled")
		return
	}

	maxBytes := s.cfg.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files[]"]
	if len(files) == 0 {
		files = r.MultipartForm.File["files"]
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files in upload")
		return
	}

	result, err := s.store.SaveUploads(r.FormValue("target_path"), files)
	if err != nil {
		s.log.Error("saving upload", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": result.Message()})
}

// handleViewer serves the document viewer page for / and /files/<path>.
// By the time decodeRoute has run, ingress and direct requests look the
// same here.
func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	probe := ingress.RequestProbe(r, s.cfg.IngressBaseURL)

	display := r.URL.Path
	if strings.Trim(strings.TrimPrefix(display, "/files"), "/") == "" {
		display = "/files/" + s.cfg.DefaultDocument
	}
	logical := ingress.LogicalFromDisplay(display)
	rel, err := docs.SanitizeRelativePath(strings.TrimPrefix(logical, ingress.APIFilePrefix))
	if err != nil {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	doc := ingress.NewDocContext()
	doc.Set(logical)

	content, err := s.store.ReadFile(rel)
	if err != nil {
		if errors.Is(err, docs.ErrNotFound) {
			s.renderViewer(w, http.StatusNotFound, probe, rel, render.Page{
				Title: "Not found",
				Body:  template.HTML("<p>Document <code>" + template.HTMLEscapeString(rel) + "</code> does not exist.</p>"),
			})
			return
		}
		s.log.Error("reading document", "path", rel, "error", err)
		http.Error(w, "reading document failed", http.StatusInternalServerError)
		return
	}

	page, err := s.renderer.Page(render.Context{Probe: probe, Doc: doc}, rel, content)
	if err != nil {
		s.log.Error("rendering document", "path", rel, "error", err)
		http.Error(w, "rendering document failed", http.StatusInternalServerError)
		return
	}

	s.renderViewer(w, http.StatusOK, probe, rel, page)
}

// renderViewer writes the full viewer page: sidebar tree plus rendered body.
func (s *Server) renderViewer(w http.ResponseWriter, status int, probe ingress.Probe, activeRel string, page render.Page) {
	tree, err := s.store.BuildTree(0)
	if err != nil {
		s.log.Error("building tree", "error", err)
		http.Error(w, "building navigation failed", http.StatusInternalServerError)
		return
	}

	sidebar := tree.ToHTML(activeRel, func(relPath string) string {
		return ingress.TransformURL(probe, ingress.DisplayURL(ingress.APIFilePrefix+relPath))
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	uploadURL := ""
	if s.cfg.UploadEnabled {
		uploadURL = ingress.TransformURL(probe, ingress.APIUploadPath)
	}
	if err := viewerTmpl.Execute(w, viewerData{
		Title:     page.Title,
		Sidebar:   template.HTML(sidebar),
		Body:      page.Body,
		Home:      ingress.TransformURL(probe, "/"),
		UploadURL: uploadURL,
	}); err != nil {
		s.log.Error("writing viewer page", "error", err)
	}
}
