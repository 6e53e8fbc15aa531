// Package http exposes the page-render pipeline and the QTI exporter over a
// small REST surface for hosts that drive the tool remotely.
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizmd/quizmd/internal/extract"
	"github.com/quizmd/quizmd/internal/markdown"
	"github.com/quizmd/quizmd/internal/qti"
	"github.com/quizmd/quizmd/internal/render"
	"github.com/quizmd/quizmd/internal/storage"
)

// POST /pages/render  { "page": "docs/intro.md", "markdown": "...", "meta": {...} }
// Runs both host extension points back to back: quiz blocks become rendered
// fragments, everything else goes through plain markdown conversion.
func RenderPageHandler(proc *render.PageProcessor, enabledByDefault bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Page     string         `json:"page"`
			Markdown string         `json:"markdown"`
			Meta     map[string]any `json:"meta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Page == "" {
			http.Error(w, "page required", http.StatusBadRequest)
			return
		}

		md := req.Markdown
		if render.Enabled(req.Meta, enabledByDefault) {
			md = proc.MarkdownPhase(req.Page, md, req.Meta)
		}
		html, err := markdown.RenderBlock(md)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		html = proc.ContentPhase(req.Page, html)

		_ = json.NewEncoder(w).Encode(map[string]string{"html": html})
	}
}

// POST /export?version=1.2|2.1  (multipart files=*.md, or form dir=<server path>)
// Streams the QTI package and, when a store is configured, persists a copy
// retrievable via GET /exports/{name}.
func ExportHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := r.URL.Query().Get("version")
		if version == "" {
			version = string(qti.V12)
		}

		dir, cleanup, err := collectInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer cleanup()

		collection, err := extract.FromDirectory(dir, true, "*.md")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		exporter, err := qti.New(version, collection)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pkg, err := qti.BuildPackage(exporter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		name := collection.Identifier + ".zip"
		if store != nil {
			if _, err := store.Put(name, bytes.NewReader(pkg)); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		http.ServeContent(w, r, name, time.Now(), bytes.NewReader(pkg))
	}
}

// GET /exports/{name}
func GetExportHandler(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		rc, err := store.Get(name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = io.Copy(w, rc)
	}
}

// collectInput resolves the export source: uploaded markdown files are
// written to a temp dir, otherwise a server-local directory may be named.
func collectInput(r *http.Request) (string, func(), error) {
	noop := func() {}
	if err := r.ParseMultipartForm(32 << 20); err == nil && r.MultipartForm != nil && len(r.MultipartForm.File["files"]) > 0 {
		tmp, err := os.MkdirTemp("", "quizmd-export-*")
		if err != nil {
			return "", noop, err
		}
		cleanup := func() { os.RemoveAll(tmp) }
		for _, hdr := range r.MultipartForm.File["files"] {
			f, err := hdr.Open()
			if err != nil {
				cleanup()
				return "", noop, err
			}
			dst, err := os.Create(filepath.Join(tmp, filepath.Base(hdr.Filename)))
			if err != nil {
				f.Close()
				cleanup()
				return "", noop, err
			}
			_, err = io.Copy(dst, f)
			f.Close()
			dst.Close()
			if err != nil {
				cleanup()
				return "", noop, err
			}
		}
		return tmp, cleanup, nil
	}
	if dir := r.FormValue("dir"); dir != "" {
		return dir, noop, nil
	}
	return "", noop, errors.New("files upload or dir value required")
}
