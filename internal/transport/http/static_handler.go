package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apierrors "adrecon/internal/errors"
)

// StaticHandler serves the single page front-end from webDir
type StaticHandler struct {
	webDir       string
	files        http.Handler
	errorHandler *apierrors.ErrorHandler
}

// NewStaticHandler creates a handler rooted at webDir
func NewStaticHandler(webDir string, errorHandler *apierrors.ErrorHandler) *StaticHandler {
	return &StaticHandler{
		webDir:       webDir,
		files:        http.FileServer(http.Dir(webDir)),
		errorHandler: errorHandler,
	}
}

// ServeHTTP serves index.html for "/" and the asset otherwise
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		h.serveIndex(w, r)
		return
	}

	clean := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	info, err := os.Stat(filepath.Join(h.webDir, clean))
	if err != nil || info.IsDir() {
		h.errorHandler.NotFound(w, r)
		return
	}

	h.files.ServeHTTP(w, r)
}

func (h *StaticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	indexPath := filepath.Join(h.webDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		h.errorHandler.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, indexPath)
}
