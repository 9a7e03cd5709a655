package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PageHandler serves the prebuilt site pages from a directory. A request for
// /about is answered with about.html, or about/index.html, when present.
type PageHandler struct {
	root  string
	files http.Handler
}

func NewPageHandler(root string) *PageHandler {
	h := &PageHandler{root: root}
	if root != "" {
		h.files = http.FileServer(http.Dir(root))
	}
	return h
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		http.NotFound(w, r)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" && path.Ext(clean) == "" && !strings.HasSuffix(r.URL.Path, "/") {
		candidate := filepath.Join(h.root, filepath.FromSlash(clean)+".html")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			http.ServeFile(w, r, candidate)
			return
		}
	}

	h.files.ServeHTTP(w, r)
}
