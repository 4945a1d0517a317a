package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PageHandler serves the main page behind the access gate and the public
// static assets (login page, scripts, styles) from the web directory.
type PageHandler struct {
	dir string
}

func NewPageHandler(dir string) *PageHandler {
	return &PageHandler{dir: dir}
}

// Root redirects to the main page; the gate has already let the user in.
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/index.html", http.StatusFound)
}

// Index serves the main page content.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}

// Static serves any other existing file under the web directory and
// falls through to the not-found page otherwise.
func (h *PageHandler) Static(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if strings.Contains(name, "..") {
		NotFound(w, r)
		return
	}

	file := filepath.Join(h.dir, filepath.FromSlash(name))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		NotFound(w, r)
		return
	}
	http.ServeFile(w, r, file)
}
