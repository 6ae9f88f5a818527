package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

const IndexPath = "/static/index.html"

// RegisterStatic redirects the root to the front-end and serves dir under /static/.
func RegisterStatic(r chi.Router, dir string) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, IndexPath, http.StatusFound)
	})
	// http.FileServer would redirect .../index.html to the directory.
	r.Get(IndexPath, func(w http.ResponseWriter, r *http.Request) {
		f, err := os.Open(filepath.Join(dir, "index.html"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			http.Error(w, "Failed to read index", http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, "index.html", info.ModTime(), f)
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
}
