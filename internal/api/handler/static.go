package handler

import (
	"net/http"
	"path/filepath"
)

const indexFile = "index.html"

// Index serve a landing page principal do diretório estático
func Index(staticDir string) http.HandlerFunc {
	indexPath := filepath.Join(staticDir, indexFile)

	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, indexPath)
	}
}
