package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler отдаёт собранный фронтенд-бандл.
//
// Существующий файл отдаётся как есть; любой другой путь получает
// index.html — маршрутизацией занимается SPA на клиенте.
func SPAHandler(staticDir string) http.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		// нормализуем путь, чтобы нельзя было выйти за пределы staticDir
		rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
		if rel == "" {
			http.ServeFile(w, r, index)
			return
		}

		full := filepath.Join(staticDir, rel)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			http.ServeFile(w, r, full)
			return
		}

		http.ServeFile(w, r, index)
	}
}
