// Package web embeds the browser shell served at the root of the API.
package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"time"
)

//go:embed static
var files embed.FS

// Handler serves the shell. The root, /index.html and any unknown path all
// answer with index.html directly, without the redirect http.FileServer
// issues for index files.
func Handler() http.Handler {
	static, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}

	index, err := fs.ReadFile(static, "index.html")
	if err != nil {
		panic(err)
	}

	fileServer := http.FileServerFS(static)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[1:]
		if name != "" && name != "index.html" {
			if _, err := fs.Stat(static, name); err == nil {
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(index))
	})
}
