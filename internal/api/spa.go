// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/byteandblog/internal/platform/middleware"
)

const indexFile = "index.html"

// SPAHandler serves the single-page frontend and user uploads.
//
// # Routing
//
//   - /uploads/*: files from the upload directory.
//   - /static/*: files from the static directory.
//   - other paths with an extension: files from the static directory.
//   - any other GET: index.html, so client-side routes survive a reload.
type SPAHandler struct {
	uploads http.Dir
	static  http.Dir
}

func NewSPAHandler(uploadDir, staticDir string) *SPAHandler {
	return &SPAHandler{uploads: http.Dir(uploadDir), static: http.Dir(staticDir)}
}

// Mount registers the frontend routes and takes over the router's NotFound.
// Call it after every other route group.
func (handler *SPAHandler) Mount(router chi.Router) {
	router.Get("/uploads/*", handler.upload)
	router.Get("/static/*", handler.asset)
	router.NotFound(handler.fallback)
}

func (handler *SPAHandler) upload(writer http.ResponseWriter, request *http.Request) {
	if !serveFile(writer, request, handler.uploads, chi.URLParam(request, "*")) {
		http.NotFound(writer, request)
	}
}

// asset keeps the request path, so /static/js/app.js maps to <static>/static/js/app.js.
func (handler *SPAHandler) asset(writer http.ResponseWriter, request *http.Request) {
	if !serveFile(writer, request, handler.static, request.URL.Path) {
		http.NotFound(writer, request)
	}
}

func (handler *SPAHandler) fallback(writer http.ResponseWriter, request *http.Request) {

	// Writes outside /api are never public.
	if request.Method != http.MethodGet && request.Method != http.MethodHead {
		middleware.RequireAuth(http.HandlerFunc(apiNotFound)).ServeHTTP(writer, request)
		return
	}

	name := request.URL.Path
	if path.Ext(name) == "" {
		name = indexFile
	}

	if !serveFile(writer, request, handler.static, name) {
		http.NotFound(writer, request)
	}
}

// serveFile writes a regular file from root and reports whether one existed.
// Directories are never listed.
func serveFile(writer http.ResponseWriter, request *http.Request, root http.Dir, name string) bool {
	file, err := root.Open(path.Clean("/" + name))
	if err != nil {
		return false
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(writer, request, info.Name(), info.ModTime(), file)
	return true
}
