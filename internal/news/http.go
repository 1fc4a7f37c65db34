// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/byteandblog/internal/platform/middleware"
	"github.com/taibuivan/byteandblog/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves /api/news. Every endpoint needs an authenticated principal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/top-headlines", handler.topHeadlines)

	return router
}

func (handler *Handler) topHeadlines(writer http.ResponseWriter, request *http.Request) {
	headlines, err := handler.service.TopHeadlines(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The body is the bare NewsAPI shape, not the data envelope.
	respond.JSON(writer, http.StatusOK, headlines)
}
