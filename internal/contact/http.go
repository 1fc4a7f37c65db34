// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/byteandblog/internal/platform/middleware"
	requestutil "github.com/taibuivan/byteandblog/internal/platform/request"
	"github.com/taibuivan/byteandblog/internal/platform/respond"
	"github.com/taibuivan/byteandblog/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves /api/contact. The collection path is public for every
// method; single messages need an authenticated principal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)
	router.Get("/", handler.listMessages)
	router.With(middleware.RequireAuth).Get("/{id}", handler.getMessage)

	return router
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := &Message{Name: input.Name, Email: input.Email, Message: input.Message}
	if err := handler.service.Submit(request.Context(), message); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, message)
}

func (handler *Handler) listMessages(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	messages, total, err := handler.service.ListMessages(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, messages, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMessage(writer http.ResponseWriter, request *http.Request) {
	messageID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.GetMessage(request.Context(), messageID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, message)
}
