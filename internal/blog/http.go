// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/byteandblog/internal/platform/middleware"
	requestutil "github.com/taibuivan/byteandblog/internal/platform/request"
	"github.com/taibuivan/byteandblog/internal/platform/respond"
	"github.com/taibuivan/byteandblog/internal/platform/sec"
	"github.com/taibuivan/byteandblog/pkg/pagination"
)

const (
	msgPostDeleted    = "Blog post deleted"
	msgCommentDeleted = "Comment deleted"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PostRoutes serves /api/blog.
//
// # Endpoints
//   - GET    /     : public, paginated, newest first
//   - GET    /{id} : public
//   - POST   /     : ADMIN
//   - PUT    /{id} : authenticated
//   - DELETE /{id} : authenticated
func (handler *Handler) PostRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPosts)
	router.Get("/{id}", handler.getPost)

	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createPost)

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Put("/{id}", handler.updatePost)
		authRoute.Delete("/{id}", handler.deletePost)
	})

	return router
}

// CommentRoutes serves /api/comments.
//
// # Endpoints
//   - GET    /post/{postId} : public, oldest first
//   - POST   /              : authenticated
//   - DELETE /{id}          : authenticated
func (handler *Handler) CommentRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/post/{postId}", handler.listComments)

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createComment)
		authRoute.Delete("/{id}", handler.deleteComment)
	})

	return router
}

// # Posts

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.ListPosts(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.GetPost(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input Post
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreatePost(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Post
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdatePost(request.Context(), postID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePost(request.Context(), postID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, msgPostDeleted)
}

// # Comments

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	postID, err := requestutil.ID(request, "postId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListComments(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	var input Comment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateComment(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, msgCommentDeleted)
}
