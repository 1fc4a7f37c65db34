// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portfolio

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
	"github.com/taibuivan/byteandblog/internal/platform/constants"
	"github.com/taibuivan/byteandblog/internal/platform/middleware"
	requestutil "github.com/taibuivan/byteandblog/internal/platform/request"
	"github.com/taibuivan/byteandblog/internal/platform/respond"
	"github.com/taibuivan/byteandblog/internal/platform/sec"
	"github.com/taibuivan/byteandblog/internal/platform/validate"
)

const msgItemDeleted = "Portfolio item deleted"

var errUploadTooLarge = apperr.New("PAYLOAD_TOO_LARGE", "Upload exceeds the size limit", http.StatusRequestEntityTooLarge)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves /api/portfolio. Listing is public, creation needs ADMIN and
// everything else an authenticated principal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listItems)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createItem)

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/{id}", handler.getItem)
		authRoute.Delete("/{id}", handler.deleteItem)
	})

	return router
}

func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.ListItems(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}

func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	itemID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetItem(request.Context(), itemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

/*
createItem accepts a multipart body with two parts:

  - item: the JSON item (as a form field or a file part)
  - image: the cover file

POST /api/portfolio
*/
func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadSize)

	if err := request.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, errUploadTooLarge)
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldItem, "Expected a multipart/form-data body"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	rawItem, err := itemPart(request.MultipartForm)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var item Item
	if err := json.Unmarshal(rawItem, &item); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var image *Image
	if file, header, err := request.FormFile(FieldImage); err == nil {
		defer file.Close()
		image = &Image{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	if err := handler.service.CreateItem(request.Context(), &item, image); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

// itemPart finds the JSON item among the form fields or the file parts.
func itemPart(form *multipart.Form) ([]byte, error) {
	if values := form.Value[FieldItem]; len(values) > 0 {
		return []byte(values[0]), nil
	}

	if files := form.File[FieldItem]; len(files) > 0 {
		file, err := files[0].Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		return io.ReadAll(file)
	}

	return nil, validate.RequiredError(FieldItem, "Item part is required")
}

func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	itemID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteItem(request.Context(), itemID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, msgItemDeleted)
}
