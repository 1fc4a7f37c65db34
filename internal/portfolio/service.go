// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/ctxutil"
	"github.com/taibuivan/byteandblog/internal/platform/dberr"
	"github.com/taibuivan/byteandblog/internal/platform/storage"
	"github.com/taibuivan/byteandblog/internal/platform/validate"
)

type Service struct {
	repo     Repository
	uploader storage.Uploader
	now      func() time.Time
}

func NewService(repo Repository, uploader storage.Uploader) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		now:      time.Now,
	}
}

func (service *Service) ListItems(context context.Context) ([]*Item, error) {
	return service.repo.ListItems(context)
}

func (service *Service) GetItem(context context.Context, id int64) (*Item, error) {
	item, err := service.repo.GetItem(context, id)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

/*
CreateItem stores the cover image and then the item pointing at it.

Parameters:
  - context: context.Context
  - item: *Item (ID, ImageURL and CreatedAt are assigned)
  - image: *Image (required)

Returns:
  - error: Validation, upload or storage errors
*/
func (service *Service) CreateItem(context context.Context, item *Item, image *Image) error {
	item.Title = strings.TrimSpace(item.Title)
	item.ProjectURL = strings.TrimSpace(item.ProjectURL)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, item.Title).
		MaxLen(FieldTitle, item.Title, titleMaxLen).
		URL(FieldProjectURL, item.ProjectURL).
		Custom(FieldImage, image == nil, "Image file is required")

	if err := validator.Err(); err != nil {
		return err
	}

	logger := ctxutil.GetLogger(context)

	imageURL, err := service.uploader.Upload(context, image.Name, image.ContentType, image.Body)
	if errors.Is(err, storage.ErrEmptyFile) {
		return validate.RequiredError(FieldImage, "Image file is empty")
	}
	if err != nil {
		return fmt.Errorf("portfolio_service_upload_failed: %w", err)
	}

	item.ImageURL = imageURL
	item.CreatedAt = service.now().UTC()

	if err := service.repo.CreateItem(context, item); err != nil {
		logger.ErrorContext(context, "portfolio_item_orphaned_image", slog.String("image_url", imageURL))
		return err
	}

	logger.InfoContext(context, "portfolio_item_created",
		slog.Int64("item_id", item.ID),
		slog.String("title", item.Title),
	)
	return nil
}

func (service *Service) DeleteItem(context context.Context, id int64) error {
	if err := service.repo.DeleteItem(context, id); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	ctxutil.GetLogger(context).WarnContext(context, "portfolio_item_deleted", slog.Int64("item_id", id))
	return nil
}
