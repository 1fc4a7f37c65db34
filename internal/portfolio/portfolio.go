// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package portfolio manages showcased projects and their cover images.
package portfolio

import (
	"io"
	"time"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
)

// Item is a showcased project.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	ProjectURL  string    `json:"projectUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Image is an uploaded cover file as received from the client.
type Image struct {
	Name        string
	ContentType string
	Body        io.Reader
}

const (
	FieldTitle      = "title"
	FieldProjectURL = "projectUrl"
	FieldItem       = "item"
	FieldImage      = "image"
)

const titleMaxLen = 255

var ErrItemNotFound = apperr.NotFound("Portfolio item")
