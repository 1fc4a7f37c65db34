// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses 1-based "page" and "limit" query parameters for
// the blog and contact listings and builds the "meta" block of the
// paginated response envelope.
package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	// DefaultLimit applies when "limit" is missing, malformed or below 1.
	DefaultLimit = 20
	// MaxLimit caps "limit"; larger values are clamped to it.
	MaxLimit = 100
	// DefaultPage is the first page.
	DefaultPage = 1
	// MaxPage caps "page" so (page-1)*limit fits a Postgres int4 OFFSET on any platform.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Params holds a sanitized page window.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip. Never negative.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the "meta" block of a paginated response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds the metadata for one page of total items.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

/*
FromRequest reads "page" and "limit" from the query string.

Rules:
  - page: missing, malformed or below 1 becomes [DefaultPage]; above [MaxPage] becomes [MaxPage]
  - limit: missing, malformed or below 1 becomes [DefaultLimit]; above [MaxLimit] becomes [MaxLimit]
*/
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	page := clamp(intOr(query.Get("page"), DefaultPage), DefaultPage, MaxPage)
	limit := clamp(intOr(query.Get("limit"), DefaultLimit), DefaultLimit, MaxLimit)

	return Params{Page: page, Limit: limit}
}

// clamp replaces values below 1 with fallback and caps the rest at upper.
func clamp(value, fallback, upper int) int {
	switch {
	case value < 1:
		return fallback
	case value > upper:
		return upper
	default:
		return value
	}
}

func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	// Anything that does not parse, including values beyond int range, falls back.
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
