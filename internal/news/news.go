// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package news proxies an external RSS feed and reshapes it into the
NewsAPI "top-headlines" body the frontend already understands.

# Caching

Responses are cached for a configurable TTL in Redis when available, or in
process memory otherwise. Concurrent cache misses share one upstream fetch.
*/
package news

import "regexp"

// Headlines is the NewsAPI-compatible response body.
type Headlines struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// Article is one feed entry.
type Article struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	PublishedAt string  `json:"publishedAt"`
	Source      Source  `json:"source"`
	Author      *string `json:"author"`
	URLToImage  *string `json:"urlToImage"`
}

type Source struct {
	Name string `json:"name"`
}

const (
	statusOK          = "ok"
	defaultSourceName = "NPR"
)

// imagePattern picks the first inline image out of an item's encoded content.
var imagePattern = regexp.MustCompile(`<img src='(.*?)'`)
