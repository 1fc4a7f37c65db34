// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/byteandblog/internal/platform/apperr"
	"github.com/taibuivan/byteandblog/internal/platform/constants"
	"github.com/taibuivan/byteandblog/internal/platform/ctxutil"
)

const fetchTimeout = 10 * time.Second

type Service struct {
	feedURL    string
	cacheKey   string
	cache      Cache
	ttl        time.Duration
	sourceName string
	parser     *gofeed.Parser
	group      singleflight.Group
}

type Option func(*Service)

// WithHTTPClient sets the client used to download the feed.
func WithHTTPClient(client *http.Client) Option {
	return func(service *Service) { service.parser.Client = client }
}

// WithSourceName overrides the source.name reported for every article.
func WithSourceName(name string) Option {
	return func(service *Service) { service.sourceName = name }
}

/*
NewService creates the proxy for one feed.

Parameters:
  - feedURL: string (RSS or Atom)
  - cache: Cache
  - ttl: time.Duration (zero disables caching)
*/
func NewService(feedURL string, cache Cache, ttl time.Duration, opts ...Option) *Service {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: fetchTimeout}

	service := &Service{
		feedURL:    feedURL,
		cacheKey:   constants.RedisPrefixNews + strconv.FormatUint(xxhash.Sum64String(feedURL), 16),
		cache:      cache,
		ttl:        ttl,
		sourceName: defaultSourceName,
		parser:     parser,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

/*
TopHeadlines returns the current feed, from cache when fresh.

Returns:
  - *Headlines: NewsAPI-shaped body
  - error: 502 UPSTREAM_ERROR when the feed cannot be fetched or parsed
*/
func (service *Service) TopHeadlines(ctx context.Context) (*Headlines, error) {
	logger := ctxutil.GetLogger(ctx)

	if cached, ok := service.fromCache(ctx); ok {
		logger.DebugContext(ctx, "news_cache_hit")
		return cached, nil
	}

	// Waiters share the leader's fetch, which must outlive a caller that goes away.
	result, err, _ := service.group.Do(service.cacheKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		headlines, err := service.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		service.store(fetchCtx, headlines)
		return headlines, nil
	})
	if err != nil {
		logger.ErrorContext(ctx, "news_fetch_failed", slog.Any("error", err))
		return nil, apperr.BadGateway("Failed to fetch news", err)
	}

	headlines := result.(*Headlines)

	logger.InfoContext(ctx, "news_fetched", slog.Int("articles", headlines.TotalResults))
	return headlines, nil
}

func (service *Service) fetch(ctx context.Context) (*Headlines, error) {
	feed, err := service.parser.ParseURLWithContext(service.feedURL, ctx)
	if err != nil {
		return nil, err
	}
	return service.toHeadlines(feed), nil
}

func (service *Service) fromCache(ctx context.Context) (*Headlines, bool) {
	if service.ttl <= 0 {
		return nil, false
	}

	raw, found, err := service.cache.Get(ctx, service.cacheKey)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "news_cache_read_failed", slog.Any("error", err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	headlines := &Headlines{}
	if err := json.Unmarshal(raw, headlines); err != nil {
		return nil, false
	}
	return headlines, true
}

func (service *Service) store(ctx context.Context, headlines *Headlines) {
	if service.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(headlines)
	if err != nil {
		return
	}
	if err := service.cache.Set(ctx, service.cacheKey, raw, service.ttl); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "news_cache_write_failed", slog.Any("error", err))
	}
}

// # Mapping

func (service *Service) toHeadlines(feed *gofeed.Feed) *Headlines {
	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, service.toArticle(item))
	}

	return &Headlines{
		Status:       statusOK,
		TotalResults: len(articles),
		Articles:     articles,
	}
}

func (service *Service) toArticle(item *gofeed.Item) Article {
	article := Article{
		Title:       item.Title,
		Description: item.Description,
		URL:         item.Link,
		Source:      Source{Name: service.sourceName},
		Author:      authorOf(item),
		URLToImage:  imageOf(item),
	}

	switch {
	case item.PublishedParsed != nil:
		article.PublishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	default:
		article.PublishedAt = item.Published
	}

	return article
}

func authorOf(item *gofeed.Item) *string {
	for _, person := range item.Authors {
		if person != nil && person.Name != "" {
			name := person.Name
			return &name
		}
	}
	return nil
}

// imageOf prefers the first inline image of the encoded content, then the
// item's own image.
func imageOf(item *gofeed.Item) *string {
	if match := imagePattern.FindStringSubmatch(item.Content); match != nil {
		return &match[1]
	}
	if item.Image != nil && item.Image.URL != "" {
		url := item.Image.URL
		return &url
	}
	return nil
}
