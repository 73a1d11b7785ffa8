package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandlens/ai-visibility/backend/internal/insight"
	"github.com/brandlens/ai-visibility/backend/internal/ranking"
	"github.com/brandlens/ai-visibility/backend/pkg/utils"
)

// Cache key formats. The suffix is an md5 of the normalised inputs.
const (
	InsightKey = "insight:%s"
	SerpKey    = "serp:%s"
)

type insightSource interface {
	GetInsights(ctx context.Context, companyName, website string) (string, error)
}

type rankingSource interface {
	GetRankings(ctx context.Context, query, location string) ([]byte, error)
}

// CachedInsights serves insights from the store and falls through to the
// wrapped provider on a miss. Store errors are logged and never returned.
// Replies that do not parse as an insight are passed through uncached.
type CachedInsights struct {
	next   insightSource
	store  Store
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedInsights(next insightSource, store Store, ttl time.Duration, logger *logrus.Logger) *CachedInsights {
	return &CachedInsights{next: next, store: store, ttl: ttl, logger: logger}
}

func (c *CachedInsights) GetInsights(ctx context.Context, companyName, website string) (string, error) {
	key := fmt.Sprintf(InsightKey, digest(companyName, website))

	if data, ok := lookup(ctx, c.store, key, c.logger); ok {
		return string(data), nil
	}

	text, err := c.next.GetInsights(ctx, companyName, website)
	if err != nil {
		return "", err
	}

	if _, err := insight.Parse(text); err != nil {
		c.logger.WithError(err).WithField("key", key).Debug("Skipping cache for unparseable insight")
		return text, nil
	}
	save(ctx, c.store, key, []byte(text), c.ttl, c.logger)
	return text, nil
}

// CachedRankings is the SERP counterpart of CachedInsights. Only bodies
// with a result block are stored.
type CachedRankings struct {
	next   rankingSource
	store  Store
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedRankings(next rankingSource, store Store, ttl time.Duration, logger *logrus.Logger) *CachedRankings {
	return &CachedRankings{next: next, store: store, ttl: ttl, logger: logger}
}

func (c *CachedRankings) GetRankings(ctx context.Context, query, location string) ([]byte, error) {
	key := fmt.Sprintf(SerpKey, digest(query, location))

	if data, ok := lookup(ctx, c.store, key, c.logger); ok {
		return data, nil
	}

	body, err := c.next.GetRankings(ctx, query, location)
	if err != nil {
		return nil, err
	}

	if !ranking.HasResults(body) {
		c.logger.WithField("key", key).Debug("Skipping cache for empty SERP task")
		return body, nil
	}
	save(ctx, c.store, key, body, c.ttl, c.logger)
	return body, nil
}

func lookup(ctx context.Context, s Store, key string, logger *logrus.Logger) ([]byte, bool) {
	data, err := s.Get(ctx, key)
	switch {
	case err == nil:
		logger.WithField("key", key).Debug("Cache hit")
		return data, true
	case errors.Is(err, ErrMiss):
		logger.WithField("key", key).Debug("Cache miss")
	default:
		logger.WithError(err).WithField("key", key).Warn("Cache read failed")
	}
	return nil, false
}

func save(ctx context.Context, s Store, key string, value []byte, ttl time.Duration, logger *logrus.Logger) {
	if err := s.Set(ctx, key, value, ttl); err != nil {
		logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

func digest(parts ...string) string {
	normalised := make([]string, len(parts))
	for i, p := range parts {
		normalised[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return utils.MD5Hash(strings.Join(normalised, "|"))
}
