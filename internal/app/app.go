// Package app builds the report pipeline from configuration. It is shared by
// the HTTP server and the one-shot CLI.
package app

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/brandlens/ai-visibility/backend/internal/cache"
	"github.com/brandlens/ai-visibility/backend/internal/config"
	"github.com/brandlens/ai-visibility/backend/internal/dataforseo"
	"github.com/brandlens/ai-visibility/backend/internal/llm"
	"github.com/brandlens/ai-visibility/backend/internal/report"
	"github.com/brandlens/ai-visibility/backend/internal/siteprobe"
)

type App struct {
	Assembler *report.Assembler
	// Cache is nil when caching is disabled or Redis is unreachable
	Cache *cache.RedisStore

	closers []io.Closer
}

// Build never fails on missing credentials or an unreachable cache: the
// affected step is logged and reports fall back to default values.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *App {
	a := &App{}

	for _, problem := range cfg.ValidateProviders() {
		logger.WithError(problem).Warn("Provider not configured, reports will use defaults")
	}

	var completer llm.Completer
	c, err := llm.NewCompleter(ctx, cfg)
	if err != nil {
		logger.WithError(err).Warn("LLM completer unavailable")
	} else {
		completer = c
		if closer, ok := c.(io.Closer); ok {
			a.closers = append(a.closers, closer)
		}
	}

	var insights report.InsightProvider = llm.NewInsightService(completer, logger)
	var rankings report.RankingsProvider = dataforseo.NewClient(dataforseo.Options{
		BaseURL:  cfg.DataForSEO.BaseURL,
		Login:    cfg.DataForSEO.Login,
		Password: cfg.DataForSEO.Password,
		Language: cfg.Search.Language,
		Depth:    cfg.Search.Depth,
		Timeout:  cfg.DataForSEO.Timeout,
		RPM:      cfg.DataForSEO.RPM,
	}, logger)

	if cfg.Cache.Enabled {
		store, err := cache.NewRedisStore(cfg.Redis.URL, logger)
		if err != nil {
			logger.WithError(err).Warn("Cache disabled")
		} else {
			a.Cache = store
			a.closers = append(a.closers, store)
			insights = cache.NewCachedInsights(insights, store, cfg.Cache.TTL, logger)
			rankings = cache.NewCachedRankings(rankings, store, cfg.Cache.TTL, logger)
		}
	}

	opts := report.Options{
		DefaultLocation: cfg.Search.Location,
		Parallelism:     cfg.Search.Parallelism,
	}
	if cfg.Probe.Enabled {
		opts.Prober = siteprobe.NewProber(cfg.Probe.Timeout, logger)
	}

	a.Assembler = report.NewAssembler(insights, rankings, opts, logger)
	return a
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}
