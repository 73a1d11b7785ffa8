// Package report assembles the AI visibility report for one company.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/brandlens/ai-visibility/backend/internal/insight"
	"github.com/brandlens/ai-visibility/backend/internal/models"
	"github.com/brandlens/ai-visibility/backend/internal/ranking"
	"github.com/brandlens/ai-visibility/backend/internal/siteprobe"
)

type InsightProvider interface {
	GetInsights(ctx context.Context, companyName, website string) (string, error)
}

type RankingsProvider interface {
	GetRankings(ctx context.Context, query, location string) ([]byte, error)
}

type SiteProber interface {
	Probe(ctx context.Context, website string) siteprobe.Snapshot
}

type Options struct {
	// DefaultLocation is used when the insight does not name a market
	DefaultLocation string
	// Parallelism bounds concurrent searches. Values below 2 run them in order.
	Parallelism int
	// Prober is optional; when set the report carries a website snapshot
	Prober SiteProber
}

type Assembler struct {
	insights InsightProvider
	rankings RankingsProvider
	opts     Options
	logger   *logrus.Logger
}

func NewAssembler(insights InsightProvider, rankings RankingsProvider, opts Options, logger *logrus.Logger) *Assembler {
	if opts.DefaultLocation == "" {
		opts.DefaultLocation = "India"
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &Assembler{
		insights: insights,
		rankings: rankings,
		opts:     opts,
		logger:   logger,
	}
}

// Assemble produces the full report. Upstream failures degrade to default
// values; only a cancelled or expired context makes it return an error.
func (a *Assembler) Assemble(ctx context.Context, req models.ReportRequest) (*models.Report, error) {
	start := time.Now()
	log := a.logger.WithFields(logrus.Fields{
		"company": req.CompanyName,
		"website": req.Website,
	})

	in := a.fetchInsight(ctx, req, log)
	queries := in.Queries()
	location := in.SearchLocation(a.opts.DefaultLocation)

	log.WithFields(logrus.Fields{
		"queries":  len(queries),
		"location": location,
	}).Info("Running category searches")

	outcomes := a.searchAll(ctx, queries, req.Website, location, log)
	summary := Summarize(outcomes)

	var snapshot *siteprobe.Snapshot
	if a.opts.Prober != nil && strings.TrimSpace(req.Website) != "" {
		s := a.opts.Prober.Probe(ctx, req.Website)
		snapshot = &s
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("report generation aborted: %w", err)
	}

	report := Shape(req, in, summary, snapshot)

	log.WithFields(logrus.Fields{
		"score":            report.AIVisibilityScore,
		"ranking_presence": report.ScoreBreakdown.RankingScore,
		"ai_perception":    report.ScoreBreakdown.AIPerceptionScore,
		"info_depth":       report.ScoreBreakdown.InfoDepthScore,
		"appearing":        summary.Appearing,
		"duration":         time.Since(start).String(),
	}).Info("Report assembled")

	return report, nil
}

func (a *Assembler) fetchInsight(ctx context.Context, req models.ReportRequest, log *logrus.Entry) *insight.Insight {
	if a.insights == nil {
		return nil
	}

	text, err := a.insights.GetInsights(ctx, req.CompanyName, req.Website)
	if err != nil {
		log.WithError(err).Warn("AI insights unavailable, using defaults")
		return nil
	}

	in, err := insight.Parse(text)
	if err != nil {
		log.WithError(err).Warn("Failed to parse AI insights, using defaults")
		return nil
	}

	if len(in.Issues) > 0 {
		log.WithField("fields", in.Issues).Warn("Ignored malformed insight fields")
	}
	if problems, err := insight.Validate(in.Raw); err != nil {
		log.WithError(err).Debug("Insight schema check skipped")
	} else if len(problems) > 0 {
		details := make([]string, 0, len(problems))
		for _, p := range problems {
			details = append(details, p.String())
		}
		log.WithField("violations", details).Debug("Insight does not match the expected schema")
	}

	return in
}

// searchAll returns one outcome per query in query order
func (a *Assembler) searchAll(ctx context.Context, queries []string, website, location string, log *logrus.Entry) []ranking.RankingOutcome {
	outcomes := make([]ranking.RankingOutcome, len(queries))

	if a.opts.Parallelism < 2 || len(queries) < 2 {
		for i, query := range queries {
			outcomes[i] = a.searchOne(ctx, query, website, location, log)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(a.opts.Parallelism)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			outcomes[i] = a.searchOne(ctx, query, website, location, log)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (a *Assembler) searchOne(ctx context.Context, query, website, location string, log *logrus.Entry) ranking.RankingOutcome {
	qlog := log.WithField("query", query)

	if a.rankings == nil {
		return ranking.SearchFailed(query)
	}

	raw, err := a.rankings.GetRankings(ctx, query, location)
	if err != nil {
		qlog.WithError(err).Warn("Search failed for query")
		return ranking.SearchFailed(query)
	}

	outcome := ranking.ParseSearchResults(raw, website, query)
	qlog.WithFields(logrus.Fields{
		"appears": outcome.Appears,
		"rank":    outcome.Rank,
		"score":   ranking.RankToScore(outcome.Rank),
	}).Debug("Query ranked")
	return outcome
}
