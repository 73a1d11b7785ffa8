package report

import (
	"fmt"
	"strings"

	"github.com/brandlens/ai-visibility/backend/internal/insight"
	"github.com/brandlens/ai-visibility/backend/internal/models"
	"github.com/brandlens/ai-visibility/backend/internal/ranking"
	"github.com/brandlens/ai-visibility/backend/internal/siteprobe"
)

const unknownCompany = "Unknown"

// Shape builds the final report. It is pure: the same request, insight and
// summary always produce the same report.
func Shape(req models.ReportRequest, in *insight.Insight, summary Summary, snapshot *siteprobe.Snapshot) *models.Report {
	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		name = unknownCompany
	}

	components := ranking.ScoreComponents{
		RankingScore:      summary.RankingScore,
		AIPerceptionScore: ranking.PerceptionLevelToScore(in.Visibility()),
		InfoDepthScore:    ranking.InfoDepthToScore(in.Depth()),
	}
	composite := ranking.CompositeScore(components)

	rankings := make([]models.RankingEntry, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		rankings = append(rankings, models.RankingEntry{
			Query:   outcome.Query,
			Appears: outcome.Appears,
			Rank:    outcome.Rank,
		})
	}

	var (
		knowledge   *models.AIKnowledge
		competitors *models.CompetitorLists
		recs        []models.Recommendation
		raw         []byte
	)
	if in != nil {
		knowledge, competitors, recs, raw = in.AIKnowledge, in.Competitors, in.Recommendations, in.Raw
	}

	recommendations := insight.RecommendationsWithDefaults(recs)
	if recommendations == nil {
		recommendations = fallbackRecommendations(summary.Appearing, len(rankings), in.Visibility(), in.Depth())
	}

	return &models.Report{
		CompanyName:       name,
		Website:           req.Website,
		Summary:           in.SummaryFor(name),
		AIVisibilityScore: composite,
		ScoreBreakdown:    components,
		QualitativeSummary: models.QualitativeSummary{
			VisibilityLevel:  in.Visibility(),
			SentimentClass:   in.Sentiment(),
			InformationDepth: in.Depth(),
		},
		VisibilityScore:      composite,
		Sentiment:            ranking.SentimentClassToDistribution(in.Sentiment()),
		SentimentInsights:    in.SentimentInsights(),
		SentimentExplanation: in.ExplanationFor(name),
		Rankings:             rankings,
		SearchCompetitors:    summary.Competitors,
		AIKnowledge:          insight.KnowledgeWithDefaults(knowledge),
		Competitors:          insight.CompetitorsWithDefaults(competitors),
		Recommendations:      recommendations,
		WebsiteSnapshot:      snapshot,
		RawData: models.RawData{
			CategoryQueries:  in.Queries(),
			AIInsights:       raw,
			RankingsDetailed: summary.Outcomes,
		},
	}
}

func fallbackRecommendations(appearing, total int, visibility, depth string) []models.Recommendation {
	return []models.Recommendation{
		{
			Title:       "Improve Category-Level Search Visibility",
			Description: fmt.Sprintf("Appearing in %d out of %d category queries. Focus on SEO optimization for missing queries.", appearing, total),
			Priority:    "high",
			Trigger:     "Low ranking presence in category searches",
		},
		{
			Title:       "Enhance AI Perception",
			Description: fmt.Sprintf("Current level: %s. Increase public content and structured data to improve AI understanding.", visibility),
			Priority:    "high",
			Trigger:     "Limited AI visibility level",
		},
		{
			Title:       "Expand Information Depth",
			Description: fmt.Sprintf("Current depth: %s. Add comprehensive details about services, pricing, and case studies.", depth),
			Priority:    "medium",
			Trigger:     "Limited information depth detected",
		},
	}
}
