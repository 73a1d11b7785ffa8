package insight

import (
	"fmt"
	"strings"

	"github.com/brandlens/ai-visibility/backend/internal/models"
)

const (
	DefaultVisibilityLevel  = "Low"
	DefaultSentimentClass   = "Neutral"
	DefaultInformationDepth = "Limited"
	DefaultKnowledgeLevel   = "Limited"
	DefaultPriority         = "medium"
)

var knowledgeSummaries = struct {
	about, services, pricing, caseStudies, testimonials, idealCustomer, differentiators string
}{
	about:           "Limited information available about this company.",
	services:        "AI has limited knowledge of specific products or services offered.",
	pricing:         "Pricing information is not well-documented in public sources accessible to AI.",
	caseStudies:     "AI does not have access to specific customer case studies or success stories.",
	testimonials:    "Customer testimonials and reviews are not readily available to AI systems.",
	idealCustomer:   "AI has limited understanding of the target customer profile or ideal audience.",
	differentiators: "AI struggles to identify clear competitive differentiators or unique value propositions.",
}

// The accessors below are nil-safe so callers can treat a missing insight
// and an empty one the same way.

func (in *Insight) Queries() []string {
	if in == nil || in.CategoryQueries == nil {
		return []string{}
	}
	return in.CategoryQueries
}

func (in *Insight) SearchLocation(fallback string) string {
	if in == nil || strings.TrimSpace(in.Location) == "" {
		return fallback
	}
	return in.Location
}

func (in *Insight) Visibility() string {
	if in == nil || in.VisibilityLevel == "" {
		return DefaultVisibilityLevel
	}
	return in.VisibilityLevel
}

func (in *Insight) Sentiment() string {
	if in == nil || in.OverallSentiment == "" {
		return DefaultSentimentClass
	}
	return in.OverallSentiment
}

func (in *Insight) Depth() string {
	if in == nil || in.InformationDepth == "" {
		return DefaultInformationDepth
	}
	return in.InformationDepth
}

// SummaryFor returns the overview, or a generic sentence naming the company
func (in *Insight) SummaryFor(displayName string) string {
	if in != nil && in.Overview != "" {
		return in.Overview
	}
	return fmt.Sprintf("Analysis for %s based on available search data.", displayName)
}

// ExplanationFor returns the overview, or a generic explanation of the sentiment
func (in *Insight) ExplanationFor(displayName string) string {
	if in != nil && in.Overview != "" {
		return in.Overview
	}
	return fmt.Sprintf("Based on available data for %s.", displayName)
}

func (in *Insight) SentimentInsights() models.SentimentInsights {
	var positive, negative []string
	var themes *models.SentimentThemes
	if in != nil {
		positive, negative, themes = in.PositiveDrivers, in.NegativeDrivers, in.SentimentThemes
	}
	return models.SentimentInsights{
		PositiveDrivers: orEmpty(positive),
		NegativeDrivers: orEmpty(negative),
		Themes:          ThemesWithDefaults(themes),
	}
}

// ThemesWithDefaults replaces every missing theme list with an empty one
func ThemesWithDefaults(themes *models.SentimentThemes) models.SentimentThemes {
	if themes == nil {
		themes = &models.SentimentThemes{}
	}
	return models.SentimentThemes{
		Positive: orEmpty(themes.Positive),
		Neutral:  orEmpty(themes.Neutral),
		Negative: orEmpty(themes.Negative),
	}
}

// KnowledgeWithDefaults fills each knowledge dimension independently. A
// dimension keeps whatever part the model supplied.
func KnowledgeWithDefaults(k *models.AIKnowledge) models.AIKnowledge {
	if k == nil {
		k = &models.AIKnowledge{}
	}
	return models.AIKnowledge{
		About:           entryWithDefault(k.About, knowledgeSummaries.about),
		Services:        entryWithDefault(k.Services, knowledgeSummaries.services),
		Pricing:         entryWithDefault(k.Pricing, knowledgeSummaries.pricing),
		CaseStudies:     entryWithDefault(k.CaseStudies, knowledgeSummaries.caseStudies),
		Testimonials:    entryWithDefault(k.Testimonials, knowledgeSummaries.testimonials),
		IdealCustomer:   entryWithDefault(k.IdealCustomer, knowledgeSummaries.idealCustomer),
		Differentiators: entryWithDefault(k.Differentiators, knowledgeSummaries.differentiators),
	}
}

func entryWithDefault(entry models.KnowledgeEntry, summary string) models.KnowledgeEntry {
	if entry.KnowledgeLevel == "" {
		entry.KnowledgeLevel = DefaultKnowledgeLevel
	}
	if entry.Summary == "" {
		entry.Summary = summary
	}
	return entry
}

func CompetitorsWithDefaults(c *models.CompetitorLists) models.CompetitorLists {
	if c == nil {
		return models.CompetitorLists{Direct: []models.NamedCompetitor{}, Alternative: []models.NamedCompetitor{}}
	}
	out := models.CompetitorLists{Direct: c.Direct, Alternative: c.Alternative}
	if out.Direct == nil {
		out.Direct = []models.NamedCompetitor{}
	}
	if out.Alternative == nil {
		out.Alternative = []models.NamedCompetitor{}
	}
	return out
}

// RecommendationsWithDefaults normalises the model's recommendations. It
// returns nil when there are none so the caller can substitute its own.
func RecommendationsWithDefaults(recs []models.Recommendation) []models.Recommendation {
	if len(recs) == 0 {
		return nil
	}
	out := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		rec.Priority = strings.ToLower(strings.TrimSpace(rec.Priority))
		if rec.Priority == "" {
			rec.Priority = DefaultPriority
		}
		out = append(out, rec)
	}
	return out
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
