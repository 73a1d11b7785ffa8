package models

import (
	"encoding/json"

	"github.com/brandlens/ai-visibility/backend/internal/ranking"
	"github.com/brandlens/ai-visibility/backend/internal/siteprobe"
)

// Report is the full AI visibility report returned for one request.
// Every field is always populated; see report.Assembler for the defaults.
type Report struct {
	CompanyName          string                        `json:"company_name"`
	Website              string                        `json:"website"`
	Summary              string                        `json:"summary"`
	AIVisibilityScore    int                           `json:"ai_visibility_score"`
	ScoreBreakdown       ranking.ScoreComponents       `json:"score_breakdown"`
	QualitativeSummary   QualitativeSummary            `json:"qualitative_summary"`
	VisibilityScore      int                           `json:"visibility_score"`
	Sentiment            ranking.SentimentDistribution `json:"sentiment"`
	SentimentInsights    SentimentInsights             `json:"sentiment_insights"`
	SentimentExplanation string                        `json:"sentiment_explanation"`
	Rankings             []RankingEntry                `json:"rankings"`
	SearchCompetitors    []ranking.CompetitorRecord    `json:"search_competitors"`
	AIKnowledge          AIKnowledge                   `json:"ai_knowledge"`
	Competitors          CompetitorLists               `json:"competitors"`
	Recommendations      []Recommendation              `json:"recommendations"`
	WebsiteSnapshot      *siteprobe.Snapshot           `json:"website_snapshot,omitempty"`
	RawData              RawData                       `json:"rawData"`
}

type QualitativeSummary struct {
	VisibilityLevel  string `json:"visibility_level"`
	SentimentClass   string `json:"sentiment_class"`
	InformationDepth string `json:"information_depth"`
}

type SentimentInsights struct {
	PositiveDrivers []string        `json:"positive_drivers"`
	NegativeDrivers []string        `json:"negative_drivers"`
	Themes          SentimentThemes `json:"themes"`
}

// SentimentThemes groups recurring user sentiment themes
type SentimentThemes struct {
	Positive []string `json:"positive"`
	Neutral  []string `json:"neutral"`
	Negative []string `json:"negative"`
}

// RankingEntry is the public view of one discovery query's outcome
type RankingEntry struct {
	Query   string `json:"query"`
	Appears bool   `json:"appears"`
	Rank    *int   `json:"rank"`
}

// KnowledgeEntry describes how much an LLM knows about one business dimension.
// KnowledgeLevel is one of Strong, Moderate or Limited.
type KnowledgeEntry struct {
	KnowledgeLevel string `json:"knowledge_level"`
	Summary        string `json:"summary"`
}

type AIKnowledge struct {
	About           KnowledgeEntry `json:"about"`
	Services        KnowledgeEntry `json:"services"`
	Pricing         KnowledgeEntry `json:"pricing"`
	CaseStudies     KnowledgeEntry `json:"case_studies"`
	Testimonials    KnowledgeEntry `json:"testimonials"`
	IdealCustomer   KnowledgeEntry `json:"ideal_customer"`
	Differentiators KnowledgeEntry `json:"differentiators"`
}

type NamedCompetitor struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CompetitorLists holds the competitors named by the LLM
type CompetitorLists struct {
	Direct      []NamedCompetitor `json:"direct"`
	Alternative []NamedCompetitor `json:"alternative"`
}

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Trigger     string `json:"trigger"`
}

// RawData carries the intermediate inputs for debugging on the frontend
type RawData struct {
	CategoryQueries  []string                 `json:"categoryQueries"`
	AIInsights       json.RawMessage          `json:"aiInsights"`
	RankingsDetailed []ranking.RankingOutcome `json:"rankingsDetailed"`
}
