package llm

import (
	"fmt"
	"strings"
)

const insightSystemPrompt = "You are an AI brand perception analyst. Judge companies against their industry peers, " +
	"stay conservative and realistic, and answer with categorical assessments only. Never output numeric scores or percentages."

const insightFormat = `{
  "overview": "4-6 sentences on brand perception, market position and competitive standing",
  "industry": "primary industry",
  "market_type": "B2B | B2C | Marketplace | SaaS | Enterprise | Retail | Other",
  "location": "primary market, e.g. India, USA, Global",
  "category_queries": ["4-6 non-branded searches a buyer in this category would type"],
  "visibility_level": "High | Medium | Low",
  "overall_sentiment": "Mostly Positive | Mixed | Neutral | Mostly Negative",
  "information_depth": "Comprehensive | Moderate | Limited",
  "positive_drivers": ["specific positive theme"],
  "negative_drivers": ["specific negative theme"],
  "sentiment_themes": {"positive": ["..."], "neutral": ["..."], "negative": ["..."]},
  "ai_knowledge": {
    "about":           {"knowledge_level": "Strong | Moderate | Limited", "summary": "..."},
    "services":        {"knowledge_level": "Strong | Moderate | Limited", "summary": "..."},
    "pricing":         {"knowledge_level": "Strong | Moderate | Limited", "summary": "..."},
    "case_studies":    {"knowledge_level": "Strong | Moderate | Limited", "summary": "..."},
    "testimonials":    {"knowledge_level": "Strong | Moderate | Limited", "summary": "..."},
    "ideal_customer":  {"knowledge_level": "Strong | Moderate | Limited", "summary": "..."},
    "differentiators": {"knowledge_level": "Strong | Moderate | Limited", "summary": "..."}
  },
  "competitors": {
    "direct": [{"name": "company", "reason": "why users compare them"}],
    "alternative": [{"name": "company", "reason": "why it is an alternative"}]
  },
  "recommendations": [
    {"title": "...", "description": "2-3 actionable sentences", "priority": "High | Medium | Low", "trigger": "the gap that caused it"}
  ]
}`

var insightRules = []string{
	"category_queries: discovery searches only, never the brand name. Add the market when it matters (\"in India\").",
	"Work in three steps: identify the industry, establish what is typical for it, then compare this company to typical peers.",
	"overall_sentiment: Mostly Positive for clear leaders with loyal customers; Mixed for established brands with visible complaints; " +
		"Neutral for undifferentiated or little-known companies; Mostly Negative for widespread dissatisfaction or scandal.",
	"visibility_level: High only for global household names; Medium for regional or sector leaders; Low for niche, local or emerging brands.",
	"information_depth: Comprehensive when products, pricing, customers and differentiators are all public; Moderate for basic company info; Limited otherwise.",
	"sentiment_themes: 2-3 concrete, company-specific items per bucket written the way a customer would say them. No marketing language.",
	"ai_knowledge: fill every dimension. When little is known say Limited and describe what AI systems mention instead.",
	"competitors: at least 3 in total, 2-4 direct and 1-2 alternative. Never the company itself.",
	"recommendations: 5-7 specific actions tied to the gaps above (Low visibility, Limited knowledge areas, negative drivers, strong competitors). " +
		"No generic SEO advice, tools, agencies or paid ads.",
}

func buildInsightPrompt(companyName, website string) string {
	subject := fmt.Sprintf("%q", companyName)
	if website != "" {
		subject = fmt.Sprintf("%s (%s)", subject, website)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Assess how AI systems perceive %s.\n\n", subject)
	sb.WriteString("Return ONLY valid JSON in exactly this shape:\n")
	sb.WriteString(insightFormat)
	sb.WriteString("\n\nRules:\n")
	for _, rule := range insightRules {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	return sb.String()
}
