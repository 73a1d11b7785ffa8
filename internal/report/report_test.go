package report

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlens/ai-visibility/backend/internal/models"
	"github.com/brandlens/ai-visibility/backend/internal/ranking"
	"github.com/brandlens/ai-visibility/backend/internal/siteprobe"
)

type fakeInsights struct {
	text string
	err  error
}

func (f *fakeInsights) GetInsights(ctx context.Context, companyName, website string) (string, error) {
	return f.text, f.err
}

type fakeRankings struct {
	mu        sync.Mutex
	payloads  map[string][]byte
	failures  map[string]error
	delays    map[string]time.Duration
	locations []string
}

func (f *fakeRankings) GetRankings(ctx context.Context, query, location string) ([]byte, error) {
	if d, ok := f.delays[query]; ok {
		time.Sleep(d)
	}
	f.mu.Lock()
	f.locations = append(f.locations, location)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.failures[query]; ok {
		return nil, err
	}
	if payload, ok := f.payloads[query]; ok {
		return payload, nil
	}
	return []byte(`{"tasks":[{"result":[{"items_count":0,"items":[]}]}]}`), nil
}

type fakeProber struct{ calls int }

func (f *fakeProber) Probe(ctx context.Context, website string) siteprobe.Snapshot {
	f.calls++
	return siteprobe.Snapshot{URL: "https://" + website, Reachable: true, StatusCode: 200, Title: "Acme"}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func serp(domains ...string) []byte {
	items := make([]map[string]string, 0, len(domains))
	for _, d := range domains {
		items = append(items, map[string]string{"domain": d, "title": d + " home"})
	}
	data, _ := json.Marshal(map[string]interface{}{
		"tasks": []interface{}{map[string]interface{}{
			"result": []interface{}{map[string]interface{}{
				"items_count": len(items),
				"items":       items,
			}},
		}},
	})
	return data
}

const acmeInsight = `{
  "overview": "Acme builds CRM software for small teams.",
  "location": "USA",
  "category_queries": ["best crm software", "crm for startups", "simple sales pipeline tool"],
  "visibility_level": "High",
  "overall_sentiment": "Mixed",
  "information_depth": "Moderate",
  "positive_drivers": ["easy onboarding"],
  "competitors": {"direct": [{"name": "HubSpot", "reason": "Same segment"}]},
  "recommendations": [{"title": "Publish pricing", "description": "Add a public pricing page.", "priority": "High", "trigger": "pricing gap"}]
}`

func acmeRankings() *fakeRankings {
	return &fakeRankings{
		payloads: map[string][]byte{
			"best crm software": serp("acme.io", "hubspot.com", "salesforce.com"),
			"crm for startups":  serp("hubspot.com", "pipedrive.com"),
		},
		failures: map[string]error{
			"simple sales pipeline tool": errors.New("API request failed with status 500"),
		},
	}
}

func TestAssemble_FullReport(t *testing.T) {
	rankings := acmeRankings()
	a := NewAssembler(&fakeInsights{text: acmeInsight}, rankings, Options{}, quietLogger())

	report, err := a.Assemble(context.Background(), models.ReportRequest{CompanyName: "Acme", Website: "https://www.acme.io"})
	require.NoError(t, err)

	assert.Equal(t, "Acme", report.CompanyName)
	assert.Equal(t, "Acme builds CRM software for small teams.", report.Summary)
	assert.Equal(t, []string{"USA", "USA", "USA"}, rankings.locations)

	// (95 + 0) / 2 completed searches, the failed one is excluded
	assert.Equal(t, ranking.ScoreComponents{RankingScore: 48, AIPerceptionScore: 80, InfoDepthScore: 60}, report.ScoreBreakdown)
	assert.Equal(t, 60, report.AIVisibilityScore)
	assert.Equal(t, report.AIVisibilityScore, report.VisibilityScore)
	assert.Equal(t, ranking.SentimentDistribution{Positive: 45, Neutral: 35, Negative: 20}, report.Sentiment)

	require.Len(t, report.Rankings, 3)
	assert.True(t, report.Rankings[0].Appears)
	assert.Equal(t, 1, *report.Rankings[0].Rank)
	assert.False(t, report.Rankings[1].Appears)
	assert.False(t, report.Rankings[2].Appears)
	assert.True(t, report.RawData.RankingsDetailed[2].SearchFailed)
	assert.False(t, report.RawData.RankingsDetailed[1].SearchFailed)

	require.NotEmpty(t, report.SearchCompetitors)
	assert.Equal(t, ranking.CompetitorRecord{Name: "hubspot.com", Context: "hubspot.com home", Count: 2}, report.SearchCompetitors[0])

	assert.Equal(t, "Limited", report.AIKnowledge.Pricing.KnowledgeLevel)
	assert.Len(t, report.Competitors.Direct, 1)
	assert.Equal(t, []models.NamedCompetitor{}, report.Competitors.Alternative)
	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, "high", report.Recommendations[0].Priority)
	assert.Equal(t, []string{"easy onboarding"}, report.SentimentInsights.PositiveDrivers)
	assert.Equal(t, []string{}, report.SentimentInsights.NegativeDrivers)
	assert.Nil(t, report.WebsiteSnapshot)
}

func TestAssemble_LLMFailureUsesDefaults(t *testing.T) {
	a := NewAssembler(&fakeInsights{err: errors.New("401 unauthorized")}, &fakeRankings{}, Options{}, quietLogger())

	report, err := a.Assemble(context.Background(), models.ReportRequest{CompanyName: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, "Analysis for Acme based on available search data.", report.Summary)
	assert.Equal(t, "Based on available data for Acme.", report.SentimentExplanation)
	assert.Equal(t, ranking.ScoreComponents{RankingScore: 0, AIPerceptionScore: 30, InfoDepthScore: 35}, report.ScoreBreakdown)
	assert.Equal(t, 16, report.AIVisibilityScore)
	assert.Equal(t, models.QualitativeSummary{VisibilityLevel: "Low", SentimentClass: "Neutral", InformationDepth: "Limited"}, report.QualitativeSummary)
	assert.Empty(t, report.Rankings)
	assert.NotNil(t, report.Rankings)

	require.Len(t, report.Recommendations, 3)
	assert.Equal(t, "Appearing in 0 out of 0 category queries. Focus on SEO optimization for missing queries.", report.Recommendations[0].Description)
	assert.Equal(t, "Current level: Low. Increase public content and structured data to improve AI understanding.", report.Recommendations[1].Description)
	assert.Equal(t, "medium", report.Recommendations[2].Priority)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	raw := decoded["rawData"].(map[string]interface{})
	assert.Nil(t, raw["aiInsights"])
	assert.Equal(t, []interface{}{}, raw["categoryQueries"])
	assert.Equal(t, []interface{}{}, raw["rankingsDetailed"])
	assert.Equal(t, []interface{}{}, decoded["search_competitors"])

	knowledge := decoded["ai_knowledge"].(map[string]interface{})
	require.Len(t, knowledge, 7)
	for _, dimension := range []string{"about", "services", "pricing", "case_studies", "testimonials", "ideal_customer", "differentiators"} {
		entry, ok := knowledge[dimension].(map[string]interface{})
		require.True(t, ok, dimension)
		assert.Equal(t, "Limited", entry["knowledge_level"], dimension)
		assert.NotEmpty(t, entry["summary"], dimension)
	}
}

func TestAssemble_UnparseableInsight(t *testing.T) {
	a := NewAssembler(&fakeInsights{text: "Sorry, I don't know this company."}, &fakeRankings{}, Options{}, quietLogger())

	report, err := a.Assemble(context.Background(), models.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", report.CompanyName)
	assert.Equal(t, "Analysis for Unknown based on available search data.", report.Summary)
	assert.Nil(t, report.RawData.AIInsights)
}

func TestAssemble_AllSearchesFail(t *testing.T) {
	insightText := `{"category_queries": ["a", "b"], "visibility_level": "High", "information_depth": "Moderate"}`
	rankings := &fakeRankings{failures: map[string]error{
		"a": errors.New("timeout"),
		"b": errors.New("timeout"),
	}}
	a := NewAssembler(&fakeInsights{text: insightText}, rankings, Options{}, quietLogger())

	report, err := a.Assemble(context.Background(), models.ReportRequest{CompanyName: "Acme", Website: "acme.io"})
	require.NoError(t, err)

	assert.Equal(t, 0, report.ScoreBreakdown.RankingScore)
	assert.Equal(t, 36, report.AIVisibilityScore)
	require.Len(t, report.Rankings, 2)
	for _, r := range report.Rankings {
		assert.False(t, r.Appears)
		assert.Nil(t, r.Rank)
	}
	assert.Equal(t, []string{"India", "India"}, rankings.locations)
	assert.Equal(t, "Appearing in 0 out of 2 category queries. Focus on SEO optimization for missing queries.", report.Recommendations[0].Description)
}

func TestAssemble_Idempotent(t *testing.T) {
	a := NewAssembler(&fakeInsights{text: acmeInsight}, acmeRankings(), Options{}, quietLogger())
	req := models.ReportRequest{CompanyName: "Acme", Website: "acme.io"}

	first, err := a.Assemble(context.Background(), req)
	require.NoError(t, err)
	second, err := a.Assemble(context.Background(), req)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestAssemble_ParallelKeepsQueryOrder(t *testing.T) {
	insightText := `{"category_queries": ["q1", "q2", "q3", "q4"]}`
	rankings := &fakeRankings{
		payloads: map[string][]byte{
			"q1": serp("one.com"),
			"q2": serp("two.com"),
			"q3": serp("three.com"),
			"q4": serp("four.com"),
		},
		delays: map[string]time.Duration{
			"q1": 40 * time.Millisecond,
			"q2": 20 * time.Millisecond,
		},
	}
	sequential := NewAssembler(&fakeInsights{text: insightText}, rankings, Options{}, quietLogger())
	parallel := NewAssembler(&fakeInsights{text: insightText}, rankings, Options{Parallelism: 4}, quietLogger())
	req := models.ReportRequest{CompanyName: "Acme"}

	want, err := sequential.Assemble(context.Background(), req)
	require.NoError(t, err)
	got, err := parallel.Assemble(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, want.RawData.RankingsDetailed, got.RawData.RankingsDetailed)
	assert.Equal(t, want.SearchCompetitors, got.SearchCompetitors)
	assert.Equal(t, "one.com", got.SearchCompetitors[0].Name)
}

func TestAssemble_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := NewAssembler(&fakeInsights{text: acmeInsight}, acmeRankings(), Options{}, quietLogger())
	report, err := a.Assemble(ctx, models.ReportRequest{CompanyName: "Acme"})
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssemble_WebsiteSnapshot(t *testing.T) {
	prober := &fakeProber{}
	a := NewAssembler(&fakeInsights{err: errors.New("down")}, &fakeRankings{}, Options{Prober: prober}, quietLogger())

	report, err := a.Assemble(context.Background(), models.ReportRequest{CompanyName: "Acme", Website: "acme.io"})
	require.NoError(t, err)
	require.NotNil(t, report.WebsiteSnapshot)
	assert.True(t, report.WebsiteSnapshot.Reachable)

	report, err = a.Assemble(context.Background(), models.ReportRequest{CompanyName: "Acme"})
	require.NoError(t, err)
	assert.Nil(t, report.WebsiteSnapshot)
	assert.Equal(t, 1, prober.calls)
}

func TestSummarize(t *testing.T) {
	one, three := 1, 3
	outcomes := []ranking.RankingOutcome{
		{Query: "a", Appears: true, Rank: &one, Competitors: []ranking.Competitor{{Name: "x.com"}}},
		{Query: "b", Appears: true, Rank: &three, Competitors: []ranking.Competitor{{Name: "x.com"}, {Name: "y.com"}}},
		ranking.NotFound("c"),
		ranking.SearchFailed("d"),
	}

	summary := Summarize(outcomes)
	// (95 + 85 + 0) / 3 = 60
	assert.Equal(t, 60, summary.RankingScore)
	assert.Equal(t, 2, summary.Appearing)
	assert.Equal(t, []ranking.CompetitorRecord{
		{Name: "x.com", Count: 2},
		{Name: "y.com", Count: 1},
	}, summary.Competitors)

	assert.Equal(t, 0, Summarize(nil).RankingScore)
	assert.NotNil(t, Summarize(nil).Outcomes)
	assert.Equal(t, 0, Summarize([]ranking.RankingOutcome{ranking.SearchFailed("z")}).RankingScore)
}

func TestSummarize_RoundsHalfUp(t *testing.T) {
	one := 1
	outcomes := []ranking.RankingOutcome{
		{Query: "a", Appears: true, Rank: &one, Competitors: []ranking.Competitor{}},
		ranking.NotFound("b"),
	}
	assert.Equal(t, 48, Summarize(outcomes).RankingScore)
}
