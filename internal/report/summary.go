package report

import (
	"math"

	"github.com/brandlens/ai-visibility/backend/internal/ranking"
)

// Summary is the reduction of every query outcome in one request
type Summary struct {
	Outcomes     []ranking.RankingOutcome
	RankingScore int
	Appearing    int
	Competitors  []ranking.CompetitorRecord
}

// Summarize folds the per-query outcomes. The ranking score is the rounded
// mean of per-query scores over searches that completed; failed searches
// are listed but do not count towards the mean.
func Summarize(outcomes []ranking.RankingOutcome) Summary {
	if outcomes == nil {
		outcomes = []ranking.RankingOutcome{}
	}

	var (
		total     int
		completed int
		appearing int
		observed  []ranking.Competitor
	)
	for _, outcome := range outcomes {
		if outcome.Appears {
			appearing++
		}
		if outcome.SearchFailed {
			continue
		}
		total += ranking.RankToScore(outcome.Rank)
		completed++
		observed = append(observed, outcome.Competitors...)
	}

	score := 0
	if completed > 0 {
		score = int(math.Round(float64(total) / float64(completed)))
	}

	return Summary{
		Outcomes:     outcomes,
		RankingScore: score,
		Appearing:    appearing,
		Competitors:  ranking.AggregateCompetitors(observed),
	}
}
