package ranking

import "math"

const (
	rankingWeight    = 0.50
	perceptionWeight = 0.30
	infoDepthWeight  = 0.20
)

// ScoreComponents are the three sub-scores blended into the visibility score.
// Callers fill in defaults before scoring.
type ScoreComponents struct {
	RankingScore      int `json:"ranking_presence"`
	AIPerceptionScore int `json:"ai_perception"`
	InfoDepthScore    int `json:"information_depth"`
}

// CompositeScore blends the components 50/30/20 and clamps to [0,100]
func CompositeScore(c ScoreComponents) int {
	score := int(math.Round(
		float64(c.RankingScore)*rankingWeight +
			float64(c.AIPerceptionScore)*perceptionWeight +
			float64(c.InfoDepthScore)*infoDepthWeight,
	))

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
