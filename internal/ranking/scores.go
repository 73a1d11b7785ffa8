package ranking

// SentimentDistribution is a percentage split that always sums to 100
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

const (
	DefaultPerceptionScore = 30
	DefaultInfoDepthScore  = 35
)

var (
	perceptionScores = map[string]int{
		"High":   80,
		"Medium": 55,
		"Low":    30,
	}

	infoDepthScores = map[string]int{
		"Comprehensive": 85,
		"Moderate":      60,
		"Limited":       35,
	}

	sentimentDistributions = map[string]SentimentDistribution{
		"Mostly Positive": {Positive: 70, Neutral: 20, Negative: 10},
		"Mixed":           {Positive: 45, Neutral: 35, Negative: 20},
		"Neutral":         {Positive: 30, Neutral: 50, Negative: 20},
		"Mostly Negative": {Positive: 15, Neutral: 30, Negative: 55},
	}

	defaultDistribution = SentimentDistribution{Positive: 30, Neutral: 50, Negative: 20}
)

// RankToScore maps a 1-based search position to a 0-100 presence score.
// A nil rank means the target was not found.
func RankToScore(rank *int) int {
	if rank == nil {
		return 0
	}

	r := *rank
	switch {
	case r <= 0:
		return 0
	case r == 1:
		return 95
	case r <= 3:
		return 85
	case r <= 5:
		return 75
	case r <= 10:
		return 60
	case r <= 20:
		return 45
	case r <= 50:
		return 30
	default:
		return 15
	}
}

// PerceptionLevelToScore maps the LLM visibility level (High/Medium/Low)
func PerceptionLevelToScore(level string) int {
	if score, ok := perceptionScores[level]; ok {
		return score
	}
	return DefaultPerceptionScore
}

// InfoDepthToScore maps the LLM information depth (Comprehensive/Moderate/Limited)
func InfoDepthToScore(depth string) int {
	if score, ok := infoDepthScores[depth]; ok {
		return score
	}
	return DefaultInfoDepthScore
}

// SentimentClassToDistribution maps a sentiment class to fixed percentages
// that sum to 100. Unknown classes get the Neutral split.
func SentimentClassToDistribution(class string) SentimentDistribution {
	if dist, ok := sentimentDistributions[class]; ok {
		return dist
	}
	return defaultDistribution
}
