package services

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/talenthub/internlens/internal/models"
)

// Component weights of the final score. Effort is weighted highest because
// it is the strongest behavioral signal available without semantic
// understanding of the entries.
const (
	sentimentWeight   = 0.3
	consistencyWeight = 0.3
	effortWeight      = 0.4

	// Guards the consistency denominator when the mean word count is 0.
	scoreEpsilon = 1e-5
)

// effortKeywords are counted case-insensitively across all log texts.
var effortKeywords = []string{
	"completed", "developed", "tested", "debugged", "implemented", "fixed", "optimized",
}

// ComputeInternScore derives the deterministic score breakdown from an
// ordered collection of log texts. An empty collection short-circuits to a
// zero breakdown without invoking the sentiment analyzer.
func ComputeInternScore(logTexts []string) models.ScoreBreakdown {
	if len(logTexts) == 0 {
		return models.ScoreBreakdown{}
	}

	sentiment := sentimentScore(strings.Join(logTexts, " "))
	consistency := consistencyScore(logTexts)
	effort := effortScore(logTexts)

	final := sentiment*sentimentWeight + consistency*consistencyWeight + effort*effortWeight

	return models.ScoreBreakdown{
		Sentiment:   sentiment,
		Consistency: consistency,
		Effort:      effort,
		Final:       int(math.Round(final)),
	}
}

// sentimentScore rescales VADER compound polarity from [-1, 1] to [0, 100].
func sentimentScore(text string) float64 {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	polarity := analyzer.PolarityScores(text).Compound
	return round2((polarity + 1) / 2 * 100)
}

// consistencyScore measures how uniform the entry lengths are. Wildly
// varying word counts suggest erratic engagement; uniform counts suggest
// steady reporting. This is a heuristic proxy, not a semantic judgment.
func consistencyScore(logTexts []string) float64 {
	var lengths []float64
	for _, text := range logTexts {
		if strings.TrimSpace(text) != "" {
			lengths = append(lengths, float64(len(strings.Fields(text))))
		}
	}
	if len(lengths) == 0 {
		return 0
	}

	var sum float64
	for _, l := range lengths {
		sum += l
	}
	mean := sum / float64(len(lengths))

	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(lengths)))

	score := math.Max(0, 1-stdDev/(mean+scoreEpsilon)) * 100
	return round2(score)
}

// effortScore counts effort keyword occurrences relative to total word count.
func effortScore(logTexts []string) float64 {
	var hits, totalWords int
	for _, text := range logTexts {
		lower := strings.ToLower(text)
		for _, kw := range effortKeywords {
			hits += strings.Count(lower, kw)
		}
		totalWords += len(strings.Fields(text))
	}
	if totalWords == 0 {
		return 0
	}
	return round2(float64(hits) / float64(totalWords) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
