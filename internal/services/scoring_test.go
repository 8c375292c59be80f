package services

import (
	"math"
	"strings"
	"testing"
)

func TestComputeInternScoreEmptyInput(t *testing.T) {
	breakdown := ComputeInternScore(nil)
	if breakdown.Sentiment != 0 || breakdown.Consistency != 0 || breakdown.Effort != 0 || breakdown.Final != 0 {
		t.Errorf("ComputeInternScore(nil) = %+v, want all zeros", breakdown)
	}

	breakdown = ComputeInternScore([]string{})
	if breakdown.Final != 0 {
		t.Errorf("ComputeInternScore([]) final = %d, want 0", breakdown.Final)
	}
}

func TestComputeInternScoreBounds(t *testing.T) {
	tests := []struct {
		name string
		logs []string
	}{
		{
			name: "typical week",
			logs: []string{
				"Implemented the user service and tested the endpoints",
				"Debugged the session bug and fixed the cache layer",
				"Completed the migration and optimized the queries",
			},
		},
		{
			name: "single short entry",
			logs: []string{"worked"},
		},
		{
			name: "negative tone",
			logs: []string{"everything broke, terrible day, nothing works"},
		},
		{
			name: "keyword heavy",
			logs: []string{"completed developed tested debugged implemented fixed optimized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeInternScore(tt.logs)
			for name, v := range map[string]float64{
				"sentiment":   b.Sentiment,
				"consistency": b.Consistency,
				"effort":      b.Effort,
			} {
				if v < 0 || v > 100 {
					t.Errorf("%s = %v, out of [0, 100]", name, v)
				}
			}
			if b.Final < 0 || b.Final > 100 {
				t.Errorf("final = %d, out of [0, 100]", b.Final)
			}

			weighted := b.Sentiment*0.3 + b.Consistency*0.3 + b.Effort*0.4
			if b.Final != int(math.Round(weighted)) {
				t.Errorf("final = %d, want round(%v) = %d", b.Final, weighted, int(math.Round(weighted)))
			}
		})
	}
}

func TestConsistencyScore(t *testing.T) {
	tests := []struct {
		name     string
		logs     []string
		expected float64
	}{
		{
			name:     "uniform lengths score near 100",
			logs:     []string{"one two three", "four five six", "seven eight nine"},
			expected: 100,
		},
		{
			name: "single entry has zero deviation",
			logs: []string{"a b c d e"},
			// stddev of one sample is 0
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := consistencyScore(tt.logs)
			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("consistencyScore() = %v, want ~%v", got, tt.expected)
			}
		})
	}
}

func TestConsistencyScoreVariedLengthsLower(t *testing.T) {
	uniform := consistencyScore([]string{"a b c", "d e f", "g h i"})
	varied := consistencyScore([]string{"a", strings.Repeat("w ", 50), "b c"})
	if varied >= uniform {
		t.Errorf("varied lengths score %v, want below uniform %v", varied, uniform)
	}
	if varied < 0 {
		t.Errorf("consistencyScore() = %v, must not go negative", varied)
	}
}

func TestEffortScore(t *testing.T) {
	tests := []struct {
		name     string
		logs     []string
		expected float64
	}{
		{
			name:     "half the words are keywords",
			logs:     []string{"completed something implemented nothing"},
			expected: 50,
		},
		{
			name:     "no keywords",
			logs:     []string{"wrote some notes about the meeting"},
			expected: 0,
		},
		{
			name:     "case insensitive matching",
			logs:     []string{"FIXED the bug and Tested it again today"},
			expected: round2(2.0 / 8.0 * 100),
		},
		{
			name:     "all whitespace",
			logs:     []string{"   "},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effortScore(tt.logs); got != tt.expected {
				t.Errorf("effortScore() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSentimentScoreDirection(t *testing.T) {
	positive := sentimentScore("great progress, excellent work, very happy with the results")
	negative := sentimentScore("terrible day, awful bugs, everything is broken and hopeless")
	neutral := sentimentScore("updated the configuration file")

	if positive <= negative {
		t.Errorf("positive sentiment %v should exceed negative %v", positive, negative)
	}
	for name, v := range map[string]float64{"positive": positive, "negative": negative, "neutral": neutral} {
		if v < 0 || v > 100 {
			t.Errorf("%s sentiment = %v, out of [0, 100]", name, v)
		}
	}
}
