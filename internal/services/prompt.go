package services

import (
	"fmt"
	"strings"
)

// DefaultMaxPromptChars caps total prompt input length to protect the
// downstream model from unbounded input.
const DefaultMaxPromptChars = 12000

const truncationPlaceholder = " ... [TRUNCATED]"

// analysisPromptTemplate declares the exact JSON shape the insight parser
// expects. Any drift between this schema and LLMInsight is a contract bug.
const analysisPromptTemplate = `You are an AI system analyzing intern daily logbook entries.

Intern Name: %s

Each entry describes daily work, challenges, and future plans.
Your tasks:
1. Summarize what the intern accomplished.
2. Identify key milestones or achievements.
3. Detect challenges or blockers.
4. Evaluate trajectory (improving / stagnant / declining).
5. Suggest personalized recommendations.

Return **strictly JSON output** as:
{
  "trajectory": "<string>",
  "milestones_achieved": ["<string>", "..."],
  "summary": "<short paragraph>",
  "challenges": ["<string>", "..."],
  "recommendations": ["<string>", "..."]
}

Logbook entries:
---
%s
---
`

// BuildAnalysisPrompt renders the structured instruction for the model.
func BuildAnalysisPrompt(internName, logText string) string {
	return fmt.Sprintf(analysisPromptTemplate, internName, logText)
}

// TruncateForPrompt caps text at maxChars, replacing excess content with a
// visible placeholder rather than silently dropping it. The cut backs up to
// the previous word boundary.
func TruncateForPrompt(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxPromptChars
	}
	if len(text) <= maxChars {
		return text
	}

	keep := maxChars - len(truncationPlaceholder)
	if keep < 0 {
		keep = 0
	}
	cut := text[:keep]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + truncationPlaceholder
}
