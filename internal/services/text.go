package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/talenthub/internlens/internal/models"
)

// Pre-compiled patterns for the character-cleaning pass applied before
// prompt assembly. The whitelist guards against control characters or
// unexpected encodings corrupting the prompt.
var (
	whitespaceRegex   = regexp.MustCompile(`\s+`)
	nonWhitelistRegex = regexp.MustCompile(`[^A-Za-z0-9.,;:!?()\-\n ]`)
)

// narrativeFields is the fixed collection order for log text assembly.
var narrativeFields = []string{
	models.FieldTodaysWork,
	models.FieldChallenges,
	models.FieldTomorrowPlan,
}

// LogText concatenates the non-empty narrative fields of one raw entry,
// joined by single spaces. The second return value is false when the entry
// carries no narrative content at all; such entries are dropped by the
// caller, not scored as zero.
func LogText(entry models.RawEntry) (string, bool) {
	var parts []string
	for _, field := range narrativeFields {
		if value := resolveField(entry, field); value != "" {
			parts = append(parts, value)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}

// resolveField looks up a logical field by its alias priority list and
// returns the first non-blank value, trimmed. Missing and non-string values
// never raise; they coerce to their string form or resolve to "".
func resolveField(entry models.RawEntry, field string) string {
	aliases, ok := models.FieldAliases[field]
	if !ok {
		aliases = []string{field}
	}
	for _, key := range aliases {
		value, ok := entry[key]
		if !ok || value == nil {
			continue
		}
		if s := strings.TrimSpace(coerceString(value)); s != "" {
			return s
		}
	}
	return ""
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// CollectLogTexts normalizes a record set into the ordered log text
// collection the scoring engine and prompt builder consume. Entries with no
// narrative content are filtered out.
func CollectLogTexts(entries []models.RawEntry) []string {
	var texts []string
	for _, entry := range entries {
		if text, ok := LogText(entry); ok {
			texts = append(texts, text)
		}
	}
	return texts
}

// CleanText collapses whitespace runs to single spaces and strips characters
// outside the prompt whitelist (alphanumerics plus `.,;:!?()-` and newline).
func CleanText(text string) string {
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = nonWhitelistRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
