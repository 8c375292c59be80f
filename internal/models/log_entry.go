package models

import "time"

// Canonical narrative field names. Older records in the store may carry
// historical variants; FieldAliases maps each logical field to its key
// priority list, resolved once during normalization.
const (
	FieldDate         = "date"
	FieldStatus       = "status"
	FieldTechStack    = "tech_stack"
	FieldTodaysWork   = "todays_work"
	FieldChallenges   = "challenges"
	FieldTomorrowPlan = "tomorrow_plan"
)

// FieldAliases lists, per logical narrative field, the store keys to try in
// priority order. "tomorrow_work" is the naming used by older records.
var FieldAliases = map[string][]string{
	FieldTodaysWork:   {"todays_work"},
	FieldChallenges:   {"challenges"},
	FieldTomorrowPlan: {"tomorrow_plan", "tomorrow_work"},
}

// RawEntry is one logbook document as fetched from the store: string keys,
// arbitrary values, fields possibly missing. The normalizer is the only
// component that touches raw keys.
type RawEntry map[string]interface{}

// LogEntry is the canonical typed form of one intern's daily submission,
// used as the row schema for the SQL store backends. All text fields default
// to the empty string, never NULL.
type LogEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InternID     string    `gorm:"size:64;index:idx_intern_date" json:"intern_id"`
	Date         string    `gorm:"size:10;index:idx_intern_date" json:"date"` // YYYY-MM-DD
	Status       string    `gorm:"size:100;not null;default:''" json:"status"`
	TechStack    string    `gorm:"size:255;not null;default:''" json:"tech_stack"`
	TodaysWork   string    `gorm:"type:text;not null;default:''" json:"todays_work"`
	Challenges   string    `gorm:"type:text;not null;default:''" json:"challenges"`
	TomorrowPlan string    `gorm:"type:text;not null;default:''" json:"tomorrow_plan"`
	CreatedAt    time.Time `json:"created_at"`
}

func (LogEntry) TableName() string { return "logbook_entries" }

// Raw converts a typed entry to the raw map form the normalizer consumes.
func (e *LogEntry) Raw() RawEntry {
	return RawEntry{
		FieldDate:         e.Date,
		FieldStatus:       e.Status,
		FieldTechStack:    e.TechStack,
		FieldTodaysWork:   e.TodaysWork,
		FieldChallenges:   e.Challenges,
		FieldTomorrowPlan: e.TomorrowPlan,
	}
}
