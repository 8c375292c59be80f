package models

// Trajectory values reported by the analysis pipeline. The first three come
// from the model; the rest are sentinels for degraded or absent outcomes.
const (
	TrajectoryImproving        = "improving"
	TrajectoryStagnant         = "stagnant"
	TrajectoryDeclining        = "declining"
	TrajectoryUnknown          = "unknown"
	TrajectoryNoData           = "no-data"
	TrajectoryInsufficientData = "insufficient-data"
)

// ScoreBreakdown is the result of the deterministic scoring engine.
// Component scores are in [0, 100]; Final is the weighted integer score.
type ScoreBreakdown struct {
	Sentiment   float64 `json:"sentiment"`
	Consistency float64 `json:"consistency"`
	Effort      float64 `json:"effort"`
	Final       int     `json:"final"`
}

// LLMInsight is the structured result parsed from the model output.
// List fields are always non-nil in assembled reports.
type LLMInsight struct {
	Trajectory         string   `json:"trajectory"`
	MilestonesAchieved []string `json:"milestones_achieved"`
	Summary            string   `json:"summary"`
	Challenges         []string `json:"challenges"`
	Recommendations    []string `json:"recommendations"`
}

// ApplyDefaults replaces nil list fields with empty slices and fills an
// empty trajectory with the unknown sentinel.
func (i *LLMInsight) ApplyDefaults() {
	if i.Trajectory == "" {
		i.Trajectory = TrajectoryUnknown
	}
	if i.MilestonesAchieved == nil {
		i.MilestonesAchieved = []string{}
	}
	if i.Challenges == nil {
		i.Challenges = []string{}
	}
	if i.Recommendations == nil {
		i.Recommendations = []string{}
	}
}

// WeeklyReport is the assembled per-intern report. HasData distinguishes
// "no records" and "records but no narrative content" from a full analysis.
type WeeklyReport struct {
	InternID           string   `json:"intern_id"`
	InternName         string   `json:"intern_name"`
	WindowStart        string   `json:"window_start"`
	WindowEnd          string   `json:"window_end"`
	HasData            bool     `json:"has_data"`
	Score              int      `json:"score"`
	Trajectory         string   `json:"trajectory"`
	MilestonesAchieved []string `json:"milestones_achieved"`
	Summary            string   `json:"summary"`
	Challenges         []string `json:"challenges"`
	Recommendations    []string `json:"recommendations"`
}

// InternLogs is one batch-path input item: logs already retrieved by the caller.
type InternLogs struct {
	InternID string   `json:"intern_id" binding:"required"`
	Name     string   `json:"name"`
	Logs     []string `json:"logs"`
}

// InternReport is one intern's row in a project report.
type InternReport struct {
	InternID        string   `json:"intern_id"`
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	Drivers         []string `json:"drivers"`
	Recommendations []string `json:"recommendations"`
}

// ProjectSummary aggregates individual trajectories into a project-wide view.
type ProjectSummary struct {
	Trajectory         string   `json:"trajectory"`
	MilestonesAchieved []string `json:"milestones_achieved"`
}

// ProjectReport is the batch-path output entity.
type ProjectReport struct {
	ReportID       string         `json:"report_id"`
	ProjectSummary ProjectSummary `json:"project_summary"`
	Interns        []InternReport `json:"interns"`
	GeneratedAt    string         `json:"generated_at"` // UTC, ISO-8601, Z suffix
}
