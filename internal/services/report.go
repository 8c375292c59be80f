package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/internlens/internal/config"
	"github.com/talenthub/internlens/internal/models"
	"github.com/talenthub/internlens/internal/store"
	"github.com/talenthub/internlens/pkg/logger"
)

// Project trajectory thresholds: the fraction of interns the model reports
// as improving decides the project-wide classification.
const (
	improvingThreshold = 0.6
	stableThreshold    = 0.3
)

// Fixed actionable recommendations for the degraded weekly outcomes.
var (
	noDataRecommendation = "Submit daily logbook entries so your progress can be analyzed."
	noTextRecommendation = "Write more descriptive entries covering work done, challenges and plans."
)

// ReportService orchestrates the report pipeline: retrieve, normalize,
// score, prompt, analyze, merge.
type ReportService struct {
	store      store.LogStore
	llm        InsightAnalyzer
	windowDays int

	// Reference "today" for window computation; injectable for tests.
	now func() time.Time
}

func NewReportService(st store.LogStore, llm InsightAnalyzer, cfg *config.ReportConfig) *ReportService {
	windowDays := cfg.WindowDays
	if windowDays < 1 {
		windowDays = 7
	}
	return &ReportService{
		store:      st,
		llm:        llm,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// WeekRange resolves the inclusive [start, end] window of windowDays
// calendar days ending today, as plain dates with no time-of-day component.
func (s *ReportService) WeekRange(windowDays int) (string, string) {
	if windowDays < 1 {
		windowDays = s.windowDays
	}
	today := s.now().UTC()
	start := today.AddDate(0, 0, -(windowDays - 1))
	return start.Format("2006-01-02"), today.Format("2006-01-02")
}

// GenerateWeeklyReport runs the full per-intern pipeline. A retrieval fault
// propagates as an error; an empty result set does not — conflating the two
// would obscure store outages behind a "no-data" report.
func (s *ReportService) GenerateWeeklyReport(ctx context.Context, internID, internName string, windowDays int) (*models.WeeklyReport, error) {
	start, end := s.WeekRange(windowDays)

	report := &models.WeeklyReport{
		InternID:           internID,
		InternName:         internName,
		WindowStart:        start,
		WindowEnd:          end,
		MilestonesAchieved: []string{},
		Challenges:         []string{},
		Recommendations:    []string{},
	}

	entries, err := s.store.FetchLogEntries(ctx, internID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching logbook entries for intern %s: %w", internID, err)
	}

	if len(entries) == 0 {
		report.Trajectory = models.TrajectoryNoData
		report.Recommendations = []string{noDataRecommendation}
		return report, nil
	}

	logTexts := CollectLogTexts(entries)
	if len(logTexts) == 0 {
		report.Trajectory = models.TrajectoryInsufficientData
		report.Recommendations = []string{noTextRecommendation}
		return report, nil
	}

	breakdown := ComputeInternScore(logTexts)
	insight := s.analyzeWithFallback(ctx, internName, logTexts)

	report.HasData = true
	// The deterministic score is authoritative; any score opinion embedded
	// in the model output is informational only and discarded.
	report.Score = breakdown.Final
	report.Trajectory = insight.Trajectory
	report.MilestonesAchieved = insight.MilestonesAchieved
	report.Summary = insight.Summary
	report.Challenges = insight.Challenges
	report.Recommendations = insight.Recommendations

	return report, nil
}

// GenerateProjectReport runs the analysis for a batch of interns whose logs
// were already retrieved by the caller. Per-intern pipelines are independent
// and fan out across goroutines; results are slotted back by index so the
// output keeps the input order.
func (s *ReportService) GenerateProjectReport(ctx context.Context, internLogs []models.InternLogs) (*models.ProjectReport, error) {
	type internOutcome struct {
		report     models.InternReport
		improving  bool
		milestones []string
	}

	outcomes := make([]internOutcome, len(internLogs))

	var wg sync.WaitGroup
	for i := range internLogs {
		wg.Add(1)
		go func(idx int, intern models.InternLogs) {
			defer wg.Done()

			logTexts := make([]string, 0, len(intern.Logs))
			for _, log := range intern.Logs {
				if strings.TrimSpace(log) != "" {
					logTexts = append(logTexts, log)
				}
			}

			breakdown := ComputeInternScore(logTexts)
			insight := s.analyzeWithFallback(ctx, intern.Name, logTexts)

			outcomes[idx] = internOutcome{
				report: models.InternReport{
					InternID:        intern.InternID,
					Name:            intern.Name,
					Score:           breakdown.Final,
					Drivers:         insight.Challenges,
					Recommendations: insight.Recommendations,
				},
				improving:  strings.EqualFold(insight.Trajectory, models.TrajectoryImproving),
				milestones: insight.MilestonesAchieved,
			}
		}(i, internLogs[i])
	}
	wg.Wait()

	interns := make([]models.InternReport, 0, len(outcomes))
	milestones := []string{}
	seen := make(map[string]bool)
	improvingCount := 0

	for _, outcome := range outcomes {
		interns = append(interns, outcome.report)
		if outcome.improving {
			improvingCount++
		}
		for _, m := range outcome.milestones {
			if !seen[m] {
				seen[m] = true
				milestones = append(milestones, m)
			}
		}
	}

	return &models.ProjectReport{
		ReportID: uuid.New().String(),
		ProjectSummary: models.ProjectSummary{
			Trajectory:         ProjectTrajectory(improvingCount, len(internLogs)),
			MilestonesAchieved: milestones,
		},
		Interns:     interns,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}, nil
}

// ProjectTrajectory thresholds the improving fraction against the intern count.
func ProjectTrajectory(improvingCount, internCount int) string {
	if internCount == 0 {
		return models.TrajectoryUnknown
	}
	fraction := float64(improvingCount) / float64(internCount)
	switch {
	case fraction >= improvingThreshold:
		return "improving"
	case fraction >= stableThreshold:
		return "stable"
	default:
		return "declining"
	}
}

// analyzeWithFallback substitutes the degraded insight when the LLM call
// fails or its output cannot be parsed. Report generation never aborts on
// an analysis failure.
func (s *ReportService) analyzeWithFallback(ctx context.Context, internName string, logTexts []string) *models.LLMInsight {
	result := s.llm.Analyze(ctx, internName, logTexts)
	if result.OK() {
		return result.Insight
	}

	if result.Err != nil {
		logger.Warn().Err(result.Err).Str("intern", internName).Msg("llm analysis degraded: transport failure")
	} else {
		logger.Warn().Str("intern", internName).Int("raw_len", len(result.Raw)).Msg("llm analysis degraded: unparseable output")
	}

	insight := &models.LLMInsight{
		Trajectory:      models.TrajectoryUnknown,
		Recommendations: []string{"AI analysis failed"},
	}
	insight.ApplyDefaults()
	return insight
}
