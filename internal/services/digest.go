package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/talenthub/internlens/internal/config"
	"github.com/talenthub/internlens/internal/models"
	"github.com/talenthub/internlens/internal/store"
	"github.com/talenthub/internlens/pkg/logger"
)

// DigestService periodically runs the weekly pipeline for every intern
// active in the window and logs a project-style digest. Reports are not
// persisted; the digest is an operational summary, not a record.
type DigestService struct {
	store          store.LogStore
	reports        *ReportService
	holidays       *HolidayService
	cfg            *config.ReportConfig
	cronScheduler  *cron.Cron
	currentEntryID cron.EntryID
}

func NewDigestService(st store.LogStore, reports *ReportService, holidays *HolidayService, cfg *config.ReportConfig) *DigestService {
	return &DigestService{
		store:    st,
		reports:  reports,
		holidays: holidays,
		cfg:      cfg,
	}
}

func (s *DigestService) StartScheduler() {
	if !s.cfg.DigestEnabled {
		logger.Infof("[Digest] Scheduler disabled")
		return
	}

	s.cronScheduler = cron.New()

	cronExpr := s.cfg.DigestCron
	if cronExpr == "" {
		cronExpr = "0 9 * * 1"
	}

	entryID, err := s.cronScheduler.AddFunc(cronExpr, s.runScheduled)
	if err != nil {
		logger.Errorf("[Digest] Failed to add cron job: %v", err)
		return
	}
	s.currentEntryID = entryID

	s.cronScheduler.Start()
	logger.Infof("[Digest] Scheduler started (cron: %s)", cronExpr)
}

func (s *DigestService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *DigestService) runScheduled() {
	now := time.Now()
	if !s.holidays.IsWorkday(now, s.cfg.HolidayCountry) {
		logger.Infof("[Digest] Skipping scheduled run on non-workday (%s)", now.Format("2006-01-02"))
		return
	}

	queue := GetTaskQueue()
	if queue == nil {
		logger.Errorf("[Digest] Task queue not initialized")
		return
	}

	if err := queue.Enqueue(&DigestTask{WindowDays: s.cfg.WindowDays, RequestedBy: "scheduler"}); err != nil {
		logger.Errorf("[Digest] Failed to enqueue digest task: %v", err)
	}
}

// ProcessDigestTask generates weekly reports for every intern active in the
// window and logs the aggregated outcome. It is the processor wired into
// both the sync queue and the async worker.
func (s *DigestService) ProcessDigestTask(ctx context.Context, task *DigestTask) error {
	report, err := s.Generate(ctx, task.WindowDays)
	if err != nil {
		return err
	}

	logger.Info().
		Str("trajectory", report.ProjectSummary.Trajectory).
		Int("interns", len(report.Interns)).
		Int("milestones", len(report.ProjectSummary.MilestonesAchieved)).
		Str("requested_by", task.RequestedBy).
		Msg("digest generated")

	return nil
}

// Generate builds a project report covering every intern with entries in
// the window.
func (s *DigestService) Generate(ctx context.Context, windowDays int) (*models.ProjectReport, error) {
	start, end := s.reports.WeekRange(windowDays)

	internIDs, err := s.store.ListInternIDs(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing active interns: %w", err)
	}

	internLogs := make([]models.InternLogs, 0, len(internIDs))
	for _, internID := range internIDs {
		entries, err := s.store.FetchLogEntries(ctx, internID, start, end)
		if err != nil {
			return nil, fmt.Errorf("fetching logbook entries for intern %s: %w", internID, err)
		}

		internLogs = append(internLogs, models.InternLogs{
			InternID: internID,
			Name:     internDisplayName(entries, internID),
			Logs:     CollectLogTexts(entries),
		})
	}

	return s.reports.GenerateProjectReport(ctx, internLogs)
}

// internDisplayName pulls a name field off the raw entries when the
// submission system recorded one, falling back to the identifier.
func internDisplayName(entries []models.RawEntry, internID string) string {
	for _, entry := range entries {
		for _, key := range []string{"intern_name", "name"} {
			if value, ok := entry[key]; ok && value != nil {
				if name := strings.TrimSpace(coerceString(value)); name != "" {
					return name
				}
			}
		}
	}
	return "Intern " + internID
}
