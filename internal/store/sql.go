package store

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talenthub/internlens/internal/config"
	"github.com/talenthub/internlens/internal/models"
)

// SQLStore reads logbook entries from a relational database via GORM.
// Rows use the canonical column names, so alias resolution is a no-op here,
// but entries are still returned raw to keep one normalization path.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(cfg *config.StoreConfig) (*SQLStore, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&models.LogEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate logbook table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

func (s *SQLStore) FetchLogEntries(ctx context.Context, internID, startDate, endDate string) ([]models.RawEntry, error) {
	var rows []models.LogEntry
	err := s.db.WithContext(ctx).
		Where("intern_id = ? AND date >= ? AND date <= ?", internID, startDate, endDate).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("logbook query failed: %w", err)
	}

	entries := make([]models.RawEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].Raw())
	}
	return entries, nil
}

func (s *SQLStore) ListInternIDs(ctx context.Context, startDate, endDate string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.LogEntry{}).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Distinct().
		Order("intern_id ASC").
		Pluck("intern_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("intern listing failed: %w", err)
	}
	return ids, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
