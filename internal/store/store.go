package store

import (
	"context"
	"fmt"

	"github.com/talenthub/internlens/internal/config"
	"github.com/talenthub/internlens/internal/models"
)

// LogStore is the record-retrieval collaborator for logbook entries.
// Dates are plain "YYYY-MM-DD" strings; the range is inclusive on both ends
// and results are ordered by date ascending.
type LogStore interface {
	FetchLogEntries(ctx context.Context, internID, startDate, endDate string) ([]models.RawEntry, error)
	ListInternIDs(ctx context.Context, startDate, endDate string) ([]string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New opens the store backend selected by the config driver.
func New(ctx context.Context, cfg *config.StoreConfig) (LogStore, error) {
	switch cfg.Driver {
	case "mongo":
		return NewMongoStore(ctx, cfg)
	case "sqlite", "mysql", "postgres":
		return NewSQLStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
}
