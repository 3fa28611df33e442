package interfaces

import (
	"context"

	"github.com/chartproof/chartproof/internal/models"
)

// ReportStore persists analysis reports. Save is an idempotent upsert by id;
// Get returns nil (no error) for a missing id; List is sorted by timestamp
// descending; Delete reports whether an entry existed.
type ReportStore interface {
	Save(ctx context.Context, report *models.Report) (*models.Report, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// UserStore persists trader profiles.
type UserStore interface {
	Save(ctx context.Context, user *models.UserProfile) error
	Get(ctx context.Context, id string) (*models.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// StorageManager coordinates the storage backends.
type StorageManager interface {
	ReportStore() ReportStore
	UserStore() UserStore
	Close() error
}
