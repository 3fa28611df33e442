// Package storage selects the storage backend from configuration.
package storage

import (
	"fmt"

	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/storage/memory"
	"github.com/chartproof/chartproof/internal/storage/surrealdb"
)

// NewManager creates a StorageManager for the configured driver. The
// in-memory driver is the default and requires no external services.
func NewManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	switch config.Storage.Driver {
	case "", "memory":
		return memory.NewManager(logger), nil
	case "surrealdb":
		return surrealdb.NewManager(logger, config)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", config.Storage.Driver)
	}
}
