// Package store defines the capability interfaces the handlers use to reach
// the document database, independent of the concrete driver.
package store

import (
	"context"

	"github.com/nadit/nadit-backend/types"
)

// Database is a live handle to the document store.
type Database interface {
	// Name returns the logical database name.
	Name() string
	// ListCollections returns the collection (or table) names in the database.
	ListCollections(ctx context.Context) ([]string, error)
	// CreateFeedback stores a feedback document and returns its identifier.
	CreateFeedback(ctx context.Context, fb *types.Feedback) (string, error)
	Close(ctx context.Context) error
}

// Provider hands out the database handle.
//
// A nil handle with a nil error means a driver is configured but the handle
// was never initialised. ErrNoDriver means no database driver is configured.
type Provider interface {
	Handle() (Database, error)
}
