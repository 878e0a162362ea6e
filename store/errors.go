package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrNoDriver indicates that no database driver is configured for this process.
	ErrNoDriver = errors.New("no database driver configured")

	// ErrUnavailable indicates that a driver is configured but no handle is available.
	ErrUnavailable = errors.New("database not initialized")
)
