// Package db opens the document store selected by DATABASE_URL and exposes it
// through store.Provider.
package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nadit/nadit-backend/config"
	"github.com/nadit/nadit-backend/logger"
	"github.com/nadit/nadit-backend/store"
)

// Driver names a supported database backend.
type Driver string

const (
	DriverNone     Driver = ""
	DriverMongo    Driver = "mongodb"
	DriverPostgres Driver = "postgres"
)

// DetectDriver maps the URL scheme to a driver. An empty URL or an unknown
// scheme returns store.ErrNoDriver.
func DetectDriver(rawURL string) (Driver, error) {
	if rawURL == "" {
		return DriverNone, store.ErrNoDriver
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return DriverNone, fmt.Errorf("%w: unparsable database url", store.ErrNoDriver)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	default:
		return DriverNone, fmt.Errorf("%w: unsupported scheme %q", store.ErrNoDriver, u.Scheme)
	}
}

// Connection holds the process-wide database handle. It implements
// store.Provider.
type Connection struct {
	driver Driver
	db     store.Database
	err    error
}

var _ store.Provider = (*Connection)(nil)

// Open connects to the database described by cfg. It never fails: problems
// are logged and reflected in what Handle returns.
func Open(ctx context.Context, cfg config.DatabaseConfig) *Connection {
	log := logger.GetLogger()

	driver, err := DetectDriver(cfg.URL)
	if err != nil {
		log.Warnw("Database driver not available, persistence disabled", "error", err)
		return &Connection{err: err}
	}

	if cfg.Name == "" {
		log.Warnw("DATABASE_NAME not set, database handle not initialized", "driver", driver)
		return &Connection{driver: driver}
	}

	timeout := time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var database store.Database
	switch driver {
	case DriverMongo:
		database, err = openMongo(connectCtx, cfg)
	case DriverPostgres:
		database, err = openPostgres(connectCtx, cfg)
	}
	if err != nil {
		log.Errorw("Failed to connect to database, handle not initialized",
			"driver", driver,
			"url", logger.MaskConnectionString(cfg.URL),
			"error", err)
		return &Connection{driver: driver}
	}

	log.Infow("Database connected", "driver", driver, "name", database.Name())
	return NewConnection(driver, database)
}

// NewConnection wraps an already opened database.
func NewConnection(driver Driver, database store.Database) *Connection {
	return &Connection{driver: driver, db: database}
}

// Driver returns the backend selected for this connection.
func (c *Connection) Driver() Driver {
	return c.driver
}

// Handle implements store.Provider.
func (c *Connection) Handle() (store.Database, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.db, nil
}

// Close releases the underlying client, if any.
func (c *Connection) Close(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close(ctx)
}
