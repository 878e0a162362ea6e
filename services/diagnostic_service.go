package services

import (
	"context"
	"errors"

	"github.com/nadit/nadit-backend/logger"
	"github.com/nadit/nadit-backend/store"
	"github.com/nadit/nadit-backend/types"
	"go.uber.org/zap"
)

// EnvPresence reports which database variables were provided at startup.
type EnvPresence interface {
	DatabaseURLSet() bool
	DatabaseNameSet() bool
}

// DiagnosticService builds the database diagnostic record. It only reads.
type DiagnosticService struct {
	provider store.Provider
	env      EnvPresence
	log      *zap.SugaredLogger
}

func NewDiagnosticService(provider store.Provider, env EnvPresence) *DiagnosticService {
	return &DiagnosticService{
		provider: provider,
		env:      env,
		log:      logger.GetLogger(),
	}
}

// Diagnose probes the database and never fails; every problem is described
// in the returned record.
func (s *DiagnosticService) Diagnose(ctx context.Context) types.DiagnosticRecord {
	rec := types.DiagnosticRecord{
		Backend:          types.BackendRunning,
		Database:         types.DatabaseNotAvailable,
		ConnectionStatus: types.ConnectionNotConnected,
		Collections:      []string{},
	}

	s.probe(ctx, &rec)

	rec.DatabaseURL = presence(s.env != nil && s.env.DatabaseURLSet())
	rec.DatabaseName = presence(s.env != nil && s.env.DatabaseNameSet())
	return rec
}

func (s *DiagnosticService) probe(ctx context.Context, rec *types.DiagnosticRecord) {
	if s.provider == nil {
		rec.Database = types.DatabaseModuleNotFound
		return
	}

	db, err := s.provider.Handle()
	switch {
	case errors.Is(err, store.ErrNoDriver):
		rec.Database = types.DatabaseModuleNotFound
		return
	case err != nil:
		s.log.Warnw("Database handle lookup failed", "error", err)
		rec.Database = types.DatabaseErrorPrefix + truncate(err.Error(), types.MaxDiagnosticErrorLength)
		return
	case db == nil:
		rec.Database = types.DatabaseNotInitialized
		return
	}

	rec.Database = types.DatabaseAvailable
	rec.ConnectionStatus = types.ConnectionConnected

	collections, err := db.ListCollections(ctx)
	if err != nil {
		s.log.Warnw("Listing collections failed", "database", db.Name(), "error", err)
		rec.Database = types.DatabaseConnectedError + truncate(err.Error(), types.MaxDiagnosticErrorLength)
		return
	}

	if len(collections) > types.MaxDiagnosticCollections {
		collections = collections[:types.MaxDiagnosticCollections]
	}
	rec.Collections = append(rec.Collections, collections...)
	rec.Database = types.DatabaseWorking
}

func presence(set bool) string {
	if set {
		return types.EnvSet
	}
	return types.EnvNotSet
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
