package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/inventorly/internal/database"
	"github.com/jask/inventorly/internal/database/repository"
)

// MaintenanceService houses destructive actions on the sqlite store.
type MaintenanceService struct {
	DB    *sql.DB
	Store repository.Store
	Log   *zap.Logger
}

// Reset wipes every table and reloads the demo data. The schema stays intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"assignments",
			"items",
			"projects",
			"verification_codes",
			"users",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		// restart item ids at 1
		_, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'items'")
		return err
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	if err := database.SeedDefaults(ctx, s.Store); err != nil {
		return fmt.Errorf("maintenance: reseed: %w", err)
	}
	logger(s.Log).Info("store reset")
	return nil
}
