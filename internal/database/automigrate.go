package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tennis-rally-api/internal/domain"
)

// modelInfo holds information about a domain model and its table name
type modelInfo struct {
	model     interface{}
	tableName string
}

// models is ordered so referenced tables are created before the tables pointing at them
func models() []modelInfo {
	return []modelInfo{
		{&domain.User{}, domain.User{}.TableName()},
		{&domain.Event{}, domain.Event{}.TableName()},
		{&domain.Participation{}, domain.Participation{}.TableName()},
		{&domain.RallyEdge{}, domain.RallyEdge{}.TableName()},
		{&domain.QuizSubmission{}, domain.QuizSubmission{}.TableName()},
	}
}

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	all := models()
	list := make([]interface{}, 0, len(all))
	for _, m := range all {
		list = append(list, m.model)
	}

	if err := db.AutoMigrate(list...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}

// SafeAutoMigrate migrates table by table, logging whether each table was created or updated
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()
	all := models()

	logger.Info("Starting safe auto-migration",
		zap.Int("total_models", len(all)),
	)

	for _, m := range all {
		tableExists := migrator.HasTable(m.model)

		if err := db.AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.tableName),
				zap.Bool("table_existed", tableExists),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.tableName, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.tableName),
			zap.Bool("was_existing", tableExists),
		)
	}

	return nil
}

// SafeAutoMigrateWithRetry runs SafeAutoMigrate with a linear backoff between attempts
func SafeAutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = SafeAutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
