package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func stopTimer(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	}
}

// RegisterMetricsCallbacks times every GORM query, create, update, delete and raw exec
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("metrics:query_before", startTimer); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:query_after", stopTimer(recorder, "select")); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("metrics:create_before", startTimer); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:create_after", stopTimer(recorder, "insert")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:update_before", startTimer); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:update_after", stopTimer(recorder, "update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:delete_before", startTimer); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:delete_after", stopTimer(recorder, "delete")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("metrics:raw_before", startTimer); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("metrics:raw_after", stopTimer(recorder, "exec"))
}

// StartDBStatsCollector pushes connection pool stats to recorder every interval until ctx ends
func StartDBStatsCollector(ctx context.Context, db *gorm.DB, recorder MetricsRecorder, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-ctx.Done():
				return
			}
		}
	}()
}
