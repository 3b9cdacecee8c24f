package metrics

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// dbWaitState remembers the last cumulative wait figures so counters only grow by the delta
type dbWaitState struct {
	mu       sync.Mutex
	count    int64
	duration time.Duration
}

// UpdateDBStats updates database connection pool metrics from a sql.DBStats value
func (m *Metrics) UpdateDBStats(statsInterface interface{}) {
	m.safeExecute("UpdateDBStats", func() {
		stats, ok := statsInterface.(sql.DBStats)
		if !ok {
			return
		}
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		m.dbWait.mu.Lock()
		defer m.dbWait.mu.Unlock()
		if delta := stats.WaitCount - m.dbWait.count; delta > 0 {
			m.DBConnectionWaitTotal.Add(float64(delta))
		}
		if delta := stats.WaitDuration - m.dbWait.duration; delta > 0 {
			m.DBConnectionWaitDuration.Add(delta.Seconds())
		}
		m.dbWait.count = stats.WaitCount
		m.dbWait.duration = stats.WaitDuration
	})
}

// RecordDBQuery records database query metrics
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
