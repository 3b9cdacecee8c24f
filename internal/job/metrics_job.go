package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Collector refreshes a set of metrics in one pass
type Collector interface {
	Collect(ctx context.Context) error
}

// MetricsRefreshJob runs the business metrics collector on a cron schedule
type MetricsRefreshJob struct {
	collector Collector
	timeout   time.Duration
	logger    *zap.Logger
}

// NewMetricsRefreshJob creates a job that bounds each collection by timeout
func NewMetricsRefreshJob(collector Collector, timeout time.Duration, logger *zap.Logger) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		collector: collector,
		timeout:   timeout,
		logger:    logger,
	}
}

// Run implements cron.Job
func (j *MetricsRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	if err := j.collector.Collect(ctx); err != nil {
		j.logger.Warn("Business metrics refresh failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	j.logger.Debug("Business metrics refreshed", zap.Duration("duration", time.Since(start)))
}

// NewScheduler returns a cron scheduler that recovers panics and skips overlapping runs
func NewScheduler(logger *zap.Logger) *cron.Cron {
	cronLogger := zapCronLogger{logger: logger.Sugar()}
	return cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}

// Schedule registers the job on the cron schedule and runs it once immediately
func (j *MetricsRefreshJob) Schedule(c *cron.Cron, schedule string) (cron.EntryID, error) {
	id, err := c.AddJob(schedule, j)
	if err != nil {
		return 0, err
	}
	go j.Run()
	return id, nil
}

// zapCronLogger adapts zap to cron.Logger
type zapCronLogger struct {
	logger *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
