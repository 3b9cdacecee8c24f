package metrics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tennis-rally-api/internal/repository"
)

// BusinessMetricsCollector refreshes the business gauges from the database
type BusinessMetricsCollector struct {
	users          repository.UserRepository
	events         repository.EventRepository
	participations repository.ParticipationRepository
	rallies        repository.RallyRepository
	quizzes        repository.QuizRepository
	metrics        *Metrics
	logger         *zap.Logger
	now            func() time.Time
}

// CollectorRepositories groups the repositories the collector reads from
type CollectorRepositories struct {
	Users          repository.UserRepository
	Events         repository.EventRepository
	Participations repository.ParticipationRepository
	Rallies        repository.RallyRepository
	Quizzes        repository.QuizRepository
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(repos CollectorRepositories, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		users:          repos.Users,
		events:         repos.Events,
		participations: repos.Participations,
		rallies:        repos.Rallies,
		quizzes:        repos.Quizzes,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
	}
}

// Collect reads every total and publishes them together. Nothing is published if any read fails.
func (c *BusinessMetricsCollector) Collect(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
			err = fmt.Errorf("business metrics collection panicked: %v", r)
		}
	}()

	var s Snapshot
	steps := []struct {
		name string
		run  func() error
	}{
		{"users", func() (e error) { s.Users, e = c.users.Count(ctx); return }},
		{"users_by_level", func() (e error) { s.UsersByLevel, e = c.quizzes.CountByLevel(ctx); return }},
		{"events", func() (e error) { s.Events, e = c.events.Count(ctx); return }},
		{"upcoming_events", func() (e error) { s.UpcomingEvents, e = c.events.CountUpcoming(ctx, c.now()); return }},
		{"participations", func() (e error) { s.Participations, e = c.participations.Count(ctx); return }},
		{"rally_edges", func() (e error) { s.RallyEdges, e = c.rallies.Count(ctx); return }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			c.logger.Error("Failed to collect business metric", zap.String("metric", step.name), zap.Error(err))
			return fmt.Errorf("collect %s: %w", step.name, err)
		}
	}

	c.metrics.SetSnapshot(s)
	return nil
}
