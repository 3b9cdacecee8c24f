package metrics

import "tennis-rally-api/internal/domain"

// Join outcomes
const (
	JoinOutcomeJoined        = "joined"
	JoinOutcomeFull          = "full"
	JoinOutcomeAlreadyJoined = "already_joined"
)

// Login results
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

func (m *Metrics) IncrementUserRegistered() {
	m.safeExecute("IncrementUserRegistered", func() {
		m.UserRegisteredTotal.Inc()
	})
}

func (m *Metrics) RecordLoginAttempt(result string) {
	m.safeExecute("RecordLoginAttempt", func() {
		m.LoginAttemptsTotal.WithLabelValues(result).Inc()
	})
}

func (m *Metrics) IncrementEventCreated() {
	m.safeExecute("IncrementEventCreated", func() {
		m.EventCreatedTotal.Inc()
	})
}

// RecordJoin counts a join attempt by outcome
func (m *Metrics) RecordJoin(outcome string) {
	m.safeExecute("RecordJoin", func() {
		m.EventJoinsTotal.WithLabelValues(outcome).Inc()
	})
}

func (m *Metrics) IncrementRallyStarted() {
	m.safeExecute("IncrementRallyStarted", func() {
		m.RallyStartedTotal.Inc()
	})
}

func (m *Metrics) RecordQuizSubmitted(level domain.SkillLevel) {
	m.safeExecute("RecordQuizSubmitted", func() {
		m.QuizSubmittedTotal.WithLabelValues(string(level)).Inc()
	})
}

// Snapshot holds the totals the collector publishes as gauges
type Snapshot struct {
	Users          int64
	UsersByLevel   map[domain.SkillLevel]int64
	Events         int64
	UpcomingEvents int64
	Participations int64
	RallyEdges     int64
}

// SetSnapshot publishes a snapshot; levels missing from the map are reported as zero
func (m *Metrics) SetSnapshot(s Snapshot) {
	m.safeExecute("SetSnapshot", func() {
		m.UsersTotal.Set(float64(s.Users))
		for _, level := range domain.SkillLevels {
			m.UsersBySkillLevel.WithLabelValues(string(level)).Set(float64(s.UsersByLevel[level]))
		}
		m.EventsTotal.Set(float64(s.Events))
		m.UpcomingEventsTotal.Set(float64(s.UpcomingEvents))
		m.ParticipationsTotal.Set(float64(s.Participations))
		m.RallyEdgesTotal.Set(float64(s.RallyEdges))
	})
}
